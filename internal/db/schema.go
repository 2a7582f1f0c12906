package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// The party_size CHECK mirrors the domain bound so the invariant holds even
// if a write path slips past the repo. Records are never deleted; cancel
// only flips status.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		first_name    TEXT NOT NULL,
		last_name     TEXT NOT NULL DEFAULT '',
		role          TEXT NOT NULL DEFAULT 'user',
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id               TEXT PRIMARY KEY,
		user_id          TEXT NOT NULL REFERENCES users(id),
		date             TEXT NOT NULL,
		time             TEXT NOT NULL,
		party_size       INT  NOT NULL CHECK (party_size BETWEEN 1 AND 20),
		special_requests TEXT NOT NULL DEFAULT '',
		status           TEXT NOT NULL DEFAULT 'pending'
			CHECK (status IN ('pending','confirmed','cancelled')),
		created_at       TIMESTAMPTZ NOT NULL,
		updated_at       TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS reservations_user_date_idx
		ON reservations (user_id, date DESC, created_at ASC)`,
}

func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
