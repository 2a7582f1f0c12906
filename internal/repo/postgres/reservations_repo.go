package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/gildedfork/tablebook/internal/domain/reservation"
	"github.com/gildedfork/tablebook/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reservationColumns = `id, user_id, date, time, party_size, special_requests, status, created_at, updated_at`

type ReservationsRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewReservationsRepo(pool *pgxpool.Pool, prom *observability.Prom) *ReservationsRepo {
	return &ReservationsRepo{
		pool: pool,
		prom: prom,
	}
}

func (repo *ReservationsRepo) observe(op string, fn func() error) error {
	if repo.prom != nil {
		return repo.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (repo *ReservationsRepo) Create(ctx context.Context, userID string, req reservation.CreateReservationRequest) (res reservation.Reservation, err error) {
	// the [1,20] bound is a store invariant, not an API check
	if !reservation.PartySizeInRange(req.PartySize) {
		err = reservation.ErrPartySizeRange
		return
	}

	res = reservation.NewFromCreateRequest(userID, req)

	err = repo.observe("reservations.create", func() error {
		_, e := repo.pool.Exec(ctx, `
		INSERT INTO reservations (id, user_id, date, time, party_size, special_requests, status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, res.ID, res.UserID, res.Date, res.Time, res.PartySize, res.SpecialRequests, res.Status, res.CreatedAt, res.UpdatedAt)
		return e
	})

	if err != nil {
		res = reservation.Reservation{}
	}

	return
}

// ListByUser returns the caller's reservations, newest date first, ties
// broken by creation order.
func (repo *ReservationsRepo) ListByUser(ctx context.Context, userID string) (out []reservation.Reservation, err error) {
	var rows pgx.Rows

	err = repo.observe("reservations.list_by_user", func() error {
		rows, err = repo.pool.Query(ctx, `
	SELECT `+reservationColumns+`
	FROM reservations
	WHERE user_id = $1
	ORDER BY date DESC, created_at ASC, id ASC
	`, userID)
		return err
	})
	if err != nil {
		return
	}
	defer rows.Close()

	out, err = scanReservations(rows)
	if err != nil && repo.prom != nil {
		repo.prom.DbErrorsTotal.WithLabelValues("reservations.list_by_user", "rows_err").Inc()
	}
	return
}

// ListAll is the admin view across all owners.
func (repo *ReservationsRepo) ListAll(ctx context.Context) (out []reservation.Reservation, err error) {
	var rows pgx.Rows

	err = repo.observe("reservations.list_all", func() error {
		rows, err = repo.pool.Query(ctx, `
	SELECT `+reservationColumns+`
	FROM reservations
	ORDER BY date DESC, created_at ASC, id ASC
	`)
		return err
	})
	if err != nil {
		return
	}
	defer rows.Close()

	return scanReservations(rows)
}

// Update applies the provided fields to the caller's reservation. A foreign
// or unknown id both come back as ErrNotFound; userID never changes.
func (repo *ReservationsRepo) Update(ctx context.Context, id, userID string, req reservation.UpdateReservationRequest) (res reservation.Reservation, err error) {
	if req.PartySize != nil && !reservation.PartySizeInRange(*req.PartySize) {
		err = reservation.ErrPartySizeRange
		return
	}

	err = repo.observe("reservations.update", func() error {
		return repo.pool.QueryRow(ctx, `
		UPDATE reservations
		SET date             = COALESCE($3, date),
			time             = COALESCE($4, time),
			party_size       = COALESCE($5, party_size),
			special_requests = COALESCE($6, special_requests),
			status           = COALESCE($7, status),
			updated_at       = $8
		WHERE id = $1 AND user_id = $2
		RETURNING `+reservationColumns+`
	`, id, userID, req.Date, req.Time, req.PartySize, req.SpecialRequests, req.Status, time.Now().UTC()).
			Scan(scanTargets(&res)...)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = reservation.ErrNotFound
		}
		res = reservation.Reservation{}
	}

	return
}

// Cancel forces status=cancelled. Cancelling an already-cancelled record
// succeeds and leaves it cancelled; nothing is ever deleted.
func (repo *ReservationsRepo) Cancel(ctx context.Context, id, userID string) (res reservation.Reservation, err error) {
	err = repo.observe("reservations.cancel", func() error {
		return repo.pool.QueryRow(ctx, `
		UPDATE reservations
		SET status = $3, updated_at = $4
		WHERE id = $1 AND user_id = $2
		RETURNING `+reservationColumns+`
	`, id, userID, reservation.StatusCancelled, time.Now().UTC()).
			Scan(scanTargets(&res)...)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = reservation.ErrNotFound
		}
		res = reservation.Reservation{}
	}

	return
}

func scanTargets(r *reservation.Reservation) []any {
	return []any{
		&r.ID, &r.UserID, &r.Date, &r.Time, &r.PartySize,
		&r.SpecialRequests, &r.Status, &r.CreatedAt, &r.UpdatedAt,
	}
}

func scanReservations(rows pgx.Rows) ([]reservation.Reservation, error) {
	out := make([]reservation.Reservation, 0)

	for rows.Next() {
		var r reservation.Reservation
		if err := rows.Scan(scanTargets(&r)...); err != nil {
			return nil, err
		}
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
