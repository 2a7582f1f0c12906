package session

import (
	"context"
	"errors"
	"sync"
)

// ErrNoSession is returned by Load when nothing has been persisted yet.
var ErrNoSession = errors.New("no stored session")

// Store is the persistence adapter behind the session simulation, the
// stand-in for the browser's local storage. Save keeps the serialized user
// alongside the token; Load returns both or ErrNoSession.
type Store interface {
	Save(ctx context.Context, user []byte, token string) error
	Load(ctx context.Context) (user []byte, token string, err error)
	Clear(ctx context.Context) error
}

// MemoryStore keeps the session in process memory. Good enough for tests
// and single-run tooling.
type MemoryStore struct {
	mu    sync.Mutex
	user  []byte
	token string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(_ context.Context, user []byte, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = append([]byte(nil), user...)
	s.token = token
	return nil
}

func (s *MemoryStore) Load(_ context.Context) ([]byte, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == "" {
		return nil, "", ErrNoSession
	}
	return append([]byte(nil), s.user...), s.token, nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.token = ""
	return nil
}
