// Package session simulates the front-end authentication context: a tiny
// state machine that fabricates a user on login/signup, persists it through
// a pluggable Store adapter, and rehydrates on start. It performs no real
// credential check and must be swapped for a real identity provider before
// anything production-shaped ships.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type State int

const (
	StateAnonymous State = iota
	StateAuthenticating
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// User is the fabricated identity the simulation hands back. It mirrors
// what the real sign-up flow would return, minus anything verified.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// DefaultLatency approximates the UX delay the reference flows used
// (1.2s for forms, 1.5s for auth).
const DefaultLatency = 1300 * time.Millisecond

type Manager struct {
	mu      sync.Mutex
	state   State
	user    *User
	token   string
	store   Store
	latency time.Duration
}

func NewManager(store Store, latency time.Duration) *Manager {
	if latency < 0 {
		latency = DefaultLatency
	}
	return &Manager{
		state:   StateAnonymous,
		store:   store,
		latency: latency,
	}
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Manager) CurrentUser() (User, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return User{}, false
	}
	return *m.user, true
}

func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Login simulates a credential check: after the artificial delay it always
// succeeds, fabricating a user whose first name is the email local-part.
func (m *Manager) Login(ctx context.Context, email, password string) (User, error) {
	_ = password // no verification in the simulation

	u := User{
		ID:        uuid.NewString(),
		Email:     email,
		FirstName: localPart(email),
		CreatedAt: time.Now().UTC(),
	}

	return m.authenticate(ctx, u)
}

// SignUp has the same shape as Login but keeps the provided names and
// auto-authenticates on success.
func (m *Manager) SignUp(ctx context.Context, firstName, lastName, email, password string) (User, error) {
	_ = password

	u := User{
		ID:        uuid.NewString(),
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: time.Now().UTC(),
	}

	return m.authenticate(ctx, u)
}

func (m *Manager) authenticate(ctx context.Context, u User) (User, error) {
	m.mu.Lock()
	m.state = StateAuthenticating
	m.mu.Unlock()

	if err := m.sleep(ctx); err != nil {
		m.mu.Lock()
		m.state = StateAnonymous
		m.mu.Unlock()
		return User{}, err
	}

	token := fmt.Sprintf("mock-token-%d", time.Now().UnixMilli())

	raw, err := json.Marshal(u)
	if err != nil {
		m.mu.Lock()
		m.state = StateAnonymous
		m.mu.Unlock()
		return User{}, err
	}

	if err := m.store.Save(ctx, raw, token); err != nil {
		m.mu.Lock()
		m.state = StateAnonymous
		m.mu.Unlock()
		return User{}, err
	}

	m.mu.Lock()
	m.user = &u
	m.token = token
	m.state = StateAuthenticated
	m.mu.Unlock()

	return u, nil
}

// Logout drops the in-memory identity and clears the persisted one.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	m.user = nil
	m.token = ""
	m.state = StateAnonymous
	m.mu.Unlock()

	_ = m.store.Clear(ctx)
}

// CheckAuth rehydrates the session from the store on process start.
// Corrupt stored data forces a logout rather than a half-open session.
func (m *Manager) CheckAuth(ctx context.Context) {
	raw, token, err := m.store.Load(ctx)
	if err != nil || token == "" {
		return
	}

	var u User
	if err := json.Unmarshal(raw, &u); err != nil {
		m.Logout(ctx)
		return
	}

	m.mu.Lock()
	m.user = &u
	m.token = token
	m.state = StateAuthenticated
	m.mu.Unlock()
}

func (m *Manager) sleep(ctx context.Context) error {
	if m.latency == 0 {
		return nil
	}

	t := time.NewTimer(m.latency)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func localPart(email string) string {
	name, _, found := strings.Cut(email, "@")
	if !found || name == "" {
		return email
	}
	return name
}
