package session_test

import (
	"context"
	"testing"

	"github.com/gildedfork/tablebook/internal/session"
)

func newManager() (*session.Manager, *session.MemoryStore) {
	store := session.NewMemoryStore()
	// zero latency: the UX delay has no bearing on correctness
	return session.NewManager(store, 0), store
}

func TestLogin(t *testing.T) {
	m, store := newManager()
	ctx := context.Background()

	if m.State() != session.StateAnonymous {
		t.Fatalf("fresh manager should be anonymous, got %v", m.State())
	}

	u, err := m.Login(ctx, "marisol@example.com", "whatever")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if m.State() != session.StateAuthenticated {
		t.Fatalf("expected authenticated, got %v", m.State())
	}
	if u.FirstName != "marisol" {
		t.Fatalf("first name should come from the email local-part, got %q", u.FirstName)
	}
	if u.ID == "" || u.Email != "marisol@example.com" {
		t.Fatalf("fabricated user incomplete: %+v", u)
	}

	// user + token must be durably stored
	raw, token, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("store should hold a session: %v", err)
	}
	if len(raw) == 0 || token == "" {
		t.Fatalf("stored session incomplete: user=%q token=%q", raw, token)
	}
}

func TestSignUpAutoAuthenticates(t *testing.T) {
	m, _ := newManager()

	u, err := m.SignUp(context.Background(), "Jo", "Smith", "jo@example.com", "Abc12345")
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if m.State() != session.StateAuthenticated {
		t.Fatalf("signup should auto-authenticate, got %v", m.State())
	}
	if u.FirstName != "Jo" || u.LastName != "Smith" {
		t.Fatalf("signup should keep provided names, got %+v", u)
	}
}

func TestLogoutClearsStore(t *testing.T) {
	m, store := newManager()
	ctx := context.Background()

	if _, err := m.Login(ctx, "jo@example.com", "x"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	m.Logout(ctx)

	if m.State() != session.StateAnonymous {
		t.Fatalf("expected anonymous after logout, got %v", m.State())
	}
	if _, ok := m.CurrentUser(); ok {
		t.Fatal("no user should remain after logout")
	}
	if _, _, err := store.Load(ctx); err != session.ErrNoSession {
		t.Fatalf("store should be empty after logout, got err=%v", err)
	}
}

func TestCheckAuthRehydrates(t *testing.T) {
	store := session.NewMemoryStore()
	ctx := context.Background()

	first := session.NewManager(store, 0)
	want, err := first.Login(ctx, "jo@example.com", "x")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// a fresh manager over the same store simulates a process restart
	second := session.NewManager(store, 0)
	second.CheckAuth(ctx)

	if second.State() != session.StateAuthenticated {
		t.Fatalf("expected rehydrated session, got %v", second.State())
	}
	got, ok := second.CurrentUser()
	if !ok || got.ID != want.ID || got.Email != want.Email {
		t.Fatalf("rehydrated user mismatch: got %+v want %+v", got, want)
	}
}

func TestCheckAuthCorruptStateForcesLogout(t *testing.T) {
	store := session.NewMemoryStore()
	ctx := context.Background()

	if err := store.Save(ctx, []byte("{not json"), "mock-token-1"); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	m := session.NewManager(store, 0)
	m.CheckAuth(ctx)

	if m.State() != session.StateAnonymous {
		t.Fatalf("corrupt session must force logout, got %v", m.State())
	}
	if _, _, err := store.Load(ctx); err != session.ErrNoSession {
		t.Fatalf("corrupt session should be cleared, got err=%v", err)
	}
}

func TestLoginCancelled(t *testing.T) {
	store := session.NewMemoryStore()
	m := session.NewManager(store, session.DefaultLatency)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := m.Login(ctx, "jo@example.com", "x"); err == nil {
		t.Fatal("cancelled login should fail")
	}
	if m.State() != session.StateAnonymous {
		t.Fatalf("failed login should fall back to anonymous, got %v", m.State())
	}
}
