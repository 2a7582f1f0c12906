package integration_test

import (
	"net/http"
	"strings"
	"testing"
)

func TestAuthIntegration_SignupThenLogin(t *testing.T) {
	router, pool := setupTestRouter(t)
	resetDB(t, pool)
	defer resetDB(t, pool)

	signupAndToken(t, router, "sam@example.com")

	// the same credentials log in

	w := doRequest(router, http.MethodPost, "/auth/login", `{"email":"sam@example.com","password":"Abc12345"}`, "")

	if w.Code != http.StatusOK {
		t.Fatalf("login got status %d, want %d, body=%s", w.Code, http.StatusOK, w.Body.String())
	}

	var resp tokenResponse
	mustReadJSON(t, w, &resp)

	if strings.TrimSpace(resp.AccessToken) == "" {
		t.Fatalf("login expected accessToken, got empty")
	}
}

func TestAuthIntegration_DuplicateEmail(t *testing.T) {
	router, pool := setupTestRouter(t)
	resetDB(t, pool)
	defer resetDB(t, pool)

	signupAndToken(t, router, "sam@example.com")

	body := `{"email":"sam@example.com","password":"Abc12345","firstName":"Sam","lastName":"Doe"}`
	w := doRequest(router, http.MethodPost, "/auth/signup", body, "")

	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate signup got status %d, want %d, body=%s", w.Code, http.StatusBadRequest, w.Body.String())
	}

	var resp struct {
		Message string `json:"message"`
	}
	mustReadJSON(t, w, &resp)

	if resp.Message != "Email is already in use" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

func TestAuthIntegration_Login_InvalidCredentials(t *testing.T) {
	router, pool := setupTestRouter(t)
	resetDB(t, pool)
	defer resetDB(t, pool)

	// no user created
	w := doRequest(router, http.MethodPost, "/auth/login", `{"email":"nope@example.com","password":"wrong-pass"}`, "")

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("login(invalid creds) got status %d, want %d, body=%s", w.Code, http.StatusUnauthorized, w.Body.String())
	}
}

func TestAuthIntegration_ReservationsRequireToken(t *testing.T) {
	router, pool := setupTestRouter(t)
	resetDB(t, pool)
	defer resetDB(t, pool)

	w := doRequest(router, http.MethodGet, "/reservations", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("missing token got status %d, want 401, body=%s", w.Code, w.Body.String())
	}

	w2 := doRequest(router, http.MethodGet, "/reservations", "", "not-a-jwt")
	if w2.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token got status %d, want 401, body=%s", w2.Code, w2.Body.String())
	}
}
