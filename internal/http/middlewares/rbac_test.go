package middlewares_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gildedfork/tablebook/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

func TestRequireRole(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		role        string // empty means no identity on the context
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "no identity",
			role:        "",
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "Missing identity context",
		},
		{
			name:        "wrong role",
			role:        "user",
			wantStatus:  http.StatusForbidden,
			wantMessage: "Admin role required",
		},
		{
			name:       "admin passes through",
			role:       "admin",
			wantStatus: http.StatusOK,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// token verification is not under test here
			m := middlewares.NewAuthMiddleware(nil)

			reached := false

			r := gin.New()
			r.Use(func(c *gin.Context) {
				if tc.role != "" {
					middlewares.SetIdentity(c, "caller-1", "caller-1@example.com", tc.role)
				}
			})
			r.Use(m.RequireRole("admin"))
			r.GET("/admin/reservations", func(c *gin.Context) {
				reached = true
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/admin/reservations", nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tc.wantStatus, w.Body.String())
			}

			if tc.wantStatus == http.StatusOK {
				if !reached {
					t.Fatalf("guard should have let the admin through")
				}
				return
			}

			if reached {
				t.Fatalf("guard must abort before the handler runs")
			}

			var resp struct {
				Message string `json:"message"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("bad response body: %v", err)
			}
			if resp.Message != tc.wantMessage {
				t.Fatalf("got message %q, want %q", resp.Message, tc.wantMessage)
			}
		})
	}
}
