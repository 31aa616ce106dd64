package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"server/internal/auth"
	"server/internal/domain"
)

func newTokens(t *testing.T) *auth.TokenManager {
	t.Helper()
	m, err := auth.NewTokenManager("test-secret")
	if err != nil {
		t.Fatalf("NewTokenManager() error: %v", err)
	}
	return m
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	tokens := newTokens(t)
	called := false
	h := RequireAuth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	for _, header := range []string{"", "Token abc", "Bearer not-a-token"} {
		req := httptest.NewRequest("GET", "/api/auth/donations", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: status = %d, want 401", header, rr.Code)
		}
	}
	if called {
		t.Fatal("handler ran despite missing or invalid token")
	}
}

func TestRequireAuthAttachesIdentity(t *testing.T) {
	tokens := newTokens(t)
	token, err := tokens.Issue("user-42", domain.UserRoleUser)
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	var got *auth.Identity
	h := RequireAuth(tokens)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = IdentityFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/api/auth/donations", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if got == nil || got.UserID != "user-42" || got.Role != domain.UserRoleUser {
		t.Fatalf("identity = %+v, want user-42/user", got)
	}
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	cases := []struct {
		name     string
		identity *auth.Identity
		want     int
	}{
		{"no identity", nil, http.StatusUnauthorized},
		{"regular user", &auth.Identity{UserID: "u1", Role: domain.UserRoleUser}, http.StatusForbidden},
		{"admin", &auth.Identity{UserID: "a1", Role: domain.UserRoleAdmin}, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/campaigns", nil)
			req = req.WithContext(ContextWithIdentity(req.Context(), tc.identity))
			rr := httptest.NewRecorder()
			RequireAdmin(next).ServeHTTP(rr, req)
			if rr.Code != tc.want {
				t.Fatalf("status = %d, want %d", rr.Code, tc.want)
			}
		})
	}
}
