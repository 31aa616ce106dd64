package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"server/internal/auth"
	"server/internal/domain"
)

type identityContextKey struct{}

// RequireAuth verifies the bearer token on the request and stores the proven
// identity in the context. Requests without a valid token are rejected before
// any handler runs.
func RequireAuth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeError(w, http.StatusUnauthorized, "missing authorization")
				return
			}
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeError(w, http.StatusUnauthorized, "invalid authorization")
				return
			}
			identity, err := tokens.Verify(parts[1])
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}
			ctx := context.WithValue(r.Context(), identityContextKey{}, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects requests whose authenticated identity is not an admin.
// It composes after RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity := IdentityFromContext(r.Context())
		if identity == nil {
			writeError(w, http.StatusUnauthorized, "missing authorization")
			return
		}
		if identity.Role != domain.UserRoleAdmin {
			writeError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// IdentityFromContext returns the authenticated identity, or nil on public
// routes.
func IdentityFromContext(ctx context.Context) *auth.Identity {
	if v, ok := ctx.Value(identityContextKey{}).(*auth.Identity); ok {
		return v
	}
	return nil
}

// ContextWithIdentity attaches an identity to the context. Used by tests to
// exercise handlers behind the auth gate.
func ContextWithIdentity(ctx context.Context, identity *auth.Identity) context.Context {
	if identity == nil {
		return ctx
	}
	return context.WithValue(ctx, identityContextKey{}, identity)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
