package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/KNehe/swimmy/internal/api/httpx"
	"github.com/KNehe/swimmy/internal/auth"
	"github.com/KNehe/swimmy/internal/models"
	"github.com/KNehe/swimmy/internal/policy"
)

type callerKey struct{}

func WithCaller(ctx context.Context, c policy.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// CallerFrom returns the request's caller; the zero Caller means anonymous.
func CallerFrom(ctx context.Context) policy.Caller {
	if v := ctx.Value(callerKey{}); v != nil {
		if c, ok := v.(policy.Caller); ok {
			return c
		}
	}
	return policy.Caller{}
}

type AuthMiddleware struct {
	TM *auth.TokenManager
}

func NewAuthMiddleware(tm *auth.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{TM: tm}
}

// Identify attaches the caller identity when a bearer token is presented.
// Requests without a token pass through anonymous; the policy table decides
// what anonymous callers may do. A malformed token is rejected here.
func (m *AuthMiddleware) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ah := r.Header.Get("Authorization")
		if ah == "" {
			next.ServeHTTP(w, r)
			return
		}
		if !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
			httpx.WriteError(w, http.StatusUnauthorized, "invalid_token", "missing bearer token", nil)
			return
		}
		token := strings.TrimSpace(ah[len("Bearer "):])

		claims, err := m.TM.ParseAccess(token)
		if err != nil {
			httpx.WriteError(w, http.StatusUnauthorized, "invalid_token", "invalid access token", nil)
			return
		}
		c := policy.Caller{ID: claims.UserID, Admin: claims.Role == models.RoleAdmin}
		next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), c)))
	})
}
