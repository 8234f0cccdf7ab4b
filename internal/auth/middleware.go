package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/albapepper/courtside/internal/api/respond"
)

type contextKey string

const claimsKey contextKey = "auth_claims"

// RevocationChecker reports whether a token id was revoked at logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// RequireAuth validates the Bearer token, rejects revoked tokens and stores
// the claims in the request context. Failures answer 401 JSON.
func (i *Issuer) RequireAuth(revoked RevocationChecker, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := extractBearerToken(r)
			if tokenStr == "" {
				respond.WriteError(w, http.StatusUnauthorized, "MISSING_TOKEN", "Authorization header required")
				return
			}

			claims, err := i.Validate(tokenStr)
			if err != nil {
				respond.WriteError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
				return
			}

			if revoked != nil {
				gone, err := revoked.IsRevoked(r.Context(), claims.ID)
				if err != nil {
					logger.Error("Revocation check failed", "error", err)
					respond.WriteError(w, http.StatusServiceUnavailable, "AUTH_UNAVAILABLE", "Could not verify token")
					return
				}
				if gone {
					respond.WriteError(w, http.StatusUnauthorized, "TOKEN_REVOKED", "Token has been revoked")
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// WithClaims returns a context carrying claims.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// ClaimsFromContext returns the claims stored by RequireAuth, or nil.
func ClaimsFromContext(ctx context.Context) *Claims {
	if c, ok := ctx.Value(claimsKey).(*Claims); ok {
		return c
	}
	return nil
}

// UserIDFromContext returns the authenticated user id, or false when the
// request is anonymous.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	c := ClaimsFromContext(ctx)
	if c == nil {
		return 0, false
	}
	id, err := c.UserID()
	if err != nil {
		return 0, false
	}
	return id, true
}

// extractBearerToken pulls the token from "Authorization: Bearer <token>".
func extractBearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
