package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/manasmitra/backend/internal/service/auth"
	"github.com/manasmitra/backend/pkg/utils"
)

type contextKey string

const userIDKey contextKey = "userID"

// Validator checks bearer access tokens; satisfied by auth.TokenService.
type Validator interface {
	ValidateAccess(token string) (*auth.Claims, error)
}

// RequireAuth rejects requests without a valid bearer access token and puts
// the authenticated user id on the request context.
func RequireAuth(tokens Validator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				utils.RespondError(w, http.StatusUnauthorized, "missing Authorization header")
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.RespondError(w, http.StatusUnauthorized, "malformed Authorization header")
				return
			}

			claims, err := tokens.ValidateAccess(parts[1])
			if err != nil {
				utils.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID extracts the authenticated user id from the request context.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}
