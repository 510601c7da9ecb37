package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/wonhee/golddash/backend/internal/user"
	"github.com/wonhee/golddash/backend/pkg/logger"
)

type contextKey string

const userContextKey contextKey = "current_user"

// TokenVerifier validates an access token and returns the user id inside.
type TokenVerifier interface {
	Verify(token string) (int64, error)
}

// UserFinder loads a user by id for request authentication.
type UserFinder interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
}

// NewAuthMiddleware builds middleware that requires a valid bearer token
// and an active account. The authenticated user is stored on the request
// context for handlers.
// ⭐ SSOT: 인증 검사는 이 미들웨어에서만
func NewAuthMiddleware(tokens TokenVerifier, users UserFinder, log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				unauthorized(w, "Not authenticated")
				return
			}

			userID, err := tokens.Verify(token)
			if err != nil {
				unauthorized(w, "Could not validate credentials")
				return
			}

			u, err := users.GetByID(r.Context(), userID)
			if err != nil {
				log.WithError(err).Debug("Token subject lookup failed")
				unauthorized(w, "Could not validate credentials")
				return
			}
			if !u.IsActive {
				unauthorized(w, "Inactive user")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated user placed by the auth
// middleware, or nil outside an authenticated route.
func UserFromContext(ctx context.Context) *user.User {
	u, _ := ctx.Value(userContextKey).(*user.User)
	return u
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	respondError(w, http.StatusUnauthorized, message)
}
