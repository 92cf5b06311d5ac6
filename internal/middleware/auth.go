package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mmynk/healthtracker/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserIDKey is the context key for storing the authenticated user ID.
	UserIDKey contextKey = "user_id"
	// UsernameKey is the context key for storing the authenticated username.
	UsernameKey contextKey = "username"
)

// GetUserID extracts the user ID from the context.
// Returns 0 if not found.
func GetUserID(ctx context.Context) int64 {
	userID, _ := ctx.Value(UserIDKey).(int64)
	return userID
}

// GetUsername extracts the username from the context.
// Returns empty string if not found.
func GetUsername(ctx context.Context) string {
	username, _ := ctx.Value(UsernameKey).(string)
	return username
}

// WithUser returns a copy of ctx carrying the authenticated user.
func WithUser(ctx context.Context, userID int64, username string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	return context.WithValue(ctx, UsernameKey, username)
}

// RequireSession returns a middleware that validates the session cookie.
// Requests without a valid session are redirected to loginPath and never
// reach the wrapped handler.
func RequireSession(jwtManager *auth.JWTManager, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := jwtManager.Validate(auth.SessionToken(r))
			if err != nil {
				slog.Debug("Session rejected", "path", r.URL.Path, "error", err)
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}

			// Validate already checked the subject parses.
			userID, _ := claims.UserID()
			ctx := WithUser(r.Context(), userID, claims.Username)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
