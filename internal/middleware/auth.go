package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jonludena/friendbook/internal/auth"
	"github.com/jonludena/friendbook/internal/models"
	"github.com/jonludena/friendbook/internal/storage"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// currentUserKey is the context key for the authenticated user.
const currentUserKey contextKey = "current_user"

// CurrentUser extracts the authenticated user from the context.
// Returns nil for anonymous requests.
func CurrentUser(ctx context.Context) *models.User {
	user, _ := ctx.Value(currentUserKey).(*models.User)
	return user
}

// WithUser returns a context carrying the given user as the authenticated
// identity.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}

// WithIdentity resolves the Authorization header into an authenticated user
// on the request context before the GraphQL handler runs.
//
// The degradation rules are deliberate and asymmetric:
//   - no header, or a header without the bearer scheme: anonymous context,
//     request proceeds (queries work without auth);
//   - bearer token present but invalid: the whole request is rejected here,
//     before any resolver dispatch — it never degrades to anonymous;
//   - valid token for a user that no longer exists: anonymous context
//     (a stale token is not the client's fault).
func WithIdentity(jwt *auth.JWTManager, store storage.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
				next.ServeHTTP(w, r)
				return
			}

			tokenString := header[len("bearer "):]
			claims, err := jwt.Validate(tokenString)
			if err != nil {
				rejectRequest(w, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
				return
			}

			user, err := store.GetUserByID(r.Context(), claims.UserID)
			if err != nil {
				slog.Error("identity lookup failed", "user_id", claims.UserID, "error", err)
				rejectRequest(w, http.StatusInternalServerError, "failed to resolve identity")
				return
			}
			if user == nil {
				// Token signature is fine but the account is gone.
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// rejectRequest writes a GraphQL-shaped error body so clients see the same
// envelope whether a request dies here or inside a resolver.
func rejectRequest(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"errors": []map[string]interface{}{
			{
				"message":    message,
				"extensions": map[string]interface{}{"code": "UNAUTHENTICATED"},
			},
		},
	})
}
