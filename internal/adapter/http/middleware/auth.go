package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/onul/clinicdesk/internal/domain"
	"github.com/onul/clinicdesk/internal/infrastructure/auth"
)

// ContextKey types context values set by this package.
type ContextKey string

// UserContextKey holds the authenticated *domain.User.
const UserContextKey ContextKey = "user"

// AuthMiddleware authenticates requests by their bearer token and puts
// the resolved user on the request context.
func AuthMiddleware(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				http.Error(w, "missing or malformed authorization header", http.StatusUnauthorized)
				return
			}

			claims, err := jwtManager.Verify(token)
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			user := &domain.User{
				ID:    claims.UserID,
				Email: claims.Email,
				Role:  claims.Role,
			}

			ctx := context.WithValue(r.Context(), UserContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" || token == "" {
		return "", false
	}
	return token, true
}

// RequireMutate rejects roles that cannot create or edit records.
func RequireMutate(next http.Handler) http.Handler {
	return requirePermission(next, func(r domain.Role) bool { return r.CanMutate() })
}

// RequireCloseDay rejects roles that cannot run the closing procedure.
func RequireCloseDay(next http.Handler) http.Handler {
	return requirePermission(next, func(r domain.Role) bool { return r.CanCloseDay() })
}

// RequireDelete rejects roles that cannot delete activities.
func RequireDelete(next http.Handler) http.Handler {
	return requirePermission(next, func(r domain.Role) bool { return r.CanDelete() })
}

func requirePermission(next http.Handler, allowed func(domain.Role) bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUserFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if !allowed(user.Role) {
			http.Error(w, "insufficient permissions", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GetUserFromContext extracts the authenticated user from context
func GetUserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(UserContextKey).(*domain.User)
	return user, ok
}
