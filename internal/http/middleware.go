package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/abhijeet1717/ecommerce-backend-go/internal/auth/domain"
	"github.com/abhijeet1717/ecommerce-backend-go/internal/auth/token"
	"go.uber.org/zap"
)

type contextKey string

const (
	customerIDKey contextKey = "customer_id"
	roleKey       contextKey = "role"
)

// SessionChecker answers whether the customer still has an active login.
type SessionChecker interface {
	IsLoggedIn(ctx context.Context, customerID string) (bool, error)
}

// AuthMiddleware validates the bearer token and then checks that the
// session behind it was not logged out. A valid token whose session is
// gone gets a 403, not a 401: the credentials were fine, the session is
// simply over.
type AuthMiddleware struct {
	tokens   *token.Manager
	sessions SessionChecker
	log      *zap.Logger
}

func NewAuthMiddleware(tokens *token.Manager, sessions SessionChecker, log *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:   tokens,
		sessions: sessions,
		log:      log,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			respondError(w, http.StatusUnauthorized, "Missing or malformed authorization header")
			return
		}

		claims, err := m.tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			respondError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		active, err := m.sessions.IsLoggedIn(r.Context(), claims.CustomerID)
		if err != nil {
			handleServiceError(w, m.log, err)
			return
		}
		if !active {
			respondError(w, http.StatusForbidden, "You have been logged out ! Please login again")
			return
		}

		ctx := context.WithValue(r.Context(), customerIDKey, claims.CustomerID)
		ctx = context.WithValue(ctx, roleKey, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole guards a subtree to one role.
func RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if roleFromContext(r.Context()) != role {
				respondError(w, http.StatusForbidden, "Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func customerIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(customerIDKey).(string); ok {
		return id
	}
	return ""
}

func roleFromContext(ctx context.Context) domain.Role {
	if role, ok := ctx.Value(roleKey).(domain.Role); ok {
		return role
	}
	return ""
}
