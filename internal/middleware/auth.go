package middleware

import (
	"context"
	"net/http"
	"strings"

	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type ctxKey int

const (
	ownerKey ctxKey = iota
	ownerSlotKey
)

// WithOwner stores the authenticated user id on ctx, and reports it back to
// the request logger when one is installed.
func WithOwner(ctx context.Context, id int) context.Context {
	if slot, ok := ctx.Value(ownerSlotKey).(*int); ok {
		*slot = id
	}
	return context.WithValue(ctx, ownerKey, id)
}

func withOwnerSlot(ctx context.Context, slot *int) context.Context {
	return context.WithValue(ctx, ownerSlotKey, slot)
}

// OwnerID returns the id set by RequireAuth.
func OwnerID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(ownerKey).(int)
	return id, ok
}

type AuthMiddleware struct {
	jwtSecret []byte
}

func NewAuthMiddleware(secret []byte) *AuthMiddleware {
	return &AuthMiddleware{jwtSecret: secret}
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get("Authorization")
		if !strings.HasPrefix(authz, "Bearer ") {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}
		tokenStr := strings.TrimPrefix(authz, "Bearer ")
		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return m.jwtSecret, nil
		})
		if err != nil || !token.Valid {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			http.Error(w, "invalid claims", http.StatusUnauthorized)
			return
		}
		sub, ok := claims["sub"].(float64)
		if !ok {
			http.Error(w, "invalid subject", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithOwner(r.Context(), int(sub))))
	})
}

// AdminChecker reports whether a user may see instance-wide data.
type AdminChecker interface {
	IsAdmin(ctx context.Context, id int) (bool, error)
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin(users AdminChecker, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := OwnerID(r.Context())
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			admin, err := users.IsAdmin(r.Context(), id)
			if err != nil {
				logger.Warn("admin check failed", zap.Int("user_id", id), zap.Error(err))
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			if !admin {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
