package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/BookEasy/internal/api/handlers"
	"github.com/m04kA/BookEasy/internal/service/auth"
)

type contextKey string

const businessIDKey contextKey = "business_id"

const (
	msgMissingToken = "требуется авторизация"
	msgInvalidToken = "недействительный или просроченный токен"
)

// TokenParser проверяет токен владельца
type TokenParser interface {
	ParseToken(token string) (*auth.Claims, error)
}

// Auth проверяет заголовок Authorization: Bearer <token> и кладет ID бизнеса в контекст
func Auth(parser TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			claims, err := parser.ParseToken(strings.TrimSpace(token))
			if err != nil {
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}

			ctx := WithBusinessID(r.Context(), claims.BusinessID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithBusinessID кладет ID авторизованного бизнеса в контекст
func WithBusinessID(ctx context.Context, businessID int64) context.Context {
	return context.WithValue(ctx, businessIDKey, businessID)
}

// GetBusinessID извлекает ID бизнеса из контекста
func GetBusinessID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(businessIDKey).(int64)
	return id, ok && id > 0
}
