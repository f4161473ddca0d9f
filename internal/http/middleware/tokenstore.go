package middleware

import (
	"net/http"
	"time"

	"github.com/sokol111/ecommerce-admin-gateway/internal/auth/tokens"
)

// WithTokenStore кладёт cookie-хранилище токенов этого запроса в контекст.
// Хранилище одно на запрос: его видят хендлеры и bearer-транспорт исходящих
// вызовов, поэтому пара токенов обновляется только целиком.
func WithTokenStore(secure bool, now func() time.Time) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := tokens.FromContext(r.Context()); ok {
				// Гард уже положил хранилище выше по цепочке.
				next.ServeHTTP(w, r)
				return
			}

			store := tokens.NewCookieStore(w, r, tokens.CookieOptions{Secure: secure, Now: now})
			next.ServeHTTP(w, r.WithContext(tokens.IntoContext(r.Context(), store)))
		})
	}
}
