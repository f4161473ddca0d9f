package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/sokol111/ecommerce-admin-gateway/internal/auth/tokens"
	"github.com/sokol111/ecommerce-admin-gateway/internal/models"
	logctx "github.com/sokol111/ecommerce-admin-gateway/internal/pkg/log"
)

const loginPath = "/login"

// TokenRefresher — синхронный рефреш пары по refresh-токену
// (реализуется authclient).
type TokenRefresher interface {
	Refresh(ctx context.Context, refreshToken string) (*models.TokenResponse, error)
}

// GuardOptions — параметры пограничного гарда.
type GuardOptions struct {
	Auth TokenRefresher
	// PublicPaths — страницы без аутентификации; nil — только /login.
	PublicPaths []string
	// Buffer — запас до истечения access-токена; <=0 — tokens.DefaultRefreshBuffer.
	Buffer time.Duration
	// Secure — атрибут Secure у auth-cookies.
	Secure bool
	// Now подменяется в тестах; nil — time.Now.
	Now func() time.Time
}

// Guard — пограничная проверка аутентификации страничных переходов.
// Выполняется до любого кода страницы; статика и API-маршруты отсечены
// на уровне роутера и сюда не попадают.
//
// Алгоритм на запрос:
//  1. прочитать access-токен, метку срока и refresh-токен из cookies;
//  2. токен жив и не внутри буфера — пропустить (на /login — редирект домой);
//  3. иначе при наличии refresh-токена на защищённом пути — один синхронный
//     рефреш: успех пишет три новых cookie в ответ и пропускает запрос;
//  4. защищённый путь без сессии — редирект на /login?callbackUrl=<path>
//     с гашением остаточных auth-cookies;
//  5. публичный путь — пропустить неаутентифицированным.
func Guard(opts GuardOptions) Middleware {
	if opts.Buffer <= 0 {
		opts.Buffer = tokens.DefaultRefreshBuffer
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	public := opts.PublicPaths
	if public == nil {
		public = []string{loginPath}
	}

	isPublic := func(path string) bool {
		for _, p := range public {
			if path == p {
				return true
			}
		}
		return false
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			store := tokens.NewCookieStore(w, r, tokens.CookieOptions{Secure: opts.Secure, Now: opts.Now})
			r = r.WithContext(tokens.IntoContext(r.Context(), store))

			path := r.URL.Path

			// 2) живой access-токен.
			if _, ok := store.AccessToken(); ok && !tokens.ExpiresWithin(store, opts.Buffer, opts.Now()) {
				if path == loginPath {
					http.Redirect(w, r, "/", http.StatusFound)
					return
				}

				next.ServeHTTP(w, r)
				return
			}

			// 3) тихий рефреш по refresh-токену.
			if rt, ok := store.RefreshToken(); ok && !isPublic(path) {
				resp, err := opts.Auth.Refresh(r.Context(), rt)
				if err == nil {
					store.Save(tokens.PairFrom(*resp, opts.Now()))
					next.ServeHTTP(w, r)
					return
				}

				logctx.From(r.Context()).Info("edge_refresh_failed",
					slog.String("path", path), slog.String("err", err.Error()))
			}

			// 4) защищённый путь без сессии.
			if !isPublic(path) {
				store.Clear()

				q := url.Values{}
				q.Set("callbackUrl", path)
				http.Redirect(w, r, loginPath+"?"+q.Encode(), http.StatusFound)
				return
			}

			// 5) публичный путь.
			next.ServeHTTP(w, r)
		})
	}
}
