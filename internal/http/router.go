package http

import (
	"log/slog"
	"net/http"
	"path"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sokol111/ecommerce-admin-gateway/internal/clients"
	"github.com/sokol111/ecommerce-admin-gateway/internal/http/handlers"
	"github.com/sokol111/ecommerce-admin-gateway/internal/http/middleware"
)

// Options — параметры сборки HTTP-роутера.
type Options struct {
	Logger  *slog.Logger
	Timeout time.Duration
	// RefreshBuffer — запас до истечения access-токена.
	RefreshBuffer time.Duration
	// SecureCookies — атрибут Secure у auth-cookies (прод).
	SecureCookies bool
	// StaticDir — каталог собранной админки; пустой — заглушка вместо SPA.
	StaticDir string
}

// NewRouter собирает http.Handler с chi и подключёнными middleware/роутами.
//
// Два скоупа:
//   - /api/** — REST админки. Гард сюда не применяется: защитой служит 401
//     апстрима, который bearer-транспорт в серверном режиме превращает в
//     гашение cookies;
//   - всё остальное — страничные переходы SPA под пограничным гардом.
//     Пути с расширением файла (статика) отсекаются до гарда.
func NewRouter(cl *clients.Clients, opts Options) http.Handler {
	root := chi.NewRouter()

	// Middleware (внешний -> внутренний).
	root.Use(
		middleware.Recover(),            // безопасно ловим паники
		middleware.RequestID(),          // формируем/прокидываем X-Request-Id (до логирования!)
		middleware.Logging(opts.Logger), // кладём request-scoped логгер в контекст и логируем
	)
	if opts.Timeout > 0 {
		root.Use(middleware.Timeout(opts.Timeout)) // общий дедлайн запроса
	}

	h := handlers.New(cl, opts.RefreshBuffer)

	// REST: cookie-хранилище токенов в контексте каждого запроса.
	root.Route("/api", func(api chi.Router) {
		api.Use(middleware.WithTokenStore(opts.SecureCookies, nil))
		registerRoutes(api, h)
	})

	// Страницы: гард + SPA. Статика (пути с расширением) идёт мимо гарда.
	guard := middleware.Guard(middleware.GuardOptions{
		Auth:   cl.Auth,
		Buffer: opts.RefreshBuffer,
		Secure: opts.SecureCookies,
	})
	spa := NewSPAHandler(opts.StaticDir)
	guarded := guard(spa)

	root.NotFound(func(w http.ResponseWriter, r *http.Request) {
		if path.Ext(r.URL.Path) != "" {
			spa.ServeHTTP(w, r)
			return
		}

		guarded.ServeHTTP(w, r)
	})

	return root
}

// registerRoutes — единая точка регистрации всех REST-эндпойнтов.
func registerRoutes(r chi.Router, h *handlers.Handlers) {
	// auth
	r.Post("/auth/login", h.Login)
	r.Post("/auth/logout", h.Logout)
	r.Post("/auth/refresh", h.Refresh)
	r.Get("/auth/session", h.Session)

	// products
	r.Get("/products", h.ListProducts)
	r.Get("/products/{id}", h.GetProductByID)
	r.Post("/products", h.CreateProduct)
	r.Put("/products/{id}", h.UpdateProduct)

	// categories
	r.Get("/categories", h.ListCategories)
	r.Get("/categories/{id}", h.GetCategoryByID)
	r.Post("/categories", h.CreateCategory)
	r.Put("/categories/{id}", h.UpdateCategory)

	// attributes
	r.Get("/attributes", h.ListAttributes)
	r.Get("/attributes/{id}", h.GetAttributeByID)
	r.Post("/attributes", h.CreateAttribute)
	r.Put("/attributes/{id}", h.UpdateAttribute)

	// images
	r.Post("/images/presign", h.Presign)
	r.Post("/images/confirm", h.ConfirmUpload)
	r.Post("/images/promote", h.PromoteImages)
	r.Get("/images/{id}/delivery-url", h.GetDeliveryURL)
}
