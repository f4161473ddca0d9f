package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sokol111/ecommerce-admin-gateway/internal/auth/session"
	"github.com/sokol111/ecommerce-admin-gateway/internal/auth/tokens"
	"github.com/sokol111/ecommerce-admin-gateway/internal/clients"
	"github.com/sokol111/ecommerce-admin-gateway/internal/problem"
)

// Handlers агрегирует зависимости (REST-клиенты апстримов).
type Handlers struct {
	Clients *clients.Clients
	Buffer  time.Duration
}

func New(c *clients.Clients, buffer time.Duration) *Handlers {
	if buffer <= 0 {
		buffer = tokens.DefaultRefreshBuffer
	}

	return &Handlers{Clients: c, Buffer: buffer}
}

// sessionFor — request-scoped менеджер сессии поверх cookie-хранилища
// запроса. Без проактивного таймера: жизнь менеджера — один запрос.
func (h *Handlers) sessionFor(r *http.Request) (*session.Manager, bool) {
	store, ok := tokens.FromContext(r.Context())
	if !ok {
		return nil, false
	}

	return session.NewManager(h.Clients.Auth, store, session.Options{Buffer: h.Buffer}), true
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через problem.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// errInvalidBody — локальная ошибка парсинга тела запроса.
func errInvalidBody() error {
	return problem.New(problem.KindValidation, "Invalid request body")
}

// errNoStore — в контексте нет Token Store (ошибка сборки роутера).
func errNoStore() error {
	return problem.New(problem.KindServer, "Token store is not configured")
}
