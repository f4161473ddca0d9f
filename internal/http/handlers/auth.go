package handlers

import (
	"net/http"

	"github.com/sokol111/ecommerce-admin-gateway/internal/models"
	"github.com/sokol111/ecommerce-admin-gateway/internal/problem"
)

// Login аутентифицирует администратора и кладёт пару токенов в httpOnly
// cookies ответа. Неудача логина уходит на фронт классифицированной
// (невалидный вход / 401 / сеть / 5xx) и никогда не ретраится.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionFor(r)
	if !ok {
		problem.WriteError(w, r, errNoStore())
		return
	}

	var in models.LoginRequest
	if err := decodeStrict(r, &in); err != nil {
		problem.WriteError(w, r, errInvalidBody())
		return
	}

	resp, err := sess.Login(r.Context(), in)
	if err != nil {
		problem.WriteError(w, r, err)
		return
	}

	// Сами токены остаются в cookies; фронту - профиль и срок для планирования.
	writeJSON(w, http.StatusOK, models.SessionResponse{
		User:      resp.User,
		ExpiresIn: resp.ExpiresIn,
	})
}

// Logout завершает сессию: best-effort вызов auth-сервиса, безусловное
// гашение cookies. Локально logout не может не удаться.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionFor(r)
	if !ok {
		problem.WriteError(w, r, errNoStore())
		return
	}

	sess.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// Refresh — серверный рефреш по refresh-токену из cookies.
// Неуспех гасит cookies и отвечает 401 — фронт уводит на /login.
func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionFor(r)
	if !ok {
		problem.WriteError(w, r, errNoStore())
		return
	}

	if !sess.RefreshSession(r.Context()) {
		problem.WriteError(w, r, problem.New(problem.KindUnauthorized, "Session expired"))
		return
	}

	writeJSON(w, http.StatusOK, models.RefreshResponse{ExpiresIn: sess.ExpiresIn()})
}

// Session — гидрация состояния при монтировании фронта: профиль по
// access-токену, при неудаче — тихий рефреш и повторная попытка.
func (h *Handlers) Session(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessionFor(r)
	if !ok {
		problem.WriteError(w, r, errNoStore())
		return
	}

	snap := sess.Hydrate(r.Context())
	if !snap.IsAuthenticated || snap.User == nil {
		problem.WriteError(w, r, problem.New(problem.KindUnauthorized, "Not authenticated"))
		return
	}

	writeJSON(w, http.StatusOK, models.SessionResponse{
		User:      *snap.User,
		ExpiresIn: sess.ExpiresIn(),
	})
}
