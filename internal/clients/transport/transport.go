// transport — интерсептор исходящих вызовов к CRUD-сервисам каталога:
// подставляет bearer-токен из Token Store и один раз восстанавливается
// после 401.
//
// Два режима:
//   - серверный (Refresher == nil): inline-рефреш запрещён — у конкурентных
//     запросов нет общего безопасного состояния. Токены гасятся, 401 уходит
//     вызывающему; следующую навигацию перехватит пограничный гард;
//   - клиентский (долгоживущий менеджер): ровно один скоординированный
//     рефреш (singleflight внутри менеджера) и один повтор исходного
//     запроса с новым токеном.
//
// Любой другой ответ, как и 401 уже повторённого запроса, уходит вызывающему
// без изменений.
package transport

import (
	"context"
	"io"
	"net/http"

	"github.com/sokol111/ecommerce-admin-gateway/internal/auth/tokens"
)

// Refresher — скоординированный рефреш сессии (реализуется session.Manager).
type Refresher interface {
	RefreshSession(ctx context.Context) bool
}

// Bearer — http.RoundTripper поверх Base.
// Источник токена: Store запроса из контекста (серверный режим, свой на
// каждый входящий запрос) приоритетнее фиксированного Store.
type Bearer struct {
	Base      http.RoundTripper
	Store     tokens.Store
	Refresher Refresher
}

func (t *Bearer) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}

	return http.DefaultTransport
}

func (t *Bearer) storeFor(req *http.Request) tokens.Store {
	if s, ok := tokens.FromContext(req.Context()); ok {
		return s
	}

	return t.Store
}

func (t *Bearer) RoundTrip(req *http.Request) (*http.Response, error) {
	store := t.storeFor(req)
	if store == nil {
		return t.base().RoundTrip(req)
	}

	resp, err := t.base().RoundTrip(t.withBearer(req, store))
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	// Серверный контекст: гасим токены и пропускаем 401 наверх.
	if t.Refresher == nil {
		store.Clear()
		return resp, nil
	}

	// Повтор возможен только для воспроизводимого тела.
	if req.Body != nil && req.GetBody == nil {
		return resp, nil
	}

	if !t.Refresher.RefreshSession(req.Context()) {
		store.Clear()
		return resp, nil
	}

	// Исходный ответ больше не нужен — освобождаем соединение.
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	retry := req.Clone(req.Context())
	if req.GetBody != nil {
		body, berr := req.GetBody()
		if berr != nil {
			return nil, berr
		}

		retry.Body = body
	}

	return t.base().RoundTrip(t.withBearer(retry, store))
}

// withBearer — копия запроса с Authorization из Store (если токен есть).
// Исходный запрос не мутируется: RoundTripper не владеет им.
func (t *Bearer) withBearer(req *http.Request, store tokens.Store) *http.Request {
	tok, ok := store.AccessToken()
	if !ok {
		return req
	}

	out := req.Clone(req.Context())
	out.Header.Set("Authorization", "Bearer "+tok)
	return out
}
