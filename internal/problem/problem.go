// problem стандартизирует ошибки шлюза по RFC 7807 (Problem Details).
// Апстрим-сервисы каталога и auth-сервис возвращают Problem-пейлоады;
// шлюз пробрасывает их на фронт как есть, а локальные ошибки (валидация
// входа, сеть, паника) приводит к тому же виду.
//
// Поведение:
//   - err == nil — это программная ошибка вызова: возвращаем 500/unknown,
//     чтобы не послать "200 OK" с телом ошибки и не маскировать баг;
//   - err содержит *Problem — отдаём его, статус из пейлоада;
//   - err — validator.ValidationErrors — 400/validation + карта полей;
//   - err — сетевая/контекстная ошибка — kind=network (ответа не было);
//   - прочее — 500/unknown без утечки внутренних деталей.
package problem

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Kind — классификация ошибки для единообразной обработки слоями выше.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindNetwork      Kind = "network"
	KindServer       Kind = "server"
	KindUnknown      Kind = "unknown"
)

// FieldError — ошибка уровня поля (как её присылает бэкенд).
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Problem — единый формат ошибки (RFC 7807).
// Fields — производная карта field->message для интеграции с формами.
type Problem struct {
	Type     string            `json:"type,omitempty"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	TraceID  string            `json:"traceId,omitempty"`
	Errors   []FieldError      `json:"errors,omitempty"`
	Fields   map[string]string `json:"fields,omitempty"`
}

func (p *Problem) Error() string {
	if p.Detail != "" {
		return fmt.Sprintf("%s: %s (status %d)", p.Title, p.Detail, p.Status)
	}

	return fmt.Sprintf("%s (status %d)", p.Title, p.Status)
}

// Kind классифицирует Problem по его HTTP-статусу.
func (p *Problem) Kind() Kind { return KindFromStatus(p.Status) }

// KindFromStatus — базовый маппинг HTTP-статуса в Kind.
// Статус 0 означает "ответ не получен" (транспортная ошибка).
func KindFromStatus(status int) Kind {
	switch {
	case status == 0:
		return KindNetwork
	case status == http.StatusBadRequest:
		return KindValidation
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	case status >= 500:
		return KindServer
	default:
		return KindUnknown
	}
}

// statusFromKind — обратный маппинг для локально сконструированных ошибок.
func statusFromKind(k Kind) int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindNetwork:
		return 0
	case KindServer:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// New — локальный Problem заданного вида.
func New(kind Kind, title string) *Problem {
	return &Problem{Title: title, Status: statusFromKind(kind)}
}

// fieldsFromErrors — свёртка errors[] в карту field->message.
func fieldsFromErrors(errs []FieldError) map[string]string {
	if len(errs) == 0 {
		return nil
	}

	out := make(map[string]string, len(errs))
	for _, e := range errs {
		if e.Field != "" {
			out[e.Field] = e.Message
		}
	}

	if len(out) == 0 {
		return nil
	}

	return out
}

// From приводит произвольную ошибку к *Problem.
// fallbackTitle используется, когда из ошибки нельзя извлечь осмысленный title.
func From(err error, fallbackTitle string) *Problem {
	if fallbackTitle == "" {
		fallbackTitle = "An error occurred"
	}

	if err == nil {
		return &Problem{Title: fallbackTitle, Status: http.StatusInternalServerError, Detail: "nil error"}
	}

	var p *Problem
	if errors.As(err, &p) {
		out := *p
		if out.Fields == nil {
			out.Fields = fieldsFromErrors(out.Errors)
		}

		return &out
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[strings.ToLower(fe.Field())] = "failed validation: " + fe.Tag()
		}

		return &Problem{
			Title:  "Validation failed",
			Status: http.StatusBadRequest,
			Detail: "Please check the form fields and try again",
			Fields: fields,
		}
	}

	if isNetworkErr(err) {
		return &Problem{
			Title:  "Network error",
			Status: 0,
			Detail: "Unable to connect to the server",
		}
	}

	return &Problem{
		Title:  fallbackTitle,
		Status: http.StatusInternalServerError,
		Detail: err.Error(),
	}
}

// isNetworkErr — ошибки, при которых ответа от сервера не было.
func isNetworkErr(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}

	var ue *url.Error
	if errors.As(err, &ue) {
		return true
	}

	var ne net.Error
	return errors.As(err, &ne)
}

// maxProblemBody ограничивает чтение тела ошибки апстрима.
const maxProblemBody = 64 << 10

// FromResponse декодирует не-2xx ответ апстрима в Problem.
// Если тело не является Problem-пейлоадом, Problem собирается из статуса.
func FromResponse(resp *http.Response) *Problem {
	p := Problem{
		Title:  http.StatusText(resp.StatusCode),
		Status: resp.StatusCode,
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProblemBody))
	if err == nil && len(body) > 0 {
		var decoded Problem
		if jerr := json.Unmarshal(body, &decoded); jerr == nil && decoded.Title != "" {
			p = decoded
			// Статус из тела может расходиться с реальным — верим транспорту.
			if p.Status == 0 {
				p.Status = resp.StatusCode
			}
		}
	}

	if p.Fields == nil {
		p.Fields = fieldsFromErrors(p.Errors)
	}

	return &p
}
