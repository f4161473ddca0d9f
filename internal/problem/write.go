package problem

import (
	"encoding/json"
	"net/http"
)

// ContentType — media type Problem-пейлоада по RFC 7807.
const ContentType = "application/problem+json"

// WriteError — хелпер для HTTP-хендлеров шлюза.
// Приводит ошибку к Problem, пишет корректный статус/тело и добавляет
// trace_id из X-Request-Id, чтобы фронт мог репортить баги с привязкой.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	p := From(err, "Request failed")

	if p.TraceID == "" {
		if rid := r.Header.Get("X-Request-Id"); rid != "" {
			p.TraceID = rid
		}
	}

	status := p.Status
	// Транспортная ошибка апстрима (ответа не было) — для нашего клиента это 502.
	if status == 0 {
		status = http.StatusBadGateway
	}

	w.Header().Set("Content-Type", ContentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(p)
}
