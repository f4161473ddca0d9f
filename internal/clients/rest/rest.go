// rest — общий JSON-хелпер REST-клиентов апстрим-сервисов.
// Транспортные ошибки уходят наверх как есть (их классифицирует problem.From),
// не-2xx ответы декодируются в *problem.Problem.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sokol111/ecommerce-admin-gateway/internal/problem"
)

// DoJSON выполняет запрос с JSON-телом in и декодирует 2xx-ответ в out.
// in == nil — запрос без тела, out == nil — тело ответа не интересует.
// Тело запроса собирается в память, поэтому net/http выставляет GetBody и
// запрос можно безопасно повторить после рефреша токена.
func DoJSON(ctx context.Context, httpc *http.Client, method, url string, in, out any, header http.Header) error {
	const op = "clients/rest/DoJSON"

	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", op, err)
		}

		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json, application/problem+json")

	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return problem.FromResponse(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}

	return nil
}
