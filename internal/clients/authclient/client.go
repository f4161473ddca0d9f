// authclient — REST-клиент внешнего auth-сервиса.
//
// Контракт:
//
//	POST /login         {email, password} -> {accessToken, refreshToken, expiresIn, refreshExpiresIn, expiresAt, user}
//	GET  /profile       (bearer)          -> Profile
//	POST /token/refresh {refreshToken}    -> токены, как у /login
//	POST /logout        best-effort, тело ответа не обрабатывается
//
// Клиент намеренно ходит мимо bearer-транспорта шлюза: рефреш из
// интерсептора не должен зациклиться на самом себе.
package authclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sokol111/ecommerce-admin-gateway/internal/clients/rest"
	"github.com/sokol111/ecommerce-admin-gateway/internal/models"
)

type Client struct {
	baseURL string
	httpc   *http.Client
}

// New создаёт клиент auth-сервиса. Нулевой httpc — клиент с дефолтным
// таймаутом: рефреш в пограничном гарде не должен висеть дольше запроса.
func New(baseURL string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 10 * time.Second}
	}

	return &Client{baseURL: baseURL, httpc: httpc}
}

func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	const op = "clients/authclient/Login"

	var out models.AuthResponse
	if err := rest.DoJSON(ctx, c.httpc, http.MethodPost, c.baseURL+"/login", req, &out, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

func (c *Client) Profile(ctx context.Context, accessToken string) (*models.Profile, error) {
	const op = "clients/authclient/Profile"

	header := http.Header{}
	header.Set("Authorization", "Bearer "+accessToken)

	var out models.Profile
	if err := rest.DoJSON(ctx, c.httpc, http.MethodGet, c.baseURL+"/profile", nil, &out, header); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

func (c *Client) Refresh(ctx context.Context, refreshToken string) (*models.TokenResponse, error) {
	const op = "clients/authclient/Refresh"

	in := struct {
		RefreshToken string `json:"refreshToken"`
	}{RefreshToken: refreshToken}

	var out models.TokenResponse
	if err := rest.DoJSON(ctx, c.httpc, http.MethodPost, c.baseURL+"/token/refresh", in, &out, nil); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// Logout уведомляет auth-сервис о выходе. Ошибка возвращается для логирования,
// но вызывающие обязаны её глотать: локальный logout обязан удаться всегда.
func (c *Client) Logout(ctx context.Context) error {
	const op = "clients/authclient/Logout"

	if err := rest.DoJSON(ctx, c.httpc, http.MethodPost, c.baseURL+"/logout", nil, nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
