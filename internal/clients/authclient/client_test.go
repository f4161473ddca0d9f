package authclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sokol111/ecommerce-admin-gateway/internal/models"
	"github.com/sokol111/ecommerce-admin-gateway/internal/problem"
)

func TestClient_Login_OK(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		require.Equal(t, "admin@example.com", in.Email)
		require.Equal(t, "secret", in.Password)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.AuthResponse{
			TokenResponse: models.TokenResponse{
				AccessToken:      "acc",
				RefreshToken:     "ref",
				ExpiresIn:        900,
				RefreshExpiresIn: 86400,
			},
			User: models.Profile{ID: "u1", Email: "admin@example.com", Role: "admin"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client())

	resp, err := c.Login(context.Background(), models.LoginRequest{Email: "admin@example.com", Password: "secret"})
	require.NoError(t, err)
	require.Equal(t, "acc", resp.AccessToken)
	require.Equal(t, "u1", resp.User.ID)
}

// 401 логина приходит классифицированным Problem-пейлоадом.
func TestClient_Login_Unauthorized(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", problem.ContentType)
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(problem.Problem{
			Title:  "Invalid credentials",
			Status: http.StatusUnauthorized,
		})
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client())

	_, err := c.Login(context.Background(), models.LoginRequest{Email: "admin@example.com", Password: "bad"})
	require.Error(t, err)

	p := problem.From(err, "")
	require.Equal(t, problem.KindUnauthorized, p.Kind())
	require.Equal(t, "Invalid credentials", p.Title)
}

func TestClient_Profile_SendsBearer(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/profile", r.URL.Path)
		require.Equal(t, "Bearer acc", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(models.Profile{ID: "u1", Name: "Admin"})
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client())

	u, err := c.Profile(context.Background(), "acc")
	require.NoError(t, err)
	require.Equal(t, "u1", u.ID)
}

func TestClient_Refresh_SendsRefreshToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/token/refresh", r.URL.Path)

		var in struct {
			RefreshToken string `json:"refreshToken"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		require.Equal(t, "ref", in.RefreshToken)

		_ = json.NewEncoder(w).Encode(models.TokenResponse{AccessToken: "acc2", RefreshToken: "ref2", ExpiresIn: 900})
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client())

	resp, err := c.Refresh(context.Background(), "ref")
	require.NoError(t, err)
	require.Equal(t, "acc2", resp.AccessToken)
	require.Equal(t, "ref2", resp.RefreshToken)
}

func TestClient_Logout_IgnoresBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/logout", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client())
	require.NoError(t, c.Logout(context.Background()))
}

// Недоступный апстрим — транспортная ошибка (kind=network).
func TestClient_NetworkError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // сразу гасим

	c := New(srv.URL, nil)

	_, err := c.Refresh(context.Background(), "ref")
	require.Error(t, err)
	require.Equal(t, problem.KindNetwork, problem.From(err, "").Kind())
}
