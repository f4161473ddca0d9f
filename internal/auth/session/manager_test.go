package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sokol111/ecommerce-admin-gateway/internal/auth/tokens"
	"github.com/sokol111/ecommerce-admin-gateway/internal/models"
)

// fakeAuthAPI — управляемый AuthAPI с подсчётом вызовов.
type fakeAuthAPI struct {
	loginFn   func(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	profileFn func(ctx context.Context, accessToken string) (*models.Profile, error)
	refreshFn func(ctx context.Context, refreshToken string) (*models.TokenResponse, error)
	logoutFn  func(ctx context.Context) error

	loginCalls   int32
	profileCalls int32
	refreshCalls int32
	logoutCalls  int32
}

func (f *fakeAuthAPI) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	atomic.AddInt32(&f.loginCalls, 1)
	if f.loginFn == nil {
		return nil, errors.New("login: not configured")
	}
	return f.loginFn(ctx, req)
}

func (f *fakeAuthAPI) Profile(ctx context.Context, accessToken string) (*models.Profile, error) {
	atomic.AddInt32(&f.profileCalls, 1)
	if f.profileFn == nil {
		return nil, errors.New("profile: not configured")
	}
	return f.profileFn(ctx, accessToken)
}

func (f *fakeAuthAPI) Refresh(ctx context.Context, refreshToken string) (*models.TokenResponse, error) {
	atomic.AddInt32(&f.refreshCalls, 1)
	if f.refreshFn == nil {
		return nil, errors.New("refresh: not configured")
	}
	return f.refreshFn(ctx, refreshToken)
}

func (f *fakeAuthAPI) Logout(ctx context.Context) error {
	atomic.AddInt32(&f.logoutCalls, 1)
	if f.logoutFn == nil {
		return nil
	}
	return f.logoutFn(ctx)
}

var testUser = models.Profile{ID: "u1", Name: "Admin", Email: "admin@example.com", Role: "admin"}

func okLogin(expiresIn int64) func(context.Context, models.LoginRequest) (*models.AuthResponse, error) {
	return func(context.Context, models.LoginRequest) (*models.AuthResponse, error) {
		return &models.AuthResponse{
			TokenResponse: models.TokenResponse{
				AccessToken:      "acc",
				RefreshToken:     "ref",
				ExpiresIn:        expiresIn,
				RefreshExpiresIn: 86400,
			},
			User: testUser,
		}, nil
	}
}

func TestManager_InitialStateIsLoading(t *testing.T) {
	t.Parallel()

	m := NewManager(&fakeAuthAPI{}, tokens.NewMemoryStore(), Options{})
	require.Equal(t, StateLoading, m.State())

	snap := m.Snapshot()
	require.True(t, snap.IsLoading)
	require.False(t, snap.IsAuthenticated)
	require.Nil(t, snap.User)
}

func TestManager_Login_Success(t *testing.T) {
	t.Parallel()

	api := &fakeAuthAPI{loginFn: okLogin(900)}
	store := tokens.NewMemoryStore()
	m := NewManager(api, store, Options{})

	resp, err := m.Login(context.Background(), models.LoginRequest{Email: "admin@example.com", Password: "secret"})
	require.NoError(t, err)
	require.Equal(t, testUser, resp.User)

	require.Equal(t, StateAuthenticated, m.State())

	tok, ok := store.AccessToken()
	require.True(t, ok)
	require.Equal(t, "acc", tok)

	require.Greater(t, m.ExpiresIn(), int64(800))
}

// Невалидный вход отвергается до любого сетевого вызова.
func TestManager_Login_InvalidInput_NoNetworkCall(t *testing.T) {
	t.Parallel()

	api := &fakeAuthAPI{loginFn: okLogin(900)}
	m := NewManager(api, tokens.NewMemoryStore(), Options{})

	_, err := m.Login(context.Background(), models.LoginRequest{Email: "not-an-email", Password: "x"})
	require.Error(t, err)
	require.EqualValues(t, 0, atomic.LoadInt32(&api.loginCalls))
	require.Equal(t, StateLoading, m.State())
}

func TestManager_Login_UpstreamError_StateUnchanged(t *testing.T) {
	t.Parallel()

	api := &fakeAuthAPI{loginFn: func(context.Context, models.LoginRequest) (*models.AuthResponse, error) {
		return nil, errors.New("401")
	}}
	store := tokens.NewMemoryStore()
	m := NewManager(api, store, Options{})

	_, err := m.Login(context.Background(), models.LoginRequest{Email: "admin@example.com", Password: "bad"})
	require.Error(t, err)
	require.Equal(t, StateLoading, m.State())

	_, ok := store.AccessToken()
	require.False(t, ok)
}

// Logout всегда удаётся локально, даже если auth-сервис недоступен.
func TestManager_Logout_AlwaysSucceedsLocally(t *testing.T) {
	t.Parallel()

	api := &fakeAuthAPI{
		loginFn:  okLogin(900),
		logoutFn: func(context.Context) error { return errors.New("upstream down") },
	}
	store := tokens.NewMemoryStore()
	m := NewManager(api, store, Options{})

	_, err := m.Login(context.Background(), models.LoginRequest{Email: "admin@example.com", Password: "secret"})
	require.NoError(t, err)

	m.Logout(context.Background())

	require.Equal(t, StateUnauthenticated, m.State())
	_, ok := store.AccessToken()
	require.False(t, ok)
	require.EqualValues(t, 1, atomic.LoadInt32(&api.logoutCalls))
}

func TestManager_Refresh_Success(t *testing.T) {
	t.Parallel()

	api := &fakeAuthAPI{refreshFn: func(_ context.Context, rt string) (*models.TokenResponse, error) {
		require.Equal(t, "ref", rt)
		return &models.TokenResponse{AccessToken: "acc2", RefreshToken: "ref2", ExpiresIn: 900}, nil
	}}
	store := tokens.NewMemoryStore()
	store.Save(tokens.Pair{AccessToken: "acc", RefreshToken: "ref", AccessExpiresAt: time.Now().Add(time.Second)})

	m := NewManager(api, store, Options{})

	require.True(t, m.RefreshSession(context.Background()))

	tok, ok := store.AccessToken()
	require.True(t, ok)
	require.Equal(t, "acc2", tok)
}

// Неуспешный рефреш детерминированно гасит сессию.
func TestManager_Refresh_Failure_ClearsSession(t *testing.T) {
	t.Parallel()

	api := &fakeAuthAPI{refreshFn: func(context.Context, string) (*models.TokenResponse, error) {
		return nil, errors.New("invalid refresh token")
	}}
	store := tokens.NewMemoryStore()
	store.Save(tokens.Pair{AccessToken: "acc", RefreshToken: "ref"})

	m := NewManager(api, store, Options{})

	require.False(t, m.RefreshSession(context.Background()))
	require.Equal(t, StateUnauthenticated, m.State())

	_, ok := store.RefreshToken()
	require.False(t, ok)
}

func TestManager_Refresh_WithoutRefreshToken(t *testing.T) {
	t.Parallel()

	api := &fakeAuthAPI{}
	m := NewManager(api, tokens.NewMemoryStore(), Options{})

	require.False(t, m.RefreshSession(context.Background()))
	require.Equal(t, StateUnauthenticated, m.State())
	require.EqualValues(t, 0, atomic.LoadInt32(&api.refreshCalls))
}

// Конкурирующие вызовы рефреша разделяют один сетевой запрос.
func TestManager_Refresh_Singleflight(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	api := &fakeAuthAPI{refreshFn: func(context.Context, string) (*models.TokenResponse, error) {
		<-release
		return &models.TokenResponse{AccessToken: "acc2", RefreshToken: "ref2", ExpiresIn: 900}, nil
	}}

	store := tokens.NewMemoryStore()
	store.Save(tokens.Pair{AccessToken: "acc", RefreshToken: "ref"})
	m := NewManager(api, store, Options{})

	const callers = 8
	results := make(chan bool, callers)

	var started sync.WaitGroup
	started.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			started.Done()
			results <- m.RefreshSession(context.Background())
		}()
	}

	started.Wait()
	// Даём горутинам дойти до singleflight, затем отпускаем «сеть».
	time.Sleep(50 * time.Millisecond)
	close(release)

	for i := 0; i < callers; i++ {
		require.True(t, <-results)
	}

	require.EqualValues(t, 1, atomic.LoadInt32(&api.refreshCalls))
}

func TestManager_Hydrate_WithValidToken(t *testing.T) {
	t.Parallel()

	api := &fakeAuthAPI{profileFn: func(_ context.Context, tok string) (*models.Profile, error) {
		require.Equal(t, "acc", tok)
		u := testUser
		return &u, nil
	}}
	store := tokens.NewMemoryStore()
	store.Save(tokens.Pair{AccessToken: "acc", RefreshToken: "ref", AccessExpiresAt: time.Now().Add(time.Minute)})

	m := NewManager(api, store, Options{})

	snap := m.Hydrate(context.Background())
	require.True(t, snap.IsAuthenticated)
	require.False(t, snap.IsLoading)
	require.Equal(t, testUser, *snap.User)
	require.EqualValues(t, 0, atomic.LoadInt32(&api.refreshCalls))
}

// Просроченный access-токен: рефреш и повторная попытка профиля.
func TestManager_Hydrate_RecoversViaRefresh(t *testing.T) {
	t.Parallel()

	api := &fakeAuthAPI{
		profileFn: func(_ context.Context, tok string) (*models.Profile, error) {
			if tok != "acc-new" {
				return nil, errors.New("401")
			}
			u := testUser
			return &u, nil
		},
		refreshFn: func(context.Context, string) (*models.TokenResponse, error) {
			return &models.TokenResponse{AccessToken: "acc-new", RefreshToken: "ref-new", ExpiresIn: 900}, nil
		},
	}
	store := tokens.NewMemoryStore()
	store.Save(tokens.Pair{AccessToken: "acc-stale", RefreshToken: "ref"})

	m := NewManager(api, store, Options{})

	snap := m.Hydrate(context.Background())
	require.True(t, snap.IsAuthenticated)
	require.Equal(t, testUser, *snap.User)
	require.EqualValues(t, 1, atomic.LoadInt32(&api.refreshCalls))
	require.EqualValues(t, 2, atomic.LoadInt32(&api.profileCalls))
}

func TestManager_Hydrate_WithoutSession(t *testing.T) {
	t.Parallel()

	m := NewManager(&fakeAuthAPI{}, tokens.NewMemoryStore(), Options{})

	snap := m.Hydrate(context.Background())
	require.False(t, snap.IsAuthenticated)
	require.False(t, snap.IsLoading)
	require.Nil(t, snap.User)
	require.Equal(t, StateUnauthenticated, m.State())
}

// Проактивный таймер: рефреш срабатывает за buffer до истечения.
func TestManager_AutoRefresh_TimerFires(t *testing.T) {
	t.Parallel()

	fired := make(chan struct{}, 1)
	api := &fakeAuthAPI{
		loginFn: func(context.Context, models.LoginRequest) (*models.AuthResponse, error) {
			return &models.AuthResponse{
				TokenResponse: models.TokenResponse{
					AccessToken:  "acc",
					RefreshToken: "ref",
					// Истекает через buffer+50ms: таймер сработает почти сразу.
					ExpiresAt: time.Now().Add(time.Second + 50*time.Millisecond).UnixMilli(),
				},
				User: testUser,
			}, nil
		},
		refreshFn: func(context.Context, string) (*models.TokenResponse, error) {
			select {
			case fired <- struct{}{}:
			default:
			}
			// Долгий срок — повторного срабатывания в тесте не будет.
			return &models.TokenResponse{AccessToken: "acc2", RefreshToken: "ref2", ExpiresIn: 900}, nil
		},
	}

	m := NewManager(api, tokens.NewMemoryStore(), Options{Buffer: time.Second, AutoRefresh: true})
	t.Cleanup(m.Close)

	_, err := m.Login(context.Background(), models.LoginRequest{Email: "admin@example.com", Password: "secret"})
	require.NoError(t, err)

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("ожидали срабатывание проактивного рефреша")
	}

	require.Equal(t, StateAuthenticated, m.State())
}

// Повторный логин заменяет таймер, а не добавляет второй.
func TestManager_AutoRefresh_TimerReplacedNotStacked(t *testing.T) {
	t.Parallel()

	api := &fakeAuthAPI{
		loginFn: func(context.Context, models.LoginRequest) (*models.AuthResponse, error) {
			return &models.AuthResponse{
				TokenResponse: models.TokenResponse{
					AccessToken:  "acc",
					RefreshToken: "ref",
					ExpiresAt:    time.Now().Add(time.Second + 100*time.Millisecond).UnixMilli(),
				},
				User: testUser,
			}, nil
		},
		refreshFn: func(context.Context, string) (*models.TokenResponse, error) {
			return &models.TokenResponse{AccessToken: "acc2", RefreshToken: "ref2", ExpiresIn: 900}, nil
		},
	}

	m := NewManager(api, tokens.NewMemoryStore(), Options{Buffer: time.Second, AutoRefresh: true})
	t.Cleanup(m.Close)

	req := models.LoginRequest{Email: "admin@example.com", Password: "secret"}
	_, err := m.Login(context.Background(), req)
	require.NoError(t, err)
	_, err = m.Login(context.Background(), req)
	require.NoError(t, err)

	// Ждём дольше, чем оба возможных срабатывания.
	time.Sleep(600 * time.Millisecond)

	require.EqualValues(t, 1, atomic.LoadInt32(&api.refreshCalls))
}

// Logout гасит таймер: рефреш после выхода не срабатывает.
func TestManager_Logout_StopsTimer(t *testing.T) {
	t.Parallel()

	api := &fakeAuthAPI{
		loginFn: func(context.Context, models.LoginRequest) (*models.AuthResponse, error) {
			return &models.AuthResponse{
				TokenResponse: models.TokenResponse{
					AccessToken:  "acc",
					RefreshToken: "ref",
					ExpiresAt:    time.Now().Add(time.Second + 200*time.Millisecond).UnixMilli(),
				},
				User: testUser,
			}, nil
		},
		refreshFn: func(context.Context, string) (*models.TokenResponse, error) {
			return &models.TokenResponse{AccessToken: "acc2", ExpiresIn: 900}, nil
		},
	}

	m := NewManager(api, tokens.NewMemoryStore(), Options{Buffer: time.Second, AutoRefresh: true})

	_, err := m.Login(context.Background(), models.LoginRequest{Email: "admin@example.com", Password: "secret"})
	require.NoError(t, err)

	m.Logout(context.Background())
	time.Sleep(500 * time.Millisecond)

	require.EqualValues(t, 0, atomic.LoadInt32(&api.refreshCalls))
	require.Equal(t, StateUnauthenticated, m.State())
}

func TestManager_ExpiresIn(t *testing.T) {
	t.Parallel()

	now := time.Now()
	store := tokens.NewMemoryStore()
	m := NewManager(&fakeAuthAPI{}, store, Options{Now: func() time.Time { return now }})

	// Срок неизвестен.
	require.EqualValues(t, 0, m.ExpiresIn())

	store.Save(tokens.Pair{AccessToken: "acc", AccessExpiresAt: now.Add(90 * time.Second)})
	require.EqualValues(t, 90, m.ExpiresIn())

	// Просроченный токен — 0, не отрицательное.
	store.Save(tokens.Pair{AccessToken: "acc", AccessExpiresAt: now.Add(-time.Minute)})
	require.EqualValues(t, 0, m.ExpiresIn())
}
