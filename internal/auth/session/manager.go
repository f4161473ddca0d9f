// session — менеджер сессии администратора: единственный источник истины
// "аутентифицирован ли пользователь".
//
// Машина состояний:
//
//	Loading -> {Authenticated, Unauthenticated}
//	Authenticated <-> Unauthenticated — явные Login/Logout;
//	Authenticated -> Authenticated — тихий рефреш (по таймеру или по 401),
//	без видимого перехода.
//
// Рефреш сериализован через singleflight: конкурирующие вызовы разделяют
// один сетевой запрос и его исход, ключ снимается по завершении. Таймер
// проактивного рефреша один: новая постановка заменяет предыдущую, переход
// в Unauthenticated его гасит.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"

	"github.com/sokol111/ecommerce-admin-gateway/internal/auth/tokens"
	"github.com/sokol111/ecommerce-admin-gateway/internal/models"
	logctx "github.com/sokol111/ecommerce-admin-gateway/internal/pkg/log"
	"github.com/sokol111/ecommerce-admin-gateway/internal/pkg/redact"
)

// State — состояние сессии.
type State int32

const (
	StateLoading State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Session — проекция состояния для UI-слоя.
type Session struct {
	User            *models.Profile
	IsAuthenticated bool
	IsLoading       bool
}

// AuthAPI — контракт auth-сервиса, нужный менеджеру (реализуется authclient).
type AuthAPI interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Profile(ctx context.Context, accessToken string) (*models.Profile, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenResponse, error)
	Logout(ctx context.Context) error
}

// Options — параметры менеджера.
type Options struct {
	// Buffer — запас до истечения access-токена; <=0 — tokens.DefaultRefreshBuffer.
	Buffer time.Duration
	// AutoRefresh включает проактивный таймер рефреша. Для request-scoped
	// менеджеров (поверх cookie-хранилища) таймер не нужен.
	AutoRefresh bool
	// Now подменяется в тестах; nil — time.Now.
	Now func() time.Time
}

var validate = validator.New()

// Manager координирует login/logout/refresh над Store и AuthAPI.
type Manager struct {
	api    AuthAPI
	store  tokens.Store
	buffer time.Duration
	now    func() time.Time
	auto   bool

	sf singleflight.Group

	mu    sync.Mutex
	state State
	user  *models.Profile
	timer *time.Timer
}

func NewManager(api AuthAPI, store tokens.Store, opts Options) *Manager {
	if opts.Buffer <= 0 {
		opts.Buffer = tokens.DefaultRefreshBuffer
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Manager{
		api:    api,
		store:  store,
		buffer: opts.Buffer,
		now:    opts.Now,
		auto:   opts.AutoRefresh,
		state:  StateLoading,
	}
}

// Store — хранилище пары токенов этого менеджера.
func (m *Manager) Store() tokens.Store { return m.store }

// State — текущее состояние.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Snapshot — проекция состояния для UI.
func (m *Manager) Snapshot() Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Session{
		User:            m.user,
		IsAuthenticated: m.state == StateAuthenticated,
		IsLoading:       m.state == StateLoading,
	}
}

// ExpiresIn — секунды до истечения access-токена (0, если срок неизвестен).
func (m *Manager) ExpiresIn() int64 {
	at, ok := m.store.AccessExpiresAt()
	if !ok {
		return 0
	}

	left := int64(at.Sub(m.now()) / time.Second)
	if left < 0 {
		return 0
	}

	return left
}

// Login аутентифицирует администратора. Вход проверяется валидатором до
// любого сетевого вызова. При неуспехе состояние не меняется, ошибка
// классифицирована (невалидный вход / 401 / сеть / 5xx).
func (m *Manager) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	if err := validate.Struct(req); err != nil {
		observeLogin("invalid_input")
		return nil, err
	}

	resp, err := m.api.Login(ctx, req)
	if err != nil {
		observeLogin("failure")
		logctx.From(ctx).Warn("login_failed",
			slog.String("email", redact.Email(req.Email)))
		return nil, err
	}

	pair := tokens.PairFrom(resp.TokenResponse, m.now())
	m.store.Save(pair)

	m.mu.Lock()
	m.state = StateAuthenticated
	user := resp.User
	m.user = &user
	m.armTimerLocked(pair.AccessExpiresAt)
	m.mu.Unlock()

	observeLogin("success")
	return resp, nil
}

// Logout завершает сессию. Сетевой logout — best-effort: его ошибки глотаются,
// локально logout обязан удаться всегда.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.api.Logout(ctx); err != nil {
		logctx.From(ctx).Debug("upstream_logout_failed", slog.String("err", err.Error()))
	}

	m.store.Clear()
	m.setUnauthenticated()
}

// RefreshSession выполняет один скоординированный рефреш. Конкурирующие
// вызовы присоединяются к уже летящему и разделяют его исход. Никогда не
// возвращает ошибку — неуспех переводит сессию в Unauthenticated.
func (m *Manager) RefreshSession(ctx context.Context) bool {
	v, _, _ := m.sf.Do("refresh", func() (any, error) {
		return m.refresh(ctx), nil
	})

	ok, _ := v.(bool)
	return ok
}

func (m *Manager) refresh(ctx context.Context) bool {
	rt, ok := m.store.RefreshToken()
	if !ok {
		observeRefresh("no_refresh_token")
		m.store.Clear()
		m.setUnauthenticated()
		return false
	}

	resp, err := m.api.Refresh(ctx, rt)
	if err != nil {
		observeRefresh("failure")
		logctx.From(ctx).Info("session_refresh_failed", slog.String("err", err.Error()))
		m.store.Clear()
		m.setUnauthenticated()
		return false
	}

	pair := tokens.PairFrom(*resp, m.now())
	m.store.Save(pair)

	m.mu.Lock()
	if m.state != StateLoading {
		m.state = StateAuthenticated
	}
	m.armTimerLocked(pair.AccessExpiresAt)
	m.mu.Unlock()

	observeRefresh("success")
	return true
}

// Hydrate восстанавливает состояние при монтировании: профиль по текущему
// access-токену, при неудаче — рефреш и повторная попытка, иначе
// Unauthenticated. После возврата isLoading всегда false.
func (m *Manager) Hydrate(ctx context.Context) Session {
	if tok, ok := m.store.AccessToken(); ok {
		if user, err := m.api.Profile(ctx, tok); err == nil {
			m.setAuthenticated(user)
			return m.Snapshot()
		}
	}

	if m.RefreshSession(ctx) {
		if tok, ok := m.store.AccessToken(); ok {
			if user, err := m.api.Profile(ctx, tok); err == nil {
				m.setAuthenticated(user)
				return m.Snapshot()
			}
		}
	}

	m.store.Clear()
	m.setUnauthenticated()
	return m.Snapshot()
}

// Close гасит таймер проактивного рефреша.
func (m *Manager) Close() {
	m.mu.Lock()
	m.stopTimerLocked()
	m.mu.Unlock()
}

func (m *Manager) setAuthenticated(user *models.Profile) {
	m.mu.Lock()
	m.state = StateAuthenticated
	m.user = user
	if at, ok := m.store.AccessExpiresAt(); ok {
		m.armTimerLocked(at)
	}
	m.mu.Unlock()
}

func (m *Manager) setUnauthenticated() {
	m.mu.Lock()
	m.state = StateUnauthenticated
	m.user = nil
	m.stopTimerLocked()
	m.mu.Unlock()
}

// armTimerLocked ставит одноразовый таймер на (остаток - buffer).
// Уже внутри буфера — рефреш немедленно. Прежний таймер всегда снимается:
// два живых таймера недопустимы.
func (m *Manager) armTimerLocked(expiresAt time.Time) {
	if !m.auto {
		return
	}

	m.stopTimerLocked()

	delay := expiresAt.Sub(m.now()) - m.buffer
	if delay < 0 {
		delay = 0
	}

	m.timer = time.AfterFunc(delay, func() {
		m.RefreshSession(context.Background())
	})
}

func (m *Manager) stopTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}
