// tokens — хранилище пары токенов сессии (Token Store).
//
// Пара принадлежит хранилищу целиком: другие компоненты читают и пишут её
// только через операции Store, частичных обновлений не бывает. "Значение
// отсутствует" и "пустая строка" различаются через ok-флаг.
//
// Два воплощения: MemoryStore (долгоживущий клиентский контекст и тесты)
// и CookieStore (httpOnly-cookies запроса/ответа, см. cookies.go).
package tokens

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sokol111/ecommerce-admin-gateway/internal/models"
)

// DefaultRefreshBuffer — запас до истечения access-токена, внутри которого
// токен считается "почти истёкшим" и подлежит рефрешу.
const DefaultRefreshBuffer = 60 * time.Second

// Pair — пара токенов. Инвариант: AccessExpiresAt < RefreshExpiresAt
// (access-токен — короткоживущий).
type Pair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// PairFrom собирает Pair из ответа auth-сервиса.
// ExpiresAt (Unix ms) приоритетнее, чем now+ExpiresIn: абсолютная метка
// сервера не зависит от рассинхрона часов за время доставки ответа.
func PairFrom(resp models.TokenResponse, now time.Time) Pair {
	accessAt := now.Add(time.Duration(resp.ExpiresIn) * time.Second)
	if resp.ExpiresAt > 0 {
		accessAt = time.UnixMilli(resp.ExpiresAt)
	}

	return Pair{
		AccessToken:      resp.AccessToken,
		RefreshToken:     resp.RefreshToken,
		AccessExpiresAt:  accessAt,
		RefreshExpiresAt: now.Add(time.Duration(resp.RefreshExpiresIn) * time.Second),
	}
}

// Store — операции над парой токенов.
// Save атомарен с точки зрения читателей: полупустая пара не наблюдается.
// Clear обязан быть идемпотентным.
type Store interface {
	Save(pair Pair)
	AccessToken() (string, bool)
	RefreshToken() (string, bool)
	AccessExpiresAt() (time.Time, bool)
	Clear()
}

// MemoryStore — потокобезопасное in-memory хранилище.
type MemoryStore struct {
	mu   sync.RWMutex
	pair Pair
	has  bool
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Save(pair Pair) {
	s.mu.Lock()
	s.pair = pair
	s.has = true
	s.mu.Unlock()
}

func (s *MemoryStore) AccessToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.has || s.pair.AccessToken == "" {
		return "", false
	}

	return s.pair.AccessToken, true
}

func (s *MemoryStore) RefreshToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.has || s.pair.RefreshToken == "" {
		return "", false
	}

	return s.pair.RefreshToken, true
}

func (s *MemoryStore) AccessExpiresAt() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.has || s.pair.AccessExpiresAt.IsZero() {
		return time.Time{}, false
	}

	return s.pair.AccessExpiresAt, true
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	s.pair = Pair{}
	s.has = false
	s.mu.Unlock()
}

// ExpiresWithin сообщает, истечёт ли access-токен в течение buffer.
// Порядок источников срока: метка хранилища -> exp-клейм самого токена.
// Отсутствие токена или срока трактуется как "истёк".
func ExpiresWithin(s Store, buffer time.Duration, now time.Time) bool {
	tok, ok := s.AccessToken()
	if !ok {
		return true
	}

	if at, ok := s.AccessExpiresAt(); ok {
		return !now.Add(buffer).Before(at)
	}

	if at, ok := expFromJWT(tok); ok {
		return !now.Add(buffer).Before(at)
	}

	return true
}

// expFromJWT достаёт exp-клейм без проверки подписи: токен выписан
// auth-сервисом и проверяется апстримами, шлюзу нужен только срок.
func expFromJWT(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}

	return exp.Time, true
}
