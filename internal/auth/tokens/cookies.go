package tokens

import (
	"net/http"
	"strconv"
	"time"
)

// Раскладка cookies. Метка срока — единственная, читаемая скриптом страницы:
// она нужна фронту для планирования рефреша, сами токены — httpOnly.
const (
	AccessTokenCookie     = "auth_access_token"
	RefreshTokenCookie    = "auth_refresh_token"
	AccessExpiresAtCookie = "auth_access_token_expires_at"
)

// CookieOptions — общие атрибуты auth-cookies.
type CookieOptions struct {
	// Secure выставляется только в прод-окружении.
	Secure bool
	// Now подменяется в тестах; nil — time.Now.
	Now func() time.Time
}

// CookieStore — Store поверх cookies HTTP-обмена: читает из запроса,
// пишет в ответ. Записанная в рамках обмена пара видна последующим чтениям
// через pending-срез, т.к. заголовки запроса уже не изменить.
type CookieStore struct {
	r    *http.Request
	w    http.ResponseWriter
	opts CookieOptions

	pending *Pair // пара, записанная в этом обмене
	cleared bool
}

func NewCookieStore(w http.ResponseWriter, r *http.Request, opts CookieOptions) *CookieStore {
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &CookieStore{r: r, w: w, opts: opts}
}

// Save пишет три cookie одним батчем: access, refresh и читаемую скриптом
// метку срока. MaxAge каждой — остаток жизни соответствующего токена.
func (s *CookieStore) Save(pair Pair) {
	now := s.opts.Now()

	s.setCookie(AccessTokenCookie, pair.AccessToken, pair.AccessExpiresAt, now, true)
	s.setCookie(AccessExpiresAtCookie, strconv.FormatInt(pair.AccessExpiresAt.UnixMilli(), 10), pair.AccessExpiresAt, now, false)
	s.setCookie(RefreshTokenCookie, pair.RefreshToken, pair.RefreshExpiresAt, now, true)

	p := pair
	s.pending = &p
	s.cleared = false
}

func (s *CookieStore) AccessToken() (string, bool) {
	if s.cleared {
		return "", false
	}

	if s.pending != nil {
		if s.pending.AccessToken == "" {
			return "", false
		}

		return s.pending.AccessToken, true
	}

	return s.readCookie(AccessTokenCookie)
}

func (s *CookieStore) RefreshToken() (string, bool) {
	if s.cleared {
		return "", false
	}

	if s.pending != nil {
		if s.pending.RefreshToken == "" {
			return "", false
		}

		return s.pending.RefreshToken, true
	}

	return s.readCookie(RefreshTokenCookie)
}

func (s *CookieStore) AccessExpiresAt() (time.Time, bool) {
	if s.cleared {
		return time.Time{}, false
	}

	if s.pending != nil {
		if s.pending.AccessExpiresAt.IsZero() {
			return time.Time{}, false
		}

		return s.pending.AccessExpiresAt, true
	}

	raw, ok := s.readCookie(AccessExpiresAtCookie)
	if !ok {
		return time.Time{}, false
	}

	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false
	}

	return time.UnixMilli(ms), true
}

// Clear безусловно гасит все три cookie. Повторный вызов безопасен.
func (s *CookieStore) Clear() {
	for _, name := range []string{AccessTokenCookie, AccessExpiresAtCookie, RefreshTokenCookie} {
		http.SetCookie(s.w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: name != AccessExpiresAtCookie,
			Secure:   s.opts.Secure,
			SameSite: http.SameSiteLaxMode,
		})
	}

	s.pending = nil
	s.cleared = true
}

func (s *CookieStore) setCookie(name, value string, expiresAt, now time.Time, httpOnly bool) {
	maxAge := int(expiresAt.Sub(now) / time.Second)
	if maxAge < 0 {
		maxAge = 0
	}

	http.SetCookie(s.w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: httpOnly,
		Secure:   s.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *CookieStore) readCookie(name string) (string, bool) {
	c, err := s.r.Cookie(name)
	if err != nil || c.Value == "" {
		return "", false
	}

	return c.Value, true
}
