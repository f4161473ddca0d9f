// Входные/выходные модели REST-слоя. Имена полей зеркалят контракты
// апстрим-сервисов (camelCase, как в их OpenAPI-схемах).
package models

// LoginRequest — вход администратора.
// Валидация — до любого сетевого вызова (go-playground/validator).
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Profile — данные аутентифицированного администратора.
// Шлюз не кэширует профиль дольше текущей сессии.
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// TokenResponse — пара токенов от auth-сервиса.
// ExpiresIn/RefreshExpiresIn — секунды, ExpiresAt — Unix UTC в миллисекундах.
type TokenResponse struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresIn        int64  `json:"expiresIn"`
	RefreshExpiresIn int64  `json:"refreshExpiresIn"`
	ExpiresAt        int64  `json:"expiresAt"`
}

// AuthResponse — ответ на логин: токены + профиль.
type AuthResponse struct {
	TokenResponse
	User Profile `json:"user"`
}

// SessionResponse — текущее состояние сессии для фронта.
// ExpiresIn нужен клиенту для планирования проактивного рефреша.
type SessionResponse struct {
	User      Profile `json:"user"`
	ExpiresIn int64   `json:"expiresIn"`
}

// RefreshResponse — результат серверного рефреша (сами токены в cookies).
type RefreshResponse struct {
	ExpiresIn int64 `json:"expiresIn"`
}
