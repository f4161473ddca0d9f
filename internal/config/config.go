// config - источник загрузки конфигурации для admin-шлюза.
//
// Источники (по убыванию приоритета):
//  1. явный путь --config;
//  2. CONFIG_PATH;
//  3. ./local.yaml;
//  4. только ENV (cleanenv).
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string         `yaml:"env" env:"ENV" env-default:"local"`
	HTTP     HTTPConfig     `yaml:"http"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Auth     AuthConfig     `yaml:"auth"`
	Timeouts TimeoutConfig  `yaml:"timeouts"`
}

// TimeoutConfig — общий дедлайн обслуживания запроса.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE" env-default:"15s"`
}

// HTTPConfig — публичный HTTP-сервер шлюза.
// StaticDir — каталог собранной админки (SPA); пустой — статика не отдаётся.
type HTTPConfig struct {
	Host      string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port      string `yaml:"port" env:"HTTP_PORT" env-default:"50070"`
	StaticDir string `yaml:"static_dir" env:"HTTP_STATIC_DIR" env-default:""`
}

func (h HTTPConfig) Addr() string { return net.JoinHostPort(h.Host, h.Port) }

// MetricsConfig — отдельный HTTP для Prometheus.
type MetricsConfig struct {
	Host string `yaml:"host"   env:"METRICS_HOST"   env-default:"0.0.0.0"`
	Port string `yaml:"port"   env:"METRICS_PORT"   env-default:"50075"`
}

func (m MetricsConfig) Addr() string { return net.JoinHostPort(m.Host, m.Port) }

// UpstreamConfig — базовые URL апстрим-сервисов.
type UpstreamConfig struct {
	AuthURL      string `yaml:"auth_url"      env:"AUTH_API_URL"      env-default:"http://localhost:50071"`
	ProductURL   string `yaml:"product_url"   env:"PRODUCT_API_URL"   env-default:"http://localhost:50072"`
	CategoryURL  string `yaml:"category_url"  env:"CATEGORY_API_URL"  env-default:"http://localhost:50073"`
	AttributeURL string `yaml:"attribute_url" env:"ATTRIBUTE_API_URL" env-default:"http://localhost:50074"`
	ImageURL     string `yaml:"image_url"     env:"IMAGE_API_URL"     env-default:"http://localhost:50076"`
}

// AuthConfig — параметры сессии.
// RefreshBuffer — запас до истечения access-токена, внутри которого токен
// считается "почти истёкшим". SecureCookies включается в прод-окружении.
type AuthConfig struct {
	RefreshBuffer time.Duration `yaml:"refresh_buffer" env:"AUTH_REFRESH_BUFFER" env-default:"60s"`
	SecureCookies bool          `yaml:"secure_cookies" env:"AUTH_SECURE_COOKIES" env-default:"false"`
}

// MustLoad — паника при ошибке загрузки.
func MustLoad(path string) *Config {
	cfg, err := Load(path)

	if err != nil {
		panic(err)
	}

	return cfg
}

func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 1) --config
	if path != "" {
		return tryRead(path)
	}

	// 2) CONFIG_PATH
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return tryRead(envPath)
	}

	// 3) ./local.yaml
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 4) только ENV
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}
	return &cfg, nil
}
