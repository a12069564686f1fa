package config

import (
	"log"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/samber/lo"
)

// AppConfig описывает конфигурацию сервиса.
type AppConfig struct {
	AppEnv      string `envconfig:"APP_ENV" default:"dev"`
	Port        int    `envconfig:"PORT" default:"8080"`
	MetricsAddr string `envconfig:"METRICS_ADDR" default:":9090"`

	Server struct {
		ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
		WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"15s"`
		ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"5s"`
	} `envconfig:""`

	Remote RemoteConfig `envconfig:""`

	PageCacheTTL time.Duration `envconfig:"PAGE_CACHE_TTL" default:"30s"`
}

// RemoteConfig хранит реквизиты удалённого хранилища списков.
// Основные переменные KV_REST_API_*, запасные UPSTASH_REDIS_REST_*.
type RemoteConfig struct {
	KVURL        string `envconfig:"KV_REST_API_URL"`
	KVToken      string `envconfig:"KV_REST_API_TOKEN"`
	UpstashURL   string `envconfig:"UPSTASH_REDIS_REST_URL"`
	UpstashToken string `envconfig:"UPSTASH_REDIS_REST_TOKEN"`
}

// Endpoint возвращает адрес хранилища с учётом запасной переменной.
func (r RemoteConfig) Endpoint() string {
	return strings.TrimSpace(lo.CoalesceOrEmpty(r.KVURL, r.UpstashURL))
}

// Token возвращает токен доступа с учётом запасной переменной.
func (r RemoteConfig) Token() string {
	return strings.TrimSpace(lo.CoalesceOrEmpty(r.KVToken, r.UpstashToken))
}

// Enabled сообщает, заданы ли и адрес, и токен.
func (r RemoteConfig) Enabled() bool {
	return r.Endpoint() != "" && r.Token() != ""
}

// Load загружает конфиг из окружения.
func Load() AppConfig {
	cfg, err := Parse()
	if err != nil {
		log.Fatalf("не удалось загрузить конфиг: %v", err)
	}
	return cfg
}

// Parse разбирает окружение без завершения процесса.
func Parse() (AppConfig, error) {
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}
