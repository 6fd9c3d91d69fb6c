// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"catalog-service/internal/store"

	"github.com/caarlos0/env/v11"
)

// Config собирает настройки сервиса из переменных окружения CATALOG_*.
type Config struct {
	HTTPAddr    string `env:"CATALOG_HTTP_ADDR" envDefault:":8081"`
	GRPCAddr    string `env:"CATALOG_GRPC_ADDR" envDefault:":9092"`
	GRPCEnabled bool   `env:"CATALOG_GRPC_ENABLED" envDefault:"true"`

	DatabaseDriver string `env:"CATALOG_DATABASE_DRIVER" envDefault:"sqlite"`
	DatabaseURL    string `env:"CATALOG_DATABASE_URL" envDefault:"catalog.db"`

	LogLevel  string `env:"CATALOG_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"CATALOG_LOG_FORMAT" envDefault:"json"`

	CORSAllowedOrigins []string `env:"CATALOG_CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	ReadTimeout     time.Duration `env:"CATALOG_HTTP_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"CATALOG_HTTP_WRITE_TIMEOUT" envDefault:"10s"`
	IdleTimeout     time.Duration `env:"CATALOG_HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"CATALOG_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Load читает конфигурацию из окружения процесса.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom читает конфигурацию из переданного набора переменных вместо окружения процесса.
func LoadFrom(vars map[string]string) (Config, error) {
	if vars == nil {
		vars = map[string]string{}
	}
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.DatabaseDriver = strings.ToLower(strings.TrimSpace(cfg.DatabaseDriver))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate проверяет значения, которые env не может проверить по типу.
func (c Config) Validate() error {
	switch c.DatabaseDriver {
	case store.DriverSQLite, store.DriverPostgres, store.DriverPGX:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return errors.New("CATALOG_DATABASE_URL is required for driver " + c.DatabaseDriver)
		}
	case store.DriverMemory:
	default:
		return fmt.Errorf("unsupported CATALOG_DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if strings.TrimSpace(c.HTTPAddr) == "" {
		return errors.New("CATALOG_HTTP_ADDR cannot be empty")
	}
	if c.GRPCEnabled && strings.TrimSpace(c.GRPCAddr) == "" {
		return errors.New("CATALOG_GRPC_ADDR cannot be empty when gRPC is enabled")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("CATALOG_SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}
