package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":8081" || cfg.GRPCAddr != ":9092" || !cfg.GRPCEnabled {
		t.Fatalf("unexpected addresses: %+v", cfg)
	}
	if cfg.DatabaseDriver != "sqlite" || cfg.DatabaseURL != "catalog.db" {
		t.Fatalf("unexpected database: %q %q", cfg.DatabaseDriver, cfg.DatabaseURL)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "json" {
		t.Fatalf("unexpected logging: %q %q", cfg.LogLevel, cfg.LogFormat)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected cors origins: %v", cfg.CORSAllowedOrigins)
	}
	if cfg.ShutdownTimeout != 5*time.Second || cfg.ReadTimeout != 10*time.Second {
		t.Fatalf("unexpected timeouts: %+v", cfg)
	}
}

func TestLoadFromOverrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"CATALOG_HTTP_ADDR":            "127.0.0.1:9000",
		"CATALOG_GRPC_ENABLED":         "false",
		"CATALOG_DATABASE_DRIVER":      "postgres",
		"CATALOG_DATABASE_URL":         "postgres://catalog@localhost/catalog?sslmode=disable",
		"CATALOG_CORS_ALLOWED_ORIGINS": "https://a.example,https://b.example",
		"CATALOG_SHUTDOWN_TIMEOUT":     "30s",
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:9000" || cfg.GRPCEnabled {
		t.Fatalf("unexpected server config: %+v", cfg)
	}
	if cfg.DatabaseDriver != "postgres" {
		t.Fatalf("driver = %q", cfg.DatabaseDriver)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("origins = %v", cfg.CORSAllowedOrigins)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Fatalf("shutdown timeout = %v", cfg.ShutdownTimeout)
	}
}

func TestLoadFromRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
		want string
	}{
		{name: "unknown driver", vars: map[string]string{"CATALOG_DATABASE_DRIVER": "mysql"}, want: "unsupported CATALOG_DATABASE_DRIVER"},
		{name: "empty url", vars: map[string]string{"CATALOG_DATABASE_DRIVER": "pgx", "CATALOG_DATABASE_URL": "   "}, want: "CATALOG_DATABASE_URL"},
		{name: "bad bool", vars: map[string]string{"CATALOG_GRPC_ENABLED": "maybe"}, want: "parse env:"},
		{name: "bad duration", vars: map[string]string{"CATALOG_HTTP_READ_TIMEOUT": "soon"}, want: "parse env:"},
		{name: "zero shutdown", vars: map[string]string{"CATALOG_SHUTDOWN_TIMEOUT": "0s"}, want: "CATALOG_SHUTDOWN_TIMEOUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom(tt.vars)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want substring %q", err, tt.want)
			}
		})
	}
}

func TestMemoryDriverNeedsNoURL(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{"CATALOG_DATABASE_DRIVER": " Memory ", "CATALOG_DATABASE_URL": "   "})
	if err != nil {
		t.Fatalf("memory driver: %v", err)
	}
	if cfg.DatabaseDriver != "memory" {
		t.Fatalf("driver = %q, want normalized %q", cfg.DatabaseDriver, "memory")
	}
}

func TestLoadReadsProcessEnvironment(t *testing.T) {
	t.Setenv("CATALOG_LOG_LEVEL", "debug")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log level = %q", cfg.LogLevel)
	}
}
