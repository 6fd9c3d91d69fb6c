// cmd/catalogservice/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"google.golang.org/grpc/health"

	httpAPI "catalog-service/internal/api"
	"catalog-service/internal/config"
	grpcServer "catalog-service/internal/grpc"
	"catalog-service/internal/logging"
	"catalog-service/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("CatalogService failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("CatalogService stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Инициализация хранилища ---
	catalog, db, err := openCatalog(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if db != nil {
		defer func() {
			logger.Info("Closing CatalogService database connection...")
			if err := db.Close(); err != nil {
				logger.Error("Failed to close CatalogService database connection", slog.String("error", err.Error()))
			}
		}()
	}

	errCh := make(chan error, 2)

	// --- Настройка и запуск gRPC сервера ---
	var healthSrv *health.Server
	stopGRPC := func() {}
	if cfg.GRPCEnabled {
		lis, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			return fmt.Errorf("failed to listen for gRPC on %s: %w", cfg.GRPCAddr, err)
		}
		grpcSrv, hs := grpcServer.NewGRPCServer(catalog, logger)
		healthSrv = hs
		stopGRPC = grpcSrv.GracefulStop

		go func() {
			logger.Info("CatalogService gRPC server starting", slog.String("addr", cfg.GRPCAddr))
			if err := grpcSrv.Serve(lis); err != nil {
				errCh <- fmt.Errorf("gRPC server: %w", err)
			}
		}()
	}

	// --- Настройка и запуск HTTP сервера ---
	handlers := httpAPI.NewHandlers(catalog, logger, validator.New())
	httpSrv := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: httpAPI.NewRouter(handlers, httpAPI.RouterConfig{
			Logger:             logger,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		}),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		logger.Info("CatalogService HTTP server starting", slog.String("addr", cfg.HTTPAddr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	// Ожидание сигнала для graceful shutdown
	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("CatalogService shutting down...")
	case runErr = <-errCh:
		logger.Error("CatalogService server failed, shutting down", slog.String("error", runErr.Error()))
	}

	if healthSrv != nil {
		healthSrv.Shutdown()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("CatalogService HTTP server shutdown failed", slog.String("error", err.Error()))
	} else {
		logger.Info("CatalogService HTTP server gracefully stopped.")
	}
	stopGRPC()
	logger.Info("CatalogService gRPC server stopped.")
	return runErr
}

// openCatalog выбирает хранилище по CATALOG_DATABASE_DRIVER.
// Для драйвера memory соединения с БД нет, и db равен nil.
func openCatalog(ctx context.Context, cfg config.Config, logger *slog.Logger) (*store.Catalog, *sqlx.DB, error) {
	if cfg.DatabaseDriver == store.DriverMemory {
		logger.Warn("Using in-memory catalog store; data will not survive restart")
		return store.NewMemoryCatalog(), nil, nil
	}

	logger.Info("Opening catalog database",
		slog.String("driver", cfg.DatabaseDriver),
		slog.String("dsn", redactDSN(cfg.DatabaseURL)))
	db, err := store.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, nil, err
	}
	catalog, err := store.NewSQLCatalog(db, logger)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return catalog, db, nil
}

// redactDSN скрывает пароль в URL подключения для логов.
func redactDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return dsn
	}
	return u.Redacted()
}
