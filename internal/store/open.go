// internal/store/open.go
package store

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // драйвер "pgx"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // драйвер "postgres"
	_ "modernc.org/sqlite" // драйвер "sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverPGX      = "pgx"
	// DriverMemory не открывает соединение: каталог живёт в памяти процесса (NewMemoryCatalog).
	DriverMemory = "memory"
)

//go:embed schema/*.sql
var schemaFS embed.FS

func init() {
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Open подключается к базе данных, проверяет соединение и создаёт схему, если её нет.
func Open(ctx context.Context, driver, dsn string, logger *slog.Logger) (*sqlx.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("database DSN cannot be empty")
	}

	switch driver {
	case DriverSQLite:
		dsn = sqliteDSN(dsn)
	case DriverPostgres, DriverPGX:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	logger.Info("Connecting to catalog database", slog.String("driver", driver))
	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		logger.Error("Failed to connect to catalog database", slog.String("driver", driver), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		// Один писатель на файл: избегаем SQLITE_BUSY между соединениями пула.
		db.SetMaxOpenConns(1)
	}

	if err := EnsureSchema(ctx, db); err != nil {
		logger.Error("Failed to create catalog schema", slog.String("error", err.Error()))
		db.Close()
		return nil, err
	}
	logger.Info("Catalog database ready", slog.String("driver", driver))
	return db, nil
}

// EnsureSchema создаёт таблицы каталога по DDL для диалекта драйвера.
// Механизма миграций нет: только CREATE ... IF NOT EXISTS.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	file := "schema/postgres.sql"
	if db.DriverName() == DriverSQLite {
		file = "schema/sqlite.sql"
	}
	ddl, err := schemaFS.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read schema %s: %w", file, err)
	}
	for _, stmt := range strings.Split(string(ddl), ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// NewSQLCatalog собирает хранилища всех сущностей поверх одного соединения.
func NewSQLCatalog(db *sqlx.DB, logger *slog.Logger) (*Catalog, error) {
	movies, err := NewSQLMovieStore(db, logger)
	if err != nil {
		return nil, err
	}
	directors, err := NewSQLDirectorStore(db, logger)
	if err != nil {
		return nil, err
	}
	genres, err := NewSQLGenreStore(db, logger)
	if err != nil {
		return nil, err
	}
	return &Catalog{
		Movies:    movies,
		Directors: directors,
		Genres:    genres,
		Health:    db,
	}, nil
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
}
