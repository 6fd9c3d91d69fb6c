// internal/logging/logging.go
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config задаёт уровень и формат логов сервиса.
type Config struct {
	Level  string
	Format string
	Writer io.Writer
}

const (
	FormatJSON = "json"
	FormatText = "text"
)

// New создает slog.Logger по конфигурации. По умолчанию JSON в stdout.
func New(cfg Config) *slog.Logger {
	writer := cfg.Writer
	if writer == nil {
		writer = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case FormatText:
		return slog.New(slog.NewTextHandler(writer, opts))
	default:
		return slog.New(slog.NewJSONHandler(writer, opts))
	}
}

// ParseLevel переводит строку уровня в slog.Level. Неизвестные значения дают Info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard возвращает логгер, который ничего не пишет. Удобен в тестах.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type contextKey string

const requestIDKey contextKey = "request_id"

// ContextWithRequestID сохраняет ID запроса в контексте. Пустой ID игнорируется.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	id = strings.TrimSpace(id)
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok && id != ""
}

// WithContext дополняет логгер request_id из контекста, если он есть.
// Для nil используется slog.Default().
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	if id, ok := RequestIDFromContext(ctx); ok {
		return logger.With(slog.String("request_id", id))
	}
	return logger
}
