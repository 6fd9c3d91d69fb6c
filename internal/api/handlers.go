// internal/api/handlers.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"catalog-service/internal/logging"
	"catalog-service/internal/store"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// maxBodyBytes ограничивает размер тела запроса.
const maxBodyBytes = 1 << 20

var errNotObject = errors.New("request body must be a JSON object")

// Handlers объединяет обработчики всех ресурсов каталога.
type Handlers struct {
	Movies    *MovieHandler
	Directors *DirectorHandler
	Genres    *GenreHandler
	Health    *HealthHandler
}

// NewHandlers создает обработчики поверх хранилищ каталога.
func NewHandlers(catalog *store.Catalog, l *slog.Logger, v *validator.Validate) Handlers {
	return Handlers{
		Movies:    NewMovieHandler(catalog.Movies, catalog.Directors, catalog.Genres, l, v),
		Directors: NewDirectorHandler(catalog.Directors, l, v),
		Genres:    NewGenreHandler(catalog.Genres, l, v),
		Health:    NewHealthHandler(catalog.Health, l),
	}
}

// baseHandler содержит общие зависимости и вспомогательные методы обработчиков.
type baseHandler struct {
	logger    *slog.Logger
	validator *validator.Validate
}

// log возвращает логгер, дополненный request_id текущего запроса.
func (h *baseHandler) log(ctx context.Context) *slog.Logger {
	return logging.WithContext(ctx, h.logger)
}

// --- Вспомогательные функции ---
func (h *baseHandler) respondJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			h.log(r.Context()).ErrorContext(r.Context(), "Failed to encode JSON response", slog.String("error", err.Error()), slog.String("path", r.URL.Path))
		}
	}
}

func (h *baseHandler) respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.respondJSON(w, r, status, map[string]string{"error": message})
}

// respondEmpty отвечает статусом без тела (201 на создание, 204 на изменение).
func (h *baseHandler) respondEmpty(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
}

// decodeJSON читает тело запроса в dst. Тело обязано быть JSON-объектом;
// неизвестные ключи игнорируются.
func (h *baseHandler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return err
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return errNotObject
	}
	return json.Unmarshal(body, dst)
}

// decodeAndValidate декодирует тело и проверяет его тегами validate.
// При ошибке сам пишет ответ 400 и возвращает false.
func (h *baseHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	ctx := r.Context()
	if err := h.decodeJSON(w, r, dst); err != nil {
		h.log(ctx).WarnContext(ctx, "Failed to decode request body", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return false
	}
	return h.validate(w, r, dst)
}

func (h *baseHandler) validate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	ctx := r.Context()
	if err := h.validator.StructCtx(ctx, v); err != nil {
		h.log(ctx).WarnContext(ctx, "Request validation failed", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Validation failed: "+err.Error())
		return false
	}
	return true
}

// pathID извлекает {id} из пути. Маршрут пропускает только цифры,
// поэтому ошибка возможна лишь при переполнении int64: такой записи нет.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// queryID разбирает необязательный целочисленный параметр запроса.
func queryID(r *http.Request, key string) (*int64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, errors.New(key + " must be an integer")
	}
	return &id, nil
}

// respondStoreError отображает ошибки хранилища на HTTP-статусы.
func (h *baseHandler) respondStoreError(w http.ResponseWriter, r *http.Request, err error, entity, action string) {
	ctx := r.Context()
	switch {
	case errors.Is(err, store.ErrNotFound):
		h.respondError(w, r, http.StatusNotFound, entity+" not found")
	case errors.Is(err, store.ErrInvalidReference):
		h.respondError(w, r, http.StatusBadRequest, "Referenced director or genre does not exist")
	case errors.Is(err, store.ErrAlreadyExists):
		h.respondError(w, r, http.StatusConflict, entity+" already exists")
	default:
		h.log(ctx).ErrorContext(ctx, "Store operation failed", slog.String("entity", entity), slog.String("action", action), slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusInternalServerError, "Failed to "+action+" "+strings.ToLower(entity))
	}
}
