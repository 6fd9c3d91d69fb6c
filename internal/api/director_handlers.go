// internal/api/director_handlers.go
package api

import (
	"log/slog"
	"net/http"

	"catalog-service/internal/domain"
	"catalog-service/internal/store"

	"github.com/go-playground/validator/v10"
)

// DirectorHandler содержит зависимости для HTTP обработчиков режиссёров.
type DirectorHandler struct {
	baseHandler
	directors store.DirectorStore
}

// NewDirectorHandler создает новый экземпляр DirectorHandler.
func NewDirectorHandler(directors store.DirectorStore, l *slog.Logger, v *validator.Validate) *DirectorHandler {
	return &DirectorHandler{
		baseHandler: baseHandler{logger: l, validator: v},
		directors:   directors,
	}
}

func (h *DirectorHandler) ListDirectors(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	directors, err := h.directors.List(ctx)
	if err != nil {
		h.respondStoreError(w, r, err, "Director", "list")
		return
	}
	h.log(ctx).InfoContext(ctx, "Directors list retrieved successfully", slog.Int("count", len(directors)))
	h.respondJSON(w, r, http.StatusOK, domain.DumpDirectors(directors))
}

func (h *DirectorHandler) CreateDirector(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req domain.DirectorInput
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	director := &domain.Director{}
	req.ApplyTo(director)
	if err := h.directors.Create(ctx, director); err != nil {
		h.respondStoreError(w, r, err, "Director", "create")
		return
	}
	h.log(ctx).InfoContext(ctx, "Director created", slog.Int64("directorID", director.ID))
	h.respondEmpty(w, http.StatusCreated)
}

func (h *DirectorHandler) GetDirector(w http.ResponseWriter, r *http.Request) {
	director, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.respondJSON(w, r, http.StatusOK, domain.DumpDirector(director))
}

func (h *DirectorHandler) ReplaceDirector(w http.ResponseWriter, r *http.Request) {
	director, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var req domain.DirectorInput
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	req.ApplyTo(director)
	h.save(w, r, director)
}

func (h *DirectorHandler) PatchDirector(w http.ResponseWriter, r *http.Request) {
	director, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var patch domain.DirectorPatch
	if err := h.decodeJSON(w, r, &patch); err != nil {
		h.log(r.Context()).WarnContext(r.Context(), "Failed to decode director patch", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	patch.Apply(director)
	if !h.validate(w, r, domain.DirectorInput{Name: director.Name}) {
		return
	}
	h.save(w, r, director)
}

// DeleteDirector удаляет режиссёра; у фильмов director_id становится null.
func (h *DirectorHandler) DeleteDirector(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(r)
	if !ok {
		h.respondError(w, r, http.StatusNotFound, "Director not found")
		return
	}
	if err := h.directors.Delete(ctx, id); err != nil {
		h.respondStoreError(w, r, err, "Director", "delete")
		return
	}
	h.log(ctx).InfoContext(ctx, "Director deleted", slog.Int64("directorID", id))
	h.respondEmpty(w, http.StatusNoContent)
}

func (h *DirectorHandler) lookup(w http.ResponseWriter, r *http.Request) (*domain.Director, bool) {
	id, ok := pathID(r)
	if !ok {
		h.respondError(w, r, http.StatusNotFound, "Director not found")
		return nil, false
	}
	director, err := h.directors.GetByID(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, r, err, "Director", "get")
		return nil, false
	}
	return director, true
}

func (h *DirectorHandler) save(w http.ResponseWriter, r *http.Request, director *domain.Director) {
	ctx := r.Context()
	if err := h.directors.Update(ctx, director); err != nil {
		h.respondStoreError(w, r, err, "Director", "update")
		return
	}
	h.log(ctx).InfoContext(ctx, "Director updated", slog.Int64("directorID", director.ID))
	h.respondEmpty(w, http.StatusNoContent)
}
