// internal/api/genre_handlers.go
package api

import (
	"log/slog"
	"net/http"

	"catalog-service/internal/domain"
	"catalog-service/internal/store"

	"github.com/go-playground/validator/v10"
)

// GenreHandler содержит зависимости для HTTP обработчиков жанров.
type GenreHandler struct {
	baseHandler
	genres store.GenreStore
}

// NewGenreHandler создает новый экземпляр GenreHandler.
func NewGenreHandler(genres store.GenreStore, l *slog.Logger, v *validator.Validate) *GenreHandler {
	return &GenreHandler{
		baseHandler: baseHandler{logger: l, validator: v},
		genres:   genres,
	}
}

func (h *GenreHandler) ListGenres(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	genres, err := h.genres.List(ctx)
	if err != nil {
		h.respondStoreError(w, r, err, "Genre", "list")
		return
	}
	h.log(ctx).InfoContext(ctx, "Genres list retrieved successfully", slog.Int("count", len(genres)))
	h.respondJSON(w, r, http.StatusOK, domain.DumpGenres(genres))
}

func (h *GenreHandler) CreateGenre(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req domain.GenreInput
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	genre := &domain.Genre{}
	req.ApplyTo(genre)
	if err := h.genres.Create(ctx, genre); err != nil {
		h.respondStoreError(w, r, err, "Genre", "create")
		return
	}
	h.log(ctx).InfoContext(ctx, "Genre created", slog.Int64("genreID", genre.ID))
	h.respondEmpty(w, http.StatusCreated)
}

func (h *GenreHandler) GetGenre(w http.ResponseWriter, r *http.Request) {
	genre, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.respondJSON(w, r, http.StatusOK, domain.DumpGenre(genre))
}

func (h *GenreHandler) ReplaceGenre(w http.ResponseWriter, r *http.Request) {
	genre, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var req domain.GenreInput
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	req.ApplyTo(genre)
	h.save(w, r, genre)
}

func (h *GenreHandler) PatchGenre(w http.ResponseWriter, r *http.Request) {
	genre, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var patch domain.GenrePatch
	if err := h.decodeJSON(w, r, &patch); err != nil {
		h.log(r.Context()).WarnContext(r.Context(), "Failed to decode genre patch", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	patch.Apply(genre)
	if !h.validate(w, r, domain.GenreInput{Name: genre.Name}) {
		return
	}
	h.save(w, r, genre)
}

// DeleteGenre удаляет жанр; у фильмов genre_id становится null.
func (h *GenreHandler) DeleteGenre(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(r)
	if !ok {
		h.respondError(w, r, http.StatusNotFound, "Genre not found")
		return
	}
	if err := h.genres.Delete(ctx, id); err != nil {
		h.respondStoreError(w, r, err, "Genre", "delete")
		return
	}
	h.log(ctx).InfoContext(ctx, "Genre deleted", slog.Int64("genreID", id))
	h.respondEmpty(w, http.StatusNoContent)
}

func (h *GenreHandler) lookup(w http.ResponseWriter, r *http.Request) (*domain.Genre, bool) {
	id, ok := pathID(r)
	if !ok {
		h.respondError(w, r, http.StatusNotFound, "Genre not found")
		return nil, false
	}
	genre, err := h.genres.GetByID(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, r, err, "Genre", "get")
		return nil, false
	}
	return genre, true
}

func (h *GenreHandler) save(w http.ResponseWriter, r *http.Request, genre *domain.Genre) {
	ctx := r.Context()
	if err := h.genres.Update(ctx, genre); err != nil {
		h.respondStoreError(w, r, err, "Genre", "update")
		return
	}
	h.log(ctx).InfoContext(ctx, "Genre updated", slog.Int64("genreID", genre.ID))
	h.respondEmpty(w, http.StatusNoContent)
}
