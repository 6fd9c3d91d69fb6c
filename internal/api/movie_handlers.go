// internal/api/movie_handlers.go
package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"catalog-service/internal/domain"
	"catalog-service/internal/store"

	"github.com/go-playground/validator/v10"
)

// MovieHandler содержит зависимости для HTTP обработчиков фильмов.
// Хранилища режиссёров и жанров нужны для проверки ссылок director_id и genre_id.
type MovieHandler struct {
	baseHandler
	movies    store.MovieStore
	directors store.DirectorStore
	genres    store.GenreStore
}

// NewMovieHandler создает новый экземпляр MovieHandler.
func NewMovieHandler(movies store.MovieStore, directors store.DirectorStore, genres store.GenreStore, l *slog.Logger, v *validator.Validate) *MovieHandler {
	return &MovieHandler{
		baseHandler: baseHandler{logger: l, validator: v},
		movies:      movies,
		directors:   directors,
		genres:      genres,
	}
}

// ListMovies возвращает фильмы с необязательными фильтрами director_id и genre_id.
func (h *MovieHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.log(ctx).InfoContext(ctx, "ListMovies endpoint hit", slog.String("query", r.URL.RawQuery))

	var filter store.MovieFilter
	var err error
	if filter.DirectorID, err = queryID(r, "director_id"); err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if filter.GenreID, err = queryID(r, "genre_id"); err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	movies, err := h.movies.List(ctx, filter)
	if err != nil {
		h.respondStoreError(w, r, err, "Movie", "list")
		return
	}
	h.log(ctx).InfoContext(ctx, "Movies list retrieved successfully", slog.Int("count", len(movies)))
	h.respondJSON(w, r, http.StatusOK, domain.DumpMovies(movies))
}

// CreateMovie создает фильм из тела запроса. Ответ 201 без тела.
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	h.log(ctx).InfoContext(ctx, "HTTP CreateMovie request received", slog.String("path", r.URL.Path))

	var req domain.MovieInput
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	movie := &domain.Movie{}
	req.ApplyTo(movie)
	if !h.checkReferences(w, r, movie) {
		return
	}
	if err := h.movies.Create(ctx, movie); err != nil {
		h.respondStoreError(w, r, err, "Movie", "create")
		return
	}
	h.log(ctx).InfoContext(ctx, "Movie created", slog.Int64("movieID", movie.ID))
	h.respondEmpty(w, http.StatusCreated)
}

// GetMovie возвращает фильм по ID или 404.
func (h *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) {
	movie, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.respondJSON(w, r, http.StatusOK, domain.DumpMovie(movie))
}

// ReplaceMovie перезаписывает все поля фильма (PUT). Поля, которых нет в теле, обнуляются.
func (h *MovieHandler) ReplaceMovie(w http.ResponseWriter, r *http.Request) {
	movie, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var req domain.MovieInput
	if !h.decodeAndValidate(w, r, &req) {
		return
	}
	req.ApplyTo(movie)
	h.save(w, r, movie)
}

// PatchMovie меняет только поля, ключи которых есть в теле (PATCH).
func (h *MovieHandler) PatchMovie(w http.ResponseWriter, r *http.Request) {
	movie, ok := h.lookup(w, r)
	if !ok {
		return
	}
	var patch domain.MoviePatch
	if err := h.decodeJSON(w, r, &patch); err != nil {
		h.log(r.Context()).WarnContext(r.Context(), "Failed to decode movie patch", slog.String("error", err.Error()))
		h.respondError(w, r, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	patch.Apply(movie)
	if !h.validate(w, r, domain.MovieInputFrom(movie)) {
		return
	}
	h.save(w, r, movie)
}

// DeleteMovie удаляет фильм безвозвратно.
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(r)
	if !ok {
		h.respondError(w, r, http.StatusNotFound, "Movie not found")
		return
	}
	if err := h.movies.Delete(ctx, id); err != nil {
		h.respondStoreError(w, r, err, "Movie", "delete")
		return
	}
	h.log(ctx).InfoContext(ctx, "Movie deleted", slog.Int64("movieID", id))
	h.respondEmpty(w, http.StatusNoContent)
}

// lookup загружает фильм из пути запроса. Отсутствие записи - явная ветка с ответом 404.
func (h *MovieHandler) lookup(w http.ResponseWriter, r *http.Request) (*domain.Movie, bool) {
	ctx := r.Context()
	id, ok := pathID(r)
	if !ok {
		h.respondError(w, r, http.StatusNotFound, "Movie not found")
		return nil, false
	}
	movie, err := h.movies.GetByID(ctx, id)
	if err != nil {
		h.respondStoreError(w, r, err, "Movie", "get")
		return nil, false
	}
	return movie, true
}

func (h *MovieHandler) save(w http.ResponseWriter, r *http.Request, movie *domain.Movie) {
	ctx := r.Context()
	if !h.checkReferences(w, r, movie) {
		return
	}
	if err := h.movies.Update(ctx, movie); err != nil {
		h.respondStoreError(w, r, err, "Movie", "update")
		return
	}
	h.log(ctx).InfoContext(ctx, "Movie updated", slog.Int64("movieID", movie.ID))
	h.respondEmpty(w, http.StatusNoContent)
}

// checkReferences проверяет, что director_id и genre_id указывают на существующие записи.
func (h *MovieHandler) checkReferences(w http.ResponseWriter, r *http.Request, movie *domain.Movie) bool {
	ctx := r.Context()
	if movie.DirectorID != nil {
		if _, err := h.directors.GetByID(ctx, *movie.DirectorID); err != nil {
			h.respondReferenceError(w, r, err, "director_id", *movie.DirectorID)
			return false
		}
	}
	if movie.GenreID != nil {
		if _, err := h.genres.GetByID(ctx, *movie.GenreID); err != nil {
			h.respondReferenceError(w, r, err, "genre_id", *movie.GenreID)
			return false
		}
	}
	return true
}

func (h *MovieHandler) respondReferenceError(w http.ResponseWriter, r *http.Request, err error, field string, id int64) {
	if errors.Is(err, store.ErrNotFound) {
		h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("%s %d does not exist", field, id))
		return
	}
	h.respondStoreError(w, r, err, "Movie", "check references for")
}
