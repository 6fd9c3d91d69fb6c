// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
)

// RouterConfig задаёт параметры HTTP-слоя, не относящиеся к обработчикам.
type RouterConfig struct {
	Logger             *slog.Logger
	CORSAllowedOrigins []string
}

// NewRouter регистрирует маршруты каталога. Коллекции доступны и со слэшем
// на конце, и без него; {id} принимает только цифры.
func NewRouter(h Handlers, cfg RouterConfig) http.Handler {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.Health.respondError(w, r, http.StatusNotFound, "Resource not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.Health.respondError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})

	router.HandleFunc("/healthz", h.Health.Healthz).Methods(http.MethodGet)

	// Каждый путь регистрируется один раз на корневом роутере: так mux
	// отвечает 405 на неподдерживаемый метод, а не 404.
	registerResource(router, "/movies", resourceRoutes{
		list: h.Movies.ListMovies, create: h.Movies.CreateMovie,
		get: h.Movies.GetMovie, replace: h.Movies.ReplaceMovie,
		patch: h.Movies.PatchMovie, remove: h.Movies.DeleteMovie,
	})
	registerResource(router, "/directors", resourceRoutes{
		list: h.Directors.ListDirectors, create: h.Directors.CreateDirector,
		get: h.Directors.GetDirector, replace: h.Directors.ReplaceDirector,
		patch: h.Directors.PatchDirector, remove: h.Directors.DeleteDirector,
	})
	registerResource(router, "/genres", resourceRoutes{
		list: h.Genres.ListGenres, create: h.Genres.CreateGenre,
		get: h.Genres.GetGenre, replace: h.Genres.ReplaceGenre,
		patch: h.Genres.PatchGenre, remove: h.Genres.DeleteGenre,
	})

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	var handler http.Handler = router
	handler = recoverMiddleware(logger)(handler)
	handler = accessLogMiddleware(logger)(handler)
	handler = corsMiddleware(cfg.CORSAllowedOrigins)(handler)
	handler = requestIDMiddleware(handler)
	return handler
}

type resourceRoutes struct {
	list, create                http.HandlerFunc
	get, replace, patch, remove http.HandlerFunc
}

// registerResource вешает коллекцию (со слэшем и без) и элемент {id} на prefix.
func registerResource(router *mux.Router, prefix string, routes resourceRoutes) {
	for _, path := range []string{prefix, prefix + "/"} {
		router.HandleFunc(path, routes.list).Methods(http.MethodGet)
		router.HandleFunc(path, routes.create).Methods(http.MethodPost)
	}
	item := prefix + "/{id:[0-9]+}"
	router.HandleFunc(item, routes.get).Methods(http.MethodGet)
	router.HandleFunc(item, routes.replace).Methods(http.MethodPut)
	router.HandleFunc(item, routes.patch).Methods(http.MethodPatch)
	router.HandleFunc(item, routes.remove).Methods(http.MethodDelete)
}
