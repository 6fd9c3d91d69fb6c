// internal/store/sql_movie_store.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"catalog-service/internal/domain"

	"github.com/jmoiron/sqlx"
)

const movieColumns = `id, title, description, trailer, year, rating, director_id, genre_id`

// SQLMovieStore реализует MovieStore поверх sqlx (SQLite или PostgreSQL).
type SQLMovieStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewSQLMovieStore создает новый экземпляр SQLMovieStore.
func NewSQLMovieStore(db *sqlx.DB, logger *slog.Logger) (*SQLMovieStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &SQLMovieStore{db: db, logger: logger}, nil
}

// Create сохраняет новый фильм и записывает сгенерированный ID в movie.ID.
func (s *SQLMovieStore) Create(ctx context.Context, movie *domain.Movie) error {
	query := s.db.Rebind(`INSERT INTO movies (title, description, trailer, year, rating, director_id, genre_id)
              VALUES (?, ?, ?, ?, ?, ?, ?) RETURNING id`)

	s.logger.DebugContext(ctx, "Executing Create movie query", slog.String("title", movie.Title))
	err := s.db.GetContext(ctx, &movie.ID, query,
		movie.Title, movie.Description, movie.Trailer, movie.Year, movie.Rating,
		movie.DirectorID, movie.GenreID,
	)
	if err != nil {
		if mapped := translateWriteError(err); mapped != nil {
			s.logger.WarnContext(ctx, "Movie create rejected by constraint", slog.String("error", err.Error()))
			return mapped
		}
		s.logger.ErrorContext(ctx, "Failed to create movie in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create movie: %w", err)
	}
	s.logger.InfoContext(ctx, "Movie created successfully in DB", slog.Int64("movieID", movie.ID))
	return nil
}

// GetByID находит фильм по его ID.
func (s *SQLMovieStore) GetByID(ctx context.Context, id int64) (*domain.Movie, error) {
	query := s.db.Rebind(`SELECT ` + movieColumns + ` FROM movies WHERE id = ?`)
	var movie domain.Movie

	s.logger.DebugContext(ctx, "Executing GetMovieByID query", slog.Int64("movieID", id))
	if err := s.db.GetContext(ctx, &movie, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.DebugContext(ctx, "Movie not found by ID in DB", slog.Int64("movieID", id))
			return nil, ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get movie by ID from DB", slog.Int64("movieID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get movie by ID: %w", err)
	}
	return &movie, nil
}

// List возвращает фильмы в порядке возрастания ID с учётом фильтра.
func (s *SQLMovieStore) List(ctx context.Context, filter MovieFilter) ([]*domain.Movie, error) {
	selectQuery := `SELECT ` + movieColumns + ` FROM movies`

	var args []interface{}
	var conditions []string
	if filter.DirectorID != nil {
		conditions = append(conditions, "director_id = ?")
		args = append(args, *filter.DirectorID)
	}
	if filter.GenreID != nil {
		conditions = append(conditions, "genre_id = ?")
		args = append(args, *filter.GenreID)
	}
	if len(conditions) > 0 {
		selectQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	selectQuery = s.db.Rebind(selectQuery + " ORDER BY id")

	s.logger.DebugContext(ctx, "Executing List movies query", slog.String("query", selectQuery), slog.Any("args", args))
	movies := []*domain.Movie{}
	if err := s.db.SelectContext(ctx, &movies, selectQuery, args...); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list movies from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	return movies, nil
}

// Update перезаписывает все изменяемые поля фильма.
func (s *SQLMovieStore) Update(ctx context.Context, movie *domain.Movie) error {
	query := s.db.Rebind(`UPDATE movies SET title = ?, description = ?, trailer = ?, year = ?, rating = ?, director_id = ?, genre_id = ?
              WHERE id = ?`)

	s.logger.DebugContext(ctx, "Executing Update movie query", slog.Int64("movieID", movie.ID))
	result, err := s.db.ExecContext(ctx, query,
		movie.Title, movie.Description, movie.Trailer, movie.Year, movie.Rating,
		movie.DirectorID, movie.GenreID, movie.ID,
	)
	if err != nil {
		if mapped := translateWriteError(err); mapped != nil {
			s.logger.WarnContext(ctx, "Movie update rejected by constraint", slog.Int64("movieID", movie.ID), slog.String("error", err.Error()))
			return mapped
		}
		s.logger.ErrorContext(ctx, "Failed to update movie in DB", slog.Int64("movieID", movie.ID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to update movie: %w", err)
	}
	if err := checkAffected(result); err != nil {
		s.logger.WarnContext(ctx, "No movie updated in DB", slog.Int64("movieID", movie.ID), slog.String("error", err.Error()))
		return err
	}
	s.logger.InfoContext(ctx, "Movie updated successfully in DB", slog.Int64("movieID", movie.ID))
	return nil
}

// Delete удаляет фильм безвозвратно.
func (s *SQLMovieStore) Delete(ctx context.Context, id int64) error {
	query := s.db.Rebind(`DELETE FROM movies WHERE id = ?`)

	s.logger.DebugContext(ctx, "Executing Delete movie query", slog.Int64("movieID", id))
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete movie from DB", slog.Int64("movieID", id), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete movie: %w", err)
	}
	if err := checkAffected(result); err != nil {
		s.logger.WarnContext(ctx, "No movie deleted from DB", slog.Int64("movieID", id), slog.String("error", err.Error()))
		return err
	}
	s.logger.InfoContext(ctx, "Movie deleted successfully from DB", slog.Int64("movieID", id))
	return nil
}

// checkAffected возвращает ErrNotFound, если запрос не затронул ни одной строки.
func checkAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
