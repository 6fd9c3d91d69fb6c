// internal/store/sql_genre_store.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"catalog-service/internal/domain"

	"github.com/jmoiron/sqlx"
)

// SQLGenreStore реализует GenreStore поверх sqlx.
type SQLGenreStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewSQLGenreStore(db *sqlx.DB, logger *slog.Logger) (*SQLGenreStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &SQLGenreStore{db: db, logger: logger}, nil
}

func (s *SQLGenreStore) Create(ctx context.Context, genre *domain.Genre) error {
	query := s.db.Rebind(`INSERT INTO genres (name) VALUES (?) RETURNING id`)

	s.logger.DebugContext(ctx, "Executing Create genre query", slog.String("name", genre.Name))
	if err := s.db.GetContext(ctx, &genre.ID, query, genre.Name); err != nil {
		if mapped := translateWriteError(err); mapped != nil {
			return mapped
		}
		s.logger.ErrorContext(ctx, "Failed to create genre in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create genre: %w", err)
	}
	s.logger.InfoContext(ctx, "Genre created successfully in DB", slog.Int64("genreID", genre.ID))
	return nil
}

func (s *SQLGenreStore) GetByID(ctx context.Context, id int64) (*domain.Genre, error) {
	query := s.db.Rebind(`SELECT id, name FROM genres WHERE id = ?`)
	var genre domain.Genre

	if err := s.db.GetContext(ctx, &genre, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get genre by ID from DB", slog.Int64("genreID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get genre by ID: %w", err)
	}
	return &genre, nil
}

func (s *SQLGenreStore) List(ctx context.Context) ([]*domain.Genre, error) {
	genres := []*domain.Genre{}
	if err := s.db.SelectContext(ctx, &genres, `SELECT id, name FROM genres ORDER BY id`); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list genres from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	return genres, nil
}

func (s *SQLGenreStore) Update(ctx context.Context, genre *domain.Genre) error {
	query := s.db.Rebind(`UPDATE genres SET name = ? WHERE id = ?`)

	result, err := s.db.ExecContext(ctx, query, genre.Name, genre.ID)
	if err != nil {
		if mapped := translateWriteError(err); mapped != nil {
			return mapped
		}
		s.logger.ErrorContext(ctx, "Failed to update genre in DB", slog.Int64("genreID", genre.ID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to update genre: %w", err)
	}
	if err := checkAffected(result); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Genre updated successfully in DB", slog.Int64("genreID", genre.ID))
	return nil
}

// Delete удаляет жанр; у фильмов genre_id сбрасывается в NULL (ON DELETE SET NULL).
func (s *SQLGenreStore) Delete(ctx context.Context, id int64) error {
	query := s.db.Rebind(`DELETE FROM genres WHERE id = ?`)

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete genre from DB", slog.Int64("genreID", id), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete genre: %w", err)
	}
	if err := checkAffected(result); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Genre deleted successfully from DB", slog.Int64("genreID", id))
	return nil
}
