// internal/store/sql_director_store.go
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

// SQLDirectorStore реализует DirectorStore поверх sqlx.
type SQLDirectorStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewSQLDirectorStore(db *sqlx.DB, logger *slog.Logger) (*SQLDirectorStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &SQLDirectorStore{db: db, logger: logger}, nil
}

func (s *SQLDirectorStore) Create(ctx context.Context, director *domain.Director) error {
	query := s.db.Rebind(`INSERT INTO directors (name) VALUES (?) RETURNING id`)

	s.logger.DebugContext(ctx, "Executing Create director query", slog.String("name", director.Name))
	if err := s.db.GetContext(ctx, &director.ID, query, director.Name); err != nil {
		if mapped := translateWriteError(err); mapped != nil {
			return mapped
		}
		s.logger.ErrorContext(ctx, "Failed to create director in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create director: %w", err)
	}
	s.logger.InfoContext(ctx, "Director created successfully in DB", slog.Int64("directorID", director.ID))
	return nil
}

func (s *SQLDirectorStore) GetByID(ctx context.Context, id int64) (*domain.Director, error) {
	query := s.db.Rebind(`SELECT id, name FROM directors WHERE id = ?`)
	var director domain.Director

	if err := s.db.GetContext(ctx, &director, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get director by ID from DB", slog.Int64("directorID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get director by ID: %w", err)
	}
	return &director, nil
}

func (s *SQLDirectorStore) List(ctx context.Context) ([]*domain.Director, error) {
	directors := []*domain.Director{}
	if err := s.db.SelectContext(ctx, &directors, `SELECT id, name FROM directors ORDER BY id`); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list directors from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list directors: %w", err)
	}
	return directors, nil
}

func (s *SQLDirectorStore) Update(ctx context.Context, director *domain.Director) error {
	query := s.db.Rebind(`UPDATE directors SET name = ? WHERE id = ?`)

	result, err := s.db.ExecContext(ctx, query, director.Name, director.ID)
	if err != nil {
		if mapped := translateWriteError(err); mapped != nil {
			return mapped
		}
		s.logger.ErrorContext(ctx, "Failed to update director in DB", slog.Int64("directorID", director.ID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to update director: %w", err)
	}
	if err := checkAffected(result); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Director updated successfully in DB", slog.Int64("directorID", director.ID))
	return nil
}

// Delete удаляет режиссёра; у фильмов director_id сбрасывается в NULL (ON DELETE SET NULL).
func (s *SQLDirectorStore) Delete(ctx context.Context, id int64) error {
	query := s.db.Rebind(`DELETE FROM directors WHERE id = ?`)

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete director from DB", slog.Int64("directorID", id), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete director: %w", err)
	}
	if err := checkAffected(result); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Director deleted successfully from DB", slog.Int64("directorID", id))
	return nil
}
