// internal/store/store.go
package store

import (
	"context"
	"errors"

	"catalog-service/internal/domain"
)

var (
	ErrNotFound         = errors.New("record not found")
	ErrAlreadyExists    = errors.New("record with these identifying features already exists")
	ErrInvalidReference = errors.New("referenced record does not exist")
)

// MovieFilter задаёт фильтры списка фильмов. Заданные фильтры объединяются через AND.
type MovieFilter struct {
	DirectorID *int64
	GenreID    *int64
}

type MovieStore interface {
	Create(ctx context.Context, movie *domain.Movie) error
	GetByID(ctx context.Context, id int64) (*domain.Movie, error)
	List(ctx context.Context, filter MovieFilter) ([]*domain.Movie, error)
	Update(ctx context.Context, movie *domain.Movie) error
	Delete(ctx context.Context, id int64) error
}

type DirectorStore interface {
	Create(ctx context.Context, director *domain.Director) error
	GetByID(ctx context.Context, id int64) (*domain.Director, error)
	List(ctx context.Context) ([]*domain.Director, error)
	Update(ctx context.Context, director *domain.Director) error
	Delete(ctx context.Context, id int64) error
}

type GenreStore interface {
	Create(ctx context.Context, genre *domain.Genre) error
	GetByID(ctx context.Context, id int64) (*domain.Genre, error)
	List(ctx context.Context) ([]*domain.Genre, error)
	Update(ctx context.Context, genre *domain.Genre) error
	Delete(ctx context.Context, id int64) error
}

// Pinger проверяет доступность хранилища (для /healthz).
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Catalog объединяет хранилища всех сущностей каталога.
type Catalog struct {
	Movies    MovieStore
	Directors DirectorStore
	Genres    GenreStore
	Health    Pinger
}
