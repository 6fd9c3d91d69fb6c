// internal/store/memory_store.go
package store

import (
	"context"
	"sort"
	"sync"

	"catalog-service/internal/domain"
)

// MemoryCatalog хранит весь каталог в памяти процесса.
// Используется в тестах и с драйвером "memory"; данные не переживают перезапуск.
type MemoryCatalog struct {
	mu        sync.RWMutex
	movies    map[int64]domain.Movie
	directors map[int64]domain.Director
	genres    map[int64]domain.Genre
	nextID    map[string]int64
}

// NewMemoryCatalog создает пустое хранилище и возвращает его в виде Catalog.
func NewMemoryCatalog() *Catalog {
	m := &MemoryCatalog{
		movies:    make(map[int64]domain.Movie),
		directors: make(map[int64]domain.Director),
		genres:    make(map[int64]domain.Genre),
		nextID:    make(map[string]int64),
	}
	return &Catalog{
		Movies:    &MemoryMovieStore{m},
		Directors: &MemoryDirectorStore{m},
		Genres:    &MemoryGenreStore{m},
		Health:    m,
	}
}

func (m *MemoryCatalog) PingContext(ctx context.Context) error {
	return ctx.Err()
}

// allocID выдаёт следующий ID для таблицы. Вызывать под m.mu.Lock.
func (m *MemoryCatalog) allocID(table string) int64 {
	m.nextID[table]++
	return m.nextID[table]
}

// checkRefs проверяет ссылки фильма. Вызывать под блокировкой.
func (m *MemoryCatalog) checkRefs(movie *domain.Movie) error {
	if movie.DirectorID != nil {
		if _, ok := m.directors[*movie.DirectorID]; !ok {
			return ErrInvalidReference
		}
	}
	if movie.GenreID != nil {
		if _, ok := m.genres[*movie.GenreID]; !ok {
			return ErrInvalidReference
		}
	}
	return nil
}

func sortedKeys[V any](items map[int64]V) []int64 {
	ids := make([]int64, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// cloneMovie копирует значения за указателями, чтобы вызывающий код
// не мог изменить сохранённую запись.
func cloneMovie(m domain.Movie) domain.Movie {
	m.Year = clonePtr(m.Year)
	m.Rating = clonePtr(m.Rating)
	m.DirectorID = clonePtr(m.DirectorID)
	m.GenreID = clonePtr(m.GenreID)
	return m
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

type MemoryMovieStore struct{ m *MemoryCatalog }

func (s *MemoryMovieStore) Create(ctx context.Context, movie *domain.Movie) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if err := s.m.checkRefs(movie); err != nil {
		return err
	}
	movie.ID = s.m.allocID("movies")
	s.m.movies[movie.ID] = cloneMovie(*movie)
	return nil
}

func (s *MemoryMovieStore) GetByID(ctx context.Context, id int64) (*domain.Movie, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	movie, ok := s.m.movies[id]
	if !ok {
		return nil, ErrNotFound
	}
	movie = cloneMovie(movie)
	return &movie, nil
}

func (s *MemoryMovieStore) List(ctx context.Context, filter MovieFilter) ([]*domain.Movie, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	movies := []*domain.Movie{}
	for _, id := range sortedKeys(s.m.movies) {
		movie := s.m.movies[id]
		if filter.DirectorID != nil && (movie.DirectorID == nil || *movie.DirectorID != *filter.DirectorID) {
			continue
		}
		if filter.GenreID != nil && (movie.GenreID == nil || *movie.GenreID != *filter.GenreID) {
			continue
		}
		movie = cloneMovie(movie)
		movies = append(movies, &movie)
	}
	return movies, nil
}

func (s *MemoryMovieStore) Update(ctx context.Context, movie *domain.Movie) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.movies[movie.ID]; !ok {
		return ErrNotFound
	}
	if err := s.m.checkRefs(movie); err != nil {
		return err
	}
	s.m.movies[movie.ID] = cloneMovie(*movie)
	return nil
}

func (s *MemoryMovieStore) Delete(ctx context.Context, id int64) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.movies[id]; !ok {
		return ErrNotFound
	}
	delete(s.m.movies, id)
	return nil
}

type MemoryDirectorStore struct{ m *MemoryCatalog }

func (s *MemoryDirectorStore) Create(ctx context.Context, director *domain.Director) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	director.ID = s.m.allocID("directors")
	s.m.directors[director.ID] = *director
	return nil
}

func (s *MemoryDirectorStore) GetByID(ctx context.Context, id int64) (*domain.Director, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	director, ok := s.m.directors[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &director, nil
}

func (s *MemoryDirectorStore) List(ctx context.Context) ([]*domain.Director, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	directors := make([]*domain.Director, 0, len(s.m.directors))
	for _, id := range sortedKeys(s.m.directors) {
		director := s.m.directors[id]
		directors = append(directors, &director)
	}
	return directors, nil
}

func (s *MemoryDirectorStore) Update(ctx context.Context, director *domain.Director) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.directors[director.ID]; !ok {
		return ErrNotFound
	}
	s.m.directors[director.ID] = *director
	return nil
}

// Delete повторяет ON DELETE SET NULL из SQL-схемы.
func (s *MemoryDirectorStore) Delete(ctx context.Context, id int64) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.directors[id]; !ok {
		return ErrNotFound
	}
	delete(s.m.directors, id)
	for movieID, movie := range s.m.movies {
		if movie.DirectorID != nil && *movie.DirectorID == id {
			movie.DirectorID = nil
			s.m.movies[movieID] = movie
		}
	}
	return nil
}

type MemoryGenreStore struct{ m *MemoryCatalog }

func (s *MemoryGenreStore) Create(ctx context.Context, genre *domain.Genre) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	genre.ID = s.m.allocID("genres")
	s.m.genres[genre.ID] = *genre
	return nil
}

func (s *MemoryGenreStore) GetByID(ctx context.Context, id int64) (*domain.Genre, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	genre, ok := s.m.genres[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &genre, nil
}

func (s *MemoryGenreStore) List(ctx context.Context) ([]*domain.Genre, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	genres := make([]*domain.Genre, 0, len(s.m.genres))
	for _, id := range sortedKeys(s.m.genres) {
		genre := s.m.genres[id]
		genres = append(genres, &genre)
	}
	return genres, nil
}

func (s *MemoryGenreStore) Update(ctx context.Context, genre *domain.Genre) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.genres[genre.ID]; !ok {
		return ErrNotFound
	}
	s.m.genres[genre.ID] = *genre
	return nil
}

func (s *MemoryGenreStore) Delete(ctx context.Context, id int64) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if _, ok := s.m.genres[id]; !ok {
		return ErrNotFound
	}
	delete(s.m.genres, id)
	for movieID, movie := range s.m.movies {
		if movie.GenreID != nil && *movie.GenreID == id {
			movie.GenreID = nil
			s.m.movies[movieID] = movie
		}
	}
	return nil
}
