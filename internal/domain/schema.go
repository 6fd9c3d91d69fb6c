// internal/domain/schema.go
package domain

// Схемы ответа: какие поля сущности уходят клиенту.
// id только на выход, во входных структурах его нет.

type MovieSchema struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Trailer     string   `json:"trailer"`
	Year        *int     `json:"year"`
	Rating      *float64 `json:"rating"`
	DirectorID  *int64   `json:"director_id"`
	GenreID     *int64   `json:"genre_id"`
}

type DirectorSchema struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type GenreSchema struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func DumpMovie(m *Movie) MovieSchema {
	return MovieSchema{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Trailer:     m.Trailer,
		Year:        m.Year,
		Rating:      m.Rating,
		DirectorID:  m.DirectorID,
		GenreID:     m.GenreID,
	}
}

// DumpMovies сохраняет порядок входа; для пустого входа возвращает пустой (не nil) слайс.
func DumpMovies(movies []*Movie) []MovieSchema {
	out := make([]MovieSchema, 0, len(movies))
	for _, m := range movies {
		out = append(out, DumpMovie(m))
	}
	return out
}

func DumpDirector(d *Director) DirectorSchema {
	return DirectorSchema{ID: d.ID, Name: d.Name}
}

func DumpDirectors(directors []*Director) []DirectorSchema {
	out := make([]DirectorSchema, 0, len(directors))
	for _, d := range directors {
		out = append(out, DumpDirector(d))
	}
	return out
}

func DumpGenre(g *Genre) GenreSchema {
	return GenreSchema{ID: g.ID, Name: g.Name}
}

func DumpGenres(genres []*Genre) []GenreSchema {
	out := make([]GenreSchema, 0, len(genres))
	for _, g := range genres {
		out = append(out, DumpGenre(g))
	}
	return out
}
