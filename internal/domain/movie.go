// internal/domain/movie.go
package domain

// Movie представляет запись фильма в каталоге.
// DirectorID и GenreID необязательны и ссылаются на Director и Genre.
type Movie struct {
	ID          int64    `db:"id"`
	Title       string   `db:"title"`
	Description string   `db:"description"`
	Trailer     string   `db:"trailer"`
	Year        *int     `db:"year"`
	Rating      *float64 `db:"rating"`
	DirectorID  *int64   `db:"director_id"`
	GenreID     *int64   `db:"genre_id"`
}

// MovieInput определяет тело запроса POST/PUT для фильма.
// Отсутствующие в теле поля становятся пустыми (полная замена).
type MovieInput struct {
	Title       string   `json:"title" validate:"max=255"`
	Description string   `json:"description" validate:"max=255"`
	Trailer     string   `json:"trailer" validate:"max=255"`
	Year        *int     `json:"year" validate:"omitnil,gte=0,lte=2147483647"`
	Rating      *float64 `json:"rating" validate:"omitnil,gte=0"`
	DirectorID  *int64   `json:"director_id" validate:"omitnil,gt=0"`
	GenreID     *int64   `json:"genre_id" validate:"omitnil,gt=0"`
}

// ApplyTo перезаписывает все изменяемые поля фильма. ID не трогается.
func (in MovieInput) ApplyTo(m *Movie) {
	m.Title = in.Title
	m.Description = in.Description
	m.Trailer = in.Trailer
	m.Year = in.Year
	m.Rating = in.Rating
	m.DirectorID = in.DirectorID
	m.GenreID = in.GenreID
}

// MovieInputFrom строит MovieInput из текущего состояния записи,
// чтобы провалидировать результат частичного обновления.
func MovieInputFrom(m *Movie) MovieInput {
	return MovieInput{
		Title:       m.Title,
		Description: m.Description,
		Trailer:     m.Trailer,
		Year:        m.Year,
		Rating:      m.Rating,
		DirectorID:  m.DirectorID,
		GenreID:     m.GenreID,
	}
}

// MoviePatch определяет тело запроса PATCH для фильма.
type MoviePatch struct {
	Title       Optional[string]  `json:"title"`
	Description Optional[string]  `json:"description"`
	Trailer     Optional[string]  `json:"trailer"`
	Year        Optional[int]     `json:"year"`
	Rating      Optional[float64] `json:"rating"`
	DirectorID  Optional[int64]   `json:"director_id"`
	GenreID     Optional[int64]   `json:"genre_id"`
}

// Apply перезаписывает только поля, ключи которых присутствовали в запросе.
func (p MoviePatch) Apply(m *Movie) {
	if p.Title.Set {
		m.Title = p.Title.OrZero()
	}
	if p.Description.Set {
		m.Description = p.Description.OrZero()
	}
	if p.Trailer.Set {
		m.Trailer = p.Trailer.OrZero()
	}
	if p.Year.Set {
		m.Year = p.Year.Value
	}
	if p.Rating.Set {
		m.Rating = p.Rating.Value
	}
	if p.DirectorID.Set {
		m.DirectorID = p.DirectorID.Value
	}
	if p.GenreID.Set {
		m.GenreID = p.GenreID.Value
	}
}
