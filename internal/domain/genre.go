// internal/domain/genre.go
package domain

// Genre представляет жанр. На него ссылаются ноль или более фильмов.
type Genre struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// GenreInput определяет тело запроса POST/PUT для жанра.
type GenreInput struct {
	Name string `json:"name" validate:"max=255"`
}

func (in GenreInput) ApplyTo(g *Genre) {
	g.Name = in.Name
}

// GenrePatch определяет тело запроса PATCH для жанра.
type GenrePatch struct {
	Name Optional[string] `json:"name"`
}

func (p GenrePatch) Apply(g *Genre) {
	if p.Name.Set {
		g.Name = p.Name.OrZero()
	}
}
