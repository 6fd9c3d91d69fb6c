// internal/domain/director.go
package domain

// Director представляет режиссёра. На него ссылаются ноль или более фильмов.
type Director struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// DirectorInput определяет тело запроса POST/PUT для режиссёра.
type DirectorInput struct {
	Name string `json:"name" validate:"max=255"`
}

func (in DirectorInput) ApplyTo(d *Director) {
	d.Name = in.Name
}

// DirectorPatch определяет тело запроса PATCH для режиссёра.
type DirectorPatch struct {
	Name Optional[string] `json:"name"`
}

func (p DirectorPatch) Apply(d *Director) {
	if p.Name.Set {
		d.Name = p.Name.OrZero()
	}
}
