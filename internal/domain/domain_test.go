package domain

import (
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestOptionalUnmarshal(t *testing.T) {
	var patch MoviePatch
	body := `{"title": "Heat", "year": null, "rating": 8.3, "unknown": true}`
	if err := json.Unmarshal([]byte(body), &patch); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !patch.Title.Set || patch.Title.OrZero() != "Heat" {
		t.Errorf("title = %+v", patch.Title)
	}
	if !patch.Year.Set || patch.Year.Value != nil {
		t.Errorf("year should be set to null, got %+v", patch.Year)
	}
	if !patch.Rating.Set || *patch.Rating.Value != 8.3 {
		t.Errorf("rating = %+v", patch.Rating)
	}
	if patch.Description.Set || patch.DirectorID.Set || patch.GenreID.Set || patch.Trailer.Set {
		t.Errorf("absent keys must stay unset: %+v", patch)
	}
}

func TestOptionalRejectsWrongType(t *testing.T) {
	var patch MoviePatch
	if err := json.Unmarshal([]byte(`{"year": "nineteen"}`), &patch); err == nil {
		t.Fatal("expected type error")
	}
}

func TestMoviePatchApplyChangesOnlySuppliedFields(t *testing.T) {
	year, rating, director := 1995, 8.3, int64(4)
	movie := Movie{
		ID:          7,
		Title:       "Heat",
		Description: "Crime",
		Trailer:     "t",
		Year:        &year,
		Rating:      &rating,
		DirectorID:  &director,
	}

	patch := MoviePatch{
		Description: Some("LA crime saga"),
		Year:        Null[int](),
		GenreID:     Some(int64(2)),
	}
	patch.Apply(&movie)

	if movie.ID != 7 || movie.Title != "Heat" || movie.Trailer != "t" {
		t.Fatalf("untouched fields changed: %+v", movie)
	}
	if movie.Description != "LA crime saga" {
		t.Errorf("description = %q", movie.Description)
	}
	if movie.Year != nil {
		t.Errorf("year should be cleared, got %d", *movie.Year)
	}
	if movie.Rating == nil || *movie.Rating != 8.3 {
		t.Errorf("rating changed: %+v", movie.Rating)
	}
	if movie.DirectorID == nil || *movie.DirectorID != 4 {
		t.Errorf("director changed: %+v", movie.DirectorID)
	}
	if movie.GenreID == nil || *movie.GenreID != 2 {
		t.Errorf("genre = %+v", movie.GenreID)
	}
}

func TestMoviePatchNullTextBecomesEmpty(t *testing.T) {
	movie := Movie{Title: "Heat"}
	MoviePatch{Title: Null[string]()}.Apply(&movie)
	if movie.Title != "" {
		t.Fatalf("title = %q", movie.Title)
	}
}

func TestMovieInputApplyToIsFullReplace(t *testing.T) {
	year := 2000
	movie := Movie{ID: 3, Title: "Old", Description: "Old", Year: &year}

	var in MovieInput
	if err := json.Unmarshal([]byte(`{"title": "New"}`), &in); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	in.ApplyTo(&movie)

	if movie.ID != 3 {
		t.Errorf("id changed to %d", movie.ID)
	}
	if movie.Title != "New" || movie.Description != "" || movie.Trailer != "" {
		t.Errorf("text fields = %+v", movie)
	}
	if movie.Year != nil || movie.Rating != nil || movie.DirectorID != nil || movie.GenreID != nil {
		t.Errorf("omitted fields should become null: %+v", movie)
	}
}

func TestDirectorAndGenrePatch(t *testing.T) {
	d := Director{ID: 1, Name: "Nolan"}
	DirectorPatch{}.Apply(&d)
	if d.Name != "Nolan" {
		t.Fatalf("empty patch changed name to %q", d.Name)
	}
	DirectorPatch{Name: Some("Christopher Nolan")}.Apply(&d)
	if d.Name != "Christopher Nolan" {
		t.Fatalf("name = %q", d.Name)
	}

	g := Genre{ID: 1, Name: "Drama"}
	GenreInput{}.ApplyTo(&g)
	if g.Name != "" || g.ID != 1 {
		t.Fatalf("genre after full replace = %+v", g)
	}
}

func TestMovieInputValidation(t *testing.T) {
	validate := validator.New()
	negative := -1
	maxYear := 2147483647
	tooLarge := maxYear
	tooLarge++
	zeroID := int64(0)
	long := make([]byte, 256)
	for i := range long {
		long[i] = 'a'
	}

	tests := []struct {
		name    string
		input   MovieInput
		wantErr bool
	}{
		{name: "empty", input: MovieInput{}},
		{name: "negative year", input: MovieInput{Year: &negative}, wantErr: true},
		{name: "year at column limit", input: MovieInput{Year: &maxYear}},
		{name: "year beyond column limit", input: MovieInput{Year: &tooLarge}, wantErr: true},
		{name: "zero director", input: MovieInput{DirectorID: &zeroID}, wantErr: true},
		{name: "long title", input: MovieInput{Title: string(long)}, wantErr: true},
		{name: "long title ok", input: MovieInput{Title: string(long[:255])}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validate error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDumpMovieIncludesReferences(t *testing.T) {
	director, genre := int64(5), int64(6)
	got := DumpMovie(&Movie{ID: 1, Title: "Heat", DirectorID: &director, GenreID: &genre})

	raw, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"id", "title", "description", "trailer", "year", "rating", "director_id", "genre_id"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("missing key %q in %s", key, raw)
		}
	}
	if len(fields) != 8 {
		t.Errorf("unexpected keys in %s", raw)
	}
}

func TestDumpManyPreservesOrder(t *testing.T) {
	if got := DumpDirectors(nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
	raw, _ := json.Marshal(DumpGenres(nil))
	if string(raw) != "[]" {
		t.Fatalf("empty list should encode as [], got %s", raw)
	}

	movies := DumpMovies([]*Movie{{ID: 3}, {ID: 1}, {ID: 2}})
	if len(movies) != 3 || movies[0].ID != 3 || movies[1].ID != 1 || movies[2].ID != 2 {
		t.Fatalf("order not preserved: %+v", movies)
	}
}
