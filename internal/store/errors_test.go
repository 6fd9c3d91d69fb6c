package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestTranslateWriteError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"pq unique", &pq.Error{Code: "23505"}, ErrAlreadyExists},
		{"pq foreign key", &pq.Error{Code: "23503"}, ErrInvalidReference},
		{"pgx unique", &pgconn.PgError{Code: "23505"}, ErrAlreadyExists},
		{"pgx foreign key wrapped", fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23503"}), ErrInvalidReference},
		{"pq other", &pq.Error{Code: "42P01"}, nil},
		{"plain", errors.New("connection refused"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := translateWriteError(tt.err); got != tt.want {
				t.Fatalf("translateWriteError = %v, want %v", got, tt.want)
			}
		})
	}
}
