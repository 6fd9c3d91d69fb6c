package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"strings"
	"testing"

	"catalog-service/internal/clients"
	"catalog-service/internal/domain"
	catalogrpc "catalog-service/internal/grpc"
	"catalog-service/internal/logging"
	"catalog-service/internal/store"

	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"
)

func bufconnFactory(t *testing.T, catalog *store.Catalog) clientFactory {
	t.Helper()
	listener := bufconn.Listen(1 << 20)
	srv, _ := catalogrpc.NewGRPCServer(catalog, logging.Discard())
	go func() {
		_ = srv.Serve(listener)
	}()
	t.Cleanup(srv.Stop)

	return func(_ string, logger *slog.Logger) (*clients.CatalogClient, error) {
		return clients.NewCatalogClient("passthrough:///bufnet", logger,
			grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
				return listener.DialContext(ctx)
			}),
		)
	}
}

func TestRunMovie(t *testing.T) {
	catalog := store.NewMemoryCatalog()
	if err := catalog.Movies.Create(context.Background(), &domain.Movie{Title: "Alien"}); err != nil {
		t.Fatalf("create movie: %v", err)
	}
	factory := bufconnFactory(t, catalog)

	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"movie", "1"}, &stdout, &stderr, factory); code != 0 {
		t.Fatalf("exit code = %d, stderr %q", code, stderr.String())
	}
	var movie domain.MovieSchema
	if err := json.Unmarshal(stdout.Bytes(), &movie); err != nil {
		t.Fatalf("decode output %q: %v", stdout.String(), err)
	}
	if movie.ID != 1 || movie.Title != "Alien" {
		t.Fatalf("unexpected movie %+v", movie)
	}

	stdout.Reset()
	if code := run(context.Background(), []string{"-timeout", "1s", "genre-exists", "3"}, &stdout, &stderr, factory); code != 0 {
		t.Fatalf("exit code = %d, stderr %q", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), `"exists": false`) {
		t.Fatalf("unexpected output %q", stdout.String())
	}
}

func TestRunErrors(t *testing.T) {
	factory := bufconnFactory(t, store.NewMemoryCatalog())
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"missing args", []string{"movie"}, 2},
		{"bad id", []string{"movie", "abc"}, 2},
		{"unknown command", []string{"actor", "1"}, 2},
		{"not found", []string{"movie", "9"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(context.Background(), tt.args, &stdout, &stderr, factory); code != tt.code {
				t.Fatalf("exit code = %d, want %d (stderr %q)", code, tt.code, stderr.String())
			}
			if stderr.Len() == 0 {
				t.Fatal("expected diagnostics on stderr")
			}
		})
	}
}
