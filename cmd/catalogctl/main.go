// catalogctl - консольный клиент сервиса CatalogLookup.
//
//	catalogctl [-addr localhost:9092] [-timeout 3s] movie <id>
//	catalogctl movie-exists|director-exists|genre-exists <id>
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"catalog-service/internal/clients"
	"catalog-service/internal/logging"
)

type clientFactory func(addr string, logger *slog.Logger) (*clients.CatalogClient, error)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	newClient := func(addr string, logger *slog.Logger) (*clients.CatalogClient, error) {
		return clients.NewCatalogClient(addr, logger)
	}
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr, newClient))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, newClient clientFactory) int {
	fs := flag.NewFlagSet("catalogctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	addr := fs.String("addr", "localhost:9092", "CatalogLookup gRPC address")
	timeout := fs.Duration("timeout", clients.DefaultCallTimeout, "per-call timeout")
	verbose := fs.Bool("v", false, "debug logging to stderr")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: catalogctl [flags] <movie|movie-exists|director-exists|genre-exists> <id>")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return 2
	}
	command := fs.Arg(0)
	id, err := strconv.ParseInt(fs.Arg(1), 10, 64)
	if err != nil {
		fmt.Fprintf(stderr, "Error: id must be an integer: %q\n", fs.Arg(1))
		return 2
	}

	level := "error"
	if *verbose {
		level = "debug"
	}
	logger := logging.New(logging.Config{Level: level, Format: logging.FormatText, Writer: stderr})

	client, err := newClient(*addr, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer client.Close()
	client.WithCallTimeout(*timeout)

	var result interface{}
	switch command {
	case "movie":
		result, err = client.GetMovieInfo(ctx, id)
	case "movie-exists":
		result, err = existsResult(client.CheckMovieExists(ctx, id))
	case "director-exists":
		result, err = existsResult(client.CheckDirectorExists(ctx, id))
	case "genre-exists":
		result, err = existsResult(client.CheckGenreExists(ctx, id))
	default:
		fmt.Fprintf(stderr, "Error: unknown command %q\n", command)
		fs.Usage()
		return 2
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func existsResult(exists bool, err error) (interface{}, error) {
	if err != nil {
		return nil, err
	}
	return map[string]bool{"exists": exists}, nil
}

