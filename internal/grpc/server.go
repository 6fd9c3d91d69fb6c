// internal/grpc/server.go
package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"catalog-service/internal/domain"
	"catalog-service/internal/logging"
	"catalog-service/internal/store"

	"github.com/google/uuid"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Server реализует CatalogLookupServer поверх хранилищ каталога.
type Server struct {
	catalog *store.Catalog
	logger  *slog.Logger
}

// NewServer создает новый экземпляр gRPC сервера каталога.
func NewServer(catalog *store.Catalog, logger *slog.Logger) *Server {
	return &Server{
		catalog: catalog,
		logger:  logger,
	}
}

// NewGRPCServer собирает grpc.Server с CatalogLookup, health и reflection.
func NewGRPCServer(catalog *store.Catalog, logger *slog.Logger, opts ...grpclib.ServerOption) (*grpclib.Server, *health.Server) {
	opts = append([]grpclib.ServerOption{grpclib.ChainUnaryInterceptor(loggingInterceptor(logger))}, opts...)
	srv := grpclib.NewServer(opts...)
	RegisterCatalogLookupServer(srv, NewServer(catalog, logger))

	healthSrv := health.NewServer()
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthSrv.SetServingStatus(CatalogLookupServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, healthSrv)

	reflection.Register(srv)
	return srv, healthSrv
}

// domainMovieToStruct преобразует фильм в google.protobuf.Struct с полями HTTP-проекции.
func domainMovieToStruct(movie *domain.Movie) (*structpb.Struct, error) {
	schema := domain.DumpMovie(movie)
	return structpb.NewStruct(map[string]interface{}{
		"id":          schema.ID,
		"title":       schema.Title,
		"description": schema.Description,
		"trailer":     schema.Trailer,
		"year":        valueOrNil(schema.Year),
		"rating":      valueOrNil(schema.Rating),
		"director_id": valueOrNil(schema.DirectorID),
		"genre_id":    valueOrNil(schema.GenreID),
	})
}

func valueOrNil[T any](p *T) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

// GetMovieInfo реализует gRPC метод GetMovieInfo.
func (s *Server) GetMovieInfo(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	movieID := req.GetValue()
	s.log(ctx).InfoContext(ctx, "gRPC GetMovieInfo called", slog.Int64("movie_id", movieID))

	if movieID <= 0 {
		s.log(ctx).WarnContext(ctx, "gRPC GetMovieInfo called with invalid movie_id", slog.Int64("movie_id", movieID))
		return nil, status.Errorf(codes.InvalidArgument, "movie_id must be positive")
	}

	movie, err := s.catalog.Movies.GetByID(ctx, movieID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.log(ctx).WarnContext(ctx, "Movie not found by ID for GetMovieInfo", slog.Int64("movie_id", movieID))
			return nil, status.Errorf(codes.NotFound, "movie not found with ID %d", movieID)
		}
		s.log(ctx).ErrorContext(ctx, "Failed to get movie by ID from store for GetMovieInfo", slog.Int64("movie_id", movieID), slog.String("error", err.Error()))
		return nil, status.Errorf(codes.Internal, "failed to retrieve movie details")
	}

	info, err := domainMovieToStruct(movie)
	if err != nil {
		s.log(ctx).ErrorContext(ctx, "Failed to convert movie to protobuf struct", slog.Int64("movie_id", movieID), slog.String("error", err.Error()))
		return nil, status.Errorf(codes.Internal, "failed to encode movie details")
	}
	return info, nil
}

// CheckMovieExists реализует gRPC метод CheckMovieExists.
func (s *Server) CheckMovieExists(ctx context.Context, req *wrapperspb.Int64Value) (*wrapperspb.BoolValue, error) {
	return s.checkExists(ctx, "movie", req.GetValue(), func(ctx context.Context, id int64) error {
		_, err := s.catalog.Movies.GetByID(ctx, id)
		return err
	})
}

func (s *Server) CheckDirectorExists(ctx context.Context, req *wrapperspb.Int64Value) (*wrapperspb.BoolValue, error) {
	return s.checkExists(ctx, "director", req.GetValue(), func(ctx context.Context, id int64) error {
		_, err := s.catalog.Directors.GetByID(ctx, id)
		return err
	})
}

func (s *Server) CheckGenreExists(ctx context.Context, req *wrapperspb.Int64Value) (*wrapperspb.BoolValue, error) {
	return s.checkExists(ctx, "genre", req.GetValue(), func(ctx context.Context, id int64) error {
		_, err := s.catalog.Genres.GetByID(ctx, id)
		return err
	})
}

// checkExists отвечает false на ErrNotFound; прочие ошибки хранилища дают codes.Internal.
func (s *Server) checkExists(ctx context.Context, entity string, id int64, get func(context.Context, int64) error) (*wrapperspb.BoolValue, error) {
	logger := s.log(ctx).With(slog.String("entity", entity), slog.Int64("id", id))
	if id <= 0 {
		logger.WarnContext(ctx, "gRPC existence check called with invalid id")
		return nil, status.Errorf(codes.InvalidArgument, "%s id must be positive", entity)
	}
	if err := get(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			logger.InfoContext(ctx, "Record does not exist (checked via gRPC)")
			return wrapperspb.Bool(false), nil
		}
		logger.ErrorContext(ctx, "Failed to check record existence in store", slog.String("error", err.Error()))
		return nil, status.Errorf(codes.Internal, "failed to check %s existence", entity)
	}
	logger.InfoContext(ctx, "Record exists (checked via gRPC)")
	return wrapperspb.Bool(true), nil
}

func (s *Server) log(ctx context.Context) *slog.Logger {
	return logging.WithContext(ctx, s.logger)
}

// loggingInterceptor проставляет request_id из метаданных x-request-id (или новый UUID)
// и пишет итог каждого вызова.
func loggingInterceptor(logger *slog.Logger) grpclib.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpclib.UnaryServerInfo, handler grpclib.UnaryHandler) (interface{}, error) {
		requestID := ""
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if values := md.Get("x-request-id"); len(values) > 0 {
				requestID = values[0]
			}
		}
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx = logging.ContextWithRequestID(ctx, requestID)

		start := time.Now()
		resp, err := handler(ctx, req)
		logging.WithContext(ctx, logger).InfoContext(ctx, "grpc call completed",
			slog.String("method", info.FullMethod),
			slog.String("code", status.Code(err).String()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return resp, err
	}
}
