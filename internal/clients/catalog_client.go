// internal/clients/catalog_client.go
package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"catalog-service/internal/domain"
	catalogrpc "catalog-service/internal/grpc"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// DefaultCallTimeout ограничивает один вызов, если в контексте нет более раннего дедлайна.
const DefaultCallTimeout = 3 * time.Second

// CatalogClient вызывает сервис CatalogLookup по gRPC.
type CatalogClient struct {
	conn        *grpc.ClientConn
	logger      *slog.Logger
	callTimeout time.Duration
}

// NewCatalogClient создает клиент для адреса addr (например, "localhost:9092").
// Соединение устанавливается лениво, при первом вызове. Дополнительные opts
// добавляются после insecure-транспорта (в тестах так подключается bufconn).
func NewCatalogClient(addr string, logger *slog.Logger, opts ...grpc.DialOption) (*CatalogClient, error) {
	logger.Info("Creating CatalogLookup gRPC client", slog.String("address", addr))

	dialOpts := append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, dialOpts...)
	if err != nil {
		logger.Error("Failed to create CatalogLookup gRPC client", slog.String("address", addr), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create catalog client for %s: %w", addr, err)
	}
	return &CatalogClient{conn: conn, logger: logger, callTimeout: DefaultCallTimeout}, nil
}

// WithCallTimeout меняет таймаут одного вызова.
func (c *CatalogClient) WithCallTimeout(d time.Duration) *CatalogClient {
	c.callTimeout = d
	return c
}

// Close закрывает соединение.
func (c *CatalogClient) Close() error {
	return c.conn.Close()
}

// GetMovieInfo возвращает фильм в проекции HTTP API.
func (c *CatalogClient) GetMovieInfo(ctx context.Context, movieID int64) (*domain.MovieSchema, error) {
	out := new(structpb.Struct)
	if err := c.invoke(ctx, catalogrpc.CatalogLookup_GetMovieInfo_FullMethodName, movieID, out); err != nil {
		return nil, err
	}

	raw, err := protojson.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode movie info: %w", err)
	}
	var movie domain.MovieSchema
	if err := json.Unmarshal(raw, &movie); err != nil {
		return nil, fmt.Errorf("failed to decode movie info: %w", err)
	}
	return &movie, nil
}

func (c *CatalogClient) CheckMovieExists(ctx context.Context, movieID int64) (bool, error) {
	return c.checkExists(ctx, catalogrpc.CatalogLookup_CheckMovieExists_FullMethodName, movieID)
}

func (c *CatalogClient) CheckDirectorExists(ctx context.Context, directorID int64) (bool, error) {
	return c.checkExists(ctx, catalogrpc.CatalogLookup_CheckDirectorExists_FullMethodName, directorID)
}

func (c *CatalogClient) CheckGenreExists(ctx context.Context, genreID int64) (bool, error) {
	return c.checkExists(ctx, catalogrpc.CatalogLookup_CheckGenreExists_FullMethodName, genreID)
}

func (c *CatalogClient) checkExists(ctx context.Context, method string, id int64) (bool, error) {
	out := new(wrapperspb.BoolValue)
	if err := c.invoke(ctx, method, id, out); err != nil {
		return false, err
	}
	return out.GetValue(), nil
}

func (c *CatalogClient) invoke(ctx context.Context, method string, id int64, out interface{}) error {
	c.logger.DebugContext(ctx, "Calling CatalogLookup gRPC method", slog.String("method", method), slog.Int64("id", id))

	callCtx, cancel := context.WithTimeout(ctx, c.callTimeout)
	defer cancel()

	if err := c.conn.Invoke(callCtx, method, wrapperspb.Int64(id), out); err != nil {
		st, _ := status.FromError(err)
		c.logger.ErrorContext(ctx, "CatalogLookup gRPC call failed",
			slog.String("method", method),
			slog.Int64("id", id),
			slog.String("code", st.Code().String()),
			slog.String("message", st.Message()))
		return fmt.Errorf("grpc %s failed for id %d: %w", method, id, err)
	}
	return nil
}
