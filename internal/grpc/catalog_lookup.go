// internal/grpc/catalog_lookup.go
package grpc

import (
	"context"
	"fmt"

	grpclib "google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Сервис catalog.v1.CatalogLookup описан вручную поверх well-known типов protobuf,
// поэтому отдельного шага генерации кода нет.
const (
	CatalogLookupServiceName = "catalog.v1.CatalogLookup"
	catalogLookupProtoFile   = "catalog/v1/catalog_lookup.proto"

	CatalogLookup_GetMovieInfo_FullMethodName        = "/catalog.v1.CatalogLookup/GetMovieInfo"
	CatalogLookup_CheckMovieExists_FullMethodName    = "/catalog.v1.CatalogLookup/CheckMovieExists"
	CatalogLookup_CheckDirectorExists_FullMethodName = "/catalog.v1.CatalogLookup/CheckDirectorExists"
	CatalogLookup_CheckGenreExists_FullMethodName    = "/catalog.v1.CatalogLookup/CheckGenreExists"
)

// CatalogLookupServer - серверная часть сервиса CatalogLookup.
type CatalogLookupServer interface {
	// GetMovieInfo возвращает фильм в той же проекции, что и HTTP API.
	GetMovieInfo(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error)
	CheckMovieExists(context.Context, *wrapperspb.Int64Value) (*wrapperspb.BoolValue, error)
	CheckDirectorExists(context.Context, *wrapperspb.Int64Value) (*wrapperspb.BoolValue, error)
	CheckGenreExists(context.Context, *wrapperspb.Int64Value) (*wrapperspb.BoolValue, error)
}

// RegisterCatalogLookupServer регистрирует реализацию на gRPC сервере.
func RegisterCatalogLookupServer(s grpclib.ServiceRegistrar, srv CatalogLookupServer) {
	s.RegisterService(&CatalogLookup_ServiceDesc, srv)
}

// unaryHandler строит grpc.MethodHandler для метода с запросом Int64Value.
func unaryHandler[Resp any](fullMethod string, call func(CatalogLookupServer, context.Context, *wrapperspb.Int64Value) (Resp, error)) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
		in := new(wrapperspb.Int64Value)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CatalogLookupServer), ctx, in)
		}
		info := &grpclib.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(CatalogLookupServer), ctx, req.(*wrapperspb.Int64Value))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// CatalogLookup_ServiceDesc описывает сервис для grpc.Server.RegisterService.
var CatalogLookup_ServiceDesc = grpclib.ServiceDesc{
	ServiceName: CatalogLookupServiceName,
	HandlerType: (*CatalogLookupServer)(nil),
	Methods: []grpclib.MethodDesc{
		{
			MethodName: "GetMovieInfo",
			Handler:    unaryHandler(CatalogLookup_GetMovieInfo_FullMethodName, CatalogLookupServer.GetMovieInfo),
		},
		{
			MethodName: "CheckMovieExists",
			Handler:    unaryHandler(CatalogLookup_CheckMovieExists_FullMethodName, CatalogLookupServer.CheckMovieExists),
		},
		{
			MethodName: "CheckDirectorExists",
			Handler:    unaryHandler(CatalogLookup_CheckDirectorExists_FullMethodName, CatalogLookupServer.CheckDirectorExists),
		},
		{
			MethodName: "CheckGenreExists",
			Handler:    unaryHandler(CatalogLookup_CheckGenreExists_FullMethodName, CatalogLookupServer.CheckGenreExists),
		},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: catalogLookupProtoFile,
}

// Дескриптор файла регистрируется в protoregistry, чтобы reflection мог
// отдать описание сервиса клиентам вроде grpcurl.
func init() {
	if err := registerCatalogLookupFile(); err != nil {
		panic(err)
	}
}

func registerCatalogLookupFile() error {
	method := func(name, in, out string) *descriptorpb.MethodDescriptorProto {
		return &descriptorpb.MethodDescriptorProto{
			Name:       proto.String(name),
			InputType:  proto.String(in),
			OutputType: proto.String(out),
		}
	}
	const (
		int64Value = ".google.protobuf.Int64Value"
		boolValue  = ".google.protobuf.BoolValue"
	)
	file := &descriptorpb.FileDescriptorProto{
		Name:    proto.String(catalogLookupProtoFile),
		Package: proto.String("catalog.v1"),
		Dependency: []string{
			"google/protobuf/struct.proto",
			"google/protobuf/wrappers.proto",
		},
		Syntax: proto.String("proto3"),
		Service: []*descriptorpb.ServiceDescriptorProto{{
			Name: proto.String("CatalogLookup"),
			Method: []*descriptorpb.MethodDescriptorProto{
				method("GetMovieInfo", int64Value, ".google.protobuf.Struct"),
				method("CheckMovieExists", int64Value, boolValue),
				method("CheckDirectorExists", int64Value, boolValue),
				method("CheckGenreExists", int64Value, boolValue),
			},
		}},
	}
	fd, err := protodesc.NewFile(file, protoregistry.GlobalFiles)
	if err != nil {
		return fmt.Errorf("failed to build %s descriptor: %w", catalogLookupProtoFile, err)
	}
	return protoregistry.GlobalFiles.RegisterFile(fd)
}
