package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified name of the provider service
const ServiceName = "akwam.v1.ProviderService"

// Messages are google.protobuf.Struct values whose fields mirror the JSON shape
// of the models package, so hosts can consume them without generated stubs.

// ProviderServiceServer is the server API for the provider service
type ProviderServiceServer interface {
	GetInfo(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetMainPage(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Search(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Load(context.Context, *structpb.Struct) (*structpb.Struct, error)
	LoadLinks(*structpb.Struct, grpc.ServerStreamingServer[structpb.Struct]) error
}

func fullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

type unaryCall func(ProviderServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(method string, call unaryCall) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ProviderServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod(method),
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ProviderServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func loadLinksHandler(srv any, stream grpc.ServerStream) error {
	in := new(structpb.Struct)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(ProviderServiceServer).LoadLinks(in, &grpc.GenericServerStream[structpb.Struct, structpb.Struct]{ServerStream: stream})
}

// ProviderService_ServiceDesc is the grpc.ServiceDesc for the provider service
var ProviderService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ProviderServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetInfo",
			Handler:    unaryHandler("GetInfo", ProviderServiceServer.GetInfo),
		},
		{
			MethodName: "GetMainPage",
			Handler:    unaryHandler("GetMainPage", ProviderServiceServer.GetMainPage),
		},
		{
			MethodName: "Search",
			Handler:    unaryHandler("Search", ProviderServiceServer.Search),
		},
		{
			MethodName: "Load",
			Handler:    unaryHandler("Load", ProviderServiceServer.Load),
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "LoadLinks",
			Handler:       loadLinksHandler,
			ServerStreams: true,
		},
	},
	Metadata: "akwam/v1/provider.proto",
}

// RegisterProviderServiceServer registers srv on s
func RegisterProviderServiceServer(s grpc.ServiceRegistrar, srv ProviderServiceServer) {
	s.RegisterService(&ProviderService_ServiceDesc, srv)
}

// ProviderServiceClient is the client API for the provider service
type ProviderServiceClient interface {
	GetInfo(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetMainPage(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Search(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Load(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	LoadLinks(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (grpc.ServerStreamingClient[structpb.Struct], error)
}

type providerServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewProviderServiceClient creates a client for the provider service
func NewProviderServiceClient(cc grpc.ClientConnInterface) ProviderServiceClient {
	return &providerServiceClient{cc: cc}
}

func (c *providerServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *providerServiceClient) GetInfo(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "GetInfo", in, opts)
}

func (c *providerServiceClient) GetMainPage(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "GetMainPage", in, opts)
}

func (c *providerServiceClient) Search(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "Search", in, opts)
}

func (c *providerServiceClient) Load(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, "Load", in, opts)
}

func (c *providerServiceClient) LoadLinks(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (grpc.ServerStreamingClient[structpb.Struct], error) {
	stream, err := c.cc.NewStream(ctx, &ProviderService_ServiceDesc.Streams[0], fullMethod("LoadLinks"), opts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[structpb.Struct, structpb.Struct]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}
