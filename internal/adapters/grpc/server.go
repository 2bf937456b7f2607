package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName = "subscriptions.v1.SubscriptionParser"

	ParseEmailMethod    = "/" + ServiceName + "/ParseEmail"
	ParseBatchMethod    = "/" + ServiceName + "/ParseBatch"
	InferCategoryMethod = "/" + ServiceName + "/InferCategory"
)

// SubscriptionParserServer is the server API. Requests and responses are
// google.protobuf.Struct documents; see codec.go for their shape.
type SubscriptionParserServer interface {
	ParseEmail(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ParseBatch(context.Context, *structpb.Struct) (*structpb.Struct, error)
	InferCategory(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterSubscriptionParserServer registers the parser service and reflection.
func RegisterSubscriptionParserServer(s reflection.GRPCServer, impl SubscriptionParserServer) {
	s.RegisterService(&serviceDesc, impl)
	reflection.Register(s)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SubscriptionParserServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ParseEmail", Handler: unaryHandler(ParseEmailMethod, SubscriptionParserServer.ParseEmail)},
		{MethodName: "ParseBatch", Handler: unaryHandler(ParseBatchMethod, SubscriptionParserServer.ParseBatch)},
		{MethodName: "InferCategory", Handler: unaryHandler(InferCategoryMethod, SubscriptionParserServer.InferCategory)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "subscriptions/v1/subscription_parser.proto",
}

type unaryMethod func(SubscriptionParserServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(SubscriptionParserServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(SubscriptionParserServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}
