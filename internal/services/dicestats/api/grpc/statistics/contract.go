// Package statistics serves dicestats.v1.StatisticsService.
//
// Requests and responses travel as google.protobuf.Struct messages so the
// service needs no generated stubs; codec.go maps them to typed values.
package statistics

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name, also used for health.
const ServiceName = "dicestats.v1.StatisticsService"

// Full method names.
const (
	CalculateStatisticMethod = "/" + ServiceName + "/CalculateStatistic"
	RollExpressionMethod     = "/" + ServiceName + "/RollExpression"
	GetRollMethod            = "/" + ServiceName + "/GetRoll"
)

// StatisticsServer is the server API for StatisticsService.
type StatisticsServer interface {
	CalculateStatistic(context.Context, *structpb.Struct) (*structpb.Struct, error)
	RollExpression(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetRoll(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// UnimplementedStatisticsServer returns Unimplemented for every method.
type UnimplementedStatisticsServer struct{}

func (UnimplementedStatisticsServer) CalculateStatistic(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method CalculateStatistic not implemented")
}

func (UnimplementedStatisticsServer) RollExpression(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method RollExpression not implemented")
}

func (UnimplementedStatisticsServer) GetRoll(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetRoll not implemented")
}

// RegisterStatisticsServer registers srv on s.
func RegisterStatisticsServer(s grpc.ServiceRegistrar, srv StatisticsServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// ServiceDesc describes StatisticsService for grpc.ServiceRegistrar.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*StatisticsServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CalculateStatistic", Handler: unaryHandler(CalculateStatisticMethod, StatisticsServer.CalculateStatistic)},
		{MethodName: "RollExpression", Handler: unaryHandler(RollExpressionMethod, StatisticsServer.RollExpression)},
		{MethodName: "GetRoll", Handler: unaryHandler(GetRollMethod, StatisticsServer.GetRoll)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "dicestats/v1/statistics.proto",
}

type unaryMethod func(StatisticsServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, method unaryMethod) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return method(srv.(StatisticsServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return method(srv.(StatisticsServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}
