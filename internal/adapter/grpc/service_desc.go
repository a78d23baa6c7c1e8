package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully-qualified gRPC service name
const ServiceName = "harvestflow.v1.PlannerService"

// Full method names, as they appear in grpc.UnaryServerInfo.FullMethod
const (
	PlannerService_AllocateOnce_FullMethodName = "/" + ServiceName + "/AllocateOnce"
	PlannerService_Simulate_FullMethodName     = "/" + ServiceName + "/Simulate"
	PlannerService_ListCatalogs_FullMethodName = "/" + ServiceName + "/ListCatalogs"
)

// PlannerServiceServer is the server API for the planner service.
// Requests and responses are google.protobuf.Struct messages; see messages.go
// for the field layout of each method.
type PlannerServiceServer interface {
	AllocateOnce(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Simulate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListCatalogs(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterPlannerServiceServer registers srv on s
func RegisterPlannerServiceServer(s grpc.ServiceRegistrar, srv PlannerServiceServer) {
	s.RegisterService(&PlannerService_ServiceDesc, srv)
}

// PlannerService_ServiceDesc is the grpc.ServiceDesc for the planner service
var PlannerService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PlannerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "AllocateOnce",
			Handler:    plannerServiceAllocateOnceHandler,
		},
		{
			MethodName: "Simulate",
			Handler:    plannerServiceSimulateHandler,
		},
		{
			MethodName: "ListCatalogs",
			Handler:    plannerServiceListCatalogsHandler,
		},
	},
	Streams: []grpc.StreamDesc{},
}

// unaryMethod adapts one PlannerServiceServer method to a grpc method handler
func unaryMethod(
	fullMethod string,
	call func(PlannerServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error),
) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PlannerServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(PlannerServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var (
	plannerServiceAllocateOnceHandler = unaryMethod(PlannerService_AllocateOnce_FullMethodName, PlannerServiceServer.AllocateOnce)
	plannerServiceSimulateHandler     = unaryMethod(PlannerService_Simulate_FullMethodName, PlannerServiceServer.Simulate)
	plannerServiceListCatalogsHandler = unaryMethod(PlannerService_ListCatalogs_FullMethodName, PlannerServiceServer.ListCatalogs)
)
