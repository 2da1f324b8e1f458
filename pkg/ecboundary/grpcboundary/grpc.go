// Package grpcboundary carries boundary calls over gRPC.
//
// The service has a single unary method whose request and response are wire
// frames (see package protocol) wrapped in protobuf BytesValue messages, so
// no protoc toolchain is needed:
//
//	service Boundary {
//	  rpc Call(google.protobuf.BytesValue) returns (google.protobuf.BytesValue);
//	}
//
// Server puts a host.Handler behind the service. Client implements
// protocol.Delegate and can be installed on an ecboundary.Boundary.
package grpcboundary

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	serviceName    = "ecboundary.v1.Boundary"
	callFullMethod = "/" + serviceName + "/Call"
)

// BoundaryServer is the server API for the Boundary service.
type BoundaryServer interface {
	Call(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error)
}

// UnimplementedBoundaryServer can be embedded to have forward compatible implementations.
type UnimplementedBoundaryServer struct{}

func (UnimplementedBoundaryServer) Call(context.Context, *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Call not implemented")
}

// RegisterBoundaryServer registers the Boundary service on a gRPC server.
func RegisterBoundaryServer(s grpc.ServiceRegistrar, srv BoundaryServer) {
	s.RegisterService(&Boundary_ServiceDesc, srv)
}

// BoundaryClient is the client API for the Boundary service.
type BoundaryClient interface {
	Call(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
}

type boundaryClient struct{ cc grpc.ClientConnInterface }

func NewBoundaryClient(cc grpc.ClientConnInterface) BoundaryClient { return &boundaryClient{cc: cc} }

func (c *boundaryClient) Call(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	err := c.cc.Invoke(ctx, callFullMethod, in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func _Boundary_Call_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BytesValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BoundaryServer).Call(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: callFullMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BoundaryServer).Call(ctx, req.(*wrapperspb.BytesValue))
	}
	return interceptor(ctx, in, info, handler)
}

// Boundary_ServiceDesc is the grpc.ServiceDesc for the Boundary service.
var Boundary_ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*BoundaryServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Call", Handler: _Boundary_Call_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ecboundary.proto",
}
