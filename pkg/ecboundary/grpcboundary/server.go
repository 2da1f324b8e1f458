package grpcboundary

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/host"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/logging"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/protocol"
)

// Server exposes a host.Handler over the Boundary gRPC service.
type Server struct {
	UnimplementedBoundaryServer
	Handler *host.Handler

	// Logger receives per-call failures at debug level. Nil uses
	// slog.Default().
	Logger logging.Logger
}

func (s *Server) Call(ctx context.Context, in *wrapperspb.BytesValue) (*wrapperspb.BytesValue, error) {
	if s == nil || s.Handler == nil {
		return nil, status.Error(codes.FailedPrecondition, "missing handler")
	}
	var req protocol.Request
	if err := req.UnmarshalBinary(in.GetValue()); err != nil {
		return nil, s.fail(ctx, err)
	}
	resp, err := s.Handler.Handle(ctx, &req)
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	out, err := resp.MarshalBinary()
	if err != nil {
		return nil, s.fail(ctx, err)
	}
	return wrapperspb.Bytes(out), nil
}

func (s *Server) fail(ctx context.Context, err error) error {
	st := mapErr(err)
	logging.Or(s.Logger).Debug(ctx, "boundary rpc failed", "error", err)
	return st
}
