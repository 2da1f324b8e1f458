package grpcboundary

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/codec"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/curve"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/protocol"
)

// invalidArgumentKinds share codes.InvalidArgument and are told apart by
// their sentinel text in the status message. BadArguments is last because
// it is the default.
var invalidArgumentKinds = []protocol.Kind{
	protocol.KindShortBuffer,
	protocol.KindTrailingBytes,
	protocol.KindInvalidEncoding,
	protocol.KindScalarRange,
	protocol.KindBadArguments,
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, protocol.ErrUnsupportedOperation):
		return status.Error(codes.Unimplemented, err.Error())
	case errors.Is(err, curve.ErrUnsupportedCurve):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, protocol.ErrBadArguments),
		errors.Is(err, protocol.ErrMalformedFrame),
		errors.Is(err, codec.ErrShortBuffer),
		errors.Is(err, codec.ErrTrailingBytes),
		errors.Is(err, codec.ErrInvalidEncoding),
		errors.Is(err, codec.ErrScalarRange):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// mapRPC turns a failed RPC for req into a *protocol.HostError whose cause
// matches the sentinel the server reported.
func mapRPC(req *protocol.Request, err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return protocol.Fail(req, err)
	}

	var cause error
	switch st.Code() {
	case codes.Unimplemented:
		cause = protocol.RemoteError(protocol.KindUnsupportedOperation, st.Message())
	case codes.NotFound:
		cause = protocol.RemoteError(protocol.KindUnsupportedCurve, st.Message())
	case codes.InvalidArgument:
		cause = protocol.RemoteError(invalidArgumentKind(st.Message()), st.Message())
	case codes.Canceled:
		cause = fmt.Errorf("%w: %s", context.Canceled, st.Message())
	case codes.DeadlineExceeded:
		cause = fmt.Errorf("%w: %s", context.DeadlineExceeded, st.Message())
	default:
		cause = err
	}
	return protocol.Fail(req, cause)
}

func invalidArgumentKind(msg string) protocol.Kind {
	for _, k := range invalidArgumentKinds {
		if strings.Contains(msg, k.Sentinel().Error()) {
			return k
		}
	}
	return protocol.KindBadArguments
}
