package host

import (
	"context"

	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/protocol"
)

// Loopback is an in-process delegate backed by a Handler. With Frame set,
// every request and response goes through the wire frame encoding first,
// the same bytes a network transport would carry.
type Loopback struct {
	Handler *Handler
	Frame   bool
}

// Call implements protocol.Delegate.
func (l Loopback) Call(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	if !l.Frame {
		return l.Handler.Handle(ctx, req)
	}

	in, err := req.MarshalBinary()
	if err != nil {
		return nil, protocol.Fail(req, err)
	}
	var decoded protocol.Request
	if err := decoded.UnmarshalBinary(in); err != nil {
		return nil, protocol.Fail(req, err)
	}

	var out []byte
	resp, herr := l.Handler.Handle(ctx, &decoded)
	if herr != nil {
		out, err = protocol.MarshalError(herr)
	} else {
		out, err = resp.MarshalBinary()
	}
	if err != nil {
		return nil, protocol.Fail(req, err)
	}

	resp, err = protocol.UnmarshalResponse(out)
	if err != nil {
		return nil, protocol.Fail(req, err)
	}
	return resp, nil
}
