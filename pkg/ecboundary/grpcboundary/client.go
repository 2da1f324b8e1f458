package grpcboundary

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/protocol"
)

// Client implements protocol.Delegate over the Boundary gRPC service.
type Client struct {
	cc     *grpc.ClientConn
	client BoundaryClient

	// Timeout applies per call when non-zero, on top of the caller's
	// context.
	Timeout time.Duration
}

type DialOptions struct {
	// Timeout applies to the initial dial when non-zero.
	Timeout time.Duration

	// MaxMsgBytes sets both send/recv max sizes when non-zero.
	MaxMsgBytes int
}

func Dial(target string, opts DialOptions) (*Client, error) {
	dialOpts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}
	if opts.MaxMsgBytes > 0 {
		dialOpts = append(dialOpts,
			grpc.WithDefaultCallOptions(
				grpc.MaxCallRecvMsgSize(opts.MaxMsgBytes),
				grpc.MaxCallSendMsgSize(opts.MaxMsgBytes),
			),
		)
	}

	ctx := context.Background()
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	cc, err := grpc.DialContext(ctx, target, dialOpts...)
	if err != nil {
		return nil, err
	}
	return NewClient(cc), nil
}

// NewClient wraps an established connection. Close closes cc.
func NewClient(cc *grpc.ClientConn) *Client {
	return &Client{cc: cc, client: NewBoundaryClient(cc)}
}

func (c *Client) Close() error {
	if c == nil || c.cc == nil {
		return nil
	}
	return c.cc.Close()
}

// Call implements protocol.Delegate. Failures are *protocol.HostError
// values whose cause matches the sentinel the host reported.
func (c *Client) Call(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	in, err := req.MarshalBinary()
	if err != nil {
		return nil, protocol.Fail(req, err)
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	reply, err := c.client.Call(ctx, wrapperspb.Bytes(in))
	if err != nil {
		return nil, mapRPC(req, err)
	}
	resp, err := protocol.UnmarshalResponse(reply.GetValue())
	if err != nil {
		return nil, protocol.Fail(req, err)
	}
	return resp, nil
}
