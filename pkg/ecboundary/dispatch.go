package ecboundary

import (
	"context"
	"fmt"
	"math/big"

	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/codec"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/group"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/protocol"
)

const (
	pathDelegate = "delegate"
	pathFallback = "fallback"
	pathNone     = "none"
)

// MultiScalarMul returns sum(scalars[i] * bases[i]) in g.
//
// With a delegate installed the inputs are encoded with g's boundary codec
// and sent across; a delegate error is returned as is. Without one, the
// group's reference arithmetic runs if its fallback is enabled and
// ErrNoDelegate is returned otherwise.
//
// bases and scalars must have the same length unless the Boundary was
// created with Config.TruncateMismatched. Scalars must be non-negative and
// fit in g.ScalarSize() bytes. An empty input yields the identity.
func MultiScalarMul[A, P any](ctx context.Context, b *Boundary, g group.Group[A, P], bases []A, scalars []*big.Int) (P, error) {
	var zero P
	if len(bases) != len(scalars) {
		if !b.truncate() {
			return zero, fmt.Errorf("%w: %d bases, %d scalars", ErrLengthMismatch, len(bases), len(scalars))
		}
		n := min(len(bases), len(scalars))
		bases, scalars = bases[:n], scalars[:n]
	}
	for i, k := range scalars {
		if err := codec.CheckScalar(k, g.ScalarSize()); err != nil {
			return zero, fmt.Errorf("scalar %d: %w", i, err)
		}
	}

	d, fallback := b.route(g)
	trace(ctx, b, g, protocol.VariableBaseMSM, len(bases), d, fallback)
	switch {
	case d != nil:
		if len(bases) == 0 {
			return g.Identity(), nil
		}
		return delegateMSM(ctx, d, g, bases, scalars)
	case fallback:
		return g.MultiScalarMul(bases, scalars), nil
	default:
		return zero, fmt.Errorf("%w: %s for %s", ErrNoDelegate, protocol.VariableBaseMSM, g.Name())
	}
}

// BatchNormalize returns points rescaled to Z = 1 (or the backend's
// equivalent normal form), in input order. points is not modified.
// Delegate and fallback selection follow MultiScalarMul.
func BatchNormalize[A, P any](ctx context.Context, b *Boundary, g group.Group[A, P], points []P) ([]P, error) {
	d, fallback := b.route(g)
	trace(ctx, b, g, protocol.BatchNormalize, len(points), d, fallback)
	switch {
	case d != nil:
		if len(points) == 0 {
			return []P{}, nil
		}
		return delegateNormalize(ctx, d, g, points)
	case fallback:
		return g.BatchNormalize(points), nil
	default:
		return nil, fmt.Errorf("%w: %s for %s", ErrNoDelegate, protocol.BatchNormalize, g.Name())
	}
}

func delegateMSM[A, P any](ctx context.Context, d protocol.Delegate, g group.Group[A, P], bases []A, scalars []*big.Int) (P, error) {
	var zero P
	ks, err := codec.EncodeScalars(scalars, g.ScalarSize())
	if err != nil {
		return zero, err
	}
	defer codec.Zeroize(ks)
	resp, err := d.Call(ctx, &protocol.Request{
		Op:      protocol.VariableBaseMSM,
		Curve:   g.Tag(),
		Buffers: [][]byte{codec.EncodeAffines[A](g, bases), ks},
	})
	if err != nil {
		return zero, err
	}
	buf, err := single(resp)
	if err != nil {
		return zero, err
	}
	p, err := codec.DecodeOne(buf, g.ProjectiveSize(), g.DecodeProjective)
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return p, nil
}

func delegateNormalize[A, P any](ctx context.Context, d protocol.Delegate, g group.Group[A, P], points []P) ([]P, error) {
	resp, err := d.Call(ctx, &protocol.Request{
		Op:      protocol.BatchNormalize,
		Curve:   g.Tag(),
		Buffers: [][]byte{codec.EncodeProjectives[P](g, points)},
	})
	if err != nil {
		return nil, err
	}
	buf, err := single(resp)
	if err != nil {
		return nil, err
	}
	if want := len(points) * g.ProjectiveSize(); len(buf) != want {
		return nil, fmt.Errorf("%w: %d bytes, want %d", ErrMalformedResponse, len(buf), want)
	}
	out, err := codec.DecodeProjectives[P](g, buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return out, nil
}

func single(resp *protocol.Response) ([]byte, error) {
	if resp == nil {
		return nil, fmt.Errorf("%w: nil response", ErrMalformedResponse)
	}
	if n := len(resp.Buffers); n != 1 {
		return nil, fmt.Errorf("%w: %d buffers, want 1", ErrMalformedResponse, n)
	}
	return resp.Buffers[0], nil
}

func trace(ctx context.Context, b *Boundary, g group.Descriptor, op protocol.Operation, n int, d protocol.Delegate, fallback bool) {
	path := pathNone
	switch {
	case d != nil:
		path = pathDelegate
	case fallback:
		path = pathFallback
	}
	b.logger().Debug(ctx, "boundary dispatch",
		"op", op.String(), "group", g.Name(), "count", n, "path", path)
}
