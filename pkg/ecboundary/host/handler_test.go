package host_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/codec"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/curve"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/curves/pallas"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/curves/secp256k1"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/group/grouptest"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/host"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/logging"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/protocol"
)

// mislabeled declares the wrong tag for Pallas.
type mislabeled struct{ pallas.Group }

func (mislabeled) Tag() curve.Tag { return curve.Secp256k1 }

func newDefault(t *testing.T, only ...curve.Tag) *host.Handler {
	t.Helper()
	h, err := host.NewDefault(logging.Discard(), only...)
	require.NoError(t, err)
	return h
}

func msmRequest(t *testing.T, n int, rng *rand.Rand) (*protocol.Request, pallas.Point) {
	t.Helper()
	g := pallas.New()
	bases := grouptest.Affines(g, grouptest.Points(g, n, rng))
	scalars := grouptest.Scalars(g, n, rng)
	ks, err := codec.EncodeScalars(scalars, g.ScalarSize())
	require.NoError(t, err)
	req := &protocol.Request{
		Op:      protocol.VariableBaseMSM,
		Curve:   curve.Pallas,
		Buffers: [][]byte{codec.EncodeAffines(g, bases), ks},
	}
	return req, grouptest.NaiveMSM(g, bases, scalars)
}

func TestNewDefault(t *testing.T) {
	require.Equal(t, curve.Tags(), newDefault(t).Tags())

	h := newDefault(t, curve.Ed25519, curve.Pallas)
	require.Equal(t, []curve.Tag{curve.Pallas, curve.Ed25519}, h.Tags())
	require.True(t, h.Supports(curve.Pallas))
	require.False(t, h.Supports(curve.Secp256k1))

	_, err := host.NewDefault(nil, curve.Tag(42))
	require.ErrorIs(t, err, curve.ErrUnsupportedCurve)
}

func TestRegister(t *testing.T) {
	h := host.NewHandler(logging.Discard())
	require.NoError(t, host.Register(h, pallas.New()))
	require.ErrorIs(t, host.Register(h, pallas.New()), host.ErrAlreadyRegistered)
	require.ErrorIs(t, host.Register(h, mislabeled{}), curve.ErrUnsupportedCurve)
	require.Equal(t, []curve.Tag{curve.Pallas}, h.Tags())
}

func TestHandleMSM(t *testing.T) {
	g := pallas.New()
	req, want := msmRequest(t, 17, rand.New(rand.NewSource(1)))

	resp, err := newDefault(t).Handle(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Buffers, 1)
	got, err := codec.DecodeOne(resp.Buffers[0], g.ProjectiveSize(), g.DecodeProjective)
	require.NoError(t, err)
	require.True(t, g.Equal(want, got))
}

func TestHandleBatchNormalize(t *testing.T) {
	g := secp256k1.New()
	points := grouptest.Points(g, 9, rand.New(rand.NewSource(2)))
	req := &protocol.Request{
		Op:      protocol.BatchNormalize,
		Curve:   curve.Secp256k1,
		Buffers: [][]byte{codec.EncodeProjectives(g, points)},
	}

	resp, err := newDefault(t).Handle(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, resp.Buffers, 1)
	out, err := codec.DecodeProjectives(g, resp.Buffers[0])
	require.NoError(t, err)
	require.Len(t, out, len(points))
	for i := range points {
		require.True(t, g.Equal(points[i], out[i]), "point %d", i)
	}
}

func TestHandleErrors(t *testing.T) {
	valid, _ := msmRequest(t, 3, rand.New(rand.NewSource(3)))
	h := newDefault(t, curve.Pallas)

	tests := []struct {
		name string
		req  *protocol.Request
		want error
	}{
		{
			name: "unknown operation",
			req:  &protocol.Request{Op: protocol.Operation(9), Curve: curve.Pallas},
			want: protocol.ErrUnsupportedOperation,
		},
		{
			name: "fixed base msm",
			req:  &protocol.Request{Op: protocol.FixedBaseMSM, Curve: curve.Pallas, Buffers: make([][]byte, 1)},
			want: protocol.ErrUnsupportedOperation,
		},
		{
			name: "unregistered curve",
			req:  &protocol.Request{Op: protocol.BatchNormalize, Curve: curve.Secp256k1, Buffers: make([][]byte, 1)},
			want: curve.ErrUnsupportedCurve,
		},
		{
			name: "missing buffer",
			req:  &protocol.Request{Op: protocol.VariableBaseMSM, Curve: curve.Pallas, Buffers: valid.Buffers[:1]},
			want: protocol.ErrBadArguments,
		},
		{
			name: "partial base",
			req: &protocol.Request{Op: protocol.VariableBaseMSM, Curve: curve.Pallas,
				Buffers: [][]byte{valid.Buffers[0][1:], valid.Buffers[1]}},
			want: codec.ErrShortBuffer,
		},
		{
			name: "scalar count",
			req: &protocol.Request{Op: protocol.VariableBaseMSM, Curve: curve.Pallas,
				Buffers: [][]byte{valid.Buffers[0], valid.Buffers[1][:64]}},
			want: protocol.ErrBadArguments,
		},
		{
			name: "partial projective",
			req: &protocol.Request{Op: protocol.BatchNormalize, Curve: curve.Pallas,
				Buffers: [][]byte{make([]byte, 95)}},
			want: codec.ErrShortBuffer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := h.Handle(context.Background(), tt.req)
			require.Nil(t, resp)
			require.ErrorIs(t, err, tt.want)

			var he *protocol.HostError
			require.True(t, errors.As(err, &he))
			require.Equal(t, tt.req.Op, he.Op)
			require.Equal(t, tt.req.Curve, he.Curve)
		})
	}
}

func TestHandleNilRequest(t *testing.T) {
	_, err := newDefault(t).Handle(context.Background(), nil)
	require.ErrorIs(t, err, protocol.ErrBadArguments)
}

func TestHandleCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req, _ := msmRequest(t, 1, rand.New(rand.NewSource(4)))
	_, err := newDefault(t).Handle(ctx, req)
	require.ErrorIs(t, err, context.Canceled)
}

func TestHandleEmpty(t *testing.T) {
	g := pallas.New()
	h := newDefault(t)

	resp, err := h.Handle(context.Background(), &protocol.Request{
		Op: protocol.VariableBaseMSM, Curve: curve.Pallas, Buffers: [][]byte{nil, nil},
	})
	require.NoError(t, err)
	p, err := codec.DecodeOne(resp.Buffers[0], g.ProjectiveSize(), g.DecodeProjective)
	require.NoError(t, err)
	require.True(t, g.IsIdentity(p))

	resp, err = h.Handle(context.Background(), &protocol.Request{
		Op: protocol.BatchNormalize, Curve: curve.Pallas, Buffers: [][]byte{nil},
	})
	require.NoError(t, err)
	require.Empty(t, resp.Buffers[0])
}

func TestHandleConcurrent(t *testing.T) {
	h := newDefault(t)
	reqs := make([]*protocol.Request, 8)
	wants := make([]pallas.Point, len(reqs))
	for i := range reqs {
		reqs[i], wants[i] = msmRequest(t, 8, rand.New(rand.NewSource(int64(100+i))))
	}

	var eg errgroup.Group
	for i := range reqs {
		eg.Go(func() error {
			resp, err := h.Call(context.Background(), reqs[i])
			if err != nil {
				return err
			}
			g := pallas.New()
			got, err := codec.DecodeOne(resp.Buffers[0], g.ProjectiveSize(), g.DecodeProjective)
			if err != nil {
				return err
			}
			if !g.Equal(wants[i], got) {
				return errors.New("msm mismatch")
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())
}

func TestLoopbackFrame(t *testing.T) {
	g := pallas.New()
	h := newDefault(t)
	req, want := msmRequest(t, 5, rand.New(rand.NewSource(5)))

	for _, frame := range []bool{false, true} {
		lb := host.Loopback{Handler: h, Frame: frame}
		resp, err := lb.Call(context.Background(), req)
		require.NoError(t, err)
		got, err := codec.DecodeOne(resp.Buffers[0], g.ProjectiveSize(), g.DecodeProjective)
		require.NoError(t, err)
		require.True(t, g.Equal(want, got))

		_, err = lb.Call(context.Background(), &protocol.Request{Op: protocol.FixedBaseMSM, Curve: curve.Pallas})
		require.ErrorIs(t, err, protocol.ErrUnsupportedOperation)
		var he *protocol.HostError
		require.True(t, errors.As(err, &he))
		require.Equal(t, protocol.FixedBaseMSM, he.Op)
	}
}

func TestLoopbackFrameKeepsKind(t *testing.T) {
	req := &protocol.Request{
		Op:      protocol.VariableBaseMSM,
		Curve:   curve.Pallas,
		Buffers: [][]byte{make([]byte, pallas.AffineSize), make([]byte, 33)},
	}
	_, err := host.Loopback{Handler: newDefault(t), Frame: true}.Call(context.Background(), req)
	require.ErrorIs(t, err, codec.ErrShortBuffer)
}
