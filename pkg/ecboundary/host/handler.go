package host

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/codec"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/curve"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/group"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/logging"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/protocol"
)

// ErrAlreadyRegistered is returned by Register when the tag already has a
// backend.
var ErrAlreadyRegistered = errors.New("host: curve already registered")

// backend is a registered group with its point types erased.
type backend interface {
	name() string
	msm(bases, scalars []byte) ([]byte, error)
	normalize(points []byte) ([]byte, error)
}

// Handler answers boundary requests. It is safe for concurrent use.
type Handler struct {
	log logging.Logger

	mu       sync.RWMutex
	backends map[curve.Tag]backend
}

// NewHandler returns a Handler with no backends. A nil logger uses
// slog.Default().
func NewHandler(logger logging.Logger) *Handler {
	return &Handler{
		log:      logging.Or(logger),
		backends: make(map[curve.Tag]backend),
	}
}

// Register adds g to h under g's declared tag after checking the tag
// against g's invariants.
func Register[A, P any](h *Handler, g group.Group[A, P]) error {
	if err := group.Verify(g); err != nil {
		return fmt.Errorf("register %s: %w", g.Name(), err)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.backends[g.Tag()]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, g.Tag())
	}
	h.backends[g.Tag()] = typed[A, P]{g: g}
	return nil
}

// Tags lists the registered curves in priority order.
func (h *Handler) Tags() []curve.Tag {
	h.mu.RLock()
	defer h.mu.RUnlock()
	tags := make([]curve.Tag, 0, len(h.backends))
	for _, t := range curve.Tags() {
		if _, ok := h.backends[t]; ok {
			tags = append(tags, t)
		}
	}
	return tags
}

// Supports reports whether t has a backend.
func (h *Handler) Supports(t curve.Tag) bool {
	return slices.Contains(h.Tags(), t)
}

// Handle executes req. Every failure is a *protocol.HostError naming the
// operation and curve.
func (h *Handler) Handle(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	if req == nil {
		return nil, &protocol.HostError{Err: fmt.Errorf("%w: nil request", protocol.ErrBadArguments)}
	}
	resp, err := h.handle(ctx, req)
	if err != nil {
		h.log.Debug(ctx, "boundary call failed",
			"op", req.Op.String(), "curve", req.Curve.String(), "error", err)
		return nil, protocol.Fail(req, err)
	}
	return resp, nil
}

// Call makes a Handler usable directly as a protocol.Delegate.
func (h *Handler) Call(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	return h.Handle(ctx, req)
}

func (h *Handler) handle(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !req.Op.Valid() || req.Op == protocol.FixedBaseMSM {
		return nil, fmt.Errorf("%w: %s", protocol.ErrUnsupportedOperation, req.Op)
	}
	h.mu.RLock()
	b, ok := h.backends[req.Curve]
	h.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s not registered", curve.ErrUnsupportedCurve, req.Curve)
	}
	if want := req.Op.Arity(); len(req.Buffers) != want {
		return nil, fmt.Errorf("%w: %s takes %d buffers, got %d",
			protocol.ErrBadArguments, req.Op, want, len(req.Buffers))
	}

	var (
		out []byte
		err error
	)
	switch req.Op {
	case protocol.VariableBaseMSM:
		out, err = b.msm(req.Buffers[0], req.Buffers[1])
	case protocol.BatchNormalize:
		out, err = b.normalize(req.Buffers[0])
	}
	if err != nil {
		return nil, err
	}
	h.log.Debug(ctx, "boundary call served", "op", req.Op.String(), "curve", b.name())
	return &protocol.Response{Buffers: [][]byte{out}}, nil
}

type typed[A, P any] struct {
	g group.Group[A, P]
}

func (t typed[A, P]) name() string { return t.g.Name() }

func (t typed[A, P]) msm(basesBuf, scalarsBuf []byte) ([]byte, error) {
	bases, err := codec.DecodeAffines[A](t.g, basesBuf)
	if err != nil {
		return nil, fmt.Errorf("bases: %w", err)
	}
	scalars, err := codec.DecodeScalars(scalarsBuf, t.g.ScalarSize())
	if err != nil {
		return nil, fmt.Errorf("scalars: %w", err)
	}
	if len(bases) != len(scalars) {
		return nil, fmt.Errorf("%w: %d bases, %d scalars", protocol.ErrBadArguments, len(bases), len(scalars))
	}
	out := make([]byte, t.g.ProjectiveSize())
	t.g.EncodeProjective(out, t.g.MultiScalarMul(bases, scalars))
	return out, nil
}

func (t typed[A, P]) normalize(buf []byte) ([]byte, error) {
	points, err := codec.DecodeProjectives[P](t.g, buf)
	if err != nil {
		return nil, fmt.Errorf("points: %w", err)
	}
	return codec.EncodeProjectives[P](t.g, t.g.BatchNormalize(points)), nil
}
