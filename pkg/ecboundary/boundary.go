package ecboundary

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/group"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/logging"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/protocol"
)

// Boundary routes boundary-eligible operations to per-group delegates. The
// zero value is not usable; call New. A Boundary is safe for concurrent use.
type Boundary struct {
	cfg   Config
	log   logging.Logger
	slots sync.Map // group.Key -> *slot
}

type slot struct {
	delegate atomic.Pointer[delegateRef]
	fallback atomic.Bool
}

// delegateRef boxes the interface so it can live in an atomic.Pointer.
type delegateRef struct {
	d protocol.Delegate
}

// New returns a Boundary with no delegates and every fallback disabled.
func New(cfg Config) *Boundary {
	return &Boundary{cfg: cfg, log: logging.Or(cfg.Logger)}
}

// Install sets the delegate for g. Passing a nil delegate clears it. The
// group's invariants must resolve to its declared tag, otherwise Install
// returns ErrUnsupportedCurve and leaves the slot untouched.
func (b *Boundary) Install(g group.Descriptor, d protocol.Delegate) error {
	if err := group.Verify(g); err != nil {
		return fmt.Errorf("install delegate for %s: %w", g.Name(), err)
	}
	s := b.slot(group.KeyOf(g))
	if d == nil {
		s.delegate.Store(nil)
	} else {
		s.delegate.Store(&delegateRef{d: d})
	}
	b.log.Debug(context.Background(), "boundary delegate installed",
		"group", g.Name(), "present", d != nil)
	return nil
}

// SetFallback enables or disables the in-process fallback for g.
func (b *Boundary) SetFallback(g group.Descriptor, enabled bool) error {
	if err := group.Verify(g); err != nil {
		return fmt.Errorf("set fallback for %s: %w", g.Name(), err)
	}
	b.slot(group.KeyOf(g)).fallback.Store(enabled)
	return nil
}

// DelegateOf returns the delegate installed for g, if any.
func (b *Boundary) DelegateOf(g group.Descriptor) (protocol.Delegate, bool) {
	d, _ := b.route(g)
	return d, d != nil
}

// FallbackEnabled reports whether g may run on the reference arithmetic
// when no delegate is installed.
func (b *Boundary) FallbackEnabled(g group.Descriptor) bool {
	_, fallback := b.route(g)
	return fallback
}

// Config returns the configuration b was created with.
func (b *Boundary) Config() Config {
	return b.cfg
}

func (b *Boundary) slot(k group.Key) *slot {
	if s, ok := b.slots.Load(k); ok {
		return s.(*slot)
	}
	s, _ := b.slots.LoadOrStore(k, new(slot))
	return s.(*slot)
}

// route reads g's slot without creating it.
func (b *Boundary) route(g group.Descriptor) (protocol.Delegate, bool) {
	if b == nil {
		return nil, false
	}
	v, ok := b.slots.Load(group.KeyOf(g))
	if !ok {
		return nil, false
	}
	s := v.(*slot)
	var d protocol.Delegate
	if ref := s.delegate.Load(); ref != nil {
		d = ref.d
	}
	return d, s.fallback.Load()
}

func (b *Boundary) logger() logging.Logger {
	if b == nil {
		return logging.Discard()
	}
	return b.log
}

func (b *Boundary) truncate() bool {
	return b != nil && b.cfg.TruncateMismatched
}
