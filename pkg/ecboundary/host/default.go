package host

import (
	"fmt"
	"slices"

	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/curve"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/curves/bls12377"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/curves/ed25519"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/curves/pallas"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/curves/secp256k1"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/logging"
)

var builtins = []struct {
	tag      curve.Tag
	register func(*Handler) error
}{
	{curve.Pallas, func(h *Handler) error { return Register(h, pallas.New()) }},
	{curve.EdBLS12377, func(h *Handler) error { return Register(h, bls12377.Edwards()) }},
	{curve.BLS12377G1, func(h *Handler) error { return Register(h, bls12377.G1()) }},
	{curve.BLS12377G2, func(h *Handler) error { return Register(h, bls12377.G2()) }},
	{curve.Secp256k1, func(h *Handler) error { return Register(h, secp256k1.New()) }},
	{curve.Ed25519, func(h *Handler) error { return Register(h, ed25519.New()) }},
}

// NewDefault returns a Handler serving the built-in backends. When only is
// non-empty, just those tags are registered.
func NewDefault(logger logging.Logger, only ...curve.Tag) (*Handler, error) {
	for _, t := range only {
		if !t.Valid() {
			return nil, fmt.Errorf("%w: tag %d", curve.ErrUnsupportedCurve, uint8(t))
		}
	}
	h := NewHandler(logger)
	for _, b := range builtins {
		if len(only) > 0 && !slices.Contains(only, b.tag) {
			continue
		}
		if err := b.register(h); err != nil {
			return nil, err
		}
	}
	return h, nil
}
