// Package group defines the contract a curve backend fulfils so its points
// can cross the boundary.
//
// A backend is a value implementing Group[A, P] where A is its affine point
// type and P its projective point type. The contract has three parts:
// identification (Descriptor), the unchecked boundary codec (Codec) and the
// reference arithmetic used by the fallback path and by host handlers
// (Arithmetic).
package group

import (
	"math/big"

	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/codec"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/curve"
)

// ScalarSize is the width of a boundary scalar for every built-in backend.
const ScalarSize = 32

// Descriptor identifies a group. Tag is a constant declared by the backend;
// Invariants is compared against the tag table once, at registration.
type Descriptor interface {
	Tag() curve.Tag
	// Variant distinguishes wrappers of the same mathematical group. The
	// plain backend returns "".
	Variant() string
	Name() string
	Invariants() curve.Invariants
}

// Codec is the non-canonical, non-validating point encoding used on the
// boundary.
type Codec[A, P any] interface {
	codec.AffineCodec[A]
	codec.ProjectiveCodec[P]
	ScalarSize() int
}

// Arithmetic is the reference group arithmetic. Implementations never mutate
// their arguments.
type Arithmetic[A, P any] interface {
	Identity() P
	Generator() P
	IsIdentity(p P) bool
	Equal(p, q P) bool

	Add(p, q P) P
	Double(p P) P
	Neg(p P) P
	// ScalarMul returns k*p. k must be non-negative; it is reduced modulo
	// the group order.
	ScalarMul(p P, k *big.Int) P

	ToAffine(p P) A
	FromAffine(a A) P

	// MultiScalarMul returns sum(scalars[i] * bases[i]). Both slices have
	// the same length.
	MultiScalarMul(bases []A, scalars []*big.Int) P
	// BatchNormalize returns a new slice, in input order, where every
	// point has the backend's normalized representation.
	BatchNormalize(points []P) []P

	// MarshalCanonical and UnmarshalCanonical implement the validating,
	// compressed storage format. They are never used on the boundary.
	MarshalCanonical(p P) []byte
	UnmarshalCanonical(b []byte) (P, error)
}

// Group is a complete backend.
type Group[A, P any] interface {
	Descriptor
	Codec[A, P]
	Arithmetic[A, P]
}

// Key is the identity of a boundary slot.
type Key struct {
	Tag     curve.Tag
	Variant string
}

// KeyOf returns the slot key of d.
func KeyOf(d Descriptor) Key {
	return Key{Tag: d.Tag(), Variant: d.Variant()}
}

// Verify confirms that d's invariants resolve to its declared tag.
func Verify(d Descriptor) error {
	return curve.Verify(d.Tag(), d.Invariants())
}
