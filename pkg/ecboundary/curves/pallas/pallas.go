// Package pallas implements the Pallas curve, y^2 = x^3 + 5 over the 255-bit
// Pasta base field, as a boundary backend.
//
// Points use Jacobian coordinates. Field elements are encoded as 32
// little-endian bytes; the boundary layout is X||Y for affine points and
// X||Y||Z for projective points.
package pallas

import (
	"fmt"
	"math/big"

	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/codec"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/curve"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/group"
)

const (
	// AffineSize is the boundary size of an affine point.
	AffineSize = 2 * fieldSize
	// ProjectiveSize is the boundary size of a projective point.
	ProjectiveSize = 3 * fieldSize
	// CanonicalSize is the size of the compressed storage encoding.
	CanonicalSize = fieldSize

	flagInfinity byte = 0x40
	flagYLarge   byte = 0x80
)

// Group is the Pallas backend.
type Group struct{}

var _ group.Group[Affine, Point] = Group{}

// New returns the Pallas backend.
func New() Group { return Group{} }

func (Group) Tag() curve.Tag      { return curve.Pallas }
func (Group) Variant() string     { return "" }
func (Group) Name() string        { return "pallas" }
func (Group) AffineSize() int     { return AffineSize }
func (Group) ProjectiveSize() int { return ProjectiveSize }
func (Group) ScalarSize() int     { return group.ScalarSize }

func (Group) Invariants() curve.Invariants {
	return curve.Invariants{
		Model:                curve.ShortWeierstrass,
		BaseCharacteristic:   new(big.Int).Set(p),
		ScalarCharacteristic: new(big.Int).Set(q),
		Cofactor:             big.NewInt(1),
	}
}

func (Group) EncodeAffine(dst []byte, a Affine) {
	putElement(dst[0:fieldSize], reduced(a.X))
	putElement(dst[fieldSize:2*fieldSize], reduced(a.Y))
}

func (Group) DecodeAffine(src []byte) (Affine, error) {
	if err := codec.Exact(src, AffineSize); err != nil {
		return Affine{}, err
	}
	return Affine{X: element(src[0:fieldSize]), Y: element(src[fieldSize : 2*fieldSize])}, nil
}

func (Group) EncodeProjective(dst []byte, pt Point) {
	if pt.isIdentity() {
		pt = identity()
	}
	putElement(dst[0:fieldSize], reduced(pt.X))
	putElement(dst[fieldSize:2*fieldSize], reduced(pt.Y))
	putElement(dst[2*fieldSize:3*fieldSize], reduced(pt.Z))
}

func (Group) DecodeProjective(src []byte) (Point, error) {
	if err := codec.Exact(src, ProjectiveSize); err != nil {
		return Point{}, err
	}
	return Point{
		X: element(src[0:fieldSize]),
		Y: element(src[fieldSize : 2*fieldSize]),
		Z: element(src[2*fieldSize : 3*fieldSize]),
	}, nil
}

func (Group) Identity() Point { return identity() }

// Generator returns (-1, 2).
func (Group) Generator() Point {
	return Point{X: new(big.Int).Sub(p, one), Y: big.NewInt(2), Z: big.NewInt(1)}
}

func (Group) IsIdentity(pt Point) bool  { return pt.isIdentity() }
func (Group) Equal(a, b Point) bool     { return equal(a, b) }
func (Group) Add(a, b Point) Point      { return add(a, b) }
func (Group) Double(pt Point) Point     { return double(pt) }
func (Group) Neg(pt Point) Point        { return neg(pt) }
func (Group) ToAffine(pt Point) Affine  { return toAffine(pt) }
func (Group) FromAffine(a Affine) Point { return fromAffine(a) }
func (Group) ScalarMul(pt Point, k *big.Int) Point {
	return scalarMul(pt, k)
}

func (Group) MultiScalarMul(bases []Affine, scalars []*big.Int) Point {
	return msm(bases, scalars)
}

func (Group) BatchNormalize(points []Point) []Point {
	return batchNormalize(points)
}

// MarshalCanonical returns the 32-byte compressed encoding: x little-endian
// with the top bit set when y > (p-1)/2 and bit 6 set for infinity.
func (Group) MarshalCanonical(pt Point) []byte {
	out := make([]byte, CanonicalSize)
	if pt.isIdentity() {
		out[CanonicalSize-1] = flagInfinity
		return out
	}
	a := toAffine(pt)
	putElement(out, a.X)
	if a.Y.Cmp(halfP) > 0 {
		out[CanonicalSize-1] |= flagYLarge
	}
	return out
}

// UnmarshalCanonical decodes and validates a compressed point.
func (Group) UnmarshalCanonical(b []byte) (Point, error) {
	if len(b) != CanonicalSize {
		return Point{}, fmt.Errorf("%w: pallas canonical point is %d bytes", codec.ErrInvalidEncoding, CanonicalSize)
	}
	buf := make([]byte, CanonicalSize)
	copy(buf, b)
	flags := buf[CanonicalSize-1] & (flagInfinity | flagYLarge)
	buf[CanonicalSize-1] &^= flagInfinity | flagYLarge

	x := element(buf)
	if flags&flagInfinity != 0 {
		if flags&flagYLarge != 0 || x.Sign() != 0 {
			return Point{}, fmt.Errorf("%w: malformed pallas infinity", codec.ErrInvalidEncoding)
		}
		return identity(), nil
	}
	y := new(big.Int).ModSqrt(fadd(fmul(fsqr(x), x), coeffB), p)
	if y == nil {
		return Point{}, fmt.Errorf("%w: pallas x not on curve", codec.ErrInvalidEncoding)
	}
	if (y.Cmp(halfP) > 0) != (flags&flagYLarge != 0) {
		y = fsub(new(big.Int), y)
	}
	return Point{X: x, Y: y, Z: big.NewInt(1)}, nil
}

// OnCurve reports whether pt satisfies the curve equation. The boundary
// codec never calls it.
func OnCurve(pt Point) bool {
	if pt.isIdentity() {
		return true
	}
	a := toAffine(pt)
	return onCurve(a.X, a.Y)
}
