// Package ed25519 adapts filippo.io/edwards25519 to the boundary backend
// contract.
//
// Field elements are 32 little-endian bytes. Projective points use extended
// coordinates and encode as X||Y||T||Z; affine points encode as X||Y.
//
// The library refuses to construct a point from coordinates that are not on
// the curve, so unlike the other backends this codec rejects off-curve
// encodings with codec.ErrInvalidEncoding.
package ed25519

import (
	"fmt"
	"math/big"

	"filippo.io/edwards25519"
	"filippo.io/edwards25519/field"

	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/codec"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/curve"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/group"
)

const (
	fieldSize = 32

	AffineSize     = 2 * fieldSize
	ProjectiveSize = 4 * fieldSize
	CanonicalSize  = 32
)

var (
	fieldP, _ = new(big.Int).SetString("7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffed", 16)
	orderL, _ = new(big.Int).SetString("1000000000000000000000000000000014def9dea2f79cd65812631a5cf5d3ed", 16)
)

// Affine is an affine point (x, y). It holds a validated point with Z = 1;
// the zero Affine is the identity (0, 1).
type Affine struct {
	p *edwards25519.Point
}

// point returns the wrapped point, or the identity for the zero Affine.
func (a Affine) point() *edwards25519.Point {
	if a.p == nil {
		return edwards25519.NewIdentityPoint()
	}
	return a.p
}

// Point is an extended-coordinates point. Values are never mutated.
type Point = *edwards25519.Point

// Group is the Ed25519 backend.
type Group struct{}

var _ group.Group[Affine, Point] = Group{}

func New() Group { return Group{} }

func (Group) Tag() curve.Tag      { return curve.Ed25519 }
func (Group) Variant() string     { return "" }
func (Group) Name() string        { return "ed25519" }
func (Group) AffineSize() int     { return AffineSize }
func (Group) ProjectiveSize() int { return ProjectiveSize }
func (Group) ScalarSize() int     { return group.ScalarSize }

func (Group) Invariants() curve.Invariants {
	return curve.Invariants{
		Model:                curve.TwistedEdwards,
		BaseCharacteristic:   new(big.Int).Set(fieldP),
		ScalarCharacteristic: new(big.Int).Set(orderL),
		Cofactor:             big.NewInt(8),
	}
}

func element(src []byte) (*field.Element, error) {
	e, err := new(field.Element).SetBytes(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", codec.ErrInvalidEncoding, err)
	}
	return e, nil
}

func (Group) EncodeAffine(dst []byte, a Affine) {
	x, y, _, _ := a.point().ExtendedCoordinates()
	copy(dst[0:fieldSize], x.Bytes())
	copy(dst[fieldSize:2*fieldSize], y.Bytes())
}

func (Group) DecodeAffine(src []byte) (Affine, error) {
	if err := codec.Exact(src, AffineSize); err != nil {
		return Affine{}, err
	}
	x, err := element(src[0:fieldSize])
	if err != nil {
		return Affine{}, err
	}
	y, err := element(src[fieldSize:])
	if err != nil {
		return Affine{}, err
	}
	t := new(field.Element).Multiply(x, y)
	p, err := new(edwards25519.Point).SetExtendedCoordinates(x, y, new(field.Element).One(), t)
	if err != nil {
		return Affine{}, fmt.Errorf("%w: %v", codec.ErrInvalidEncoding, err)
	}
	return Affine{p: p}, nil
}

func (Group) EncodeProjective(dst []byte, p Point) {
	x, y, z, t := p.ExtendedCoordinates()
	copy(dst[0:fieldSize], x.Bytes())
	copy(dst[fieldSize:2*fieldSize], y.Bytes())
	copy(dst[2*fieldSize:3*fieldSize], t.Bytes())
	copy(dst[3*fieldSize:4*fieldSize], z.Bytes())
}

func (Group) DecodeProjective(src []byte) (Point, error) {
	if err := codec.Exact(src, ProjectiveSize); err != nil {
		return nil, err
	}
	var coords [4]*field.Element
	for i := range coords {
		e, err := element(src[i*fieldSize : (i+1)*fieldSize])
		if err != nil {
			return nil, err
		}
		coords[i] = e
	}
	x, y, t, z := coords[0], coords[1], coords[2], coords[3]
	p, err := new(edwards25519.Point).SetExtendedCoordinates(x, y, z, t)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", codec.ErrInvalidEncoding, err)
	}
	return p, nil
}

func (Group) Identity() Point  { return edwards25519.NewIdentityPoint() }
func (Group) Generator() Point { return edwards25519.NewGeneratorPoint() }

func (Group) IsIdentity(p Point) bool {
	return p.Equal(edwards25519.NewIdentityPoint()) == 1
}

func (Group) Equal(p, q Point) bool { return p.Equal(q) == 1 }
func (Group) Add(p, q Point) Point  { return new(edwards25519.Point).Add(p, q) }
func (Group) Double(p Point) Point  { return new(edwards25519.Point).Add(p, p) }
func (Group) Neg(p Point) Point     { return new(edwards25519.Point).Negate(p) }

func scalar(k *big.Int) *edwards25519.Scalar {
	e := new(big.Int).Mod(k, orderL)
	var be [32]byte
	e.FillBytes(be[:])
	wide := make([]byte, 64)
	for i := range be {
		wide[i] = be[31-i]
	}
	// SetUniformBytes only fails on a length other than 64.
	s, _ := edwards25519.NewScalar().SetUniformBytes(wide)
	return s
}

func (Group) ScalarMul(p Point, k *big.Int) Point {
	return new(edwards25519.Point).ScalarMult(scalar(k), p)
}

func (g Group) ToAffine(p Point) Affine {
	return Affine{p: g.BatchNormalize([]Point{p})[0]}
}

func (Group) FromAffine(a Affine) Point {
	return new(edwards25519.Point).Set(a.point())
}

func (g Group) MultiScalarMul(bases []Affine, scalars []*big.Int) Point {
	n := min(len(bases), len(scalars))
	if n == 0 {
		return edwards25519.NewIdentityPoint()
	}
	ps := make([]*edwards25519.Point, n)
	ks := make([]*edwards25519.Scalar, n)
	for i := 0; i < n; i++ {
		ps[i] = g.FromAffine(bases[i])
		ks[i] = scalar(scalars[i])
	}
	return new(edwards25519.Point).VarTimeMultiScalarMult(ks, ps)
}

// BatchNormalize rescales every point to Z = 1 with one field inversion.
func (Group) BatchNormalize(points []Point) []Point {
	out := make([]Point, len(points))
	if len(points) == 0 {
		return out
	}
	prefix := make([]field.Element, len(points))
	acc := new(field.Element).One()
	for i, p := range points {
		_, _, z, _ := p.ExtendedCoordinates()
		prefix[i].Set(acc)
		acc.Multiply(acc, z)
	}
	inv := new(field.Element).Invert(acc)
	one := new(field.Element).One()
	for i := len(points) - 1; i >= 0; i-- {
		x, y, z, t := points[i].ExtendedCoordinates()
		zinv := new(field.Element).Multiply(inv, &prefix[i])
		inv.Multiply(inv, z)

		x.Multiply(x, zinv)
		y.Multiply(y, zinv)
		t.Multiply(t, zinv)
		p, err := new(edwards25519.Point).SetExtendedCoordinates(x, y, one, t)
		if err != nil {
			p = new(edwards25519.Point).Set(points[i])
		}
		out[i] = p
	}
	return out
}

// MarshalCanonical returns the RFC 8032 encoding.
func (Group) MarshalCanonical(p Point) []byte {
	return p.Bytes()
}

func (Group) UnmarshalCanonical(b []byte) (Point, error) {
	p, err := new(edwards25519.Point).SetBytes(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", codec.ErrInvalidEncoding, err)
	}
	return p, nil
}
