// Package secp256k1 adapts btcec's Jacobian arithmetic to the boundary
// backend contract.
//
// Field elements are 32 big-endian bytes. Affine points encode as X||Y with
// the point at infinity as all zeros; projective points encode as X||Y||Z.
package secp256k1

import (
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/codec"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/curve"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/group"
)

const (
	fieldSize = 32

	AffineSize     = 2 * fieldSize
	ProjectiveSize = 3 * fieldSize
)

// Affine is an affine point. (0, 0) is the point at infinity.
type Affine struct {
	X, Y btcec.FieldVal
}

// Point is a Jacobian point. Any point with Z = 0 is the identity.
type Point = btcec.JacobianPoint

// Group is the secp256k1 backend.
type Group struct{}

var _ group.Group[Affine, Point] = Group{}

func New() Group { return Group{} }

func (Group) Tag() curve.Tag      { return curve.Secp256k1 }
func (Group) Variant() string     { return "" }
func (Group) Name() string        { return "secp256k1" }
func (Group) AffineSize() int     { return AffineSize }
func (Group) ProjectiveSize() int { return ProjectiveSize }
func (Group) ScalarSize() int     { return group.ScalarSize }

func (Group) Invariants() curve.Invariants {
	params := btcec.S256().Params()
	return curve.Invariants{
		Model:                curve.ShortWeierstrass,
		BaseCharacteristic:   new(big.Int).Set(params.P),
		ScalarCharacteristic: new(big.Int).Set(params.N),
		Cofactor:             big.NewInt(1),
	}
}

func putField(dst []byte, f *btcec.FieldVal) {
	v := *f
	v.Normalize()
	var b [fieldSize]byte
	v.PutBytes(&b)
	copy(dst, b[:])
}

func field(src []byte) btcec.FieldVal {
	var f btcec.FieldVal
	f.SetByteSlice(src[:fieldSize])
	f.Normalize()
	return f
}

func (Group) EncodeAffine(dst []byte, a Affine) {
	putField(dst[0:fieldSize], &a.X)
	putField(dst[fieldSize:2*fieldSize], &a.Y)
}

func (Group) DecodeAffine(src []byte) (Affine, error) {
	if err := codec.Exact(src, AffineSize); err != nil {
		return Affine{}, err
	}
	return Affine{X: field(src[0:fieldSize]), Y: field(src[fieldSize:])}, nil
}

func (g Group) EncodeProjective(dst []byte, p Point) {
	if g.IsIdentity(p) {
		clear(dst[:ProjectiveSize])
		return
	}
	putField(dst[0:fieldSize], &p.X)
	putField(dst[fieldSize:2*fieldSize], &p.Y)
	putField(dst[2*fieldSize:3*fieldSize], &p.Z)
}

func (Group) DecodeProjective(src []byte) (Point, error) {
	if err := codec.Exact(src, ProjectiveSize); err != nil {
		return Point{}, err
	}
	x, y, z := field(src[0:fieldSize]), field(src[fieldSize:2*fieldSize]), field(src[2*fieldSize:])
	return btcec.MakeJacobianPoint(&x, &y, &z), nil
}

// Identity returns the all-zero Jacobian point.
func (Group) Identity() Point { return Point{} }

func (Group) Generator() Point {
	var one btcec.ModNScalar
	one.SetInt(1)
	var g Point
	btcec.ScalarBaseMultNonConst(&one, &g)
	return g
}

func (Group) IsIdentity(p Point) bool {
	z := p.Z
	return z.Normalize().IsZero()
}

func (g Group) Equal(p, q Point) bool {
	pi, qi := g.IsIdentity(p), g.IsIdentity(q)
	if pi || qi {
		return pi == qi
	}
	var pz2, qz2, lhs, rhs btcec.FieldVal
	pz2.SquareVal(&p.Z)
	qz2.SquareVal(&q.Z)

	lhs.Mul2(&p.X, &qz2).Normalize()
	rhs.Mul2(&q.X, &pz2).Normalize()
	if !lhs.Equals(&rhs) {
		return false
	}

	lhs.Mul2(&p.Y, qz2.Mul(&q.Z)).Normalize()
	rhs.Mul2(&q.Y, pz2.Mul(&p.Z)).Normalize()
	return lhs.Equals(&rhs)
}

func (Group) Add(p, q Point) Point {
	var r Point
	btcec.AddNonConst(&p, &q, &r)
	return r
}

func (Group) Double(p Point) Point {
	var r Point
	btcec.DoubleNonConst(&p, &r)
	return r
}

func (g Group) Neg(p Point) Point {
	if g.IsIdentity(p) {
		return Point{}
	}
	r := p
	r.Y.Normalize()
	r.Y.Negate(1).Normalize()
	return r
}

func reduce(k *big.Int) *btcec.ModNScalar {
	e := new(big.Int).Mod(k, btcec.S256().Params().N)
	var b [32]byte
	e.FillBytes(b[:])
	var s btcec.ModNScalar
	s.SetBytes(&b)
	return &s
}

func (g Group) ScalarMul(p Point, k *big.Int) Point {
	if g.IsIdentity(p) {
		return Point{}
	}
	var r Point
	btcec.ScalarMultNonConst(reduce(k), &p, &r)
	return r
}

func (g Group) ToAffine(p Point) Affine {
	if g.IsIdentity(p) {
		return Affine{}
	}
	r := p
	r.ToAffine()
	return Affine{X: r.X, Y: r.Y}
}

func (Group) FromAffine(a Affine) Point {
	x, y := a.X, a.Y
	if x.Normalize().IsZero() && y.Normalize().IsZero() {
		return Point{}
	}
	var one btcec.FieldVal
	one.SetInt(1)
	return btcec.MakeJacobianPoint(&x, &y, &one)
}

// MultiScalarMul sums per-term variable-time scalar multiplications.
func (g Group) MultiScalarMul(bases []Affine, scalars []*big.Int) Point {
	n := min(len(bases), len(scalars))
	var acc Point
	for i := 0; i < n; i++ {
		acc = g.Add(acc, g.ScalarMul(g.FromAffine(bases[i]), scalars[i]))
	}
	return acc
}

// BatchNormalize rescales every non-identity point to Z = 1 with a single
// field inversion.
func (g Group) BatchNormalize(points []Point) []Point {
	out := make([]Point, len(points))
	prefix := make([]btcec.FieldVal, len(points))
	var acc btcec.FieldVal
	acc.SetInt(1)
	for i := range points {
		if g.IsIdentity(points[i]) {
			continue
		}
		prefix[i] = acc
		acc.Mul(&points[i].Z).Normalize()
	}
	inv := acc
	inv.Inverse()

	var one btcec.FieldVal
	one.SetInt(1)
	for i := len(points) - 1; i >= 0; i-- {
		p := points[i]
		if g.IsIdentity(p) {
			out[i] = Point{}
			continue
		}
		var zinv, zinv2, zinv3 btcec.FieldVal
		zinv.Mul2(&inv, &prefix[i]).Normalize()
		inv.Mul(&p.Z).Normalize()

		zinv2.SquareVal(&zinv)
		zinv3.Mul2(&zinv2, &zinv)

		var x, y btcec.FieldVal
		x.Mul2(&p.X, &zinv2).Normalize()
		y.Mul2(&p.Y, &zinv3).Normalize()
		out[i] = btcec.MakeJacobianPoint(&x, &y, &one)
	}
	return out
}

// MarshalCanonical returns the 33-byte SEC1 compressed encoding, or a single
// zero byte for the identity.
func (g Group) MarshalCanonical(p Point) []byte {
	if g.IsIdentity(p) {
		return []byte{0}
	}
	a := g.ToAffine(p)
	return btcec.NewPublicKey(&a.X, &a.Y).SerializeCompressed()
}

func (Group) UnmarshalCanonical(b []byte) (Point, error) {
	if len(b) == 1 && b[0] == 0 {
		return Point{}, nil
	}
	pk, err := btcec.ParsePubKey(b)
	if err != nil {
		return Point{}, fmt.Errorf("%w: %v", codec.ErrInvalidEncoding, err)
	}
	var p Point
	pk.AsJacobian(&p)
	return p, nil
}
