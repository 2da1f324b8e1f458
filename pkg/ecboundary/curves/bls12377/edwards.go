package bls12377

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/twistededwards"

	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/codec"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/curve"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/group"
)

const (
	frSize = fr.Bytes

	EdwardsAffineSize     = 2 * frSize
	EdwardsProjectiveSize = 4 * frSize
)

var (
	edwardsParams   = twistededwards.GetEdwardsCurve()
	edwardsOrder    = new(big.Int).Set(&edwardsParams.Order)
	edwardsCofactor = edwardsParams.Cofactor.BigInt(new(big.Int))
)

// EdwardsGroup is the backend for the twisted Edwards curve over the
// BLS12-377 scalar field.
type EdwardsGroup struct{}

var _ group.Group[twistededwards.PointAffine, twistededwards.PointExtended] = EdwardsGroup{}

// Edwards returns the twisted Edwards backend.
func Edwards() EdwardsGroup { return EdwardsGroup{} }

func (EdwardsGroup) Tag() curve.Tag      { return curve.EdBLS12377 }
func (EdwardsGroup) Variant() string     { return "" }
func (EdwardsGroup) Name() string        { return "ed-bls12-377" }
func (EdwardsGroup) AffineSize() int     { return EdwardsAffineSize }
func (EdwardsGroup) ProjectiveSize() int { return EdwardsProjectiveSize }
func (EdwardsGroup) ScalarSize() int     { return group.ScalarSize }

func (EdwardsGroup) Invariants() curve.Invariants {
	return curve.Invariants{
		Model:                curve.TwistedEdwards,
		BaseCharacteristic:   fr.Modulus(),
		ScalarCharacteristic: new(big.Int).Set(edwardsOrder),
		Cofactor:             new(big.Int).Set(edwardsCofactor),
	}
}

func putFr(dst []byte, e *fr.Element) {
	b := e.Bytes()
	copy(dst[:frSize], b[:])
}

func getFr(src []byte) fr.Element {
	var e fr.Element
	e.SetBytes(src[:frSize])
	return e
}

func (EdwardsGroup) EncodeAffine(dst []byte, a twistededwards.PointAffine) {
	putFr(dst[0:frSize], &a.X)
	putFr(dst[frSize:2*frSize], &a.Y)
}

func (EdwardsGroup) DecodeAffine(src []byte) (twistededwards.PointAffine, error) {
	if err := codec.Exact(src, EdwardsAffineSize); err != nil {
		return twistededwards.PointAffine{}, err
	}
	return twistededwards.PointAffine{X: getFr(src[0:frSize]), Y: getFr(src[frSize:])}, nil
}

func (EdwardsGroup) EncodeProjective(dst []byte, p twistededwards.PointExtended) {
	putFr(dst[0:frSize], &p.X)
	putFr(dst[frSize:2*frSize], &p.Y)
	putFr(dst[2*frSize:3*frSize], &p.T)
	putFr(dst[3*frSize:4*frSize], &p.Z)
}

func (EdwardsGroup) DecodeProjective(src []byte) (twistededwards.PointExtended, error) {
	if err := codec.Exact(src, EdwardsProjectiveSize); err != nil {
		return twistededwards.PointExtended{}, err
	}
	return twistededwards.PointExtended{
		X: getFr(src[0:frSize]),
		Y: getFr(src[frSize : 2*frSize]),
		T: getFr(src[2*frSize : 3*frSize]),
		Z: getFr(src[3*frSize:]),
	}, nil
}

// Identity returns (0, 1, 0, 1) in X, Y, T, Z order.
func (EdwardsGroup) Identity() twistededwards.PointExtended {
	var p twistededwards.PointExtended
	p.Y.SetOne()
	p.Z.SetOne()
	return p
}

func (g EdwardsGroup) Generator() twistededwards.PointExtended {
	return g.FromAffine(edwardsParams.Base)
}

func (EdwardsGroup) IsIdentity(p twistededwards.PointExtended) bool {
	return p.X.IsZero() && !p.Z.IsZero() && p.Y.Equal(&p.Z)
}

// Equal compares X/Z and Y/Z by cross multiplication.
func (EdwardsGroup) Equal(p, q twistededwards.PointExtended) bool {
	if p.Z.IsZero() || q.Z.IsZero() {
		return p.Z.IsZero() && q.Z.IsZero()
	}
	var l, r fr.Element
	l.Mul(&p.X, &q.Z)
	r.Mul(&q.X, &p.Z)
	if !l.Equal(&r) {
		return false
	}
	l.Mul(&p.Y, &q.Z)
	r.Mul(&q.Y, &p.Z)
	return l.Equal(&r)
}

func (EdwardsGroup) Add(p, q twistededwards.PointExtended) twistededwards.PointExtended {
	var r twistededwards.PointExtended
	r.Add(&p, &q)
	return r
}

func (EdwardsGroup) Double(p twistededwards.PointExtended) twistededwards.PointExtended {
	var r twistededwards.PointExtended
	r.Double(&p)
	return r
}

func (EdwardsGroup) Neg(p twistededwards.PointExtended) twistededwards.PointExtended {
	var r twistededwards.PointExtended
	r.Neg(&p)
	return r
}

func (EdwardsGroup) ScalarMul(p twistededwards.PointExtended, k *big.Int) twistededwards.PointExtended {
	var r twistededwards.PointExtended
	r.ScalarMultiplication(&p, new(big.Int).Mod(k, edwardsOrder))
	return r
}

func (EdwardsGroup) ToAffine(p twistededwards.PointExtended) twistededwards.PointAffine {
	var zinv fr.Element
	zinv.Inverse(&p.Z)
	var a twistededwards.PointAffine
	a.X.Mul(&p.X, &zinv)
	a.Y.Mul(&p.Y, &zinv)
	return a
}

// FromAffine maps the zero PointAffine to the identity, matching the other
// backends where the zero affine value is the point at infinity.
func (g EdwardsGroup) FromAffine(a twistededwards.PointAffine) twistededwards.PointExtended {
	if a.X.IsZero() && a.Y.IsZero() {
		return g.Identity()
	}
	p := twistededwards.PointExtended{X: a.X, Y: a.Y}
	p.Z.SetOne()
	p.T.Mul(&a.X, &a.Y)
	return p
}

// MultiScalarMul sums per-term scalar multiplications; gnark has no
// multi-exponentiation for its Edwards curves.
func (g EdwardsGroup) MultiScalarMul(bases []twistededwards.PointAffine, scalars []*big.Int) twistededwards.PointExtended {
	n := min(len(bases), len(scalars))
	acc := g.Identity()
	for i := 0; i < n; i++ {
		acc = g.Add(acc, g.ScalarMul(g.FromAffine(bases[i]), scalars[i]))
	}
	return acc
}

// BatchNormalize rescales every point to Z = 1 using fr.BatchInvert.
func (EdwardsGroup) BatchNormalize(points []twistededwards.PointExtended) []twistededwards.PointExtended {
	zs := make([]fr.Element, len(points))
	for i := range points {
		zs[i] = points[i].Z
	}
	inv := fr.BatchInvert(zs)

	out := make([]twistededwards.PointExtended, len(points))
	for i, p := range points {
		if p.Z.IsZero() {
			out[i] = p
			continue
		}
		out[i].X.Mul(&p.X, &inv[i])
		out[i].Y.Mul(&p.Y, &inv[i])
		out[i].T.Mul(&p.T, &inv[i])
		out[i].Z.SetOne()
	}
	return out
}

// MarshalCanonical returns gnark's 32-byte compressed encoding.
func (g EdwardsGroup) MarshalCanonical(p twistededwards.PointExtended) []byte {
	a := g.ToAffine(p)
	b := a.Bytes()
	return b[:]
}

func (g EdwardsGroup) UnmarshalCanonical(b []byte) (twistededwards.PointExtended, error) {
	var a twistededwards.PointAffine
	n, err := a.SetBytes(b)
	if err != nil {
		return twistededwards.PointExtended{}, fmt.Errorf("%w: %v", codec.ErrInvalidEncoding, err)
	}
	if n != len(b) {
		return twistededwards.PointExtended{}, fmt.Errorf("%w: %d trailing bytes", codec.ErrInvalidEncoding, len(b)-n)
	}
	return g.FromAffine(a), nil
}
