package bls12377

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fp"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"

	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/codec"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/curve"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/group"
)

const (
	fp2Size = 2 * fpSize

	G2AffineSize     = 2 * fp2Size
	G2ProjectiveSize = 3 * fp2Size
)

// G2Group is the BLS12-377 G2 backend.
type G2Group struct{}

var _ group.Group[bls12377.G2Affine, bls12377.G2Jac] = G2Group{}

// G2 returns the G2 backend.
func G2() G2Group { return G2Group{} }

func (G2Group) Tag() curve.Tag      { return curve.BLS12377G2 }
func (G2Group) Variant() string     { return "" }
func (G2Group) Name() string        { return "bls12-377-g2" }
func (G2Group) AffineSize() int     { return G2AffineSize }
func (G2Group) ProjectiveSize() int { return G2ProjectiveSize }
func (G2Group) ScalarSize() int     { return group.ScalarSize }

// Invariants reports the characteristic of Fp2, which is p.
func (G2Group) Invariants() curve.Invariants {
	return curve.Invariants{
		Model:                curve.ShortWeierstrass,
		BaseCharacteristic:   fp.Modulus(),
		ScalarCharacteristic: fr.Modulus(),
		Cofactor:             new(big.Int).Set(cofactorG2),
	}
}

// putFp2 writes an Fp2 element given as its two coordinates.
func putFp2(dst []byte, a0, a1 *fp.Element) {
	putFp(dst[0:fpSize], a0)
	putFp(dst[fpSize:fp2Size], a1)
}

func (G2Group) EncodeAffine(dst []byte, a bls12377.G2Affine) {
	putFp2(dst[0:fp2Size], &a.X.A0, &a.X.A1)
	putFp2(dst[fp2Size:2*fp2Size], &a.Y.A0, &a.Y.A1)
}

func (G2Group) DecodeAffine(src []byte) (bls12377.G2Affine, error) {
	var a bls12377.G2Affine
	if err := codec.Exact(src, G2AffineSize); err != nil {
		return a, err
	}
	a.X.A0, a.X.A1 = getFp(src[0:]), getFp(src[fpSize:])
	a.Y.A0, a.Y.A1 = getFp(src[fp2Size:]), getFp(src[fp2Size+fpSize:])
	return a, nil
}

func (g G2Group) EncodeProjective(dst []byte, p bls12377.G2Jac) {
	if p.Z.IsZero() {
		p = g.Identity()
	}
	putFp2(dst[0:fp2Size], &p.X.A0, &p.X.A1)
	putFp2(dst[fp2Size:2*fp2Size], &p.Y.A0, &p.Y.A1)
	putFp2(dst[2*fp2Size:3*fp2Size], &p.Z.A0, &p.Z.A1)
}

func (G2Group) DecodeProjective(src []byte) (bls12377.G2Jac, error) {
	var p bls12377.G2Jac
	if err := codec.Exact(src, G2ProjectiveSize); err != nil {
		return p, err
	}
	p.X.A0, p.X.A1 = getFp(src[0:]), getFp(src[fpSize:])
	p.Y.A0, p.Y.A1 = getFp(src[fp2Size:]), getFp(src[fp2Size+fpSize:])
	p.Z.A0, p.Z.A1 = getFp(src[2*fp2Size:]), getFp(src[2*fp2Size+fpSize:])
	return p, nil
}

// Identity returns (1, 1, 0).
func (G2Group) Identity() bls12377.G2Jac {
	var p bls12377.G2Jac
	p.X.SetOne()
	p.Y.SetOne()
	return p
}

func (G2Group) Generator() bls12377.G2Jac {
	_, g, _, _ := bls12377.Generators()
	return g
}

func (G2Group) IsIdentity(p bls12377.G2Jac) bool { return p.Z.IsZero() }

func (G2Group) Equal(p, q bls12377.G2Jac) bool { return p.Equal(&q) }

func (G2Group) Add(p, q bls12377.G2Jac) bls12377.G2Jac {
	var r bls12377.G2Jac
	r.Set(&p).AddAssign(&q)
	return r
}

func (G2Group) Double(p bls12377.G2Jac) bls12377.G2Jac {
	var r bls12377.G2Jac
	r.Double(&p)
	return r
}

func (G2Group) Neg(p bls12377.G2Jac) bls12377.G2Jac {
	var r bls12377.G2Jac
	r.Neg(&p)
	return r
}

func (G2Group) ScalarMul(p bls12377.G2Jac, k *big.Int) bls12377.G2Jac {
	var r bls12377.G2Jac
	r.ScalarMultiplication(&p, reduceScalar(k))
	return r
}

func (G2Group) ToAffine(p bls12377.G2Jac) bls12377.G2Affine {
	var a bls12377.G2Affine
	a.FromJacobian(&p)
	return a
}

func (G2Group) FromAffine(a bls12377.G2Affine) bls12377.G2Jac {
	var p bls12377.G2Jac
	p.FromAffine(&a)
	return p
}

func (g G2Group) MultiScalarMul(bases []bls12377.G2Affine, scalars []*big.Int) bls12377.G2Jac {
	n := min(len(bases), len(scalars))
	if n == 0 {
		return g.Identity()
	}
	var r bls12377.G2Jac
	if _, err := r.MultiExp(bases[:n], frScalars(scalars[:n]), ecc.MultiExpConfig{}); err != nil {
		acc := g.Identity()
		for i := 0; i < n; i++ {
			acc = g.Add(acc, g.ScalarMul(g.FromAffine(bases[i]), scalars[i]))
		}
		return acc
	}
	return r
}

// BatchNormalize rescales every non-identity point to Z = 1 with one Fp2
// inversion over a prefix product.
func (g G2Group) BatchNormalize(points []bls12377.G2Jac) []bls12377.G2Jac {
	out := make([]bls12377.G2Jac, len(points))
	if len(points) == 0 {
		return out
	}

	acc := points[0].Z
	acc.SetOne()
	prefix := zerosLike(acc, len(points))
	for i := range points {
		if points[i].Z.IsZero() {
			continue
		}
		prefix[i] = acc
		acc.Mul(&acc, &points[i].Z)
	}
	inv := acc
	inv.Inverse(&inv)

	for i := len(points) - 1; i >= 0; i-- {
		p := &points[i]
		if p.Z.IsZero() {
			out[i] = g.Identity()
			continue
		}
		zinv := prefix[i]
		zinv.Mul(&zinv, &inv)
		inv.Mul(&inv, &p.Z)

		zinv2 := zinv
		zinv2.Square(&zinv)
		zinv3 := zinv2
		zinv3.Mul(&zinv3, &zinv)

		out[i].X.Mul(&p.X, &zinv2)
		out[i].Y.Mul(&p.Y, &zinv3)
		out[i].Z.SetOne()
	}
	return out
}

// zerosLike returns n zero values of v's type. The Fp2 type lives in an
// internal gnark package and cannot be named here.
func zerosLike[T any](_ T, n int) []T {
	return make([]T, n)
}

// MarshalCanonical returns gnark's 96-byte compressed encoding.
func (g G2Group) MarshalCanonical(p bls12377.G2Jac) []byte {
	a := g.ToAffine(p)
	b := a.Bytes()
	return b[:]
}

func (G2Group) UnmarshalCanonical(b []byte) (bls12377.G2Jac, error) {
	var a bls12377.G2Affine
	n, err := a.SetBytes(b)
	if err != nil {
		return bls12377.G2Jac{}, fmt.Errorf("%w: %v", codec.ErrInvalidEncoding, err)
	}
	if n != len(b) {
		return bls12377.G2Jac{}, fmt.Errorf("%w: %d trailing bytes", codec.ErrInvalidEncoding, len(b)-n)
	}
	var p bls12377.G2Jac
	p.FromAffine(&a)
	return p, nil
}
