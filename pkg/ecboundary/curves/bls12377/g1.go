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
	fpSize = fp.Bytes

	G1AffineSize     = 2 * fpSize
	G1ProjectiveSize = 3 * fpSize
)

var (
	cofactorG1, _ = new(big.Int).SetString("170b5d44300000000000000000000000", 16)
	cofactorG2, _ = new(big.Int).SetString("26ba558ae9562addd88d99a6f6a829fbb36b00e1dcc40c8c505634fae2e189d693e8c36676bd09a0f3622fba094800452217cc900000000000000000000001", 16)
)

func putFp(dst []byte, e *fp.Element) {
	b := e.Bytes()
	copy(dst[:fpSize], b[:])
}

func getFp(src []byte) fp.Element {
	var e fp.Element
	e.SetBytes(src[:fpSize])
	return e
}

// frScalars reduces scalars into the scalar field.
func frScalars(scalars []*big.Int) []fr.Element {
	out := make([]fr.Element, len(scalars))
	for i, k := range scalars {
		out[i].SetBigInt(k)
	}
	return out
}

func reduceScalar(k *big.Int) *big.Int {
	return new(big.Int).Mod(k, fr.Modulus())
}

// G1Group is the BLS12-377 G1 backend.
type G1Group struct{}

var _ group.Group[bls12377.G1Affine, bls12377.G1Jac] = G1Group{}

// G1 returns the G1 backend.
func G1() G1Group { return G1Group{} }

func (G1Group) Tag() curve.Tag      { return curve.BLS12377G1 }
func (G1Group) Variant() string     { return "" }
func (G1Group) Name() string        { return "bls12-377-g1" }
func (G1Group) AffineSize() int     { return G1AffineSize }
func (G1Group) ProjectiveSize() int { return G1ProjectiveSize }
func (G1Group) ScalarSize() int     { return group.ScalarSize }

func (G1Group) Invariants() curve.Invariants {
	return curve.Invariants{
		Model:                curve.ShortWeierstrass,
		BaseCharacteristic:   fp.Modulus(),
		ScalarCharacteristic: fr.Modulus(),
		Cofactor:             new(big.Int).Set(cofactorG1),
	}
}

func (G1Group) EncodeAffine(dst []byte, a bls12377.G1Affine) {
	putFp(dst[0:fpSize], &a.X)
	putFp(dst[fpSize:2*fpSize], &a.Y)
}

func (G1Group) DecodeAffine(src []byte) (bls12377.G1Affine, error) {
	if err := codec.Exact(src, G1AffineSize); err != nil {
		return bls12377.G1Affine{}, err
	}
	return bls12377.G1Affine{X: getFp(src[0:fpSize]), Y: getFp(src[fpSize:])}, nil
}

func (g G1Group) EncodeProjective(dst []byte, p bls12377.G1Jac) {
	if p.Z.IsZero() {
		p = g.Identity()
	}
	putFp(dst[0:fpSize], &p.X)
	putFp(dst[fpSize:2*fpSize], &p.Y)
	putFp(dst[2*fpSize:3*fpSize], &p.Z)
}

func (G1Group) DecodeProjective(src []byte) (bls12377.G1Jac, error) {
	if err := codec.Exact(src, G1ProjectiveSize); err != nil {
		return bls12377.G1Jac{}, err
	}
	return bls12377.G1Jac{
		X: getFp(src[0:fpSize]),
		Y: getFp(src[fpSize : 2*fpSize]),
		Z: getFp(src[2*fpSize:]),
	}, nil
}

// Identity returns (1, 1, 0).
func (G1Group) Identity() bls12377.G1Jac {
	var p bls12377.G1Jac
	p.X.SetOne()
	p.Y.SetOne()
	return p
}

func (G1Group) Generator() bls12377.G1Jac {
	g, _, _, _ := bls12377.Generators()
	return g
}

func (G1Group) IsIdentity(p bls12377.G1Jac) bool { return p.Z.IsZero() }

func (G1Group) Equal(p, q bls12377.G1Jac) bool { return p.Equal(&q) }

func (G1Group) Add(p, q bls12377.G1Jac) bls12377.G1Jac {
	var r bls12377.G1Jac
	r.Set(&p).AddAssign(&q)
	return r
}

func (G1Group) Double(p bls12377.G1Jac) bls12377.G1Jac {
	var r bls12377.G1Jac
	r.Double(&p)
	return r
}

func (G1Group) Neg(p bls12377.G1Jac) bls12377.G1Jac {
	var r bls12377.G1Jac
	r.Neg(&p)
	return r
}

func (G1Group) ScalarMul(p bls12377.G1Jac, k *big.Int) bls12377.G1Jac {
	var r bls12377.G1Jac
	r.ScalarMultiplication(&p, reduceScalar(k))
	return r
}

func (G1Group) ToAffine(p bls12377.G1Jac) bls12377.G1Affine {
	var a bls12377.G1Affine
	a.FromJacobian(&p)
	return a
}

func (G1Group) FromAffine(a bls12377.G1Affine) bls12377.G1Jac {
	var p bls12377.G1Jac
	p.FromAffine(&a)
	return p
}

func (g G1Group) MultiScalarMul(bases []bls12377.G1Affine, scalars []*big.Int) bls12377.G1Jac {
	n := min(len(bases), len(scalars))
	if n == 0 {
		return g.Identity()
	}
	var r bls12377.G1Jac
	if _, err := r.MultiExp(bases[:n], frScalars(scalars[:n]), ecc.MultiExpConfig{}); err != nil {
		// MultiExp only fails on mismatched lengths or a bad config.
		acc := g.Identity()
		for i := 0; i < n; i++ {
			acc = g.Add(acc, g.ScalarMul(g.FromAffine(bases[i]), scalars[i]))
		}
		return acc
	}
	return r
}

func (G1Group) BatchNormalize(points []bls12377.G1Jac) []bls12377.G1Jac {
	affine := bls12377.BatchJacobianToAffineG1(points)
	out := make([]bls12377.G1Jac, len(points))
	for i := range affine {
		out[i].FromAffine(&affine[i])
	}
	return out
}

// MarshalCanonical returns gnark's 48-byte compressed encoding.
func (g G1Group) MarshalCanonical(p bls12377.G1Jac) []byte {
	a := g.ToAffine(p)
	b := a.Bytes()
	return b[:]
}

func (G1Group) UnmarshalCanonical(b []byte) (bls12377.G1Jac, error) {
	var a bls12377.G1Affine
	n, err := a.SetBytes(b)
	if err != nil {
		return bls12377.G1Jac{}, fmt.Errorf("%w: %v", codec.ErrInvalidEncoding, err)
	}
	if n != len(b) {
		return bls12377.G1Jac{}, fmt.Errorf("%w: %d trailing bytes", codec.ErrInvalidEncoding, len(b)-n)
	}
	var p bls12377.G1Jac
	p.FromAffine(&a)
	return p, nil
}
