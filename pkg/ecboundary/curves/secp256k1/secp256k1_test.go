package secp256k1_test

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/require"

	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/codec"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/curves/secp256k1"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/group/grouptest"
)

func TestConformance(t *testing.T) {
	grouptest.Run(t, secp256k1.New())
}

func TestDoubleKnownAnswer(t *testing.T) {
	g := secp256k1.New()
	require.Equal(t,
		"02c6047f9441ed7d6d3045406e95c07cd85c778e4b8cef3ca7abac09b95c709ee5",
		hex.EncodeToString(g.MarshalCanonical(g.Double(g.Generator()))))
}

func TestGeneratorMatchesCurveParams(t *testing.T) {
	g := secp256k1.New()
	a := g.ToAffine(g.Generator())
	params := btcec.S256().Params()

	x, y := a.X, a.Y
	require.Zero(t, new(big.Int).SetBytes(x.Bytes()[:]).Cmp(params.Gx))
	require.Zero(t, new(big.Int).SetBytes(y.Bytes()[:]).Cmp(params.Gy))
}

func TestIdentityEncodesAsZeros(t *testing.T) {
	g := secp256k1.New()
	buf := make([]byte, g.ProjectiveSize())
	for i := range buf {
		buf[i] = 0xff
	}
	g.EncodeProjective(buf, g.Identity())
	require.Equal(t, make([]byte, secp256k1.ProjectiveSize), buf)
	require.Equal(t, []byte{0}, g.MarshalCanonical(g.Identity()))
}

func TestUnmarshalCanonicalRejects(t *testing.T) {
	_, err := secp256k1.New().UnmarshalCanonical([]byte{0x02, 0x01})
	require.ErrorIs(t, err, codec.ErrInvalidEncoding)
}

func TestJacobianConstruction(t *testing.T) {
	g := secp256k1.New()
	params := btcec.S256().Params()

	// G scaled to Z = 2: (x·Z², y·Z³, Z).
	mod := func(v *big.Int) []byte { return new(big.Int).Mod(v, params.P).FillBytes(make([]byte, 32)) }
	buf := append(append(append([]byte{},
		mod(new(big.Int).Mul(params.Gx, big.NewInt(4)))...),
		mod(new(big.Int).Mul(params.Gy, big.NewInt(8)))...),
		mod(big.NewInt(2))...)

	p, err := g.DecodeProjective(buf)
	require.NoError(t, err)
	require.True(t, g.Equal(g.Generator(), p))

	out := g.BatchNormalize([]secp256k1.Point{p, g.Identity()})
	require.True(t, g.Equal(g.Generator(), out[0]))
	require.True(t, out[0].Z.IsOne())
	require.True(t, g.IsIdentity(out[1]))

	back := g.FromAffine(g.ToAffine(p))
	require.True(t, back.Z.IsOne())
	require.True(t, g.Equal(p, back))
	require.True(t, g.IsIdentity(g.FromAffine(secp256k1.Affine{})))
}
