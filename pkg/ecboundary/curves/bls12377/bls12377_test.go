package bls12377_test

import (
	"math/big"
	"testing"

	bls12377 "github.com/consensys/gnark-crypto/ecc/bls12-377"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/twistededwards"
	"github.com/stretchr/testify/require"

	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/curve"
	backend "github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/curves/bls12377"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/group/grouptest"
)

func TestConformance(t *testing.T) {
	t.Run("G1", func(t *testing.T) { grouptest.Run(t, backend.G1()) })
	t.Run("G2", func(t *testing.T) { grouptest.Run(t, backend.G2()) })
	t.Run("Edwards", func(t *testing.T) { grouptest.Run(t, backend.Edwards()) })
}

func TestCofactorSeparatesG1AndG2(t *testing.T) {
	g1, g2 := backend.G1().Invariants(), backend.G2().Invariants()
	require.Zero(t, g1.BaseCharacteristic.Cmp(g2.BaseCharacteristic))
	require.Zero(t, g1.ScalarCharacteristic.Cmp(g2.ScalarCharacteristic))
	require.False(t, g1.Equal(g2))

	t1, err := curve.Resolve(g1)
	require.NoError(t, err)
	t2, err := curve.Resolve(g2)
	require.NoError(t, err)
	require.Equal(t, curve.BLS12377G1, t1)
	require.Equal(t, curve.BLS12377G2, t2)
}

func TestEdwardsBaseFieldIsScalarField(t *testing.T) {
	ed := backend.Edwards().Invariants()
	g1 := backend.G1().Invariants()
	require.Zero(t, ed.BaseCharacteristic.Cmp(g1.ScalarCharacteristic))
}

func TestEdwardsGeneratorIsLibraryBase(t *testing.T) {
	g := backend.Edwards()
	base := twistededwards.GetEdwardsCurve().Base
	require.True(t, base.IsOnCurve())
	got := g.ToAffine(g.Generator())
	require.True(t, got.Equal(&base))
}

func TestGeneratorsMatchLibrary(t *testing.T) {
	_, _, g1Aff, g2Aff := bls12377.Generators()

	g1 := backend.G1()
	got1 := g1.ToAffine(g1.Generator())
	require.True(t, got1.Equal(&g1Aff))

	g2 := backend.G2()
	got2 := g2.ToAffine(g2.Generator())
	require.True(t, got2.Equal(&g2Aff))
}

func TestG1LayoutIsBigEndian(t *testing.T) {
	g := backend.G1()
	buf := make([]byte, g.ProjectiveSize())
	g.EncodeProjective(buf, g.Identity())
	require.Equal(t, byte(1), buf[backend.G1AffineSize/2-1], "X = 1 in the last byte of its element")
	require.Equal(t, byte(1), buf[backend.G1AffineSize-1])
	require.Equal(t, make([]byte, backend.G1ProjectiveSize/3), buf[backend.G1AffineSize:])
}

func TestG2ScalarMulMatchesLibrary(t *testing.T) {
	g := backend.G2()
	k := big.NewInt(12345)
	var want bls12377.G2Jac
	gen := g.Generator()
	want.ScalarMultiplication(&gen, k)
	require.True(t, g.Equal(want, g.ScalarMul(gen, k)))
}

func TestG2BatchNormalizeSkipsIdentity(t *testing.T) {
	g := backend.G2()
	gen := g.Generator()
	points := []bls12377.G2Jac{
		g.ScalarMul(gen, big.NewInt(3)),
		g.Identity(),
		g.Add(gen, g.Double(gen)),
		g.ScalarMul(gen, big.NewInt(77)),
	}
	out := g.BatchNormalize(points)
	require.Len(t, out, len(points))
	for i := range points {
		require.True(t, g.Equal(points[i], out[i]), "point %d", i)
		if i == 1 {
			require.True(t, g.IsIdentity(out[i]))
			continue
		}
		require.True(t, out[i].Z.IsOne(), "point %d", i)
	}
	require.Empty(t, g.BatchNormalize(nil))
}

func TestEdwardsInvariantsMatchLibrary(t *testing.T) {
	params := twistededwards.GetEdwardsCurve()
	inv := backend.Edwards().Invariants()
	require.Zero(t, inv.ScalarCharacteristic.Cmp(&params.Order))
	require.Zero(t, inv.Cofactor.Cmp(params.Cofactor.BigInt(new(big.Int))))
}
