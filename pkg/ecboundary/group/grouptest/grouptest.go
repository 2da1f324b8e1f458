// Package grouptest provides a conformance suite and fixtures for boundary
// backends.
package grouptest

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/codec"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/curve"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/group"
)

// Points returns n distinct points a, a+s, a+2s, ... for random a and s.
// Successive additions keep large fixtures cheap to build.
func Points[A, P any](g group.Group[A, P], n int, rng *rand.Rand) []P {
	out := make([]P, n)
	acc := g.ScalarMul(g.Generator(), big.NewInt(rng.Int63()+1))
	step := g.ScalarMul(g.Generator(), big.NewInt(rng.Int63()+1))
	for i := range out {
		out[i] = acc
		acc = g.Add(acc, step)
	}
	return out
}

// Affines converts points to affine form one by one.
func Affines[A, P any](g group.Group[A, P], points []P) []A {
	out := make([]A, len(points))
	for i, p := range points {
		out[i] = g.ToAffine(p)
	}
	return out
}

// Scalars returns n uniform scalars below the group order.
func Scalars[A, P any](g group.Group[A, P], n int, rng *rand.Rand) []*big.Int {
	order := g.Invariants().ScalarCharacteristic
	out := make([]*big.Int, n)
	for i := range out {
		out[i] = new(big.Int).Rand(rng, order)
	}
	return out
}

// NaiveMSM sums scalar multiplications one term at a time.
func NaiveMSM[A, P any](g group.Group[A, P], bases []A, scalars []*big.Int) P {
	acc := g.Identity()
	for i := range bases {
		acc = g.Add(acc, g.ScalarMul(g.FromAffine(bases[i]), scalars[i]))
	}
	return acc
}

// Run checks that g satisfies the backend contract.
func Run[A, P any](t *testing.T, g group.Group[A, P]) {
	t.Helper()
	rng := rand.New(rand.NewSource(int64(g.Tag())))

	t.Run("Resolve", func(t *testing.T) {
		tag, err := curve.Resolve(g.Invariants())
		require.NoError(t, err)
		require.Equal(t, g.Tag(), tag)
		require.NoError(t, group.Verify(g))
	})

	t.Run("GroupLaws", func(t *testing.T) {
		gen := g.Generator()
		id := g.Identity()
		order := g.Invariants().ScalarCharacteristic

		require.True(t, g.IsIdentity(id))
		require.False(t, g.IsIdentity(gen))
		require.True(t, g.Equal(g.Add(gen, id), gen))
		require.True(t, g.Equal(g.Add(id, gen), gen))
		require.True(t, g.IsIdentity(g.Add(gen, g.Neg(gen))))
		require.True(t, g.Equal(g.Double(gen), g.Add(gen, gen)))
		require.True(t, g.Equal(g.Double(gen), g.ScalarMul(gen, big.NewInt(2))))
		require.True(t, g.IsIdentity(g.ScalarMul(gen, order)))
		require.True(t, g.IsIdentity(g.ScalarMul(gen, big.NewInt(0))))
		require.True(t, g.Equal(g.FromAffine(g.ToAffine(gen)), gen))
	})

	t.Run("CodecRoundTrip", func(t *testing.T) {
		points := append(Points(g, 8, rng), g.Identity(), g.Generator(), g.Double(g.Generator()))
		for i, p := range points {
			buf := make([]byte, g.ProjectiveSize())
			g.EncodeProjective(buf, p)
			got, err := g.DecodeProjective(buf)
			require.NoError(t, err, "projective %d", i)
			require.True(t, g.Equal(p, got), "projective %d", i)

			again := make([]byte, g.ProjectiveSize())
			g.EncodeProjective(again, got)
			require.Equal(t, buf, again, "projective %d re-encodes", i)

			abuf := make([]byte, g.AffineSize())
			g.EncodeAffine(abuf, g.ToAffine(p))
			a, err := g.DecodeAffine(abuf)
			require.NoError(t, err, "affine %d", i)
			require.True(t, g.Equal(p, g.FromAffine(a)), "affine %d", i)
		}
	})

	t.Run("CodecShortBuffer", func(t *testing.T) {
		_, err := g.DecodeProjective(make([]byte, g.ProjectiveSize()-1))
		require.ErrorIs(t, err, codec.ErrShortBuffer)
		_, err = g.DecodeAffine(make([]byte, g.AffineSize()-1))
		require.ErrorIs(t, err, codec.ErrShortBuffer)
		_, err = g.DecodeProjective(make([]byte, g.ProjectiveSize()+1))
		require.ErrorIs(t, err, codec.ErrTrailingBytes)
	})

	t.Run("CanonicalRoundTrip", func(t *testing.T) {
		for i, p := range append(Points(g, 4, rng), g.Identity()) {
			got, err := g.UnmarshalCanonical(g.MarshalCanonical(p))
			require.NoError(t, err, "point %d", i)
			require.True(t, g.Equal(p, got), "point %d", i)
		}
	})

	t.Run("MultiScalarMul", func(t *testing.T) {
		for _, n := range []int{0, 1, 3, 16} {
			bases := Affines(g, Points(g, n, rng))
			scalars := Scalars(g, n, rng)
			want := NaiveMSM(g, bases, scalars)
			require.True(t, g.Equal(want, g.MultiScalarMul(bases, scalars)), "n=%d", n)
		}
	})

	t.Run("BatchNormalize", func(t *testing.T) {
		in := Points(g, 12, rng)
		in[4] = g.Identity()
		snapshot := make([][]byte, len(in))
		for i, p := range in {
			snapshot[i] = make([]byte, g.ProjectiveSize())
			g.EncodeProjective(snapshot[i], p)
		}

		out := g.BatchNormalize(in)
		require.Len(t, out, len(in))
		for i := range in {
			require.True(t, g.Equal(in[i], out[i]), "index %d", i)
			buf := make([]byte, g.ProjectiveSize())
			g.EncodeProjective(buf, in[i])
			require.Equal(t, snapshot[i], buf, "input %d mutated", i)
		}
		require.True(t, g.IsIdentity(out[4]))
		require.Empty(t, g.BatchNormalize(nil))
	})
}
