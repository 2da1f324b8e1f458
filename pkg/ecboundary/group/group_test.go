package group_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/curve"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/curves/pallas"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/group"
)

type mislabeled struct{ pallas.Group }

func (mislabeled) Tag() curve.Tag { return curve.Secp256k1 }

func TestKeyOf(t *testing.T) {
	g := pallas.New()
	require.Equal(t, group.Key{Tag: curve.Pallas}, group.KeyOf(g))
}

func TestVerify(t *testing.T) {
	require.NoError(t, group.Verify(pallas.New()))
	require.ErrorIs(t, group.Verify(mislabeled{}), curve.ErrUnsupportedCurve)
}

func TestWrap(t *testing.T) {
	g := pallas.New()

	w := group.Wrap(g, "")
	require.Equal(t, "wrapped", w.Variant())
	require.Equal(t, "pallas/wrapped", w.Name())
	require.Equal(t, g.Tag(), w.Tag())
	require.NoError(t, group.Verify(w))

	ww := group.Wrap(w, "audited")
	require.Equal(t, "wrapped/audited", ww.Variant())
	require.NotEqual(t, group.KeyOf(w), group.KeyOf(ww))

	require.True(t, w.Equal(g.Generator(), w.Generator()))
	require.Equal(t, g.MarshalCanonical(g.Generator()), w.MarshalCanonical(w.Generator()))
}
