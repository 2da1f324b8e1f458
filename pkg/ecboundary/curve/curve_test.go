package curve_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/curve"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		name    string
		b       byte
		want    curve.Tag
		wantErr bool
	}{
		{"zero", 0, 0, true},
		{"pallas", 1, curve.Pallas, false},
		{"ed-bls12-377", 2, curve.EdBLS12377, false},
		{"bls12-377-g1", 3, curve.BLS12377G1, false},
		{"bls12-377-g2", 4, curve.BLS12377G2, false},
		{"secp256k1", 5, curve.Secp256k1, false},
		{"ed25519", 6, curve.Ed25519, false},
		{"out of range", 7, 0, true},
		{"max", 255, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := curve.ParseTag(tt.b)
			if tt.wantErr {
				require.ErrorIs(t, err, curve.ErrUnsupportedCurve)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.name, got.String())
		})
	}
}

func TestTagByName(t *testing.T) {
	for _, tag := range curve.Tags() {
		got, err := curve.TagByName(tag.String())
		require.NoError(t, err)
		require.Equal(t, tag, got)
	}
	_, err := curve.TagByName("mnt4-298")
	require.ErrorIs(t, err, curve.ErrUnsupportedCurve)
}

func TestResolveEveryRegisteredTag(t *testing.T) {
	for _, tag := range curve.Tags() {
		t.Run(tag.String(), func(t *testing.T) {
			inv, ok := curve.Lookup(tag)
			require.True(t, ok)
			got, err := curve.Resolve(inv)
			require.NoError(t, err)
			require.Equal(t, tag, got)
		})
	}
}

func TestResolveUnsupported(t *testing.T) {
	inv, ok := curve.Lookup(curve.Pallas)
	require.True(t, ok)

	tests := []struct {
		name   string
		mutate func(*curve.Invariants)
	}{
		{"cofactor", func(inv *curve.Invariants) { inv.Cofactor = big.NewInt(2) }},
		{"base field", func(inv *curve.Invariants) { inv.BaseCharacteristic.Add(inv.BaseCharacteristic, big.NewInt(2)) }},
		{"scalar field", func(inv *curve.Invariants) { inv.ScalarCharacteristic = big.NewInt(7) }},
		{"model", func(inv *curve.Invariants) { inv.Model = curve.TwistedEdwards }},
		{"missing", func(inv *curve.Invariants) { inv.Cofactor = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := inv.Clone()
			tt.mutate(&candidate)
			_, err := curve.Resolve(candidate)
			require.ErrorIs(t, err, curve.ErrUnsupportedCurve)
		})
	}
}

func TestLookupReturnsCopy(t *testing.T) {
	inv, ok := curve.Lookup(curve.Secp256k1)
	require.True(t, ok)
	inv.Cofactor.SetInt64(99)

	again, ok := curve.Lookup(curve.Secp256k1)
	require.True(t, ok)
	require.Equal(t, int64(1), again.Cofactor.Int64())
}

func TestVerify(t *testing.T) {
	inv, _ := curve.Lookup(curve.BLS12377G2)
	require.NoError(t, curve.Verify(curve.BLS12377G2, inv))
	require.ErrorIs(t, curve.Verify(curve.BLS12377G1, inv), curve.ErrUnsupportedCurve)
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	inv, _ := curve.Lookup(curve.Ed25519)

	_, err := curve.NewRegistry(
		curve.Entry{Tag: curve.Ed25519, Invariants: inv},
		curve.Entry{Tag: curve.Ed25519, Invariants: inv},
	)
	require.ErrorIs(t, err, curve.ErrDuplicateEntry)

	_, err = curve.NewRegistry(
		curve.Entry{Tag: curve.Ed25519, Invariants: inv},
		curve.Entry{Tag: curve.Pallas, Invariants: inv},
	)
	require.ErrorIs(t, err, curve.ErrDuplicateEntry)

	_, err = curve.NewRegistry(curve.Entry{Tag: 0, Invariants: inv})
	require.ErrorIs(t, err, curve.ErrUnsupportedCurve)
}

func TestCustomRegistryPriority(t *testing.T) {
	g1, _ := curve.Lookup(curve.BLS12377G1)
	g2, _ := curve.Lookup(curve.BLS12377G2)

	r, err := curve.NewRegistry(
		curve.Entry{Tag: curve.BLS12377G2, Invariants: g2},
		curve.Entry{Tag: curve.BLS12377G1, Invariants: g1},
	)
	require.NoError(t, err)

	got, err := r.Resolve(g1)
	require.NoError(t, err)
	require.Equal(t, curve.BLS12377G1, got)

	_, err = r.Resolve(curve.Invariants{})
	require.ErrorIs(t, err, curve.ErrUnsupportedCurve)
}
