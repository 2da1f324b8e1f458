package curve

import (
	"math/big"
)

// Model is the coordinate model a group is expressed in. It fixes the
// boundary point layout: three coordinates for short Weierstrass, four for
// twisted Edwards extended coordinates.
type Model uint8

const (
	ShortWeierstrass Model = iota + 1
	TwistedEdwards
)

func (m Model) String() string {
	switch m {
	case ShortWeierstrass:
		return "short-weierstrass"
	case TwistedEdwards:
		return "twisted-edwards"
	default:
		return "unknown-model"
	}
}

// Invariants are the structural properties used to identify a group.
type Invariants struct {
	Model                Model
	BaseCharacteristic   *big.Int
	ScalarCharacteristic *big.Int
	Cofactor             *big.Int
}

// Equal reports whether both invariant sets describe the same group. Nil
// integers never match.
func (inv Invariants) Equal(other Invariants) bool {
	return inv.Model == other.Model &&
		eqInt(inv.BaseCharacteristic, other.BaseCharacteristic) &&
		eqInt(inv.ScalarCharacteristic, other.ScalarCharacteristic) &&
		eqInt(inv.Cofactor, other.Cofactor)
}

// Clone returns a deep copy so callers can hand out invariants without
// exposing the table's integers.
func (inv Invariants) Clone() Invariants {
	return Invariants{
		Model:                inv.Model,
		BaseCharacteristic:   cloneInt(inv.BaseCharacteristic),
		ScalarCharacteristic: cloneInt(inv.ScalarCharacteristic),
		Cofactor:             cloneInt(inv.Cofactor),
	}
}

func eqInt(a, b *big.Int) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Cmp(b) == 0
}

func cloneInt(x *big.Int) *big.Int {
	if x == nil {
		return nil
	}
	return new(big.Int).Set(x)
}

func mustHex(s string) *big.Int {
	x, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("curve: bad constant " + s)
	}
	return x
}

// Field characteristics and cofactors of the supported groups.
var (
	pallasP = mustHex("40000000000000000000000000000000224698fc094cf91b992d30ed00000001")
	pallasQ = mustHex("40000000000000000000000000000000224698fc0994a8dd8c46eb2100000001")

	bls12377P  = mustHex("01ae3a4617c510eac63b05c06ca1493b1a22d9f300f5138f1ef3622fba094800170b5d44300000008508c00000000001")
	bls12377R  = mustHex("12ab655e9a2ca55660b44d1e5c37b00159aa76fed00000010a11800000000001")
	bls12377H1 = mustHex("170b5d44300000000000000000000000")
	bls12377H2 = mustHex("26ba558ae9562addd88d99a6f6a829fbb36b00e1dcc40c8c505634fae2e189d693e8c36676bd09a0f3622fba094800452217cc900000000000000000000001")

	edBLS12377Order = mustHex("04aad957a68b2955982d1347970dec005293a3afc43c8afeb95aee9ac33fd9ff")

	secp256k1P = mustHex("fffffffffffffffffffffffffffffffffffffffffffffffffffffffefffffc2f")
	secp256k1N = mustHex("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")

	ed25519P = mustHex("7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffed")
	ed25519L = mustHex("1000000000000000000000000000000014def9dea2f79cd65812631a5cf5d3ed")
)

func defaultEntries() []Entry {
	one := big.NewInt(1)
	return []Entry{
		{Tag: Pallas, Invariants: Invariants{ShortWeierstrass, pallasP, pallasQ, one}},
		{Tag: EdBLS12377, Invariants: Invariants{TwistedEdwards, bls12377R, edBLS12377Order, big.NewInt(4)}},
		{Tag: BLS12377G1, Invariants: Invariants{ShortWeierstrass, bls12377P, bls12377R, bls12377H1}},
		{Tag: BLS12377G2, Invariants: Invariants{ShortWeierstrass, bls12377P, bls12377R, bls12377H2}},
		{Tag: Secp256k1, Invariants: Invariants{ShortWeierstrass, secp256k1P, secp256k1N, one}},
		{Tag: Ed25519, Invariants: Invariants{TwistedEdwards, ed25519P, ed25519L, big.NewInt(8)}},
	}
}
