package pallas

import "math/big"

const fieldSize = 32

var (
	// p is the base field modulus, q the group order.
	p, _ = new(big.Int).SetString("40000000000000000000000000000000224698fc094cf91b992d30ed00000001", 16)
	q, _ = new(big.Int).SetString("40000000000000000000000000000000224698fc0994a8dd8c46eb2100000001", 16)

	// halfP is (p-1)/2, the largest "positive" y.
	halfP = new(big.Int).Rsh(p, 1)

	coeffB = big.NewInt(5)
	one    = big.NewInt(1)
)

func fadd(a, b *big.Int) *big.Int {
	z := new(big.Int).Add(a, b)
	if z.Cmp(p) >= 0 {
		z.Sub(z, p)
	}
	return z
}

func fsub(a, b *big.Int) *big.Int {
	z := new(big.Int).Sub(a, b)
	if z.Sign() < 0 {
		z.Add(z, p)
	}
	return z
}

func fmul(a, b *big.Int) *big.Int {
	z := new(big.Int).Mul(a, b)
	return z.Mod(z, p)
}

func fsqr(a *big.Int) *big.Int {
	return fmul(a, a)
}

func fdbl(a *big.Int) *big.Int {
	return fadd(a, a)
}

func finv(a *big.Int) *big.Int {
	return new(big.Int).ModInverse(a, p)
}

// putElement writes x as 32 little-endian bytes. x must be below 2^256.
func putElement(dst []byte, x *big.Int) {
	var be [fieldSize]byte
	x.FillBytes(be[:])
	for i := range be {
		dst[i] = be[fieldSize-1-i]
	}
}

func element(src []byte) *big.Int {
	var be [fieldSize]byte
	for i := range be {
		be[i] = src[fieldSize-1-i]
	}
	return new(big.Int).SetBytes(be[:])
}

// reduced brings an unchecked coordinate into [0, p).
func reduced(x *big.Int) *big.Int {
	if x == nil {
		return new(big.Int)
	}
	if x.Sign() >= 0 && x.Cmp(p) < 0 {
		return x
	}
	return new(big.Int).Mod(x, p)
}
