package pallas

import (
	"math/big"
	"math/bits"
)

// windowBits picks the Pippenger window for n terms.
func windowBits(n int) int {
	c := bits.Len(uint(n)) - 2
	switch {
	case c < 2:
		return 2
	case c > 16:
		return 16
	}
	return c
}

// msm computes sum(scalars[i] * bases[i]) with the bucket method.
func msm(bases []Affine, scalars []*big.Int) Point {
	n := min(len(bases), len(scalars))
	if n == 0 {
		return identity()
	}

	pts := make([]Point, n)
	ks := make([]*big.Int, n)
	maxBits := 0
	for i := 0; i < n; i++ {
		pts[i] = fromAffine(bases[i])
		ks[i] = new(big.Int).Mod(scalars[i], q)
		maxBits = max(maxBits, ks[i].BitLen())
	}
	if maxBits == 0 {
		return identity()
	}

	c := windowBits(n)
	windows := (maxBits + c - 1) / c
	buckets := make([]Point, (1<<c)-1)

	acc := identity()
	for w := windows - 1; w >= 0; w-- {
		for j := 0; j < c; j++ {
			acc = double(acc)
		}
		for j := range buckets {
			buckets[j] = identity()
		}
		for i := range pts {
			if d := digit(ks[i], w*c, c); d > 0 {
				buckets[d-1] = add(buckets[d-1], pts[i])
			}
		}
		running, total := identity(), identity()
		for j := len(buckets) - 1; j >= 0; j-- {
			running = add(running, buckets[j])
			total = add(total, running)
		}
		acc = add(acc, total)
	}
	return acc
}

func digit(k *big.Int, offset, width int) int {
	d := 0
	for b := width - 1; b >= 0; b-- {
		d = d<<1 | int(k.Bit(offset+b))
	}
	return d
}
