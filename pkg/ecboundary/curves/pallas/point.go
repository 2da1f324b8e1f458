package pallas

import "math/big"

// Affine is a point in affine coordinates. The point at infinity is stored
// as (0, 0), which is not on the curve. Values are treated as immutable.
type Affine struct {
	X, Y *big.Int
}

// IsInfinity reports whether a is the point at infinity.
func (a Affine) IsInfinity() bool {
	return reduced(a.X).Sign() == 0 && reduced(a.Y).Sign() == 0
}

// Point is a point in Jacobian coordinates, (X/Z^2, Y/Z^3). The identity has
// Z = 0 and is stored as (1, 1, 0). Values are treated as immutable.
type Point struct {
	X, Y, Z *big.Int
}

func identity() Point {
	return Point{X: big.NewInt(1), Y: big.NewInt(1), Z: big.NewInt(0)}
}

func (pt Point) isIdentity() bool {
	return reduced(pt.Z).Sign() == 0
}

func fromAffine(a Affine) Point {
	if a.IsInfinity() {
		return identity()
	}
	return Point{X: reduced(a.X), Y: reduced(a.Y), Z: big.NewInt(1)}
}

func toAffine(pt Point) Affine {
	if pt.isIdentity() {
		return Affine{X: new(big.Int), Y: new(big.Int)}
	}
	zinv := finv(reduced(pt.Z))
	return affineWith(pt, zinv)
}

func affineWith(pt Point, zinv *big.Int) Affine {
	zinv2 := fsqr(zinv)
	return Affine{
		X: fmul(reduced(pt.X), zinv2),
		Y: fmul(reduced(pt.Y), fmul(zinv2, zinv)),
	}
}

// double uses dbl-2009-l for a = 0.
func double(pt Point) Point {
	if pt.isIdentity() || reduced(pt.Y).Sign() == 0 {
		return identity()
	}
	x, y, z := reduced(pt.X), reduced(pt.Y), reduced(pt.Z)

	a := fsqr(x)
	b := fsqr(y)
	c := fsqr(b)
	d := fdbl(fsub(fsub(fsqr(fadd(x, b)), a), c))
	e := fadd(fdbl(a), a)
	f := fsqr(e)

	x3 := fsub(f, fdbl(d))
	c8 := fdbl(fdbl(fdbl(c)))
	y3 := fsub(fmul(e, fsub(d, x3)), c8)
	z3 := fdbl(fmul(y, z))
	return Point{X: x3, Y: y3, Z: z3}
}

// add uses add-2007-bl.
func add(p1, p2 Point) Point {
	if p1.isIdentity() {
		return p2
	}
	if p2.isIdentity() {
		return p1
	}
	x1, y1, z1 := reduced(p1.X), reduced(p1.Y), reduced(p1.Z)
	x2, y2, z2 := reduced(p2.X), reduced(p2.Y), reduced(p2.Z)

	z1z1 := fsqr(z1)
	z2z2 := fsqr(z2)
	u1 := fmul(x1, z2z2)
	u2 := fmul(x2, z1z1)
	s1 := fmul(fmul(y1, z2), z2z2)
	s2 := fmul(fmul(y2, z1), z1z1)

	h := fsub(u2, u1)
	r := fdbl(fsub(s2, s1))
	if h.Sign() == 0 {
		if r.Sign() == 0 {
			return double(p1)
		}
		return identity()
	}

	i := fsqr(fdbl(h))
	j := fmul(h, i)
	v := fmul(u1, i)

	x3 := fsub(fsub(fsqr(r), j), fdbl(v))
	y3 := fsub(fmul(r, fsub(v, x3)), fdbl(fmul(s1, j)))
	z3 := fmul(fsub(fsub(fsqr(fadd(z1, z2)), z1z1), z2z2), h)
	return Point{X: x3, Y: y3, Z: z3}
}

func neg(pt Point) Point {
	if pt.isIdentity() {
		return identity()
	}
	return Point{X: reduced(pt.X), Y: fsub(new(big.Int), reduced(pt.Y)), Z: reduced(pt.Z)}
}

func equal(p1, p2 Point) bool {
	switch {
	case p1.isIdentity() && p2.isIdentity():
		return true
	case p1.isIdentity() || p2.isIdentity():
		return false
	}
	z1z1 := fsqr(reduced(p1.Z))
	z2z2 := fsqr(reduced(p2.Z))
	if fmul(reduced(p1.X), z2z2).Cmp(fmul(reduced(p2.X), z1z1)) != 0 {
		return false
	}
	lhs := fmul(reduced(p1.Y), fmul(z2z2, reduced(p2.Z)))
	rhs := fmul(reduced(p2.Y), fmul(z1z1, reduced(p1.Z)))
	return lhs.Cmp(rhs) == 0
}

func scalarMul(pt Point, k *big.Int) Point {
	e := new(big.Int).Mod(k, q)
	acc := identity()
	for i := e.BitLen() - 1; i >= 0; i-- {
		acc = double(acc)
		if e.Bit(i) == 1 {
			acc = add(acc, pt)
		}
	}
	return acc
}

// batchNormalize shares one inversion across all non-identity points.
func batchNormalize(points []Point) []Point {
	out := make([]Point, len(points))
	prefix := make([]*big.Int, len(points))
	acc := big.NewInt(1)
	for i, pt := range points {
		if pt.isIdentity() {
			continue
		}
		prefix[i] = acc
		acc = fmul(acc, reduced(pt.Z))
	}
	inv := finv(acc)
	for i := len(points) - 1; i >= 0; i-- {
		pt := points[i]
		if pt.isIdentity() {
			out[i] = identity()
			continue
		}
		zinv := fmul(inv, prefix[i])
		inv = fmul(inv, reduced(pt.Z))
		a := affineWith(pt, zinv)
		out[i] = Point{X: a.X, Y: a.Y, Z: big.NewInt(1)}
	}
	return out
}

// onCurve checks y^2 = x^3 + 5 for an affine point.
func onCurve(x, y *big.Int) bool {
	lhs := fsqr(y)
	rhs := fadd(fmul(fsqr(x), x), coeffB)
	return lhs.Cmp(rhs) == 0
}
