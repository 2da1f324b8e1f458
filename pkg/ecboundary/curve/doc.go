// Package curve identifies the elliptic-curve groups that can cross the
// boundary between a guest and its host delegate.
//
// Every supported group is assigned a small, stable Tag that is written as a
// single byte at the head of each boundary request. Both sides must agree on
// the tag, so the mapping from a group to its tag is defined by mathematical
// invariants rather than by Go type identity:
//
//   - the coordinate model (short Weierstrass or twisted Edwards),
//   - the characteristic of the base field,
//   - the characteristic of the scalar field (the prime subgroup order),
//   - the cofactor.
//
// # Resolving a Group
//
// Backends declare their tag as a constant. The structural comparison in
// Resolve runs once, when a backend is registered with a boundary or a host
// handler, to confirm that the declared tag matches the group's invariants:
//
//	tag, err := curve.Resolve(g.Invariants())
//	if err != nil {
//	    return err // curve.ErrUnsupportedCurve
//	}
//	if tag != g.Tag() {
//	    return fmt.Errorf("declared %s, resolved %s", g.Tag(), tag)
//	}
//
// Resolution never falls back to a default tag. A group whose invariants do
// not match any registered entry yields ErrUnsupportedCurve.
//
// # Supported Groups
//
//	Tag          Model              Base field        Cofactor
//	Pallas       short Weierstrass  Pallas p          1
//	EdBLS12377   twisted Edwards    BLS12-377 r       4
//	BLS12377G1   short Weierstrass  BLS12-377 p       h1
//	BLS12377G2   short Weierstrass  BLS12-377 p (Fp2) h2
//	Secp256k1    short Weierstrass  secp256k1 p       1
//	Ed25519      twisted Edwards    2^255-19          8
package curve
