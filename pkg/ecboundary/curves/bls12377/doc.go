// Package bls12377 adapts gnark-crypto's BLS12-377 groups to the boundary
// backend contract.
//
// Three backends are provided:
//
//	G1()       the G1 group over Fp, Jacobian coordinates
//	G2()       the G2 group over Fp2, Jacobian coordinates
//	Edwards()  the twisted Edwards curve defined over the BLS12-377 scalar
//	           field, extended coordinates
//
// Field elements are written big-endian in gnark's regular (non-Montgomery)
// form. An Fp2 element is written A0 then A1. Short Weierstrass points encode
// as X||Y||Z and twisted Edwards points as X||Y||T||Z; affine points encode as
// X||Y with (0, 0) standing for infinity on the Weierstrass groups.
//
// G1 and G2 share base and scalar fields; their cofactors tell them apart.
package bls12377
