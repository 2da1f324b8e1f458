// Package ecboundary delegates expensive elliptic-curve operations across a
// boundary to a faster host implementation, with an optional in-process
// fallback.
//
// # Overview
//
// Two operations are boundary-eligible:
//
//   - MultiScalarMul: sum(scalars[i] * bases[i]) over affine bases.
//   - BatchNormalize: rescale projective points to Z = 1, preserving count
//     and order.
//
// Each call goes through a Boundary, which holds one slot per group. A slot
// has an optional protocol.Delegate and an independent fallback flag:
//
//	delegate set                 -> encode, call the delegate, decode
//	no delegate, fallback on     -> run the backend's reference arithmetic
//	no delegate, fallback off    -> ErrNoDelegate
//
// A delegate that fails is a hard failure. Its error is returned unchanged
// and the fallback is never consulted.
//
// # Usage
//
//	b := ecboundary.New(ecboundary.Config{})
//	g := pallas.New()
//
//	h, err := host.NewDefault(nil)
//	if err != nil {
//	    return err
//	}
//	if err := b.Install(g, host.Loopback{Handler: h}); err != nil {
//	    return err
//	}
//
//	sum, err := ecboundary.MultiScalarMul(ctx, b, g, bases, scalars)
//
// Install delegates before starting concurrent work. Slots are read without
// locks and a concurrent Install is last-write-wins.
//
// # Wrapped Groups
//
// group.Wrap gives a backend a new variant. The wrapper shares the tag and
// codec of its inner group but owns a separate slot, so it can be pointed at
// a different delegate or have a different fallback policy.
package ecboundary
