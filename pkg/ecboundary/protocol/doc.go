// Package protocol defines the request/response contract between a guest and
// the delegate that serves its boundary calls.
//
// A Request names an Operation, the curve.Tag of the group it operates on
// and an ordered list of opaque buffers. The buffer layouts are fixed per
// operation:
//
//	VariableBaseMSM   in:  [affine bases] [scalars]   out: [one projective point]
//	BatchNormalize    in:  [projective points]        out: [normalized points]
//
// Points and scalars inside each buffer use the unchecked boundary codec of
// the tagged group.
//
// # Wire Frame
//
// Out-of-process delegates exchange requests and responses as frames. All
// integers are big-endian:
//
//	request:  tag u8 | op u8 | count u32 | count x (len u32 | bytes)
//	response: status u8 = 0 | count u32 | count x (len u32 | bytes)
//	          status u8 = 1 | kind u8 | len u32 | message
//
// Error kinds carry the failure class across the wire so a remote failure
// still matches the local sentinel with errors.Is.
package protocol
