// Package codec holds the fixed-layout helpers shared by every boundary
// point codec.
//
// The per-group layouts (which coordinates, in which order, with which field
// element encoding) live in the group backends. This package provides the
// pieces that are identical for all of them: exact-size chunk reading,
// array packing of points, and the fixed-width little-endian scalar format.
//
// Nothing here validates curve membership. The encoding is meant for points
// that are already trusted; never decode it from an untrusted source.
package codec
