package codec

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrShortBuffer is returned when fewer bytes remain than one element
	// needs. No partial element is ever produced.
	ErrShortBuffer = errors.New("codec: short buffer")

	// ErrTrailingBytes is returned when input is left over after a single
	// element or a whole message.
	ErrTrailingBytes = errors.New("codec: trailing bytes")

	// ErrInvalidEncoding is returned when a backend refuses a coordinate
	// encoding outright.
	ErrInvalidEncoding = errors.New("codec: invalid encoding")

	// ErrScalarRange is returned for negative scalars or scalars that do not
	// fit the fixed scalar width.
	ErrScalarRange = errors.New("codec: scalar out of range")
)

// AffineCodec encodes affine points of type A at a fixed size.
type AffineCodec[A any] interface {
	AffineSize() int
	EncodeAffine(dst []byte, a A)
	DecodeAffine(src []byte) (A, error)
}

// ProjectiveCodec encodes projective points of type P at a fixed size.
type ProjectiveCodec[P any] interface {
	ProjectiveSize() int
	EncodeProjective(dst []byte, p P)
	DecodeProjective(src []byte) (P, error)
}

// Reader hands out consecutive fixed-size chunks of a buffer.
type Reader struct {
	buf []byte
	off int
}

// NewReader returns a Reader over buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Next returns the next n bytes or ErrShortBuffer if fewer remain. The
// returned slice aliases the underlying buffer.
func (r *Reader) Next(n int) ([]byte, error) {
	if n < 0 || len(r.buf)-r.off < n {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrShortBuffer, n, len(r.buf)-r.off)
	}
	chunk := r.buf[r.off : r.off+n]
	r.off += n
	return chunk, nil
}

// Remaining reports how many bytes are left.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

// Done returns ErrTrailingBytes if any input is left unread.
func (r *Reader) Done() error {
	if rem := r.Remaining(); rem != 0 {
		return fmt.Errorf("%w: %d unread", ErrTrailingBytes, rem)
	}
	return nil
}

// Exact checks that src holds exactly one element of size bytes.
func Exact(src []byte, size int) error {
	switch {
	case len(src) < size:
		return fmt.Errorf("%w: need %d bytes, have %d", ErrShortBuffer, size, len(src))
	case len(src) > size:
		return fmt.Errorf("%w: %d bytes past a %d-byte element", ErrTrailingBytes, len(src)-size, size)
	}
	return nil
}

// Count returns how many elements of size fit exactly in n bytes. A partial
// last element is ErrShortBuffer.
func Count(n, size int) (int, error) {
	if size <= 0 {
		return 0, fmt.Errorf("%w: element size %d", ErrInvalidEncoding, size)
	}
	if rem := n % size; rem != 0 {
		return 0, fmt.Errorf("%w: element %d needs %d bytes, have %d", ErrShortBuffer, n/size, size, rem)
	}
	return n / size, nil
}

// DecodeOne decodes exactly one element from buf. Decoding a 0-byte element
// from an empty buffer is fine; anything left over is ErrTrailingBytes.
func DecodeOne[T any](buf []byte, size int, decode func([]byte) (T, error)) (T, error) {
	var zero T
	r := NewReader(buf)
	chunk, err := r.Next(size)
	if err != nil {
		return zero, err
	}
	if err := r.Done(); err != nil {
		return zero, err
	}
	return decode(chunk)
}

// EncodeAffines packs points back to back.
func EncodeAffines[A any](c AffineCodec[A], points []A) []byte {
	size := c.AffineSize()
	out := make([]byte, size*len(points))
	for i := range points {
		c.EncodeAffine(out[i*size:(i+1)*size], points[i])
	}
	return out
}

// DecodeAffines unpacks a buffer produced by EncodeAffines.
func DecodeAffines[A any](c AffineCodec[A], buf []byte) ([]A, error) {
	size := c.AffineSize()
	n, err := Count(len(buf), size)
	if err != nil {
		return nil, err
	}
	out := make([]A, n)
	r := NewReader(buf)
	for i := range out {
		chunk, err := r.Next(size)
		if err != nil {
			return nil, err
		}
		if out[i], err = c.DecodeAffine(chunk); err != nil {
			return nil, fmt.Errorf("affine point %d: %w", i, err)
		}
	}
	return out, nil
}

// EncodeProjectives packs points back to back.
func EncodeProjectives[P any](c ProjectiveCodec[P], points []P) []byte {
	size := c.ProjectiveSize()
	out := make([]byte, size*len(points))
	for i := range points {
		c.EncodeProjective(out[i*size:(i+1)*size], points[i])
	}
	return out
}

// DecodeProjectives unpacks a buffer produced by EncodeProjectives.
func DecodeProjectives[P any](c ProjectiveCodec[P], buf []byte) ([]P, error) {
	size := c.ProjectiveSize()
	n, err := Count(len(buf), size)
	if err != nil {
		return nil, err
	}
	out := make([]P, n)
	r := NewReader(buf)
	for i := range out {
		chunk, err := r.Next(size)
		if err != nil {
			return nil, err
		}
		if out[i], err = c.DecodeProjective(chunk); err != nil {
			return nil, fmt.Errorf("projective point %d: %w", i, err)
		}
	}
	return out, nil
}

// CheckScalar reports whether k is a non-negative integer that fits in size
// bytes.
func CheckScalar(k *big.Int, size int) error {
	if k == nil {
		return fmt.Errorf("%w: nil", ErrScalarRange)
	}
	if k.Sign() < 0 {
		return fmt.Errorf("%w: negative", ErrScalarRange)
	}
	if k.BitLen() > 8*size {
		return fmt.Errorf("%w: %d bits exceed %d bytes", ErrScalarRange, k.BitLen(), size)
	}
	return nil
}

// PutScalar writes k into dst as a little-endian unsigned integer padded to
// len(dst) bytes.
func PutScalar(dst []byte, k *big.Int) error {
	if err := CheckScalar(k, len(dst)); err != nil {
		return err
	}
	be := k.FillBytes(make([]byte, len(dst)))
	for i := range be {
		dst[i] = be[len(be)-1-i]
	}
	return nil
}

// Scalar reads a little-endian unsigned integer.
func Scalar(src []byte) *big.Int {
	be := make([]byte, len(src))
	for i := range src {
		be[i] = src[len(src)-1-i]
	}
	return new(big.Int).SetBytes(be)
}

// EncodeScalars packs scalars at size bytes each.
func EncodeScalars(scalars []*big.Int, size int) ([]byte, error) {
	out := make([]byte, size*len(scalars))
	for i, k := range scalars {
		if err := PutScalar(out[i*size:(i+1)*size], k); err != nil {
			return nil, fmt.Errorf("scalar %d: %w", i, err)
		}
	}
	return out, nil
}

// DecodeScalars unpacks a buffer produced by EncodeScalars.
func DecodeScalars(buf []byte, size int) ([]*big.Int, error) {
	n, err := Count(len(buf), size)
	if err != nil {
		return nil, err
	}
	out := make([]*big.Int, n)
	for i := range out {
		out[i] = Scalar(buf[i*size : (i+1)*size])
	}
	return out, nil
}
