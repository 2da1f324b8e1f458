package ecboundary

import (
	"errors"

	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/codec"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/curve"
)

var (
	// ErrNoDelegate is returned when a group has no delegate installed and
	// its fallback is disabled. It is a configuration error.
	ErrNoDelegate = errors.New("ecboundary: no delegate configured")

	// ErrLengthMismatch is returned when MultiScalarMul receives different
	// numbers of bases and scalars.
	ErrLengthMismatch = errors.New("ecboundary: bases and scalars differ in length")

	// ErrMalformedResponse is returned when a delegate answers with the
	// wrong number or size of buffers.
	ErrMalformedResponse = errors.New("ecboundary: malformed delegate response")

	// ErrScalarRange is returned for nil, negative or over-wide scalars.
	ErrScalarRange = codec.ErrScalarRange

	// ErrUnsupportedCurve is returned when a group's invariants do not
	// resolve to its declared tag.
	ErrUnsupportedCurve = curve.ErrUnsupportedCurve
)
