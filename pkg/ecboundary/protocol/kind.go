package protocol

import (
	"errors"

	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/codec"
	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/curve"
)

// Kind classifies a host failure for transport.
type Kind uint8

const (
	KindInternal Kind = iota
	KindUnsupportedOperation
	KindUnsupportedCurve
	KindBadArguments
	KindShortBuffer
	KindTrailingBytes
	KindInvalidEncoding
	KindScalarRange
)

var kindSentinels = map[Kind]error{
	KindUnsupportedOperation: ErrUnsupportedOperation,
	KindUnsupportedCurve:     curve.ErrUnsupportedCurve,
	KindBadArguments:         ErrBadArguments,
	KindShortBuffer:          codec.ErrShortBuffer,
	KindTrailingBytes:        codec.ErrTrailingBytes,
	KindInvalidEncoding:      codec.ErrInvalidEncoding,
	KindScalarRange:          codec.ErrScalarRange,
}

// KindOf returns the kind of the first sentinel err matches.
func KindOf(err error) Kind {
	for k := KindUnsupportedOperation; k <= KindScalarRange; k++ {
		if errors.Is(err, kindSentinels[k]) {
			return k
		}
	}
	return KindInternal
}

// Sentinel returns the error kind k stands for, or nil for KindInternal and
// unknown kinds.
func (k Kind) Sentinel() error {
	return kindSentinels[k]
}

// remoteError is a failure reconstructed from the wire. It prints the
// remote message and matches the sentinel of its kind.
type remoteError struct {
	kind Kind
	msg  string
}

func (e *remoteError) Error() string { return e.msg }

func (e *remoteError) Unwrap() error { return e.kind.Sentinel() }

// RemoteError rebuilds an error received from a remote host.
func RemoteError(kind Kind, msg string) error {
	return &remoteError{kind: kind, msg: msg}
}
