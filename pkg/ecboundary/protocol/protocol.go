package protocol

import (
	"context"
	"errors"
	"fmt"

	"github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/curve"
)

// Operation is a boundary-eligible group operation. The byte values are part
// of the wire contract.
type Operation uint8

const (
	VariableBaseMSM Operation = 0
	// FixedBaseMSM is reserved on the wire. No handler implements it.
	FixedBaseMSM   Operation = 1
	BatchNormalize Operation = 2
)

func (op Operation) String() string {
	switch op {
	case VariableBaseMSM:
		return "variable-base-msm"
	case FixedBaseMSM:
		return "fixed-base-msm"
	case BatchNormalize:
		return "batch-normalize"
	default:
		return fmt.Sprintf("operation(%d)", uint8(op))
	}
}

// Valid reports whether op is a known operation code, implemented or not.
func (op Operation) Valid() bool {
	return op <= BatchNormalize
}

// Arity is the number of request buffers op takes.
func (op Operation) Arity() int {
	switch op {
	case VariableBaseMSM:
		return 2
	case BatchNormalize:
		return 1
	default:
		return 0
	}
}

var (
	// ErrUnsupportedOperation is returned for unknown or unimplemented
	// operation codes.
	ErrUnsupportedOperation = errors.New("unsupported boundary operation")

	// ErrBadArguments is returned when a request's buffers do not match the
	// operation's contract.
	ErrBadArguments = errors.New("bad boundary arguments")
)

// Request is one boundary call.
type Request struct {
	Op      Operation
	Curve   curve.Tag
	Buffers [][]byte
}

// Response carries the output buffers of a successful call.
type Response struct {
	Buffers [][]byte
}

// Delegate serves boundary calls. Implementations must be safe for
// concurrent use. A returned error is surfaced to the caller unchanged.
type Delegate interface {
	Call(ctx context.Context, req *Request) (*Response, error)
}

// DelegateFunc adapts a function to a Delegate.
type DelegateFunc func(ctx context.Context, req *Request) (*Response, error)

func (f DelegateFunc) Call(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

// HostError is the failure a delegate reports for a request.
type HostError struct {
	Op    Operation
	Curve curve.Tag
	Err   error
}

func (e *HostError) Error() string {
	return fmt.Sprintf("boundary host: %s on %s: %v", e.Op, e.Curve, e.Err)
}

func (e *HostError) Unwrap() error { return e.Err }

// Fail wraps err as a HostError for req.
func Fail(req *Request, err error) error {
	var he *HostError
	if errors.As(err, &he) {
		return err
	}
	return &HostError{Op: req.Op, Curve: req.Curve, Err: err}
}
