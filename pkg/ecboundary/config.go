package ecboundary

import "github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/logging"

// Config holds the options of a Boundary.
type Config struct {
	// Logger receives dispatch decisions at debug level. Nil uses
	// slog.Default().
	Logger logging.Logger

	// TruncateMismatched makes MultiScalarMul use the first min(len(bases),
	// len(scalars)) pairs instead of returning ErrLengthMismatch. It exists
	// for callers ported from code that relied on silent truncation.
	TruncateMismatched bool
}
