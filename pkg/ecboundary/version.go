package ecboundary

import "github.com/coinbase/cb-ecboundary-go/pkg/ecboundary/protocol"

var (
	Version = "v0.0.0-in-progress"
	Commit  = "unknown"
)

// ProtocolVersion is bumped whenever the wire frame or a codec layout
// changes incompatibly.
const ProtocolVersion = 1

// ModuleVersion returns the semantic version populated at build time via
// ldflags. In development it defaults to v0.0.0-in-progress.
func ModuleVersion() string {
	return Version
}

// MaxFrameBuffers reports the buffer limit of the wire frame.
func MaxFrameBuffers() int {
	return protocol.MaxBuffers
}
