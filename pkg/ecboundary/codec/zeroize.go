package codec

import "runtime"

// Zeroize overwrites buf with zeros. Encoded scalar buffers are wiped this
// way once a delegate call returns.
//
// This cannot reach copies made by the garbage collector or by the
// delegate; it only clears the buffer the caller owns.
func Zeroize(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
	// Prevent dead store elimination per golang/go#33325
	runtime.KeepAlive(buf)
}
