// Package host serves boundary calls.
//
// A Handler owns one backend per curve tag and answers protocol.Requests by
// decoding their buffers with the backend's boundary codec, running the
// backend's arithmetic and encoding the result. NewDefault registers every
// built-in backend.
//
// Loopback turns a Handler into an in-process protocol.Delegate, which is
// what tests and the self check use. Network hosts put the same Handler
// behind grpcboundary.Server.
package host
