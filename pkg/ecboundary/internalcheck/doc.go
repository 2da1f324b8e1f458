// Package internalcheck holds source policy tests for the ecboundary
// packages.
//
// The tests load every non-test package under pkg/ecboundary with
// golang.org/x/tools/go/packages and walk the typed syntax trees. They
// enforce that:
//
//   - no format string uses %x or %X, so encoded scalars and points never
//     end up in error messages or logs;
//   - panic is only called from functions named must* or from init, so no
//     data path can crash on hostile input.
//
// # Internal Use Only
//
// This package has no exported API and should not be imported.
package internalcheck
