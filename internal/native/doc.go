// Package native is the calling boundary between foreign hosts and the Go
// functions of this module.
//
// Hosts hand over loosely typed values: JSON-decoded documents from the HTTP
// host, or C scalars converted by the shared library. Each exported function
// declares its parameters; Invoke checks arity, converts every argument with
// the To* helpers and calls the Go function. Conversion failures are reported
// as apperrors.ValidationError and never reach the Go functions.
package native
