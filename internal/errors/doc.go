// Package apperrors defines structured application error types and the
// process exit codes derived from them. Configuration problems, host values
// rejected at the native boundary, memory budget violations and calculation
// failures each have their own type so callers can branch with errors.As.
//
// Errors are wrapped with fmt.Errorf and %w; wrapper types implement Unwrap.
package apperrors
