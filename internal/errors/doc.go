// Package errors defines sentinel errors shared across keycase.
//
// Errors are grouped by the subsystem that produces them. Callers match
// them with errors.Is; producing code wraps them with fmt.Errorf and %w to
// attach context without breaking identity.
//
// None of these errors are retried automatically: every export or import
// is deterministic given the same input, so each error is a terminal
// result of that one operation. Diagnostics must never echo passwords,
// derived keys, or decrypted plaintext.
package errors
