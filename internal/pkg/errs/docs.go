// Package errs provides the typed errors shared by the marketplace order service.
//
// Every error type follows the same shape:
//   - a sentinel variable (ErrObjectNotFound, ErrValueIsInvalid, ...)
//   - a struct carrying the offending parameter and an optional cause
//   - a constructor with and without cause
//   - Unwrap returning the sentinel, so callers classify with errors.Is
//
// The HTTP adapter relies on the sentinels to pick a status code, so domain code
// should wrap or return these types rather than ad-hoc strings.
package errs
