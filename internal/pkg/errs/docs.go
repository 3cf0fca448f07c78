// Package errs provides the error kinds shared by the allocation service.
//
// Every kind follows the same shape:
//   - a sentinel (ErrValueIsRequired, ErrValueIsInvalid, ErrValueIsOutOfRange, ErrObjectNotFound)
//   - a struct carrying the offending parameter and an optional cause
//   - constructors with and without a cause
//   - Unwrap returning the sentinel, so callers classify with errors.Is
//
// The HTTP adapter relies on that classification to choose status codes, so
// domain code should return these kinds rather than ad-hoc errors.New values
// whenever the failure is about caller input.
package errs
