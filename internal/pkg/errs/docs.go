// Package errs provides the shared error vocabulary of the operations core.
//
// Every error type follows the same shape:
//   - a sentinel variable (ErrObjectNotFound, ErrValueIsInvalid, ...)
//   - a struct carrying the offending parameter and an optional Cause
//   - New...Error and New...ErrorWithCause constructors
//   - Unwrap returning the sentinel, so callers match with errors.Is
//
// Domain packages declare their own sentinels (for example
// shipment.ErrIllegalTransition) and use these types for generic
// validation and lookup failures.
package errs
