// Package errs holds the typed errors shared by the domain, the use cases
// and the adapters.
//
// Every type pairs a sentinel (ErrObjectNotFound, ErrValueIsInvalid,
// ErrValueIsOutOfRange, ErrValueIsRequired, ErrVersionIsInvalid) with a
// struct carrying the offending parameter. Unwrap always returns the
// sentinel, so callers classify with errors.Is:
//
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    return ctx.JSON(http.StatusNotFound, ...)
//	}
//
// An optional Cause is appended to the message and is also matched by
// errors.Is.
package errs
