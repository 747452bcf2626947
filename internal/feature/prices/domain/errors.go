// Package domain defines the error taxonomy for the prices feature.
//
// Fetch failures split into two kinds: transient ones that another attempt
// may fix (timeouts, HTTP 5xx/429, provider rate-limit notes), and permanent
// ones that no retry can fix (unknown symbol, rejected credentials). The
// retry layer keys off this split, and run reporting buckets failures with
// Classify.
package domain

import (
	"errors"
	"fmt"
)

// ErrRetriesExhausted indicates that an operation kept failing transiently
// until the retry budget ran out. The retry layer wraps it together with the
// last underlying error, so errors.Is works for both.
var ErrRetriesExhausted = errors.New("retries exhausted")

// TransientError marks a fetch failure that is worth retrying.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string { return fmt.Sprintf("transient: %v", e.Err) }
func (e *TransientError) Unwrap() error { return e.Err }

// PermanentError marks a fetch failure that retrying cannot fix.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return fmt.Sprintf("permanent: %v", e.Err) }
func (e *PermanentError) Unwrap() error { return e.Err }

// Transient wraps err as a TransientError.
func Transient(err error) error {
	return &TransientError{Err: err}
}

// Permanent wraps err as a PermanentError.
func Permanent(err error) error {
	return &PermanentError{Err: err}
}

// IsTransient reports whether err is, or wraps, a TransientError.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}

// IsPermanent reports whether err is, or wraps, a PermanentError.
func IsPermanent(err error) bool {
	var pe *PermanentError
	return errors.As(err, &pe)
}

// ErrorClass buckets a symbol-level failure for run reporting.
type ErrorClass string

const (
	ClassNone             ErrorClass = ""
	ClassTransient        ErrorClass = "transient"
	ClassPermanent        ErrorClass = "permanent"
	ClassRetriesExhausted ErrorClass = "retries_exhausted"
	ClassStorage          ErrorClass = "storage"
)

// Classify maps a fetch-side error to its reporting bucket. Errors carrying
// no classification behave like permanent ones: the retry layer does not
// retry them either. Storage failures are bucketed by the caller, not here.
func Classify(err error) ErrorClass {
	switch {
	case err == nil:
		return ClassNone
	case errors.Is(err, ErrRetriesExhausted):
		return ClassRetriesExhausted
	case IsPermanent(err):
		return ClassPermanent
	case IsTransient(err):
		return ClassTransient
	default:
		return ClassPermanent
	}
}
