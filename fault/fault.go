// Package fault classifies failures from external collaborators (completion
// services, search tools) into transient and permanent classes. Retry logic
// keys off this classification: transient failures are eligible for bounded
// retry, permanent failures abort the dependent work immediately.
package fault

import (
	"errors"
	"fmt"
)

// Class represents the failure class of an error.
type Class int

const (
	// ClassPermanent marks errors that must not be retried
	// (invalid request, auth failure, unavailable capability).
	ClassPermanent Class = iota

	// ClassTransient marks errors that may succeed on retry
	// (rate limit, network failure, timeout).
	ClassTransient
)

// String returns the string representation of Class.
func (c Class) String() string {
	switch c {
	case ClassPermanent:
		return "permanent"
	case ClassTransient:
		return "transient"
	default:
		return fmt.Sprintf("unknown(%d)", int(c))
	}
}

// Error wraps an underlying error with a failure class.
type Error struct {
	Class Class
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Class, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Transient wraps err as a transient failure. A nil err returns nil.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Class: ClassTransient, Err: err}
}

// Transientf formats and wraps a transient failure.
func Transientf(format string, v ...any) error {
	return &Error{Class: ClassTransient, Err: fmt.Errorf(format, v...)}
}

// Permanent wraps err as a permanent failure. A nil err returns nil.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Class: ClassPermanent, Err: err}
}

// Permanentf formats and wraps a permanent failure.
func Permanentf(format string, v ...any) error {
	return &Error{Class: ClassPermanent, Err: fmt.Errorf(format, v...)}
}

// IsTransient reports whether err carries a transient classification.
// Unclassified errors are not transient: an error of unknown provenance is
// never retried.
func IsTransient(err error) bool {
	var fe *Error
	return errors.As(err, &fe) && fe.Class == ClassTransient
}

// IsPermanent reports whether err is classified permanent. Unclassified
// errors count as permanent.
func IsPermanent(err error) bool {
	return err != nil && !IsTransient(err)
}
