package ecc

import (
	"errors"
	"fmt"
)

// ErrorKind identifies a kind of error. It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind
// when determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrInvalidLength is returned when a key, tweak, digest or signature
	// does not have the exact length its format requires.
	ErrInvalidLength = ErrorKind("ErrInvalidLength")

	// ErrInvalidEncoding is returned when a serialized public key has a
	// prefix byte that does not match its length, or does not decode to a
	// point on the curve.
	ErrInvalidEncoding = ErrorKind("ErrInvalidEncoding")

	// ErrOutOfRange is returned when a scalar is zero or not less than the
	// group order, or when a recovery id is outside [0, 3].
	ErrOutOfRange = ErrorKind("ErrOutOfRange")

	// ErrPointAtInfinity is returned when a public key input decodes to the
	// identity element. It also matches ErrInvalidEncoding.
	ErrPointAtInfinity = ErrorKind("ErrPointAtInfinity")

	// ErrResultAtInfinity is returned when a tweak addition cancels the
	// input point.
	ErrResultAtInfinity = ErrorKind("ErrResultAtInfinity")

	// ErrKeyDerivationFailed is returned when scalar multiplication by the
	// generator does not produce a usable point.
	ErrKeyDerivationFailed = ErrorKind("ErrKeyDerivationFailed")

	// ErrSigningFailed is returned when the curve library could not produce
	// a recoverable signature.
	ErrSigningFailed = ErrorKind("ErrSigningFailed")

	// ErrRecoveryFailed is returned when no public key can be recovered from
	// a signature, digest and recovery id.
	ErrRecoveryFailed = ErrorKind("ErrRecoveryFailed")

	// ErrContextInitializationFailed is returned when a curve context cannot
	// be created or hardened, including when the entropy source fails.
	ErrContextInitializationFailed = ErrorKind("ErrContextInitializationFailed")

	// ErrUnknownCurve is returned when a configuration names a curve backend
	// that is not registered.
	ErrUnknownCurve = ErrorKind("ErrUnknownCurve")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to an ecc operation. It has full
// support for errors.Is and errors.As, so the caller can ascertain the
// specific reason for the error by checking the underlying error kind.
//
// Description never contains input bytes. The underlying library error, if
// any, is available through Unwrap but is not included in Error().
type Error struct {
	Kind        ErrorKind
	Op          string
	Description string
	Err         error
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	if e.Op == "" {
		return e.Description
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Description)
}

// Unwrap returns the underlying curve library error, if any.
func (e Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is this error's kind, or an Error of the same
// kind.
func (e Error) Is(target error) bool {
	switch t := target.(type) {
	case ErrorKind:
		return e.Kind == t || (e.Kind == ErrPointAtInfinity && t == ErrInvalidEncoding)
	case Error:
		return e.Kind == t.Kind
	}
	return false
}

// As allows errors.As to extract the ErrorKind.
func (e Error) As(target interface{}) bool {
	if k, ok := target.(*ErrorKind); ok {
		*k = e.Kind
		return true
	}
	return false
}

// makeError creates an Error given a set of arguments.
func makeError(op string, kind ErrorKind, desc string) Error {
	return Error{Kind: kind, Op: op, Description: desc}
}

// wrapError creates an Error that keeps the library error for Unwrap.
func wrapError(op string, kind ErrorKind, desc string, err error) Error {
	return Error{Kind: kind, Op: op, Description: desc, Err: err}
}

// IsFatal reports whether err means the operation could not produce a
// trustworthy result for reasons other than caller input.
func IsFatal(err error) bool {
	return errors.Is(err, ErrContextInitializationFailed) ||
		errors.Is(err, ErrKeyDerivationFailed) ||
		errors.Is(err, ErrSigningFailed)
}

// kindOf returns the ErrorKind of err, or the empty kind.
func kindOf(err error) ErrorKind {
	var kind ErrorKind
	if errors.As(err, &kind) {
		return kind
	}
	return ""
}
