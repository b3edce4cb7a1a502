// Package errs carries the platform's error taxonomy. NotFound, Validation
// and Precondition failures are ordinary business outcomes returned as
// values; only Storage errors signal something genuinely unexpected.
package errs

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindNotFound: a referenced entity does not exist.
	KindNotFound Kind = iota
	// KindValidation: malformed input, rejected before any write.
	KindValidation
	// KindPrecondition: a state-dependent rule was violated.
	KindPrecondition
	// KindStorage: an I/O failure reading or writing a collection.
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindValidation:
		return "validation"
	case KindPrecondition:
		return "precondition"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func Precondition(format string, args ...any) error {
	return &Error{Kind: KindPrecondition, Msg: fmt.Sprintf(format, args...)}
}

func Storage(msg string, err error) error {
	return &Error{Kind: KindStorage, Msg: msg, Err: err}
}

func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

func IsNotFound(err error) bool     { return is(err, KindNotFound) }
func IsValidation(err error) bool   { return is(err, KindValidation) }
func IsPrecondition(err error) bool { return is(err, KindPrecondition) }
func IsStorage(err error) bool      { return is(err, KindStorage) }

func is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
