// Package apperr defines the error taxonomy the service exposes to its
// callers. Backend errors (gorm, S3) are translated into these kinds at the
// operation boundary; upper layers branch on kind, never on provider text.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindValidation
	KindAuthorization
	KindDuplicateKey
	KindUpstream
	KindPartialFailure
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindDuplicateKey:
		return "duplicate key"
	case KindUpstream:
		return "upstream"
	case KindPartialFailure:
		return "partial failure"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind  Kind
	Field string // set for field-localized validation errors
	Msg   string
	Err   error // original cause, preserved for diagnostics
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

func Validation(field, msg string) error {
	return &Error{Kind: KindValidation, Field: field, Msg: msg}
}

func Authorization(msg string) error {
	return &Error{Kind: KindAuthorization, Msg: msg}
}

func DuplicateKey(msg string) error {
	return &Error{Kind: KindDuplicateKey, Msg: msg}
}

func Upstream(msg string, cause error) error {
	return &Error{Kind: KindUpstream, Msg: msg, Err: cause}
}

func PartialFailure(msg string, cause error) error {
	return &Error{Kind: KindPartialFailure, Msg: msg, Err: cause}
}

// KindOf reports the taxonomy kind of err, or KindUnknown for errors that
// did not pass through the translation layer.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsKind(err error, k Kind) bool { return KindOf(err) == k }

// Message returns the caller-facing message without the wrapped cause.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return err.Error()
}
