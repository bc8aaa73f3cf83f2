package sandbox

import (
	"errors"
	"fmt"
)

// Kind classifies a gateway failure.
type Kind string

// Failure kinds, in rough lifecycle order.
const (
	KindConnection        Kind = "connection"
	KindImageNotAvailable Kind = "image_not_available"
	KindCreateFailed      Kind = "create_failed"
	KindStartFailed       Kind = "start_failed"
	KindMissingIdentity   Kind = "missing_identity"
	KindRemovalFailed     Kind = "removal_failed"
)

// Error is a classified gateway failure. The engine's own error text is
// preserved in Cause for diagnostics.
type Error struct {
	Kind  Kind
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// KindOf returns the failure kind carried by err, or the empty Kind when
// err is not a gateway error.
func KindOf(err error) Kind {
	var gerr *Error
	if errors.As(err, &gerr) {
		return gerr.Kind
	}
	return ""
}

func newError(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Cause: cause}
}
