// Package errs defines the error taxonomy shared by the graph and query layers.
package errs

import (
	"errors"
	"fmt"
	"time"
)

// Kind represents the category of an error.
type Kind string

const (
	// KindInvalidArgument marks missing or contradictory input.
	KindInvalidArgument Kind = "InvalidArgument"
	// KindNotFound marks a referenced id that does not exist.
	KindNotFound Kind = "NotFound"
	// KindConflict marks a duplicate edge or role.
	KindConflict Kind = "Conflict"
	// KindRetrieval marks a failed store read while building context.
	KindRetrieval Kind = "RetrievalFailure"
	// KindUpstream marks a failure of the answering collaborator.
	KindUpstream Kind = "UpstreamFailure"
	// KindInternal is used for anything that was not classified.
	KindInternal Kind = "Internal"
)

// Cause refines an UpstreamFailure.
type Cause string

const (
	CauseTimeout     Cause = "timeout"
	CauseCancelled   Cause = "cancelled"
	CauseQuota       Cause = "quota"
	CauseMalformed   Cause = "malformed"
	CauseUnavailable Cause = "unavailable"
	CauseUnknown     Cause = "unknown"
)

// Error is the base error type carried across layers.
type Error struct {
	Kind      Kind
	Cause     Cause
	Message   string
	Timestamp time.Time
	Err       error
}

// Error implements the error interface.
func (e *Error) Error() string {
	head := string(e.Kind)
	if e.Cause != "" {
		head = fmt.Sprintf("%s(%s)", e.Kind, e.Cause)
	}
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", head, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", head, e.Message)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind. A target with a
// cause only matches errors with that cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Cause == "" || t.Cause == e.Cause
}

func newError(kind Kind, cause Cause, msg string, err error) *Error {
	return &Error{
		Kind:      kind,
		Cause:     cause,
		Message:   msg,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Sentinels for errors.Is comparisons.
var (
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument}
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrConflict        = &Error{Kind: KindConflict}
	ErrRetrieval       = &Error{Kind: KindRetrieval}
	ErrUpstream        = &Error{Kind: KindUpstream}
)

// InvalidArgument reports missing or contradictory input.
func InvalidArgument(format string, args ...any) *Error {
	return newError(KindInvalidArgument, "", fmt.Sprintf(format, args...), nil)
}

// NotFound reports a missing record of the given kind.
func NotFound(what, id string) *Error {
	return newError(KindNotFound, "", fmt.Sprintf("%s not found: %s", what, id), nil)
}

// Conflict reports a duplicate record.
func Conflict(format string, args ...any) *Error {
	return newError(KindConflict, "", fmt.Sprintf(format, args...), nil)
}

// Retrieval wraps a store read failure.
func Retrieval(msg string, err error) *Error {
	return newError(KindRetrieval, "", msg, err)
}

// Upstream wraps an answering collaborator failure.
func Upstream(cause Cause, msg string, err error) *Error {
	return newError(KindUpstream, cause, msg, err)
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// CauseOf returns the cause of the first *Error in err's chain.
func CauseOf(err error) Cause {
	var e *Error
	if errors.As(err, &e) {
		return e.Cause
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
