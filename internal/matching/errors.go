// Package matching finds, prioritizes and persists candidate profiles for a staffing request.
package matching

import (
	"errors"
	"fmt"
)

// Kind classifies a matching failure.
type Kind int

// Failure kinds. None of them are retried inside the engine.
const (
	KindInvalidArgument Kind = iota + 1
	KindConfiguration
	KindConflict
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindConfiguration:
		return "configuration"
	case KindConflict:
		return "conflict"
	case KindStore:
		return "store"
	default:
		return "unknown"
	}
}

// Sentinel causes, usable with errors.Is.
var (
	ErrInvalidMax                 = errors.New("max must be positive")
	ErrRequestNotFound            = errors.New("request not found")
	ErrUnknownLanguageRequirement = errors.New("unknown language requirement code")
	ErrMatchStatusNotFound        = errors.New("match status code not found")
	ErrRunInProgress              = errors.New("matching run already in progress")
)

// Error represents an error that occurs during a matching run
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func invalidArgument(cause error, format string, args ...any) *Error {
	return &Error{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...), Cause: cause}
}

func storeError(cause error, format string, args ...any) *Error {
	return &Error{Kind: KindStore, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// KindOf returns the Kind of err, or 0 if err is not a matching error.
func KindOf(err error) Kind {
	var me *Error
	if errors.As(err, &me) {
		return me.Kind
	}
	return 0
}

// IsInvalidArgument reports whether err was caused by caller input.
func IsInvalidArgument(err error) bool { return KindOf(err) == KindInvalidArgument }

// IsConfiguration reports whether err was caused by missing reference data or bad wiring.
func IsConfiguration(err error) bool { return KindOf(err) == KindConfiguration }
