// Package errors provides the categorized error carrier shared by the twitterbot packages.
package errors

import (
	stderrors "errors"
	"fmt"
	"runtime"
	"strings"
)

// ErrorType represents the category of an error.
type ErrorType string

// Error categories surfaced by the API client and its tooling.
const (
	TypeCredential ErrorType = "credential"
	TypeURL        ErrorType = "url"
	TypeTransport  ErrorType = "transport"
	TypeAPI        ErrorType = "api"
	TypeDecode     ErrorType = "decode"
	TypeConfig     ErrorType = "config"
	TypeLogin      ErrorType = "login"
)

// Error represents a custom error with type information and stack trace.
type Error struct {
	Type    ErrorType // The category of the error
	Message string    // A descriptive message about the error
	Err     error     // The underlying error, if any
	Stack   string    // The stack trace at the time of error creation
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] %s", e.Type, e.Message))
	if e.Err != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Err))
	}
	return sb.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error with the given type, message, and optional underlying error.
// It captures the stack trace at the point of creation.
func New(errType ErrorType, message string, err error) *Error {
	stack := make([]byte, 4096)
	n := runtime.Stack(stack, false)
	return &Error{
		Type:    errType,
		Message: message,
		Err:     err,
		Stack:   string(stack[:n]),
	}
}

// Wrap wraps an existing error with additional context and type information.
// It preserves the original error's stack trace if it's also an *Error.
func Wrap(err error, errType ErrorType, message string) *Error {
	var originalErr *Error
	if stderrors.As(err, &originalErr) {
		return &Error{
			Type:    errType,
			Message: message,
			Err:     err,
			Stack:   originalErr.Stack,
		}
	}
	return New(errType, message, err)
}

// Is matches any *Error of the same category.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// Typed is implemented by errors that belong to a category without being an *Error.
type Typed interface {
	ErrorType() ErrorType
}

// TypeOf reports the category of the outermost categorized error in err's chain.
func TypeOf(err error) (ErrorType, bool) {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			return e.Type, true
		case Typed:
			return e.ErrorType(), true
		}
		err = stderrors.Unwrap(err)
	}
	return "", false
}

// IsType reports whether any error in err's chain belongs to category t.
func IsType(err error, t ErrorType) bool {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			if e.Type == t {
				return true
			}
		case Typed:
			if e.ErrorType() == t {
				return true
			}
		}
		err = stderrors.Unwrap(err)
	}
	return false
}
