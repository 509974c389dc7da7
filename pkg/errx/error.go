package errx

import (
	"errors"
	"runtime"
)

// maxStackDepth bounds the number of frames captured per error.
const maxStackDepth = 32

// Error is the base error type for OARC errors.
type Error struct {
	kind        Kind
	code        string
	description string
	message     string
	context     map[string]any
	cause       error
	base        error
	stack       []uintptr
}

// New creates a new Error of the given kind with the provided message.
// Code and description are taken from the registry entry of the kind.
func New(kind Kind, message string) *Error {
	return newError(kind, message, nil, 3)
}

// Wrap creates a new Error of the given kind and attaches a cause error.
func Wrap(kind Kind, message string, cause error) *Error {
	return newError(kind, message, cause, 3)
}

// newError builds an Error and records the caller stack. skip counts the
// frames between runtime.Callers and the public constructor's caller.
func newError(kind Kind, message string, cause error, skip int) *Error {
	entry, _ := EntryFor(kind)
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip, pcs)
	return &Error{
		kind:        kind,
		code:        entry.Code,
		description: entry.Description,
		message:     message,
		cause:       cause,
		stack:       pcs[:n],
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.message != "" {
		return e.message
	}
	if e.description != "" {
		return e.description
	}
	if e.code != "" {
		return e.code
	}
	return "error"
}

// Unwrap returns the immediate wrapped error (cause).
// This follows Go's error wrapping convention where Unwrap() returns
// the direct cause, not the base sentinel.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Is implements error matching for sentinel errors.
// This allows errors.Is(err, sentinel) to match the base sentinel
// even though Unwrap() returns the cause.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	if e.base != nil && errors.Is(e.base, target) {
		return true
	}
	return errors.Is(e.cause, target)
}

// Kind returns the taxonomy kind.
func (e *Error) Kind() Kind {
	if e == nil {
		return KindUnknown
	}
	return e.kind
}

// Code returns the stable error code.
func (e *Error) Code() string {
	if e == nil {
		return ""
	}
	return e.code
}

// Description returns the category description.
func (e *Error) Description() string {
	if e == nil {
		return ""
	}
	return e.description
}

// Message returns the user-facing message.
func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

// ExitCode returns the process exit code defined for the error's kind.
// The second result is false when the kind defines none (MCP and transport errors).
func (e *Error) ExitCode() (int, bool) {
	if e == nil {
		return 0, false
	}
	return e.kind.ExitCode()
}

// Context returns a copy of the structured context.
func (e *Error) Context() map[string]any {
	if e == nil || len(e.context) == 0 {
		return nil
	}
	return cloneContext(e.context)
}

// Cause returns the wrapped error, if any.
func (e *Error) Cause() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Base returns the sentinel base error, if any.
func (e *Error) Base() error {
	if e == nil {
		return nil
	}
	return e.base
}

// StackTrace returns the frames recorded when the error was created,
// innermost first.
func (e *Error) StackTrace() []runtime.Frame {
	if e == nil || len(e.stack) == 0 {
		return nil
	}
	frames := runtime.CallersFrames(e.stack)
	out := make([]runtime.Frame, 0, len(e.stack))
	for {
		frame, more := frames.Next()
		out = append(out, frame)
		if !more {
			break
		}
	}
	return out
}

// WithContext adds a context key/value pair.
// Returns a new error with the added context to avoid mutating the original.
func (e *Error) WithContext(key string, value any) *Error {
	if e == nil {
		return nil
	}
	clone := e.clone()
	if clone.context == nil {
		clone.context = make(map[string]any)
	}
	clone.context[key] = value
	return clone
}

// WithContextMap merges a context map into the error context.
// Always returns a clone to maintain immutability, even if ctx is empty.
func (e *Error) WithContextMap(ctx map[string]any) *Error {
	if e == nil {
		return nil
	}
	clone := e.clone()
	if len(ctx) > 0 {
		if clone.context == nil {
			clone.context = make(map[string]any, len(ctx))
		}
		for key, value := range ctx {
			clone.context[key] = value
		}
	}
	return clone
}

// WithBase sets the sentinel base error used for errors.Is matching.
// Returns a new error with the base set to avoid mutating the original.
func (e *Error) WithBase(base error) *Error {
	if e == nil {
		return nil
	}
	clone := e.clone()
	clone.base = base
	return clone
}

func (e *Error) clone() *Error {
	return &Error{
		kind:        e.kind,
		code:        e.code,
		description: e.description,
		message:     e.message,
		cause:       e.cause,
		base:        e.base,
		stack:       e.stack,
		context:     cloneContext(e.context),
	}
}

func cloneContext(ctx map[string]any) map[string]any {
	if ctx == nil {
		return nil
	}
	clone := make(map[string]any, len(ctx))
	for key, value := range ctx {
		clone[key] = value
	}
	return clone
}
