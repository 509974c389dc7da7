package cli

// This file defines error handling utilities for the CLI, including:
//   - Sentinel errors mapped to errx kinds
//   - Error wrapping functions that integrate with the errx error system
//
// Failures are logged once, by the reporter, with their structured fields.

import (
	"errors"

	"oarc-decorators/pkg/errx"
)

// newSentinelError creates a sentinel error and registers its kind in one step.
func newSentinelError(msg string, kind errx.Kind) error {
	err := errors.New(msg)
	errorKinds[err] = kind
	return err
}

// errorKinds maps sentinel errors to their errx kind.
// Populated by newSentinelError during variable initialization, so it must be
// declared before the sentinels.
var errorKinds = make(map[error]errx.Kind)

// lookupKind provides a lookup function for errx.FromSentinel.
func lookupKind(sentinel error) errx.Kind {
	if kind, ok := errorKinds[sentinel]; ok {
		return kind
	}
	return errx.KindOARC
}

// newWithSentinel creates an error of the sentinel's kind.
func newWithSentinel(base error, msg string) *errx.Error {
	if base == nil {
		return errx.OARC(msg)
	}
	return errx.FromSentinel(base, lookupKind, msg, nil)
}

// wrapWithSentinel wraps cause in an error of the sentinel's kind.
func wrapWithSentinel(base, cause error, msg string) *errx.Error {
	if base == nil {
		return errx.WrapOARC(msg, cause)
	}
	return errx.FromSentinel(base, lookupKind, msg, cause)
}

// wrapWithSentinelAndContext wraps an error with additional structured context.
func wrapWithSentinelAndContext(base, cause error, msg string, context map[string]any) *errx.Error {
	err := wrapWithSentinel(base, cause, msg)
	if len(context) > 0 {
		return err.WithContextMap(context)
	}
	return err
}

// Sentinel errors for CLI operations.
var (
	// Usage errors.
	ErrModeRequired     = newSentinelError("missing argument 'MODE'", errx.KindUsage)
	ErrUnknownMode      = newSentinelError("invalid simulation mode", errx.KindUsage)
	ErrUnknownErrorKind = newSentinelError("unknown error kind", errx.KindUsage)
	ErrInvalidProbeURL  = newSentinelError("invalid probe URL", errx.KindUsage)
	ErrInvalidRootFlag  = newSentinelError("invalid global flag", errx.KindUsage)

	// Probe errors.
	ErrProbeRequestFailed = newSentinelError("probe request failed", errx.KindNetwork)
	ErrProbeServerError   = newSentinelError("probe target returned a server error", errx.KindNetwork)
	ErrProbeNotFound      = newSentinelError("probe target not found", errx.KindResourceNotFound)
	ErrProbeUnauthorized  = newSentinelError("probe target rejected the credentials", errx.KindAuthentication)
	ErrProbeBadResponse   = newSentinelError("probe target returned an unexpected status", errx.KindDataExtraction)

	// Config errors.
	ErrLoadConfigFailed = newSentinelError("failed to load configuration", errx.KindConfiguration)

	// Output errors.
	ErrRenderOutputFailed = newSentinelError("failed to render output", errx.KindOARC)
	ErrWriteMetricsFailed = newSentinelError("failed to write metrics file", errx.KindOARC)
)
