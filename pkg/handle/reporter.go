// Package handle turns the failure of a command entry point into a rendered
// report and a process exit code.
//
// Failures are classified in order: usage errors print a single "Error:" line
// and exit 2, operational errx errors print a boxed "ERROR" report and exit
// with their kind's code, and anything else (including MCP and transport
// errors, and recovered panics) prints an "UNEXPECTED ERROR" box and exits 1.
// In verbose mode the failure trace follows the box.
package handle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"

	"oarc-decorators/pkg/console"
	"oarc-decorators/pkg/errx"
	"oarc-decorators/pkg/runsync"
)

const (
	TitleError      = "ERROR"
	TitleUnexpected = "UNEXPECTED ERROR"

	marker = "➤ "
)

// Observer is notified once per reported failure with the kind name used in
// the report and the resulting exit code.
type Observer interface {
	ObserveReport(kind string, exitCode int)
}

// Reporter renders failures to a console and computes exit codes.
type Reporter struct {
	console       console.Console
	logger        logr.Logger
	observer      Observer
	program       string
	transportCode func() int
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithLogger logs every reported failure with structured fields.
func WithLogger(logger logr.Logger) Option {
	return func(r *Reporter) { r.logger = logger }
}

// WithObserver registers an observer for reported failures.
func WithObserver(o Observer) Option {
	return func(r *Reporter) { r.observer = o }
}

// WithProgram sets the program name used in usage hints.
func WithProgram(name string) Option {
	return func(r *Reporter) { r.program = name }
}

// WithTransportExitCode reports transport errors as operational failures
// exiting with code. Without it they are reported as unexpected.
// A code <= 0 leaves them unmapped.
func WithTransportExitCode(code int) Option {
	return WithTransportExitCodeFrom(func() int { return code })
}

// WithTransportExitCodeFrom is WithTransportExitCode with the code read when
// a failure is classified, for codes that come from configuration loaded
// during the call.
func WithTransportExitCodeFrom(code func() int) Option {
	return func(r *Reporter) { r.transportCode = code }
}

// New returns a Reporter writing to c.
func New(c console.Console, opts ...Option) *Reporter {
	r := &Reporter{console: c, logger: logr.Discard()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type invokeConfig struct {
	verbose func() bool
}

// InvokeOption configures a single Invoke call.
type InvokeOption func(*invokeConfig)

// Verbose sets verbose reporting for the call.
func Verbose(v bool) InvokeOption {
	return func(c *invokeConfig) { c.verbose = func() bool { return v } }
}

// VerboseFrom reads the "verbose" flag from fs when a failure is reported,
// after the command line has been parsed. A missing or malformed flag means
// not verbose.
func VerboseFrom(fs *pflag.FlagSet) InvokeOption {
	return func(c *invokeConfig) {
		c.verbose = func() bool {
			if fs == nil {
				return false
			}
			v, err := fs.GetBool("verbose")
			return err == nil && v
		}
	}
}

// Invoke runs fn and returns the exit code for its outcome: 0 on success, the
// code of the reported failure otherwise. A panic in fn is recovered and
// reported as an unexpected error.
func (r *Reporter) Invoke(fn func() error, opts ...InvokeOption) int {
	_, code := Call(r, func() (struct{}, error) {
		return struct{}{}, fn()
	}, opts...)
	return code
}

// Call runs fn and returns its value with exit code 0, or the zero value
// with the exit code of the reported failure.
func Call[T any](r *Reporter, fn func() (T, error), opts ...InvokeOption) (T, int) {
	cfg := invokeConfig{verbose: func() bool { return false }}
	for _, opt := range opts {
		opt(&cfg)
	}

	v, err := protect(fn)
	if err == nil {
		return v, errx.ExitSuccess
	}
	var zero T
	return zero, r.Report(err, cfg.verbose())
}

func protect[T any](fn func() (T, error)) (v T, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			var zero T
			v = zero
			if pe, ok := rec.(*runsync.PanicError); ok {
				err = pe
				return
			}
			err = &runsync.PanicError{Value: rec, Stack: stack()}
		}
	}()
	return fn()
}

// Report renders err and returns its exit code. A nil err renders nothing
// and returns 0.
func (r *Reporter) Report(err error, verbose bool) int {
	if err == nil {
		return errx.ExitSuccess
	}
	c := r.classify(err)
	switch c.class {
	case classUsage:
		r.console.ErrorLine(c.usageLine)
	case classOperational:
		r.console.ErrorBox(TitleError, marker+c.message)
	default:
		r.console.ErrorBox(TitleUnexpected, fmt.Sprintf("%s%s: %s", marker, c.typeName, c.message))
	}
	if verbose && c.class != classUsage {
		r.console.Detail(traceOf(err))
	}

	logReport(r.logger, err, c)
	if r.observer != nil {
		r.observer.ObserveReport(c.typeName, c.exitCode)
	}
	return c.exitCode
}

// ExitCode returns the code Report would return for err without rendering it.
func (r *Reporter) ExitCode(err error) int {
	if err == nil {
		return errx.ExitSuccess
	}
	return r.classify(err).exitCode
}

// Title returns the box title Report would use for err, or "" when err is
// nil or reported as a usage line.
func (r *Reporter) Title(err error) string {
	if err == nil {
		return ""
	}
	switch r.classify(err).class {
	case classUsage:
		return ""
	case classOperational:
		return TitleError
	default:
		return TitleUnexpected
	}
}

type class int

const (
	classUnexpected class = iota
	classOperational
	classUsage
)

type classified struct {
	class     class
	typeName  string
	message   string
	usageLine string
	exitCode  int
	kind      errx.Kind
}

func (r *Reporter) classify(err error) classified {
	var e *errx.Error
	if errors.As(err, &e) {
		switch root := e.Kind().Root(); {
		case e.Kind() == errx.KindUsage:
			return classified{
				class:     classUsage,
				typeName:  e.Kind().String(),
				message:   e.Message(),
				usageLine: usageLine(e, r.program),
				exitCode:  errx.ExitUsage,
				kind:      e.Kind(),
			}
		case root == errx.RootOperational:
			code, ok := e.ExitCode()
			if !ok {
				code = errx.ExitFailure
			}
			return classified{class: classOperational, typeName: e.Kind().String(), message: e.Message(), exitCode: code, kind: e.Kind()}
		case e.Kind() == errx.KindTransport:
			if code := r.mappedTransportCode(); code > 0 {
				return classified{class: classOperational, typeName: e.Kind().String(), message: e.Message(), exitCode: code, kind: e.Kind()}
			}
		}
		return classified{class: classUnexpected, typeName: errx.TypeName(err), message: e.Message(), exitCode: errx.ExitUnexpected, kind: e.Kind()}
	}

	var pe *runsync.PanicError
	if errors.As(err, &pe) {
		return classified{class: classUnexpected, typeName: "panic", message: fmt.Sprint(pe.Value), exitCode: errx.ExitUnexpected}
	}
	return classified{class: classUnexpected, typeName: errx.TypeName(err), message: err.Error(), exitCode: errx.ExitUnexpected}
}

func (r *Reporter) mappedTransportCode() int {
	if r.transportCode == nil {
		return 0
	}
	return r.transportCode()
}

func traceOf(err error) string {
	var pe *runsync.PanicError
	if errors.As(err, &pe) && len(pe.Stack) > 0 {
		var b strings.Builder
		b.WriteString("Trace (most recent call first):\n")
		b.Write(pe.Stack)
		b.WriteString(fmt.Sprintf("panic: %v", pe.Value))
		return b.String()
	}
	return errx.Trace(err)
}
