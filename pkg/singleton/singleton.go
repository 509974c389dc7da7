// Package singleton caches the single instance of a type and reports when
// later construction requests ask for different parameters.
//
// Declare one Singleton next to the type it guards:
//
//	var Shared = singleton.New("Client", newClient,
//		singleton.WithParamNames("url"),
//		singleton.WithWarner(console.Default()))
//
//	c, err := Shared.Construct(singleton.Positional("https://a.example"))
//	c2, _ := Shared.Construct(singleton.Positional("https://b.example"))
//	// c2 == c; "WARNING: Requested Client instance with different
//	// parameters: url=https://b.example (was https://a.example)" is printed.
//
// A Singleton is not safe for concurrent use. The check-then-set in Construct
// is not atomic; callers that share one across goroutines must serialize access.
package singleton

import (
	"io"
	"os"

	"github.com/go-logr/logr"

	"oarc-decorators/pkg/console"
)

// Constructor builds the instance from the first construction request.
type Constructor[T any] func(args Args) (T, error)

// Warner receives the drift warning.
type Warner interface {
	Warning(msg string)
}

// defaultOutput receives drift warnings of Singletons built without WithWarner.
var defaultOutput io.Writer = os.Stderr

type stderrWarner struct{}

func (stderrWarner) Warning(msg string) {
	(&console.Printer{Out: io.Discard, Err: defaultOutput}).Warning(msg)
}

// DriftHook observes drift after the warning is emitted.
type DriftHook func(name string, diffs []Difference)

// Singleton holds the registration record of one type: the cached instance
// and the arguments it was built with.
type Singleton[T any] struct {
	name   string
	ctor   Constructor[T]
	names  []string
	warner Warner
	logger logr.Logger
	hook   DriftHook

	instance    T
	constructed bool
	baseline    Args
}

// Option configures a Singleton.
type Option func(*options)

type options struct {
	names  []string
	warner Warner
	logger logr.Logger
	hook   DriftHook
}

// WithParamNames labels positional arguments in drift warnings.
func WithParamNames(names ...string) Option {
	return func(o *options) { o.names = names }
}

// WithWarner sets the console sink for drift warnings. Without it warnings
// are written to standard error; a nil Warner discards them.
func WithWarner(w Warner) Option {
	return func(o *options) { o.warner = w }
}

// WithLogger sets the logger drift is recorded on.
func WithLogger(logger logr.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithDriftHook registers a callback invoked on every detected drift.
func WithDriftHook(hook DriftHook) Option {
	return func(o *options) { o.hook = hook }
}

// New returns an empty Singleton for the type called name.
func New[T any](name string, ctor Constructor[T], opts ...Option) *Singleton[T] {
	o := options{warner: stderrWarner{}, logger: logr.Discard()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Singleton[T]{
		name:   name,
		ctor:   ctor,
		names:  o.names,
		warner: o.warner,
		logger: o.logger,
		hook:   o.hook,
	}
}

// Name returns the name used in warnings.
func (s *Singleton[T]) Name() string {
	return s.name
}

// Construct returns the cached instance, building it with args on first use.
// Constructor errors are returned unchanged and nothing is cached.
// When an instance exists and args differ from the baseline, one warning
// listing every difference is emitted; the instance is returned regardless.
func (s *Singleton[T]) Construct(args Args) (T, error) {
	if s.constructed {
		if diffs := diffArgs(s.baseline, args, s.names); len(diffs) > 0 {
			s.reportDrift(diffs)
		}
		return s.instance, nil
	}

	instance, err := s.ctor(args)
	if err != nil {
		var zero T
		return zero, err
	}
	s.instance = instance
	s.baseline = args.clone()
	s.constructed = true
	s.logger.V(1).Info("singleton constructed", "type", s.name, "args", args.Len())
	return instance, nil
}

// GetInstance returns the cached instance, constructing it without
// arguments if none exists.
func (s *Singleton[T]) GetInstance() (T, error) {
	if s.constructed {
		return s.instance, nil
	}
	return s.Construct(Args{})
}

// Instance returns the cached instance without constructing one.
func (s *Singleton[T]) Instance() (T, bool) {
	return s.instance, s.constructed
}

// Baseline returns a copy of the arguments the cached instance was built with.
func (s *Singleton[T]) Baseline() (Args, bool) {
	if !s.constructed {
		return Args{}, false
	}
	return s.baseline.clone(), true
}

// Reset clears the cached instance and baseline so the next Construct runs
// the constructor again. Calling it with nothing cached is a no-op.
func (s *Singleton[T]) Reset() {
	if !s.constructed {
		return
	}
	var zero T
	s.instance = zero
	s.baseline = Args{}
	s.constructed = false
	s.logger.V(1).Info("singleton reset", "type", s.name)
}

func (s *Singleton[T]) reportDrift(diffs []Difference) {
	msg := driftMessage(s.name, diffs)
	if s.warner != nil {
		s.warner.Warning(msg)
	}
	keysAndValues := []any{"type", s.name, "differences", len(diffs)}
	for _, d := range diffs {
		keysAndValues = append(keysAndValues, "param."+d.Param, string(d.Change))
	}
	s.logger.Info("singleton parameter drift", keysAndValues...)
	if s.hook != nil {
		s.hook(s.name, diffs)
	}
}
