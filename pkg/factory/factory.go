// Package factory gives types a uniform Create entry point layered over their
// constructor.
//
// A constructor receives the whole Request and returns a Built value: the
// instance, and optionally a Result computed while constructing it. Create
// hands back the Result in place of the instance when one is set, so types
// that do all their work on construction can return their product directly.
//
// When a request has no positional arguments and carries the reserved
// keyword "args", the constructor receives only that raw argument list:
//
//	out, err := factory.Create(NewScenario, factory.Raw([]string{"--mode", "network_error"}))
package factory

import "reflect"

// RawArgsKey is the keyword that carries a pre-tokenized argument list.
const RawArgsKey = "args"

// Request holds the arguments of one Create call.
type Request struct {
	Args   []any
	Kwargs map[string]any
}

// Positional returns a Request with positional arguments only.
func Positional(args ...any) Request {
	return Request{Args: args}
}

// Keywords returns a Request with keyword arguments only.
func Keywords(kwargs map[string]any) Request {
	return Request{Kwargs: kwargs}
}

// Raw returns a Request carrying a raw argument list under RawArgsKey.
func Raw(args []string) Request {
	return Request{Kwargs: map[string]any{RawArgsKey: args}}
}

// Keyword returns the keyword argument key.
func (r Request) Keyword(key string) (any, bool) {
	v, ok := r.Kwargs[key]
	return v, ok
}

// String returns the keyword argument key when it holds a string, or "".
func (r Request) String(key string) string {
	s, _ := r.Kwargs[key].(string)
	return s
}

// RawArgs returns the raw argument list when the request carries one.
func (r Request) RawArgs() ([]string, bool) {
	v, ok := r.Kwargs[RawArgsKey]
	if !ok {
		return nil, false
	}
	switch args := v.(type) {
	case []string:
		return args, true
	case nil:
		return nil, true
	default:
		return nil, false
	}
}

// Built is what a constructor produces: the instance and an optional result
// that overrides it.
type Built[T any] struct {
	Instance T
	Result   any
}

// Instance returns a Built with no result override.
func Instance[T any](v T) Built[T] {
	return Built[T]{Instance: v}
}

// WithResult returns a Built whose result overrides the instance.
func WithResult[T any](v T, result any) Built[T] {
	return Built[T]{Instance: v, Result: result}
}

// Constructor builds a T from a Request.
type Constructor[T any] func(Request) (Built[T], error)

// Outcome is the product of Create.
type Outcome[T any] struct {
	Instance T
	Result   any
}

// HasResult reports whether the constructor set a result. nil and typed nil
// pointers, maps, slices, funcs, channels and interfaces count as absent.
func (o Outcome[T]) HasResult() bool {
	return present(o.Result)
}

// Value returns the result when one was set, the instance otherwise.
func (o Outcome[T]) Value() any {
	if o.HasResult() {
		return o.Result
	}
	return o.Instance
}

// Create builds a T through ctor. Constructor errors are returned unchanged.
func Create[T any](ctor Constructor[T], req Request) (Outcome[T], error) {
	if len(req.Args) == 0 {
		if raw, ok := req.Kwargs[RawArgsKey]; ok {
			req = Request{Kwargs: map[string]any{RawArgsKey: raw}}
		}
	}
	built, err := ctor(req)
	if err != nil {
		return Outcome[T]{}, err
	}
	return Outcome[T]{Instance: built.Instance, Result: built.Result}, nil
}

func present(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}
