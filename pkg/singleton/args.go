package singleton

import "sort"

// Args holds the arguments of one construction request.
type Args struct {
	Positional []any
	Named      map[string]any
}

// Positional returns Args with only positional arguments.
func Positional(values ...any) Args {
	return Args{Positional: values}
}

// Named returns Args with only named arguments.
func Named(named map[string]any) Args {
	return Args{Named: named}
}

// With returns a copy of a with the named argument key set to value.
func (a Args) With(key string, value any) Args {
	out := a.clone()
	if out.Named == nil {
		out.Named = make(map[string]any, 1)
	}
	out.Named[key] = value
	return out
}

// Get returns the named argument key.
func (a Args) Get(key string) (any, bool) {
	v, ok := a.Named[key]
	return v, ok
}

// String returns the named argument key when it holds a string, or "".
func (a Args) String(key string) string {
	s, _ := a.Named[key].(string)
	return s
}

// At returns the positional argument at index i.
func (a Args) At(i int) (any, bool) {
	if i < 0 || i >= len(a.Positional) {
		return nil, false
	}
	return a.Positional[i], true
}

// Len returns the total number of arguments.
func (a Args) Len() int {
	return len(a.Positional) + len(a.Named)
}

// clone copies the argument containers. Values themselves are shared.
func (a Args) clone() Args {
	out := Args{}
	if a.Positional != nil {
		out.Positional = append(make([]any, 0, len(a.Positional)), a.Positional...)
	}
	if a.Named != nil {
		out.Named = make(map[string]any, len(a.Named))
		for k, v := range a.Named {
			out.Named[k] = v
		}
	}
	return out
}

func sortedKeys(maps ...map[string]any) []string {
	seen := make(map[string]struct{})
	for _, m := range maps {
		for k := range m {
			seen[k] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
