package singleton

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Change classifies one parameter difference.
type Change string

const (
	Changed Change = "changed"
	Added   Change = "added"
	Removed Change = "removed"
)

// Difference describes one parameter that differs from the cached baseline.
type Difference struct {
	Param  string
	Old    any
	New    any
	Change Change
}

// String renders the difference as "p=new (was old)", "p=new (added)" or
// "p removed (was old)".
func (d Difference) String() string {
	switch d.Change {
	case Added:
		return fmt.Sprintf("%s=%v (added)", d.Param, d.New)
	case Removed:
		return fmt.Sprintf("%s removed (was %v)", d.Param, d.Old)
	default:
		return fmt.Sprintf("%s=%v (was %v)", d.Param, d.New, d.Old)
	}
}

// equalOpts compare argument values structurally. Unexported fields take part
// in the comparison and nil/empty containers are equal.
var equalOpts = cmp.Options{
	cmp.Exporter(func(reflect.Type) bool { return true }),
	cmpopts.EquateEmpty(),
}

func valuesEqual(a, b any) bool {
	return cmp.Equal(a, b, equalOpts)
}

// diffArgs compares positional arguments by index and named arguments by key.
// names labels positional slots; unlabeled slots are rendered as "#<index>".
func diffArgs(baseline, requested Args, names []string) []Difference {
	var diffs []Difference

	n := len(baseline.Positional)
	if len(requested.Positional) > n {
		n = len(requested.Positional)
	}
	for i := 0; i < n; i++ {
		param := positionalName(names, i)
		oldV, hadOld := baseline.At(i)
		newV, hasNew := requested.At(i)
		switch {
		case hadOld && !hasNew:
			diffs = append(diffs, Difference{Param: param, Old: oldV, Change: Removed})
		case !hadOld && hasNew:
			diffs = append(diffs, Difference{Param: param, New: newV, Change: Added})
		case !valuesEqual(oldV, newV):
			diffs = append(diffs, Difference{Param: param, Old: oldV, New: newV, Change: Changed})
		}
	}

	for _, key := range sortedKeys(baseline.Named, requested.Named) {
		oldV, hadOld := baseline.Named[key]
		newV, hasNew := requested.Named[key]
		switch {
		case hadOld && !hasNew:
			diffs = append(diffs, Difference{Param: key, Old: oldV, Change: Removed})
		case !hadOld && hasNew:
			diffs = append(diffs, Difference{Param: key, New: newV, Change: Added})
		case !valuesEqual(oldV, newV):
			diffs = append(diffs, Difference{Param: key, Old: oldV, New: newV, Change: Changed})
		}
	}
	return diffs
}

func positionalName(names []string, i int) string {
	if i < len(names) && names[i] != "" {
		return names[i]
	}
	return fmt.Sprintf("#%d", i)
}

func driftMessage(name string, diffs []Difference) string {
	parts := make([]string, 0, len(diffs))
	for _, d := range diffs {
		parts = append(parts, d.String())
	}
	return fmt.Sprintf("WARNING: Requested %s instance with different parameters: %s", name, strings.Join(parts, ", "))
}
