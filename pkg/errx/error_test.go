package errx

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestError_New(t *testing.T) {
	err := New(KindNetwork, "test")

	if err.Kind() != KindNetwork {
		t.Errorf("Kind() = %v, want %v", err.Kind(), KindNetwork)
	}
	if err.Code() != CodeNetwork {
		t.Errorf("Code() = %q, want %q", err.Code(), CodeNetwork)
	}
	if err.Description() != DescNetwork {
		t.Errorf("Description() = %q, want %q", err.Description(), DescNetwork)
	}
	if err.Message() != "test" {
		t.Errorf("Message() = %q, want %q", err.Message(), "test")
	}
}

func TestError_Wrap(t *testing.T) {
	base := errors.New("base")
	cause := errors.New("cause")
	err := Wrap(KindBuild, "test", cause).WithBase(base)

	if !errors.Is(err, base) {
		t.Errorf("errors.Is(err, base) = %v, want %v", errors.Is(err, base), true)
	}
	if !errors.Is(err, cause) {
		t.Errorf("errors.Is(err, cause) = %v, want %v", errors.Is(err, cause), true)
	}
	if err.Cause() != cause {
		t.Errorf("Cause() = %v, want %v", err.Cause(), cause)
	}
	if err.Base() != base {
		t.Errorf("Base() = %v, want %v", err.Base(), base)
	}
	// Unwrap() should return the cause (immediate wrapped error), not the base
	if err.Unwrap() != cause {
		t.Errorf("Unwrap() = %v, want %v (should return cause, not base)", err.Unwrap(), cause)
	}
}

func TestError_ExitCode(t *testing.T) {
	tests := []struct {
		kind   Kind
		want   int
		wantOK bool
	}{
		{KindOARC, 1, true},
		{KindNetwork, 2, true},
		{KindResourceNotFound, 3, true},
		{KindAuthentication, 4, true},
		{KindDataExtraction, 5, true},
		{KindCrawlerOp, 6, true},
		{KindBuild, 7, true},
		{KindPublish, 8, true},
		{KindConfiguration, 9, true},
		{KindUsage, 2, true},
		{KindMCP, 0, false},
		{KindTransport, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			got, ok := New(tt.kind, "x").ExitCode()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ExitCode() = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestError_WithContext(t *testing.T) {
	key := "key"
	value := "value"
	orig := New(KindOARC, "test")
	err := orig.WithContext(key, value)

	if err.Context()[key] != value {
		t.Errorf("Context()[%s] = %v, want %v", key, err.Context()[key], value)
	}
	if orig.Context() != nil {
		t.Errorf("original Context() = %v, want nil (must not be mutated)", orig.Context())
	}
	if err.Kind() != KindOARC {
		t.Errorf("Kind() = %v, want %v after clone", err.Kind(), KindOARC)
	}
}

func TestError_WithContextMap(t *testing.T) {
	context := map[string]any{
		"key": "value",
	}
	err := New(KindOARC, "test").WithContextMap(context)

	if !reflect.DeepEqual(err.Context(), context) {
		t.Errorf("Context() = %v, want %v", err.Context(), context)
	}
}

func TestError_WithBase(t *testing.T) {
	base := errors.New("base")
	err := New(KindPublish, "test").WithBase(base)

	if err.Base() != base {
		t.Errorf("Base() = %v, want %v", err.Base(), base)
	}
	if !errors.Is(err, base) {
		t.Errorf("errors.Is(err, base) = %v, want %v", errors.Is(err, base), true)
	}
	if err.Unwrap() != nil {
		t.Errorf("Unwrap() = %v, want %v (should return nil)", err.Unwrap(), nil)
	}
}

func TestError_Error(t *testing.T) {
	t.Run("message", func(t *testing.T) {
		if got := New(KindOARC, "test").Error(); got != "test" {
			t.Errorf("Error() = %v, want %v", got, "test")
		}
	})
	t.Run("falls back to description", func(t *testing.T) {
		if got := New(KindNetwork, "").Error(); got != DescNetwork {
			t.Errorf("Error() = %v, want %v", got, DescNetwork)
		}
	})
	t.Run("nil receiver", func(t *testing.T) {
		var err *Error
		if got := err.Error(); got != "" {
			t.Errorf("Error() = %q, want empty string", got)
		}
	})
}

func TestError_StackTrace(t *testing.T) {
	err := Configuration("bad config")
	frames := err.StackTrace()
	if len(frames) == 0 {
		t.Fatal("StackTrace() returned no frames")
	}
	if !strings.Contains(frames[0].Function, "TestError_StackTrace") {
		t.Errorf("StackTrace()[0].Function = %q, want the creating test function", frames[0].Function)
	}
}
