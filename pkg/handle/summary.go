package handle

import (
	"encoding/json"
	"fmt"
	"runtime/debug"
	"strings"

	"sigs.k8s.io/yaml"

	"oarc-decorators/pkg/errx"
)

// Summary is a machine-readable description of a failure.
type Summary struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	ErrorType string `json:"error_type"`
	ExitCode  int    `json:"exit_code"`
	Traceback string `json:"traceback,omitempty"`
}

// Describe summarizes err the way r would report it. The traceback is
// included only when verbose is set. A nil err yields a successful summary.
func (r *Reporter) Describe(err error, verbose bool) Summary {
	if err == nil {
		return Summary{Success: true, ExitCode: errx.ExitSuccess}
	}
	c := r.classify(err)
	s := Summary{
		Error:     c.message,
		ErrorType: c.typeName,
		ExitCode:  c.exitCode,
	}
	if verbose {
		s.Traceback = traceOf(err)
	}
	return s
}

// Marshal encodes s as "json" or "yaml".
func (s Summary) Marshal(format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", "json":
		return json.MarshalIndent(s, "", "  ")
	case "yaml", "yml":
		return yaml.Marshal(s)
	default:
		return nil, errx.Usage(fmt.Sprintf("unsupported output format %q", format)).
			WithContext("format", format)
	}
}

func stack() []byte {
	return debug.Stack()
}
