package handle

import (
	"errors"

	"github.com/go-logr/logr"

	"oarc-decorators/pkg/errx"
)

// logReport logs a reported failure with structured fields:
//   - error.code: "80200"
//   - error.kind: "NetworkError"
//   - error.category: "Network error"
//   - error.exit_code: 2
//   - error.context.<key>: context values
//   - error.cause: the cause message
//
// Failures that are not errx errors are logged with the type and exit code only.
func logReport(logger logr.Logger, err error, c classified) {
	if err == nil {
		return
	}

	var e *errx.Error
	if !errors.As(err, &e) {
		logger.Error(err, "command failed", "error.type", c.typeName, "error.exit_code", c.exitCode)
		return
	}

	keysAndValues := []any{
		"error.code", e.Code(),
		"error.kind", c.typeName,
		"error.category", e.Description(),
		"error.message", e.Message(),
		"error.exit_code", c.exitCode,
	}
	for key, value := range e.Context() {
		keysAndValues = append(keysAndValues, "error.context."+key, value)
	}
	if cause := e.Cause(); cause != nil {
		keysAndValues = append(keysAndValues, "error.cause", cause.Error())
	}
	logger.Error(err, "command failed", keysAndValues...)
}
