package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"oarc-decorators/pkg/console"
	"oarc-decorators/pkg/errx"
)

func TestSentinelKinds(t *testing.T) {
	tests := []struct {
		sentinel error
		kind     errx.Kind
	}{
		{ErrModeRequired, errx.KindUsage},
		{ErrInvalidProbeURL, errx.KindUsage},
		{ErrInvalidRootFlag, errx.KindUsage},
		{ErrProbeRequestFailed, errx.KindNetwork},
		{ErrProbeNotFound, errx.KindResourceNotFound},
		{ErrProbeUnauthorized, errx.KindAuthentication},
		{ErrProbeBadResponse, errx.KindDataExtraction},
		{ErrLoadConfigFailed, errx.KindConfiguration},
		{ErrWriteMetricsFailed, errx.KindOARC},
	}
	for _, tt := range tests {
		t.Run(tt.sentinel.Error(), func(t *testing.T) {
			err := wrapWithSentinel(tt.sentinel, errors.New("cause"), "context message")
			assert.Equal(t, tt.kind, err.Kind())
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, "context message", err.Message())
		})
	}
}

func TestSentinelFallbacks(t *testing.T) {
	assert.Equal(t, errx.KindOARC, lookupKind(errors.New("unregistered")))
	assert.Equal(t, errx.KindOARC, newWithSentinel(nil, "x").Kind())
	assert.Equal(t, errx.KindOARC, wrapWithSentinel(nil, errors.New("c"), "x").Kind())

	err := wrapWithSentinelAndContext(ErrProbeNotFound, nil, "gone", map[string]any{"url": "http://x"})
	assert.Equal(t, "http://x", err.Context()["url"])
}

func TestFailuresAreLoggedOnce(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	core, logs := observer.New(zapcore.DebugLevel)
	var out bytes.Buffer
	app := NewApp(zap.New(core), console.NewPrinter(&out, &out, console.ColorNever), "dev")
	root := NewRootCmd(app)
	root.SetArgs([]string{"simulate", "network_error", "--message", "dial tcp: connection refused"})

	require.Equal(t, 2, app.Reporter().Execute(root))

	failures := logs.FilterMessage("command failed").All()
	require.Len(t, failures, 1)
	fields := failures[0].ContextMap()
	assert.Equal(t, zapcore.ErrorLevel, failures[0].Level)
	assert.Equal(t, errx.CodeNetwork, fields["error.code"])
	assert.Equal(t, "NetworkError", fields["error.kind"])
	assert.Equal(t, "dial tcp: connection refused", fields["error.message"])
	assert.EqualValues(t, 2, fields["error.exit_code"])
	assert.Len(t, logs.FilterLevelExact(zapcore.ErrorLevel).All(), 1)
}
