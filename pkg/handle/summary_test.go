package handle

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oarc-decorators/pkg/errx"
)

func TestDescribe(t *testing.T) {
	r := New(&recordingConsole{})

	assert.Equal(t, Summary{Success: true}, r.Describe(nil, true))

	s := r.Describe(errx.ResourceNotFound("page missing"), false)
	assert.Equal(t, Summary{Error: "page missing", ErrorType: "ResourceNotFoundError", ExitCode: 3}, s)

	s = r.Describe(errors.New("boom"), true)
	assert.False(t, s.Success)
	assert.Equal(t, "errors.errorString", s.ErrorType)
	assert.Equal(t, 1, s.ExitCode)
	assert.Contains(t, s.Traceback, "errors.errorString: boom")

	s = r.Describe(errx.Usage("bad flag"), false)
	assert.Equal(t, "UsageError", s.ErrorType)
	assert.Equal(t, 2, s.ExitCode)
}

func TestSummaryMarshal(t *testing.T) {
	s := Summary{Error: "Build failed", ErrorType: "BuildError", ExitCode: 7}

	raw, err := s.Marshal("json")
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, false, decoded["success"])
	assert.Equal(t, "BuildError", decoded["error_type"])
	assert.Equal(t, float64(7), decoded["exit_code"])
	assert.NotContains(t, decoded, "traceback")

	raw, err = s.Marshal("yaml")
	require.NoError(t, err)
	assert.Contains(t, string(raw), "error_type: BuildError")
	assert.Contains(t, string(raw), "exit_code: 7")

	_, err = s.Marshal("xml")
	assert.Equal(t, errx.KindUsage, errx.KindOf(err))
}
