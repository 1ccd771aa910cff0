package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func writeSettings(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadMissingFile(t *testing.T) {
	s, found, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, Default(), s)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeSettings(t, `{"grid": {"rows": 64, "cols": 48}, "execution": {"mode": "parallel"}}`)

	s, found, err := Load(path)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 64, s.Grid.Rows)
	assert.Equal(t, 48, s.Grid.Cols)
	assert.Equal(t, float32(0.03), s.Grid.DT)
	assert.Equal(t, "parallel", s.Execution.Mode)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	_, _, err := Load(writeSettings(t, `{"grid": {"rowz": 3}}`))
	assert.Error(t, err)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	s := Default()
	s.Grid.Rows = 2
	s.Grid.DT = 0
	s.Disturb.MaxMagnitude = 0
	s.Execution.Backend = "cuda"

	err := s.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 4)
	assert.ErrorContains(t, err, "cuda")
}
