package testutil

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ReadFile returns the content of a file below the run directory.
func ReadFile(t *testing.T, result *HarnessResult, name string) string {
	t.Helper()
	data, err := os.ReadFile(result.Path(name))
	require.NoError(t, err)
	return string(data)
}

// AssertNotExist fails when a file below the run directory exists.
func AssertNotExist(t *testing.T, result *HarnessResult, name string) {
	t.Helper()
	_, err := os.Stat(result.Path(name))
	assert.True(t, os.IsNotExist(err), "expected %s not to exist", name)
}

// AssertSkipLogged checks that a model was reported as skipped in the logs.
// The logger is expected to use the text format.
func AssertSkipLogged(t *testing.T, result *HarnessResult, modelName string) {
	t.Helper()
	found := false
	for _, line := range strings.Split(result.LogOutput, "\n") {
		if strings.Contains(line, `msg="Skipping model."`) && strings.Contains(line, "model="+modelName+" ") {
			found = true
			break
		}
	}
	assert.True(t, found, "expected a skip log line for model %s", modelName)
}
