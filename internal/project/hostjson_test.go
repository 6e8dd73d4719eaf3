package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/funcship/internal/model"
)

// writeHostJSON creates a host.json with the given content in a fresh
// temporary directory and returns the directory path.
func writeHostJSON(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, HostJSONName), []byte(content), 0644)
	require.NoError(t, err)
	return dir
}

// TestLoadHostConfig_Plain verifies parsing of an ordinary host.json.
func TestLoadHostConfig_Plain(t *testing.T) {
	dir := writeHostJSON(t, `{"version": "2.0", "logging": {"logLevel": {"default": "Information"}}}`)

	cfg, err := LoadHostConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "2.0", cfg.Version)
}

// TestLoadHostConfig_JSONC verifies that comments and trailing commas —
// both common in real host.json files — are tolerated.
func TestLoadHostConfig_JSONC(t *testing.T) {
	dir := writeHostJSON(t, `{
  // Functions host schema version
  "version": "2.0",
  "extensions": {
    "http": {"routePrefix": "api"}, /* default */
  },
}`)

	cfg, err := LoadHostConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "2.0", cfg.Version)
	assert.Contains(t, cfg.Extensions, "http")
}

// TestVerify covers the project-validation outcomes used by deploy/pack.
func TestVerify(t *testing.T) {
	t.Run("valid project", func(t *testing.T) {
		dir := writeHostJSON(t, `{"version": "2.0"}`)
		assert.NoError(t, Verify(dir))
	})

	t.Run("missing host.json", func(t *testing.T) {
		err := Verify(t.TempDir())
		require.Error(t, err)

		var cliErr *model.CLIError
		require.True(t, errors.As(err, &cliErr))
		assert.Equal(t, model.ExitProjectInvalid, cliErr.Code)
	})

	t.Run("unsupported version", func(t *testing.T) {
		dir := writeHostJSON(t, `{"version": "1.0"}`)
		err := Verify(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"1.0"`)
	})

	t.Run("malformed file", func(t *testing.T) {
		dir := writeHostJSON(t, `{"version": `)
		err := Verify(dir)
		require.Error(t, err)

		var cliErr *model.CLIError
		require.True(t, errors.As(err, &cliErr))
		assert.Equal(t, model.ExitProjectInvalid, cliErr.Code)
	})
}
