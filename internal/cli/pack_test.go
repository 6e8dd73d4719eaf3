// Package cli — pack_test.go contains unit tests for the packaging
// pipeline helper shared by the pack and deploy commands, plus the
// output formatting helpers.
package cli

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/funcship/internal/model"
)

// useProjectDir points the package-level --dir flag variable at the
// given directory for the duration of the test.
func useProjectDir(t *testing.T, dir string) {
	t.Helper()

	old := projectDir
	projectDir = dir
	t.Cleanup(func() { projectDir = old })
}

// setupFunctionsProject builds a minimal Functions project: host.json,
// a .funcignore excluding logs/archives/node_modules, and a few entries.
func setupFunctionsProject(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	write("host.json", `{"version": "2.0"}`)
	write(".funcignore", "Exclude\n*.zip\n*.log\nnode_modules\n")
	write("function_app.py", "pass\n")
	write("requirements.txt", "fastapi\n")
	write("debug.log", "noise\n")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "node_modules"), 0755))
	return dir
}

// archiveNames returns the member names of the zip at path.
func archiveNames(t *testing.T, path string) []string {
	t.Helper()

	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()

	var names []string
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	return names
}

// TestBuildProjectArchive verifies the full packaging pipeline: project
// check, exclusion filtering, and archive creation at the default path.
func TestBuildProjectArchive(t *testing.T) {
	dir := setupFunctionsProject(t)
	useProjectDir(t, dir)

	summary, result, err := buildProjectArchive(&packFlags{})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, model.DefaultArchiveName), summary.Path)
	assert.Equal(t, 2, summary.Excluded) // debug.log + node_modules
	assert.ElementsMatch(t, []string{".funcignore", "function_app.py", "host.json", "requirements.txt"}, result.Names())
	assert.ElementsMatch(t, []string{".funcignore", "function_app.py", "host.json", "requirements.txt"}, archiveNames(t, summary.Path))
}

// TestBuildProjectArchive_MissingIgnoreFile verifies that a missing
// .funcignore stops the pipeline before anything is written: no archive
// may exist afterwards.
func TestBuildProjectArchive_MissingIgnoreFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "host.json"), []byte(`{"version": "2.0"}`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0644))
	useProjectDir(t, dir)

	_, _, err := buildProjectArchive(&packFlags{})
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitIgnoreFileMissing, cliErr.Code)

	_, statErr := os.Stat(filepath.Join(dir, model.DefaultArchiveName))
	assert.True(t, os.IsNotExist(statErr), "no archive may be created when .funcignore is missing")
}

// TestBuildProjectArchive_ProjectCheck verifies that a directory without
// host.json is rejected, and that --no-verify bypasses the check.
func TestBuildProjectArchive_ProjectCheck(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".funcignore"), []byte("Exclude\n*.zip\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0644))
	useProjectDir(t, dir)

	_, _, err := buildProjectArchive(&packFlags{})
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitProjectInvalid, cliErr.Code)

	// Same directory passes with --no-verify.
	summary, _, err := buildProjectArchive(&packFlags{noVerify: true})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{".funcignore", "a.txt"}, archiveNames(t, summary.Path))
}

// TestBuildProjectArchive_ReplacesPreviousArchive verifies that a stale
// app.zip is deleted before the new one is written and its content never
// reappears.
func TestBuildProjectArchive_ReplacesPreviousArchive(t *testing.T) {
	dir := setupFunctionsProject(t)
	useProjectDir(t, dir)

	// Plant a stale archive with arbitrary non-zip content.
	stalePath := filepath.Join(dir, model.DefaultArchiveName)
	require.NoError(t, os.WriteFile(stalePath, []byte("not a zip at all"), 0644))

	summary, _, err := buildProjectArchive(&packFlags{})
	require.NoError(t, err)

	// The result must be a valid zip (the stale bytes are gone) and the
	// archive itself is excluded by the *.zip pattern.
	names := archiveNames(t, summary.Path)
	assert.NotContains(t, names, model.DefaultArchiveName)
	assert.Contains(t, names, "function_app.py")
}

// TestBuildProjectArchive_ConfigOverrides verifies that .funcship.yaml
// archive/ignoreFile values are honored.
func TestBuildProjectArchive_ConfigOverrides(t *testing.T) {
	dir := setupFunctionsProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".funcship.yaml"),
		[]byte("archive: dist/out.zip\n"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "dist"), 0755))
	useProjectDir(t, dir)

	summary, _, err := buildProjectArchive(&packFlags{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "dist", "out.zip"), summary.Path)
}

// TestFormatBytes verifies the human-readable size formatting.
func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1 << 20, "1.0 MiB"},
		{5 << 20, "5.0 MiB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatBytes(tt.in))
		})
	}
}
