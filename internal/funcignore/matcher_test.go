package funcignore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestMatcher builds a Matcher from raw patterns, failing the test on
// invalid input.
func newTestMatcher(t *testing.T, patterns ...string) *Matcher {
	t.Helper()

	m, err := NewMatcher(&ExclusionList{Patterns: patterns})
	require.NoError(t, err)
	return m
}

// TestMatcher_Excluded covers the glob forms that appear in real
// .funcignore files: literal names, extension wildcards, and character
// classes.
func TestMatcher_Excluded(t *testing.T) {
	m := newTestMatcher(t, "*.zip", "node_modules", ".venv", "test_?.py")

	tests := []struct {
		name     string
		excluded bool
	}{
		{"app.zip", true},
		{"node_modules", true},
		{".venv", true},
		{"test_1.py", true},
		{"test_10.py", false}, // ? matches exactly one character
		{"function_app.py", false},
		{"host.json", false},
		{"zip", false}, // *.zip requires the dot
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.excluded, m.Excluded(tt.name))
		})
	}
}

// TestMatcher_OrderIndependent verifies the set-difference property:
// reordering the pattern list never changes which entries are excluded.
func TestMatcher_OrderIndependent(t *testing.T) {
	forward := newTestMatcher(t, "*.log", "node_modules", "*.zip")
	reverse := newTestMatcher(t, "*.zip", "node_modules", "*.log")

	names := []string{"a.txt", "b.log", "node_modules", "app.zip", "host.json"}
	for _, name := range names {
		assert.Equal(t, forward.Excluded(name), reverse.Excluded(name),
			"matchers with reordered patterns disagree on %q", name)
	}
}

// TestMatcher_Empty verifies that an empty exclusion list excludes nothing.
func TestMatcher_Empty(t *testing.T) {
	m := newTestMatcher(t)
	assert.False(t, m.Excluded("anything"))
	assert.False(t, m.Excluded("app.zip"))
}

// TestNewMatcher_InvalidPattern verifies that malformed globs are
// rejected at construction time with the offending pattern named.
func TestNewMatcher_InvalidPattern(t *testing.T) {
	_, err := NewMatcher(&ExclusionList{Patterns: []string{"[unclosed"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[unclosed")
}
