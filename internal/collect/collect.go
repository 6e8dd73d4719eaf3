// collect.go implements the file collection stage of the deploy pipeline.
package collect

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shinji-kodama/funcship/internal/funcignore"
	"github.com/shinji-kodama/funcship/internal/model"
)

// Entry is one surviving top-level entry of the project directory.
type Entry struct {
	// Name is the bare entry name within the project directory.
	Name string `json:"name"`

	// Path is the absolute path to the entry.
	Path string `json:"path"`

	// IsDir reports whether the entry is a directory. Directories are
	// archived recursively with their full subtree.
	IsDir bool `json:"isDir"`
}

// Result holds the outcome of a collection pass.
type Result struct {
	// Entries are the surviving entries in directory-listing order.
	Entries []Entry `json:"entries"`

	// Excluded is the number of top-level entries removed by patterns.
	Excluded int `json:"excluded"`
}

// Entries lists the direct children of projectDir and removes every entry
// whose name matches an exclusion pattern. The returned order is the
// directory-listing order of the underlying platform.
func Entries(projectDir string, matcher *funcignore.Matcher) (*Result, error) {
	dirEntries, err := os.ReadDir(projectDir)
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitArchiveError,
			fmt.Sprintf("failed to list project directory %s", projectDir),
			err,
		)
	}

	result := &Result{}
	for _, de := range dirEntries {
		if matcher.Excluded(de.Name()) {
			result.Excluded++
			continue
		}
		result.Entries = append(result.Entries, Entry{
			Name:  de.Name(),
			Path:  filepath.Join(projectDir, de.Name()),
			IsDir: de.IsDir(),
		})
	}
	return result, nil
}

// Names returns the surviving entry names, in collection order.
func (r *Result) Names() []string {
	names := make([]string, 0, len(r.Entries))
	for _, e := range r.Entries {
		names = append(names, e.Name)
	}
	return names
}
