// funcignore.go implements loading and parsing of the .funcignore
// exclusion file.
//
// The loader is strict about two things the original script relied on:
// the file must exist (its absence aborts the run before any directory
// listing happens), and the first non-blank row must be the "Exclude"
// header. Everything after the header is one glob pattern per row.
package funcignore

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shinji-kodama/funcship/internal/model"
)

// headerLabel is the required first row of the exclusion file. The
// comparison is case-insensitive and ignores surrounding whitespace.
const headerLabel = "Exclude"

// ExclusionList holds the glob patterns parsed from a .funcignore file,
// in file order. Order is preserved for display purposes only — matching
// is order-independent.
type ExclusionList struct {
	// Patterns are the glob patterns, one per data row.
	Patterns []string

	// Source is the path of the file the patterns were loaded from.
	Source string
}

// Load reads the default ignore file (.funcignore) from the given
// project directory.
func Load(projectDir string) (*ExclusionList, error) {
	return LoadFile(filepath.Join(projectDir, model.DefaultIgnoreFile))
}

// LoadFile reads and parses an exclusion file at an explicit path.
//
// Returns a CLIError with ExitIgnoreFileMissing if the file does not
// exist or the header row is missing/wrong. Both conditions stop the
// pipeline before the project directory is listed.
func LoadFile(path string) (*ExclusionList, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.WrapCLIError(
				model.ExitIgnoreFileMissing,
				fmt.Sprintf("exclusion file %s not found", path),
				err,
			)
		}
		return nil, model.WrapCLIError(
			model.ExitIgnoreFileMissing,
			fmt.Sprintf("failed to open exclusion file %s", path),
			err,
		)
	}
	defer func() { _ = f.Close() }()

	list, err := parse(f)
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitIgnoreFileMissing,
			fmt.Sprintf("failed to parse exclusion file %s", path),
			err,
		)
	}
	list.Source = path
	return list, nil
}

// parse reads the single-column table from r. Blank rows are skipped
// everywhere; the first non-blank row must be the header.
func parse(r io.Reader) (*ExclusionList, error) {
	list := &ExclusionList{}
	sawHeader := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		row := strings.TrimSpace(scanner.Text())
		if row == "" {
			continue
		}

		if !sawHeader {
			// The header row carries no pattern — it only identifies the
			// column. Anything else in the first row is a malformed file.
			if !strings.EqualFold(row, headerLabel) {
				return nil, fmt.Errorf("expected header %q, found %q", headerLabel, row)
			}
			sawHeader = true
			continue
		}

		list.Patterns = append(list.Patterns, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if !sawHeader {
		return nil, fmt.Errorf("expected header %q, found empty file", headerLabel)
	}

	return list, nil
}
