// archive.go implements the zip-building stage of the deploy pipeline.
package archive

import (
	"archive/zip"
	"compress/flate"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shinji-kodama/funcship/internal/collect"
	"github.com/shinji-kodama/funcship/internal/model"
)

// Build creates a zip archive at destPath containing the given entries.
// File entries become single zip members; directory entries are walked
// recursively with their full subtree. Member names are slash-separated
// paths relative to projectDir.
//
// Any existing file at destPath is deleted first. A failure to delete it
// (e.g. the file is locked) is fatal and nothing further is attempted.
func Build(projectDir string, entries []collect.Entry, destPath string) (*model.ArchiveSummary, error) {
	if err := removeExisting(destPath); err != nil {
		return nil, err
	}

	// The destination is compared against walked paths so the archive
	// never swallows its own half-written self when it lives inside a
	// collected directory.
	absDest, err := filepath.Abs(destPath)
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitArchiveError,
			fmt.Sprintf("failed to resolve archive path %s", destPath),
			err,
		)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitArchiveError,
			fmt.Sprintf("failed to create archive %s", destPath),
			err,
		)
	}
	defer func() { _ = out.Close() }()

	zw := zip.NewWriter(out)

	// Replace the default Deflate compressor with the fastest level.
	// The default (flate.DefaultCompression) trades speed for ratio,
	// which is the wrong trade for a single-use deployment artifact.
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestSpeed)
	})

	count := 0
	for _, entry := range entries {
		n, err := addEntry(zw, projectDir, entry, absDest)
		if err != nil {
			_ = zw.Close()
			return nil, err
		}
		count += n
	}

	if err := zw.Close(); err != nil {
		return nil, model.WrapCLIError(
			model.ExitArchiveError,
			fmt.Sprintf("failed to finalize archive %s", destPath),
			err,
		)
	}
	if err := out.Close(); err != nil {
		return nil, model.WrapCLIError(
			model.ExitArchiveError,
			fmt.Sprintf("failed to write archive %s", destPath),
			err,
		)
	}

	info, err := os.Stat(destPath)
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitArchiveError,
			fmt.Sprintf("failed to stat archive %s", destPath),
			err,
		)
	}

	return &model.ArchiveSummary{
		Path:       destPath,
		EntryCount: count,
		Bytes:      info.Size(),
	}, nil
}

// removeExisting deletes a pre-existing archive at destPath. A missing
// file is fine; any other failure aborts the run.
func removeExisting(destPath string) error {
	err := os.Remove(destPath)
	if err == nil || os.IsNotExist(err) {
		return nil
	}
	return model.WrapCLIError(
		model.ExitArchiveError,
		fmt.Sprintf("failed to delete existing archive %s", destPath),
		err,
	)
}

// addEntry writes one collected entry into the archive and returns the
// number of zip members written. absDest is the archive's own path,
// which is skipped wherever it turns up.
func addEntry(zw *zip.Writer, projectDir string, entry collect.Entry, absDest string) (int, error) {
	if !entry.IsDir {
		if abs, err := filepath.Abs(entry.Path); err == nil && abs == absDest {
			return 0, nil
		}
		if err := addFile(zw, entry.Path, entry.Name); err != nil {
			return 0, err
		}
		return 1, nil
	}

	count := 0
	walkErr := filepath.WalkDir(entry.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if abs, absErr := filepath.Abs(path); absErr == nil && abs == absDest {
			return nil
		}

		rel, err := filepath.Rel(projectDir, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)

		if d.IsDir() {
			// Only empty directories need an explicit header; directories
			// with children are implied by their members' paths. Writing
			// the header anyway for every directory would bloat the
			// archive and confuses some unpackers, so check first.
			empty, emptyErr := isEmptyDir(path)
			if emptyErr != nil {
				return emptyErr
			}
			if !empty {
				return nil
			}
			if _, err := zw.Create(name + "/"); err != nil {
				return err
			}
			count++
			return nil
		}

		if err := addFile(zw, path, name); err != nil {
			return err
		}
		count++
		return nil
	})
	if walkErr != nil {
		// addFile already wraps its own errors; avoid double wrapping.
		if cliErr, ok := walkErr.(*model.CLIError); ok {
			return 0, cliErr
		}
		return 0, model.WrapCLIError(
			model.ExitArchiveError,
			fmt.Sprintf("failed to archive directory %s", entry.Name),
			walkErr,
		)
	}
	return count, nil
}

// addFile copies a single file into the archive under the given member
// name, preserving the file mode and modification time.
func addFile(zw *zip.Writer, path, name string) error {
	info, err := os.Stat(path)
	if err != nil {
		return model.WrapCLIError(
			model.ExitArchiveError,
			fmt.Sprintf("failed to stat %s", path),
			err,
		)
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return model.WrapCLIError(
			model.ExitArchiveError,
			fmt.Sprintf("failed to build zip header for %s", path),
			err,
		)
	}
	header.Name = name
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return model.WrapCLIError(
			model.ExitArchiveError,
			fmt.Sprintf("failed to add %s to archive", name),
			err,
		)
	}

	f, err := os.Open(path)
	if err != nil {
		return model.WrapCLIError(
			model.ExitArchiveError,
			fmt.Sprintf("failed to read %s", path),
			err,
		)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(w, f); err != nil {
		return model.WrapCLIError(
			model.ExitArchiveError,
			fmt.Sprintf("failed to compress %s", name),
			err,
		)
	}
	return nil
}

// isEmptyDir reports whether the directory at path has no entries.
func isEmptyDir(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return false, err
	}
	return len(entries) == 0, nil
}
