// Package cli — files.go implements the "funcship files" command.
//
// The files command is a dry run of the collection stage: it prints the
// top-level entries that would be packaged, after .funcignore filtering,
// without touching the archive or Azure. Useful for auditing an
// exclusion list before a deploy.
package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/funcship/internal/collect"
	"github.com/shinji-kodama/funcship/internal/funcignore"
	"github.com/shinji-kodama/funcship/internal/model"
	"github.com/shinji-kodama/funcship/internal/project"
)

// filesFlags holds the flag values for the files command.
type filesFlags struct {
	ignoreFile string // --ignore-file: exclusion file override
}

// NewFilesCommand creates the "files" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewFilesCommand() *cobra.Command {
	flags := &filesFlags{}

	cmd := &cobra.Command{
		Use:   "files",
		Short: "List the entries that would be packaged",
		Long: `List the top-level project entries that survive .funcignore filtering,
without building an archive or contacting Azure.

Examples:
  funcship files
  funcship files --dir ./api
  funcship files --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runFiles(flags)
		},
	}

	cmd.Flags().StringVar(&flags.ignoreFile, "ignore-file", "", "Exclusion file path (default: .funcignore in the project directory)")

	return cmd
}

// runFiles loads the exclusion list and prints the filtered directory
// listing. No host.json check — this is a pure listing operation.
func runFiles(flags *filesFlags) error {
	dir, err := filepath.Abs(projectDir)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to resolve project directory", err)
	}

	cfg, err := project.LoadConfig(dir)
	if err != nil {
		return err
	}

	ignorePath := cfg.IgnorePath(dir, flags.ignoreFile)
	list, err := funcignore.LoadFile(ignorePath)
	if err != nil {
		return err
	}

	matcher, err := funcignore.NewMatcher(list)
	if err != nil {
		return model.WrapCLIError(model.ExitIgnoreFileMissing, "invalid exclusion file", err)
	}

	result, err := collect.Entries(dir, matcher)
	if err != nil {
		return err
	}

	printFilesResult(result, list)
	return nil
}

// printFilesResult outputs the files command results in text or JSON format.
func printFilesResult(result *collect.Result, list *funcignore.ExclusionList) {
	if IsJSONOutput() {
		type resultJSON struct {
			Patterns []string        `json:"patterns"`
			Entries  []collect.Entry `json:"entries"`
			Excluded int             `json:"excluded"`
		}
		out := resultJSON{
			Patterns: list.Patterns,
			Entries:  result.Entries,
			Excluded: result.Excluded,
		}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(data))
		return
	}

	for _, entry := range result.Entries {
		name := entry.Name
		if entry.IsDir {
			// Trailing separator marks directories, which are archived
			// with their full subtree.
			name += string(filepath.Separator)
		}
		fmt.Println(name)
	}
	if result.Excluded > 0 {
		fmt.Printf("\n%d entr(ies) excluded by %d pattern(s)\n", result.Excluded, len(list.Patterns))
	}
}
