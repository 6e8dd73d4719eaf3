// Package cli — pack.go implements the "funcship pack" command.
//
// The pack command runs the packaging half of the pipeline without
// deploying: load exclusions, collect files, build app.zip. It exists
// for CI setups that build the archive in one job and deploy it in
// another, and as the shared implementation the deploy command runs
// before its upload step.
//
// Pipeline steps:
//  1. Resolve the project directory and optional .funcship.yaml defaults
//  2. Verify the directory is a Functions project (host.json), unless --no-verify
//  3. Load .funcignore (its absence is fatal — nothing is listed without it)
//  4. Collect top-level entries minus excluded ones
//  5. Delete any previous archive and build the new one
package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/funcship/internal/archive"
	"github.com/shinji-kodama/funcship/internal/collect"
	"github.com/shinji-kodama/funcship/internal/funcignore"
	"github.com/shinji-kodama/funcship/internal/model"
	"github.com/shinji-kodama/funcship/internal/project"
)

// packFlags holds the flag values shared by the pack and deploy commands.
type packFlags struct {
	archive    string // --archive: destination path override (default app.zip)
	ignoreFile string // --ignore-file: exclusion file override (default .funcignore)
	noVerify   bool   // --no-verify: skip the host.json project check
}

// registerPackFlags binds the shared packaging flags onto a command.
// Both pack and deploy expose the same packaging surface.
func registerPackFlags(cmd *cobra.Command, flags *packFlags) {
	cmd.Flags().StringVar(&flags.archive, "archive", "", "Archive path (default: app.zip in the project directory)")
	cmd.Flags().StringVar(&flags.ignoreFile, "ignore-file", "", "Exclusion file path (default: .funcignore in the project directory)")
	cmd.Flags().BoolVar(&flags.noVerify, "no-verify", false, "Skip the host.json project check")
}

// NewPackCommand creates the "pack" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewPackCommand() *cobra.Command {
	flags := &packFlags{}

	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Build the deployment archive without deploying",
		Long: `Build app.zip from the project directory, honoring .funcignore,
without contacting Azure.

Any pre-existing archive at the destination is deleted first. The
exclusion file must exist — a missing .funcignore aborts the run before
any files are listed.

Examples:
  funcship pack
  funcship pack --dir ./api --archive dist/api.zip
  funcship pack --json`,

		// No positional arguments are required for the pack command.
		Args: cobra.NoArgs,

		// RunE returns an error to the root command's error handler.
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, result, err := buildProjectArchive(flags)
			if err != nil {
				return err
			}
			printPackResult(summary, result)
			return nil
		},
	}

	registerPackFlags(cmd, flags)
	return cmd
}

// buildProjectArchive runs the packaging pipeline and returns the archive
// summary alongside the collection result. Shared by pack and deploy.
func buildProjectArchive(flags *packFlags) (*model.ArchiveSummary, *collect.Result, error) {
	// Step 1: Resolve the project directory to an absolute path so every
	// later message and zip operation refers to the same location
	// regardless of where the command was started.
	dir, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, nil, model.WrapCLIError(model.ExitGeneralError, "failed to resolve project directory", err)
	}
	VerboseLog("Project directory: %s", dir)

	cfg, err := project.LoadConfig(dir)
	if err != nil {
		return nil, nil, err
	}

	// Step 2: Project check. host.json identifies a Functions project;
	// skipping it is an explicit opt-in for exotic layouts.
	if !flags.noVerify {
		if err := project.Verify(dir); err != nil {
			return nil, nil, err
		}
		VerboseLog("host.json check passed")
	} else {
		VerboseLog("Skipping host.json check (--no-verify)")
	}

	// Step 3: Load exclusions. This happens before any directory listing;
	// a missing exclusion file stops the pipeline with nothing written.
	ignorePath := cfg.IgnorePath(dir, flags.ignoreFile)
	list, err := funcignore.LoadFile(ignorePath)
	if err != nil {
		return nil, nil, err
	}

	matcher, err := funcignore.NewMatcher(list)
	if err != nil {
		return nil, nil, model.WrapCLIError(model.ExitIgnoreFileMissing, "invalid exclusion file", err)
	}
	VerboseLog("Loaded %d exclusion pattern(s) from %s: %s",
		len(matcher.Patterns()), ignorePath, strings.Join(matcher.Patterns(), " "))

	// Step 4: Collect the surviving top-level entries.
	result, err := collect.Entries(dir, matcher)
	if err != nil {
		return nil, nil, err
	}
	VerboseLog("Collected %d entr(ies), excluded %d: %s",
		len(result.Entries), result.Excluded, strings.Join(result.Names(), " "))

	// Step 5: Build the archive. The archiver deletes any previous
	// archive first, so two archives never coexist.
	dest := cfg.ArchivePath(dir, flags.archive)
	summary, err := archive.Build(dir, result.Entries, dest)
	if err != nil {
		return nil, nil, err
	}
	summary.Excluded = result.Excluded
	VerboseLog("Archive written: %s (%d entries, %d bytes)", summary.Path, summary.EntryCount, summary.Bytes)

	return summary, result, nil
}

// printPackResult outputs the pack command results in text or JSON format.
func printPackResult(summary *model.ArchiveSummary, result *collect.Result) {
	if IsJSONOutput() {
		data, _ := json.MarshalIndent(summary, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Packed %d entr(ies) into %s (%s)\n",
		len(result.Entries), summary.Path, formatBytes(summary.Bytes))
	if summary.Excluded > 0 {
		fmt.Printf("  %d entr(ies) excluded by %s\n", summary.Excluded, model.DefaultIgnoreFile)
	}
}

// formatBytes renders a byte count in a compact human-readable unit.
func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/float64(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
