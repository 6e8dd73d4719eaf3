// Package cli — deploy.go implements the "funcship deploy" command.
//
// The deploy command is the primary user-facing operation. It runs the
// full pipeline: load exclusions → collect files → build app.zip →
// upload via the Azure CLI. The steps run in strict sequence with no
// retries; the first failure aborts the run, and a failed upload leaves
// the archive on disk for a manual retry.
package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/shinji-kodama/funcship/internal/azcli"
	"github.com/shinji-kodama/funcship/internal/model"
	"github.com/shinji-kodama/funcship/internal/project"
)

// isTerminal reports whether stdin is attached to a terminal. The
// confirmation prompt only makes sense interactively — CI pipelines and
// piped invocations proceed without one. Declared as a variable so
// tests can force either mode.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// deployFlags holds the flag values for the deploy command.
type deployFlags struct {
	packFlags

	// yes skips the interactive confirmation prompt when true.
	yes bool
}

// NewDeployCommand creates the "deploy" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewDeployCommand() *cobra.Command {
	flags := &deployFlags{}

	cmd := &cobra.Command{
		Use:   "deploy <resource-group> <app-name>",
		Short: "Package the project and deploy it to a function app",
		Long: `Package the project directory into app.zip (honoring .funcignore) and
upload it to the named function app via the Azure CLI.

Authentication and subscription context come from the az CLI itself
(az login). A .funcship.yaml in the project directory may supply default
values for the resource group and app name; positional arguments always
take precedence. With a complete config file, both arguments may be
omitted.

Examples:
  funcship deploy my-rg my-function-app
  funcship deploy --dir ./api my-rg my-api
  funcship deploy --yes my-rg my-function-app
  funcship deploy              # target from .funcship.yaml`,

		// Up to two positional arguments: resource group and app name.
		// Fewer are allowed only when .funcship.yaml fills the gaps —
		// the resolved target is validated before anything runs.
		Args: cobra.MaximumNArgs(2),

		RunE: func(cmd *cobra.Command, args []string) error {
			var rg, app string
			if len(args) > 0 {
				rg = args[0]
			}
			if len(args) > 1 {
				app = args[1]
			}
			return runDeploy(cmd.Context(), rg, app, flags)
		},
	}

	registerPackFlags(cmd, &flags.packFlags)
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "Deploy without confirmation")

	return cmd
}

// runDeploy is the main orchestration function for the deploy command.
func runDeploy(ctx context.Context, resourceGroup, appName string, flags *deployFlags) error {
	// Step 1: Resolve the deployment target from args + config defaults.
	// This fails fast on an incomplete target, before any packaging work.
	dir := projectDir
	cfg, err := project.LoadConfig(dir)
	if err != nil {
		return err
	}
	target, err := cfg.ResolveTarget(resourceGroup, appName)
	if err != nil {
		return err
	}
	VerboseLog("Deployment target: %s", target)

	// Step 2: Build the archive (shared with the pack command).
	summary, result, err := buildProjectArchive(&flags.packFlags)
	if err != nil {
		return err
	}

	// Step 3: Confirmation prompt, only on a terminal and unless --yes.
	// Non-interactive runs (CI, piped stdin) proceed without a prompt —
	// an EOF "decline" there would make every scripted deploy abort.
	// The archive is already on disk at this point, which is fine — it
	// stays behind either way.
	if !flags.yes && isTerminal() {
		confirmed, promptErr := promptDeploy(target, summary)
		if promptErr != nil {
			return model.WrapCLIError(model.ExitGeneralError, "failed to read user input", promptErr)
		}
		if !confirmed {
			return model.NewCLIError(model.ExitUserCancelled, "deployment cancelled by user")
		}
	}

	// Step 4: Deploy. The az CLI binary is checked here, inside the
	// deploy step, keeping the strict pipeline order — packaging already
	// happened and its artifact remains usable.
	runner := azcli.NewRunner()
	if err := runner.CheckInstalled(); err != nil {
		return err
	}

	VerboseLog("Uploading %s to %s...", summary.Path, target)
	output, err := runner.ZipDeploy(ctx, target, summary.Path)
	if err != nil {
		// The error carries az's own exit code and stderr; nothing is
		// retried and the archive stays on disk.
		return err
	}
	VerboseLog("az output: %s", strings.TrimSpace(output))

	// Step 5: Output results.
	printDeployResult(target, summary, len(result.Entries))
	return nil
}

// promptDeploy asks for confirmation before uploading. Closed stdin or
// anything other than y/yes counts as "no".
func promptDeploy(target model.DeployTarget, summary *model.ArchiveSummary) (bool, error) {
	fmt.Printf("About to deploy %s (%s) to function app %s.\n",
		summary.Path, formatBytes(summary.Bytes), target)
	fmt.Print("\nContinue? [y/N] ")

	// bufio.Scanner handles different line endings across platforms
	// (LF on Unix, CRLF on Windows).
	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() {
		answer := strings.TrimSpace(strings.ToLower(scanner.Text()))
		return answer == "y" || answer == "yes", nil
	}

	if err := scanner.Err(); err != nil {
		return false, err
	}

	return false, nil
}

// printDeployResult outputs the deploy command results in text or JSON format.
func printDeployResult(target model.DeployTarget, summary *model.ArchiveSummary, entryCount int) {
	if IsJSONOutput() {
		type resultJSON struct {
			Target  model.DeployTarget    `json:"target"`
			Archive *model.ArchiveSummary `json:"archive"`
		}
		data, _ := json.MarshalIndent(resultJSON{Target: target, Archive: summary}, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Printf("Deployed %s to function app %s\n", summary.Path, target)
	fmt.Printf("  Entries:  %d top-level (%d zip members)\n", entryCount, summary.EntryCount)
	fmt.Printf("  Size:     %s\n", formatBytes(summary.Bytes))
}
