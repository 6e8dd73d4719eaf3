// runner.go implements invocation of the az binary via os/exec.
package azcli

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/shinji-kodama/funcship/internal/model"
)

// DefaultBinary is the Azure CLI executable name resolved via PATH.
const DefaultBinary = "az"

// Runner invokes the Azure CLI. The zero value is not usable; construct
// with NewRunner. The struct exists as a receiver so tests can point it
// at a stub binary and so a custom az path can be supported later.
type Runner struct {
	// bin is the az executable name or path.
	bin string
}

// NewRunner creates a Runner that resolves "az" via PATH.
func NewRunner() *Runner {
	return &Runner{bin: DefaultBinary}
}

// NewRunnerWithBinary creates a Runner that invokes the given executable
// instead of "az". Used by tests to substitute a stub script.
func NewRunnerWithBinary(bin string) *Runner {
	return &Runner{bin: bin}
}

// CheckInstalled verifies the az binary is resolvable. Returns a
// CLIError with ExitAzNotFound when it is not, so the failure is
// reported as a missing tool rather than a cryptic exec error.
func (r *Runner) CheckInstalled() error {
	if _, err := exec.LookPath(r.bin); err != nil {
		return model.WrapCLIError(
			model.ExitAzNotFound,
			fmt.Sprintf("Azure CLI (%s) not found on PATH — install it from https://aka.ms/azure-cli", r.bin),
			err,
		)
	}
	return nil
}

// run executes an az command with the given arguments and returns its
// stdout. On a non-zero exit, the returned CLIError carries az's own
// exit code and its stderr output, so the caller's process exit status
// propagates the external tool's result verbatim.
func (r *Runner) run(ctx context.Context, args ...string) (string, error) {
	// #nosec G204 — args are constructed internally, not from user input
	cmd := exec.CommandContext(ctx, r.bin, args...)

	// Capture stdout and stderr separately so we can include stderr
	// in error messages while returning stdout on success.
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		stderrStr := strings.TrimSpace(stderr.String())
		message := fmt.Sprintf("az %s failed", strings.Join(args, " "))
		if stderrStr != "" {
			message = fmt.Sprintf("%s: %s", message, stderrStr)
		}
		return "", model.WrapCLIError(exitCodeOf(err), message, err)
	}

	return stdout.String(), nil
}

// exitCodeOf maps a process error to the exit code funcship should
// return. A normal non-zero exit propagates as-is; anything else
// (binary not startable, killed by signal) becomes a general error.
func exitCodeOf(err error) model.ExitCode {
	if exitErr, ok := err.(*exec.ExitError); ok {
		if code := exitErr.ExitCode(); code > 0 {
			return model.ExitCode(code)
		}
	}
	return model.ExitGeneralError
}
