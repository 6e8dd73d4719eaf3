// deploy.go implements the zip-deploy call against a function app.
package azcli

import (
	"context"

	"github.com/shinji-kodama/funcship/internal/model"
)

// ZipDeployArgs builds the argument vector for a zip deployment.
// Factored out of ZipDeploy so the exact invocation is testable without
// running anything.
func ZipDeployArgs(target model.DeployTarget, archivePath string) []string {
	return []string{
		"functionapp", "deployment", "source", "config-zip",
		"--resource-group", target.ResourceGroup,
		"--name", target.AppName,
		"--src", archivePath,
	}
}

// ZipDeploy uploads the archive at archivePath to the target function
// app. The call blocks until az returns; there is no local retry. On
// failure the archive stays on disk for a manual retry, and the error
// carries az's exit code and stderr.
func (r *Runner) ZipDeploy(ctx context.Context, target model.DeployTarget, archivePath string) (string, error) {
	return r.run(ctx, ZipDeployArgs(target, archivePath)...)
}
