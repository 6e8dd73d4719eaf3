// Package model defines the domain types for the funcship CLI.
//
// These types are used throughout the application for passing data
// between the pipeline stages (load exclusions → collect files →
// archive → deploy). They carry no behavior beyond validation and
// formatting.
package model

import (
	"fmt"
	"regexp"
)

// DefaultArchiveName is the fixed archive filename created in the project
// directory on every run. A pre-existing archive at this path is deleted
// before a new one is written.
const DefaultArchiveName = "app.zip"

// DefaultIgnoreFile is the exclusion list filename expected in the project
// directory. Its absence is a fatal error — the pipeline stops before
// listing any files.
const DefaultIgnoreFile = ".funcignore"

// DeployTarget identifies the Azure function app that receives the archive.
// Both fields come from positional CLI arguments or from the optional
// .funcship.yaml config file; arguments always win.
type DeployTarget struct {
	// ResourceGroup is the Azure resource group containing the function app.
	ResourceGroup string `json:"resourceGroup"`

	// AppName is the function app name within the resource group.
	AppName string `json:"appName"`
}

// Validate checks that both target fields are present. The original script
// forwarded empty values straight to the deployment tool and let it fail
// with an obscure error; funcship fails fast instead.
func (t DeployTarget) Validate() error {
	if t.ResourceGroup == "" {
		return fmt.Errorf("resource group must not be empty")
	}
	if t.AppName == "" {
		return fmt.Errorf("function app name must not be empty")
	}
	if !appNameRegex.MatchString(t.AppName) {
		return fmt.Errorf("invalid function app name %q: must contain only alphanumeric characters and hyphens, and start/end with alphanumeric", t.AppName)
	}
	return nil
}

// String returns a human-readable representation of the target.
// Format: "app (resource group: rg)"
func (t DeployTarget) String() string {
	return fmt.Sprintf("%s (resource group: %s)", t.AppName, t.ResourceGroup)
}

// appNameRegex validates function app names: alphanumeric + hyphens only,
// must start and end with alphanumeric. This matches the character set
// Azure accepts for function app hostnames.
var appNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*[a-zA-Z0-9]$|^[a-zA-Z0-9]$`)

// ArchiveSummary describes a built archive. It is produced by the archiver
// and printed (text or JSON) after pack and deploy commands.
type ArchiveSummary struct {
	// Path is the absolute path to the archive file on disk.
	Path string `json:"path"`

	// EntryCount is the number of zip entries written, including
	// directory headers for empty directories.
	EntryCount int `json:"entryCount"`

	// Bytes is the final size of the archive file.
	Bytes int64 `json:"bytes"`

	// Excluded is the number of top-level entries removed by
	// .funcignore patterns.
	Excluded int `json:"excluded"`
}

// ExitCode defines the CLI exit codes. These codes allow scripts and CI
// systems to programmatically determine the outcome of a command.
//
// Note: a failed deployment does NOT use one of these constants — the
// Azure CLI's own exit code is propagated verbatim so that callers see
// exactly what the external tool reported.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitIgnoreFileMissing indicates .funcignore was not found in the
	// project directory, or could not be parsed.
	ExitIgnoreFileMissing ExitCode = 2

	// ExitArchiveError indicates a filesystem failure while deleting the
	// previous archive, reading a source entry, or writing the new archive.
	ExitArchiveError ExitCode = 3

	// ExitAzNotFound indicates the Azure CLI binary is not on PATH.
	ExitAzNotFound ExitCode = 4

	// ExitUserCancelled indicates the user declined the confirmation prompt.
	ExitUserCancelled ExitCode = 5

	// ExitProjectInvalid indicates the project directory does not look like
	// a Functions project (no usable host.json).
	ExitProjectInvalid ExitCode = 6
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
