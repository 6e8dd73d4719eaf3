// Package model defines the domain types and value objects for the
// funcship CLI.
//
// This package contains pure data structures with no external dependencies.
// All entities (DeployTarget, ArchiveSummary, etc.) are transient — they are
// constructed fresh on every invocation and nothing is persisted between
// runs except the archive file itself.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
