// config.go implements the optional .funcship.yaml defaults file.
//
// The config file exists so that repeated deployments of the same project
// don't require retyping the resource group and app name. It only ever
// supplies defaults: positional arguments and flags win on conflict, and
// a missing config file is not an error.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/funcship/internal/model"
)

// ConfigName is the optional per-project defaults file.
const ConfigName = ".funcship.yaml"

// Config holds deployment defaults loaded from .funcship.yaml.
// The zero value means "no defaults".
type Config struct {
	// ResourceGroup is the default Azure resource group.
	ResourceGroup string `yaml:"resourceGroup,omitempty"`

	// AppName is the default function app name.
	AppName string `yaml:"appName,omitempty"`

	// Archive overrides the archive path (default app.zip, relative
	// paths resolve against the project directory).
	Archive string `yaml:"archive,omitempty"`

	// IgnoreFile overrides the exclusion file path (default .funcignore,
	// relative paths resolve against the project directory).
	IgnoreFile string `yaml:"ignoreFile,omitempty"`
}

// LoadConfig reads .funcship.yaml from the project directory. A missing
// file yields an empty Config, not an error. A present but malformed
// file is an error — silently ignoring a typo'd config would deploy to
// the wrong place.
func LoadConfig(projectDir string) (*Config, error) {
	path := filepath.Join(projectDir, ConfigName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, model.WrapCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("failed to read %s", path),
			err,
		)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, model.WrapCLIError(
			model.ExitGeneralError,
			fmt.Sprintf("failed to parse %s", path),
			err,
		)
	}
	return &cfg, nil
}

// ResolveTarget combines positional arguments with config defaults.
// args, when present, always win; the config only fills gaps. The
// resolved target is validated before being returned.
func (c *Config) ResolveTarget(resourceGroup, appName string) (model.DeployTarget, error) {
	target := model.DeployTarget{
		ResourceGroup: resourceGroup,
		AppName:       appName,
	}
	if target.ResourceGroup == "" {
		target.ResourceGroup = c.ResourceGroup
	}
	if target.AppName == "" {
		target.AppName = c.AppName
	}

	if err := target.Validate(); err != nil {
		return model.DeployTarget{}, model.WrapCLIError(
			model.ExitGeneralError,
			"deployment target incomplete (pass <resource-group> <app-name> or set them in "+ConfigName+")",
			err,
		)
	}
	return target, nil
}

// ArchivePath returns the effective archive path for the project:
// the override flag if set, else the config value, else the default
// app.zip. Relative values resolve against the project directory.
func (c *Config) ArchivePath(projectDir, override string) string {
	name := override
	if name == "" {
		name = c.Archive
	}
	if name == "" {
		name = model.DefaultArchiveName
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(projectDir, name)
}

// IgnorePath returns the effective exclusion file path, with the same
// precedence rules as ArchivePath.
func (c *Config) IgnorePath(projectDir, override string) string {
	name := override
	if name == "" {
		name = c.IgnoreFile
	}
	if name == "" {
		name = model.DefaultIgnoreFile
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(projectDir, name)
}
