// hostjson.go implements Functions-project detection via host.json.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/shinji-kodama/funcship/internal/model"
)

// HostJSONName is the runtime configuration file every Azure Functions
// project carries at its root.
const HostJSONName = "host.json"

// HostConfig represents the subset of host.json fields that funcship
// inspects. All other fields are ignored during parsing.
type HostConfig struct {
	// Version is the Functions host schema version. "2.0" is the only
	// version current runtimes accept; "1.0" projects predate zip deploy.
	Version string `json:"version"`

	// Extensions is present only to distinguish "parsed fine" from
	// "empty file" in diagnostics. The content is opaque to funcship.
	Extensions map[string]json.RawMessage `json:"extensions,omitempty"`
}

// LoadHostConfig reads and parses host.json from the project directory.
// Comments and trailing commas are tolerated (host.json files are
// frequently commented in practice).
//
// Returns a CLIError with ExitProjectInvalid if the file is missing or
// unparseable.
func LoadHostConfig(projectDir string) (*HostConfig, error) {
	path := filepath.Join(projectDir, HostJSONName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.WrapCLIError(
				model.ExitProjectInvalid,
				fmt.Sprintf("%s not found — %s does not look like a Functions project (use --no-verify to skip this check)", HostJSONName, projectDir),
				err,
			)
		}
		return nil, model.WrapCLIError(
			model.ExitProjectInvalid,
			fmt.Sprintf("failed to read %s", path),
			err,
		)
	}

	// Strip JSONC comments and trailing commas before handing the bytes
	// to encoding/json.
	cleanJSON := jsonc.ToJSON(data)

	var cfg HostConfig
	if err := json.Unmarshal(cleanJSON, &cfg); err != nil {
		return nil, model.WrapCLIError(
			model.ExitProjectInvalid,
			fmt.Sprintf("failed to parse %s", path),
			err,
		)
	}

	return &cfg, nil
}

// Verify confirms that the project directory holds a deployable Functions
// project: host.json exists, parses, and declares a supported version.
func Verify(projectDir string) error {
	cfg, err := LoadHostConfig(projectDir)
	if err != nil {
		return err
	}

	if cfg.Version != "2.0" {
		return model.NewCLIError(
			model.ExitProjectInvalid,
			fmt.Sprintf("unsupported host.json version %q (want \"2.0\")", cfg.Version),
		)
	}
	return nil
}
