// Package settings provides configuration loading from the sessions root.
package settings

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/craifter/cli/cmd/craifter/cli/paths"
)

// Settings represents <root>/settings.json.
type Settings struct {
	// Shell is the program that runs saved commands during playback.
	// Empty means the platform default.
	Shell string `json:"shell,omitempty"`

	// LogLevel sets the logging verbosity (debug, info, warn, error).
	// Can be overridden by CRAIFTER_LOG_LEVEL environment variable.
	LogLevel string `json:"log_level,omitempty"`

	// Confirm asks before each saved command is executed during playback.
	Confirm bool `json:"confirm,omitempty"`

	// Telemetry controls anonymous usage analytics.
	// nil = not configured (disabled), true = opted in, false = opted out
	Telemetry *bool `json:"telemetry,omitempty"`
}

// Load loads settings from <root>/settings.json, then applies any overrides
// from <root>/settings.local.json if it exists.
// Returns default settings if neither file exists.
func Load(root string) (*Settings, error) {
	settings, err := loadFromFile(paths.SettingsPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading settings file: %w", err)
	}

	localData, err := os.ReadFile(paths.LocalSettingsPath(root))
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading local settings file: %w", err)
		}
	} else {
		if err := mergeJSON(settings, localData); err != nil {
			return nil, fmt.Errorf("merging local settings: %w", err)
		}
	}

	return settings, nil
}

// loadFromFile loads settings from a specific file path.
// Returns default settings if the file doesn't exist.
func loadFromFile(filePath string) (*Settings, error) {
	settings := &Settings{}

	data, err := os.ReadFile(filePath) //nolint:gosec // path is built from the configured root
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return nil, fmt.Errorf("%w", err)
	}

	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parsing settings file: %w", err)
	}
	return settings, nil
}

// mergeJSON merges JSON data into existing settings.
// Only fields present in the JSON override existing settings; empty strings are ignored.
func mergeJSON(settings *Settings, data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing JSON: %w", err)
	}

	if shellRaw, ok := raw["shell"]; ok {
		var s string
		if err := json.Unmarshal(shellRaw, &s); err != nil {
			return fmt.Errorf("parsing shell field: %w", err)
		}
		if s != "" {
			settings.Shell = s
		}
	}

	if logLevelRaw, ok := raw["log_level"]; ok {
		var ll string
		if err := json.Unmarshal(logLevelRaw, &ll); err != nil {
			return fmt.Errorf("parsing log_level field: %w", err)
		}
		if ll != "" {
			settings.LogLevel = ll
		}
	}

	if confirmRaw, ok := raw["confirm"]; ok {
		var c bool
		if err := json.Unmarshal(confirmRaw, &c); err != nil {
			return fmt.Errorf("parsing confirm field: %w", err)
		}
		settings.Confirm = c
	}

	if telemetryRaw, ok := raw["telemetry"]; ok {
		var t bool
		if err := json.Unmarshal(telemetryRaw, &t); err != nil {
			return fmt.Errorf("parsing telemetry field: %w", err)
		}
		settings.Telemetry = &t
	}

	return nil
}
