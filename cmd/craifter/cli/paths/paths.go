// Package paths holds the on-disk layout of the sessions root.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// File and directory names inside the sessions root.
const (
	IndexFileName         = "sessions.txt"
	SettingsFileName      = "settings.json"
	LocalSettingsFileName = "settings.local.json"
	LogsDir               = "logs"
	LogFileName           = "craifter.log"
)

// defaultRootParts is joined under the user's home directory.
var defaultRootParts = []string{"craifter", "sessions"}

// DefaultRoot returns $HOME/craifter/sessions, or a relative
// craifter/sessions when the home directory cannot be determined.
func DefaultRoot() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(defaultRootParts...)
	}
	return filepath.Join(append([]string{home}, defaultRootParts...)...)
}

// ExpandHome replaces a leading "~" with the user's home directory.
// Paths without the prefix, or when the home directory is unknown, are returned unchanged.
func ExpandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

// IndexPath returns the path of the session index file.
func IndexPath(root string) string {
	return filepath.Join(root, IndexFileName)
}

// SettingsPath returns the path of the shared settings file.
func SettingsPath(root string) string {
	return filepath.Join(root, SettingsFileName)
}

// LocalSettingsPath returns the path of the local settings override file.
func LocalSettingsPath(root string) string {
	return filepath.Join(root, LocalSettingsFileName)
}

// LogFilePath returns the path of the structured log file.
func LogFilePath(root string) string {
	return filepath.Join(root, LogsDir, LogFileName)
}

// SessionDir returns the folder owned by the named session.
func SessionDir(root, name string) string {
	return filepath.Join(root, name)
}
