// Package session owns the on-disk sessions: one folder per session holding
// four append-only logs, and the index file that lists known sessions.
package session

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/craifter/cli/cmd/craifter/cli/paths"
)

// LogKind selects one of a session's four logs.
type LogKind int

const (
	LogCommands LogKind = iota
	LogNotes
	LogData
	LogResults
)

// AllLogKinds lists every log kind in folder-creation order.
var AllLogKinds = []LogKind{LogCommands, LogData, LogResults, LogNotes}

// String returns the folder name of the log kind.
func (k LogKind) String() string {
	switch k {
	case LogCommands:
		return "commands"
	case LogNotes:
		return "notes"
	case LogData:
		return "data"
	case LogResults:
		return "results"
	default:
		return fmt.Sprintf("LogKind(%d)", int(k))
	}
}

// fileSuffix is the stem suffix of the log file: <name>_<suffix>.txt.
func (k LogKind) fileSuffix() string {
	switch k {
	case LogCommands:
		return "command"
	case LogNotes:
		return "note"
	case LogData:
		return "data"
	case LogResults:
		return "result"
	default:
		return "unknown"
	}
}

// Session is a named folder under the sessions root. It is a value record;
// all state lives on disk.
type Session struct {
	name string
	root string
}

// New binds a session to name under root. It does not touch the disk.
func New(root, name string) Session {
	return Session{name: name, root: root}
}

// Name returns the session name.
func (s Session) Name() string { return s.name }

// BasePath returns <root>/<name>.
func (s Session) BasePath() string {
	return paths.SessionDir(s.root, s.name)
}

// LogDir returns the folder holding the given log.
func (s Session) LogDir(kind LogKind) string {
	return filepath.Join(s.BasePath(), kind.String())
}

// LogPath returns <root>/<name>/<kind>/<name>_<kind>.txt.
func (s Session) LogPath(kind LogKind) string {
	return filepath.Join(s.LogDir(kind), s.name+"_"+kind.fileSuffix()+".txt")
}

// EnsureFolders creates the four log folders. Existing folders are left alone.
func (s Session) EnsureFolders() error {
	for _, kind := range AllLogKinds {
		if err := os.MkdirAll(s.LogDir(kind), 0o750); err != nil {
			return fmt.Errorf("failed to create %s folder for session %q: %w", kind, s.name, err)
		}
	}
	return nil
}

// Append writes text plus a newline to the end of the given log.
// The file is opened and closed on every call. The log folder must already
// exist; Append never creates it.
func (s Session) Append(kind LogKind, text string) error {
	f, err := os.OpenFile(s.LogPath(kind), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600) //nolint:gosec // path derived from validated session name
	if err != nil {
		return fmt.Errorf("failed to open %s log: %w", kind, err)
	}

	if _, err := f.WriteString(text + "\n"); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to append to %s log: %w", kind, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s log: %w", kind, err)
	}
	return nil
}
