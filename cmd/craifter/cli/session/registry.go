package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/craifter/cli/cmd/craifter/cli/logging"
	"github.com/craifter/cli/cmd/craifter/cli/paths"
	"github.com/craifter/cli/cmd/craifter/cli/validation"
)

// ErrNotFound is returned by FindByName when no session has the given name.
var ErrNotFound = errors.New("session not found")

// ErrIndexWrite wraps failures to rewrite the index file.
var ErrIndexWrite = errors.New("session index not written")

// Registry is the ordered list of known sessions backed by <root>/sessions.txt.
//
// Names are not required to be unique: creating the same name twice yields
// two entries that share one folder, and FindByName returns the first.
type Registry struct {
	root     string
	sessions []Session
}

// NewRegistry creates an empty registry for root. Call Load to read the index.
func NewRegistry(root string) *Registry {
	return &Registry{root: root}
}

// Root returns the sessions root directory.
func (r *Registry) Root() string { return r.root }

// IndexPath returns the path of the index file.
func (r *Registry) IndexPath() string {
	return paths.IndexPath(r.root)
}

// Load replaces the in-memory list with the sessions named in the index.
// A missing index is not an error. Lines naming a folder that does not exist
// are dropped. Restored sessions get their log folders ensured so later
// appends never hit a missing parent.
func (r *Registry) Load(ctx context.Context) error {
	ctx = logging.WithComponent(ctx, "registry")

	f, err := os.Open(r.IndexPath())
	if os.IsNotExist(err) {
		r.sessions = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open session index: %w", err)
	}
	defer f.Close()

	var loaded []Session
	reader := bufio.NewReader(f)
	for {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return fmt.Errorf("failed to read session index: %w", readErr)
		}

		name := strings.TrimRight(line, "\r\n")
		if s, ok := r.restore(ctx, name); ok {
			loaded = append(loaded, s)
		}

		if readErr != nil {
			break
		}
	}

	r.sessions = loaded
	logging.Debug(ctx, "session index loaded", slog.Int("sessions", len(loaded)))
	return nil
}

// restore turns one index line into a Session, or reports false when the
// line is blank, unsafe as a path, or names a folder that no longer exists.
// Names with whitespace are kept so they survive the next Persist.
func (r *Registry) restore(ctx context.Context, name string) (Session, bool) {
	if name == "" {
		return Session{}, false
	}
	if err := validation.ValidateIndexedName(name); err != nil {
		logging.Warn(ctx, "skipping invalid name in session index",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		return Session{}, false
	}

	s := New(r.root, name)
	info, err := os.Stat(s.BasePath())
	if err != nil || !info.IsDir() {
		logging.Debug(ctx, "dropping session with missing folder", slog.String("name", name))
		return Session{}, false
	}

	if err := s.EnsureFolders(); err != nil {
		logging.Warn(ctx, "failed to ensure folders for restored session",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
	}
	return s, true
}

// Create adds a session, creates its folders, and persists the index.
// No collision check is made. If the folders cannot be created the session
// is not added. An error wrapping ErrIndexWrite means the session was added
// but the index could not be rewritten.
func (r *Registry) Create(ctx context.Context, name string) (Session, error) {
	if err := validation.ValidateSessionName(name); err != nil {
		return Session{}, fmt.Errorf("invalid session name: %w", err)
	}

	s := New(r.root, name)
	if err := s.EnsureFolders(); err != nil {
		return Session{}, err
	}

	r.sessions = append(r.sessions, s)
	if err := r.Persist(ctx); err != nil {
		return s, err
	}
	return s, nil
}

// FindByName returns the first session with the given name.
func (r *Registry) FindByName(name string) (Session, error) {
	for _, s := range r.sessions {
		if s.Name() == name {
			return s, nil
		}
	}
	return Session{}, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Sessions returns a copy of the sessions in load/creation order.
func (r *Registry) Sessions() []Session {
	out := make([]Session, len(r.sessions))
	copy(out, r.sessions)
	return out
}

// Names returns the session names in order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.sessions))
	for _, s := range r.sessions {
		names = append(names, s.Name())
	}
	return names
}

// Persist rewrites the whole index, one name per line in list order.
// The write goes through a temp file and rename so a crash never leaves a
// half-written index.
func (r *Registry) Persist(ctx context.Context) error {
	ctx = logging.WithComponent(ctx, "registry")

	if err := os.MkdirAll(r.root, 0o750); err != nil {
		return fmt.Errorf("%w: failed to create sessions root: %w", ErrIndexWrite, err)
	}

	var b strings.Builder
	for _, s := range r.sessions {
		b.WriteString(s.Name())
		b.WriteByte('\n')
	}

	indexPath := r.IndexPath()
	tmpFile := indexPath + ".tmp"
	if err := os.WriteFile(tmpFile, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("%w: %w", ErrIndexWrite, err)
	}
	if err := os.Rename(tmpFile, indexPath); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("%w: rename: %w", ErrIndexWrite, err)
	}

	logging.Debug(ctx, "session index persisted", slog.Int("sessions", len(r.sessions)))
	return nil
}
