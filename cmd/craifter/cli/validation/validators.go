// Package validation provides input validation functions for craifter.
// This package has no dependencies to avoid import cycles.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrEmptySessionName is returned for an empty session name.
var ErrEmptySessionName = errors.New("session name cannot be empty")

// ValidateSessionName validates that a session name is usable as a single
// folder name under the sessions root and as a single router token.
func ValidateSessionName(name string) error {
	if err := ValidateIndexedName(name); err != nil {
		return err
	}
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return fmt.Errorf("invalid session name %q: contains whitespace", name)
	}
	return nil
}

// ValidateIndexedName checks a name read back from the session index. Names
// with whitespace pass: older indexes may hold them and their folders are
// still safe to use.
func ValidateIndexedName(name string) error {
	if name == "" {
		return ErrEmptySessionName
	}
	if name == "." || name == ".." {
		return fmt.Errorf("invalid session name %q: reserved path element", name)
	}
	if strings.ContainsAny(name, "/\\") {
		return fmt.Errorf("invalid session name %q: contains path separators", name)
	}
	if strings.ContainsRune(name, 0) {
		return fmt.Errorf("invalid session name %q: contains NUL", name)
	}
	return nil
}
