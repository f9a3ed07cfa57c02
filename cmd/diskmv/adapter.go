package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/desertwitch/diskmv/internal/filesystem"
)

// dirReadsProvider defines methods needed to list a directory of the
// operating system.
type dirReadsProvider interface {
	ReadDir(name string) ([]os.DirEntry, error)
}

// simFS overlays the filesystem handler with the set of source paths a dry
// run would already have removed. Directory emptiness then evaluates the way
// the real run will observe it after moving the children, which keeps the
// dry-run transcript consistent with a destructive run.
type simFS struct {
	*filesystem.Handler
	osHandler dirReadsProvider
	removed   map[string]struct{}
}

// newSimFS returns a pointer to a new [simFS] with an empty overlay.
func newSimFS(fsHandler *filesystem.Handler, osHandler dirReadsProvider) *simFS {
	return &simFS{
		Handler:   fsHandler,
		osHandler: osHandler,
		removed:   make(map[string]struct{}),
	}
}

// MarkRemoved records a source path as virtually removed.
func (s *simFS) MarkRemoved(path string) {
	s.removed[path] = struct{}{}
}

// IsEmptyFolder reports a directory as empty when every remaining child was
// virtually removed earlier in the walk.
func (s *simFS) IsEmptyFolder(path string) (bool, error) {
	entries, err := s.osHandler.ReadDir(path)
	if err != nil {
		return false, fmt.Errorf("(sim-isempty) failed to readdir: %w", err)
	}

	for _, entry := range entries {
		if _, wasRemoved := s.removed[filepath.Join(path, entry.Name())]; !wasRemoved {
			return false, nil
		}
	}

	return true, nil
}
