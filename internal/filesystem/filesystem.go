// Package filesystem implements the read-only probes of the move engine: the
// post-order share walk, metadata capture, the in-use check and disk usage.
// All operating system access goes through small provider interfaces, so the
// package never mutates the system and is fully testable with fakes.
package filesystem

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// osProvider defines methods needed to read a filesystem of the operating
// system.
type osProvider interface {
	Lstat(name string) (os.FileInfo, error)
	ReadDir(name string) ([]os.DirEntry, error)
	Readlink(name string) (string, error)
}

// unixProvider defines Unix syscall methods needed for metadata capture and
// disk usage checking.
type unixProvider interface {
	Lstat(path string, stat *unix.Stat_t) error
	Statfs(path string, buf *unix.Statfs_t) error
}

// Handler is the principal implementation for filesystem probing.
type Handler struct {
	osHandler    osProvider
	unixHandler  unixProvider
	inUseChecker *InUseChecker
}

// NewHandler returns a pointer to a new [Handler]. The in-use checker is
// populated once from the operating system; this is the expensive part of
// construction.
func NewHandler(osHandler osProvider, unixHandler unixProvider) (*Handler, error) {
	inUseChecker, err := NewInUseChecker(osHandler)
	if err != nil {
		return nil, fmt.Errorf("(fs) failed to establish in-use checker: %w", err)
	}

	return &Handler{
		osHandler:    osHandler,
		unixHandler:  unixHandler,
		inUseChecker: inUseChecker,
	}, nil
}

// IsInUse checks (the cache) if a path is currently in use by another process
// of the operating system.
func (f *Handler) IsInUse(path string) bool {
	return f.inUseChecker.IsInUse(path)
}
