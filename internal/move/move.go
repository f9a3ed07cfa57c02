// Package move implements the executor of the move engine: the
// metadata-preserving copy of one eligible entry to its mirrored destination
// path, followed by the conditional removal of the source. The executor
// never decides eligibility and is never invoked in a dry run; both are the
// caller's responsibility.
package move

import (
	"context"
	"fmt"
	"os"

	"github.com/desertwitch/diskmv/internal/schema"
	"golang.org/x/sys/unix"
)

// fsProvider defines filesystem probing methods needed for moving.
type fsProvider interface {
	ExistsNoFollow(path string) (exists bool, isDir bool, err error)
	GetMetadata(path string) (*schema.Metadata, error)
	HasEnoughFreeSpace(s schema.Volume, fileSize uint64) (bool, error)
}

// osProvider defines methods needed to operate on a filesystem of the
// operating system.
type osProvider interface {
	Open(name string) (*os.File, error)
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
	Remove(name string) error
}

// unixProvider defines Unix syscall methods needed for metadata-preserving
// writes.
type unixProvider interface {
	Chmod(path string, mode uint32) error
	Chown(path string, uid, gid int) error
	Lchown(path string, uid, gid int) error
	Mkdir(path string, mode uint32) error
	Symlink(oldpath, newpath string) error
	UtimesNano(path string, times []unix.Timespec) error
}

// Handler is the principal implementation for entry moving.
type Handler struct {
	fsHandler   fsProvider
	osHandler   osProvider
	unixHandler unixProvider
}

// NewHandler returns a pointer to a new [Handler].
func NewHandler(fsHandler fsProvider, osHandler osProvider, unixHandler unixProvider) *Handler {
	return &Handler{
		fsHandler:   fsHandler,
		osHandler:   osHandler,
		unixHandler: unixHandler,
	}
}

// Process performs copy-then-conditionally-delete for one eligible entry.
// The source is removed only after every copy step reported success, and
// never with keep-source set. A returned error means the source was left in
// place; the destination may hold a partial object in that case.
func (i *Handler) Process(ctx context.Context, entry *schema.Entry, policy *schema.Policy) error {
	switch {
	case entry.Metadata.IsDir:
		if err := i.processDirectory(entry); err != nil {
			return fmt.Errorf("(move) %w", err)
		}

	case entry.Metadata.IsSymlink:
		if err := i.processSymlink(entry, policy); err != nil {
			return fmt.Errorf("(move) %w", err)
		}

	case entry.Metadata.IsRegular:
		if err := i.processFile(ctx, entry, policy); err != nil {
			return fmt.Errorf("(move) %w", err)
		}

	default:
		return fmt.Errorf("(move) %w: %s", ErrNothingToProcess, entry.SourcePath)
	}

	if policy.KeepSource {
		return nil
	}

	if err := i.osHandler.Remove(entry.SourcePath); err != nil {
		return fmt.Errorf("(move) failed to remove source after move: %w", err)
	}

	return nil
}
