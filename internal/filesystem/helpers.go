package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
)

// IsEmptyFolder is a helper function checking if a path is an empty folder.
func (f *Handler) IsEmptyFolder(path string) (bool, error) {
	entries, err := f.osHandler.ReadDir(path)
	if err != nil {
		return false, fmt.Errorf("(fs-isempty) failed to readdir: %w", err)
	}

	return len(entries) == 0, nil
}

// ExistsNoFollow checks if a path exists without following a final symlink,
// also reporting whether the existing object is a directory. A dangling
// symlink counts as existing.
func (f *Handler) ExistsNoFollow(path string) (exists bool, isDir bool, err error) {
	info, err := f.osHandler.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, false, nil
		}

		return false, false, fmt.Errorf("(fs-exists) failed to lstat: %w", err)
	}

	return true, info.IsDir(), nil
}

// handleSize converts a signed syscall size to an unsigned size (with sizes
// < 0 becoming 0).
func handleSize(size int64) uint64 {
	if size < 0 {
		return 0
	}

	return uint64(size)
}
