package move

import (
	"fmt"

	"github.com/desertwitch/diskmv/internal/schema"
)

// processSymlink recreates a symlink at the destination, pointing at the
// verbatim target string of the source link (no rewriting). Symlinks cannot
// be truncated in place, so a clobbered destination is unlinked first.
func (i *Handler) processSymlink(entry *schema.Entry, policy *schema.Policy) error {
	if policy.Clobber {
		exists, isDir, err := i.fsHandler.ExistsNoFollow(entry.DestPath)
		if err != nil {
			return fmt.Errorf("failed to check destination link: %w", err)
		}
		if exists && !isDir {
			if err := i.osHandler.Remove(entry.DestPath); err != nil {
				return fmt.Errorf("failed to clobber destination link: %w", err)
			}
		}
	}

	if err := i.unixHandler.Symlink(entry.Metadata.SymlinkTo, entry.DestPath); err != nil {
		return fmt.Errorf("failed to create symlink: %w", err)
	}

	if err := i.ensureLinkPermissions(entry.DestPath, entry.Metadata); err != nil {
		return fmt.Errorf("failed to ensure link permissions: %w", err)
	}

	return nil
}
