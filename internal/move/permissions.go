package move

import (
	"fmt"

	"github.com/desertwitch/diskmv/internal/schema"
)

// ensurePermissions mirrors ownership (by numeric ID) and permission bits of
// the source onto a destination path.
func (i *Handler) ensurePermissions(path string, metadata *schema.Metadata) error {
	if err := i.unixHandler.Chown(path, int(metadata.UID), int(metadata.GID)); err != nil {
		return fmt.Errorf("failed to set ownership on %s: %w", path, err)
	}

	if err := i.unixHandler.Chmod(path, metadata.Perms); err != nil {
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}

	return nil
}

// ensureLinkPermissions mirrors ownership of a symlink itself; mode and
// timestamps of a link are not portable and left alone.
func (i *Handler) ensureLinkPermissions(path string, metadata *schema.Metadata) error {
	if err := i.unixHandler.Lchown(path, int(metadata.UID), int(metadata.GID)); err != nil {
		return fmt.Errorf("failed to set ownership on link %s: %w", path, err)
	}

	return nil
}
