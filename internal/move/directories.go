package move

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/desertwitch/diskmv/internal/schema"
)

// processDirectory mirrors an (empty at evaluation time) directory to the
// destination, without ever recursing: any children were already handled
// individually by the post-order walk. An already existing destination
// directory is a merge target and left as it is.
func (i *Handler) processDirectory(entry *schema.Entry) error {
	exists, isDir, err := i.fsHandler.ExistsNoFollow(entry.DestPath)
	if err != nil {
		return fmt.Errorf("failed to check destination dir: %w", err)
	}

	if exists {
		if !isDir {
			return fmt.Errorf("%w: %s", ErrDestNotDirectory, entry.DestPath)
		}

		return nil
	}

	if err := i.makeMirroredDir(entry.DestPath, entry.Metadata); err != nil {
		return err
	}

	return nil
}

// EnsureDestPath creates any missing intermediate directories between the
// destination mountpoint and the entry's mirrored path, each one mirroring
// the metadata of its counterpart on the source volume.
func (i *Handler) EnsureDestPath(entry *schema.Entry) error {
	parentRel := filepath.Dir(entry.Share)
	if parentRel == "." || parentRel == "/" {
		return nil
	}

	shareRel := ""
	for _, segment := range strings.Split(parentRel, "/") {
		shareRel = filepath.Join(shareRel, segment)
		destDir := filepath.Join(entry.Dest.GetFSPath(), shareRel)

		exists, isDir, err := i.fsHandler.ExistsNoFollow(destDir)
		if err != nil {
			return fmt.Errorf("failed to check dir %s: %w", destDir, err)
		}
		if exists {
			if !isDir {
				return fmt.Errorf("%w: %s", ErrDestNotDirectory, destDir)
			}

			continue
		}

		metadata, err := i.fsHandler.GetMetadata(filepath.Join(entry.Source.GetFSPath(), shareRel))
		if err != nil {
			return fmt.Errorf("failed to get source dir metadata: %w", err)
		}

		if err := i.makeMirroredDir(destDir, metadata); err != nil {
			return err
		}
	}

	return nil
}

// makeMirroredDir creates one directory with mirrored metadata.
func (i *Handler) makeMirroredDir(path string, metadata *schema.Metadata) error {
	if err := i.unixHandler.Mkdir(path, metadata.Perms); err != nil {
		return fmt.Errorf("failed to create dir %s: %w", path, err)
	}

	if err := i.ensurePermissions(path, metadata); err != nil {
		return fmt.Errorf("failed to ensure permissions: %w", err)
	}

	if err := i.ensureTimestamp(path, metadata); err != nil {
		return fmt.Errorf("failed to ensure timestamps: %w", err)
	}

	return nil
}
