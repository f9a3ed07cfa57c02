package move

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/desertwitch/diskmv/internal/schema"
	"github.com/zeebo/blake3"
)

//nolint:containedctx
type contextReader struct {
	ctx    context.Context
	reader io.Reader
}

func (cr *contextReader) Read(p []byte) (int, error) {
	select {
	case <-cr.ctx.Done():
		return 0, context.Canceled
	default:
		return cr.reader.Read(p)
	}
}

// processFile copies a regular file to its destination path and mirrors its
// metadata. The destination is written in place (whole-file, no temporary
// name); content is hashed on both sides of the transfer and compared as
// part of the copy's own success signal.
func (i *Handler) processFile(ctx context.Context, entry *schema.Entry, policy *schema.Policy) error {
	enoughSpace, err := i.fsHandler.HasEnoughFreeSpace(entry.Dest, entry.Metadata.Size)
	if err != nil {
		return fmt.Errorf("failed to check for enough space: %w", err)
	}
	if !enoughSpace {
		return ErrNotEnoughSpace
	}

	if policy.Clobber {
		if err := i.clearClobberedLink(entry); err != nil {
			return fmt.Errorf("failed to clobber destination: %w", err)
		}
	}

	if err := i.copyFile(ctx, entry); err != nil {
		return fmt.Errorf("failed to copy file: %w", err)
	}

	if err := i.ensurePermissions(entry.DestPath, entry.Metadata); err != nil {
		return fmt.Errorf("failed to ensure permissions: %w", err)
	}

	if err := i.ensureTimestamp(entry.DestPath, entry.Metadata); err != nil {
		return fmt.Errorf("failed to ensure timestamps: %w", err)
	}

	return nil
}

// clearClobberedLink unlinks a symlink occupying the destination path. An
// O_TRUNC open would follow the link and write through it into the link's
// target; a regular destination file is truncated in place instead.
func (i *Handler) clearClobberedLink(entry *schema.Entry) error {
	exists, isDir, err := i.fsHandler.ExistsNoFollow(entry.DestPath)
	if err != nil {
		return fmt.Errorf("failed to check destination: %w", err)
	}
	if !exists || isDir {
		return nil
	}

	metadata, err := i.fsHandler.GetMetadata(entry.DestPath)
	if err != nil {
		return fmt.Errorf("failed to check destination: %w", err)
	}
	if !metadata.IsSymlink {
		return nil
	}

	if err := i.osHandler.Remove(entry.DestPath); err != nil {
		return fmt.Errorf("failed to remove destination link: %w", err)
	}

	return nil
}

func (i *Handler) copyFile(ctx context.Context, entry *schema.Entry) error {
	srcFile, err := i.osHandler.Open(entry.SourcePath)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer srcFile.Close()

	dstFile, err := i.osHandler.OpenFile(entry.DestPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(entry.Metadata.Perms))
	if err != nil {
		return fmt.Errorf("failed to open destination file %s: %w", entry.DestPath, err)
	}
	defer dstFile.Close()

	srcHasher := blake3.New()
	dstHasher := blake3.New()

	ctxReader := &contextReader{
		ctx:    ctx,
		reader: io.TeeReader(srcFile, srcHasher),
	}
	multiWriter := io.MultiWriter(dstFile, dstHasher)

	if _, err := io.Copy(multiWriter, ctxReader); err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("transfer canceled: %w", err)
		}

		return fmt.Errorf("failed to copy file: %w", err)
	}

	if err := dstFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync destination fs: %w", err)
	}

	srcChecksum := hex.EncodeToString(srcHasher.Sum(nil))
	dstChecksum := hex.EncodeToString(dstHasher.Sum(nil))

	if srcChecksum != dstChecksum {
		return fmt.Errorf("%w: %s (src) != %s (dst)", ErrHashMismatch, srcChecksum, dstChecksum)
	}

	return nil
}
