package filesystem

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/desertwitch/diskmv/internal/schema"
)

// VisitFunc is called for every [schema.Entry] of a walk, children strictly
// before their parent directory. A non-nil return aborts the walk.
type VisitFunc func(entry *schema.Entry) error

// WalkShare walks the share path on the source volume in post-order and
// calls visit once per encountered object, the walk root last. Directory
// emptiness observed by visit therefore already reflects any children the
// visit function removed. Unreadable directories are reported and skipped;
// only cancellation or a visit error aborts the walk.
func (f *Handler) WalkShare(ctx context.Context, src, dst schema.Volume, sharePath string, visit VisitFunc) error {
	metadata, err := f.GetMetadata(filepath.Join(src.GetFSPath(), sharePath))
	if err != nil {
		return fmt.Errorf("(fs-walk) failed to read walk root: %w", err)
	}

	if !metadata.IsDir {
		return f.visitPath(src, dst, sharePath, metadata, visit)
	}

	return f.walkDir(ctx, src, dst, sharePath, visit)
}

// walkDir recurses into a share-relative directory, visiting all children
// before the directory itself.
func (f *Handler) walkDir(ctx context.Context, src, dst schema.Volume, shareRel string, visit VisitFunc) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("(fs-walk) %w", err)
	}

	sourcePath := filepath.Join(src.GetFSPath(), shareRel)

	entries, err := f.osHandler.ReadDir(sourcePath)
	if err != nil {
		slog.Warn("Skipped directory: failed to read",
			"path", sourcePath,
			"err", err,
		)
	}

	for _, entry := range entries {
		childRel := filepath.Join(shareRel, entry.Name())

		if entry.IsDir() {
			if err := f.walkDir(ctx, src, dst, childRel, visit); err != nil {
				return err
			}

			continue
		}

		metadata, err := f.GetMetadata(filepath.Join(src.GetFSPath(), childRel))
		if err != nil {
			slog.Warn("Skipped entry: failed to read metadata",
				"path", childRel,
				"err", err,
			)

			continue
		}

		if err := f.visitPath(src, dst, childRel, metadata, visit); err != nil {
			return err
		}
	}

	metadata, err := f.GetMetadata(sourcePath)
	if err != nil {
		slog.Warn("Skipped directory: failed to read metadata",
			"path", shareRel,
			"err", err,
		)

		return nil
	}

	return f.visitPath(src, dst, shareRel, metadata, visit)
}

// visitPath assembles a [schema.Entry] and hands it to the visit function.
func (f *Handler) visitPath(src, dst schema.Volume, shareRel string, metadata *schema.Metadata, visit VisitFunc) error {
	return visit(&schema.Entry{
		Share:      shareRel,
		SourcePath: filepath.Join(src.GetFSPath(), shareRel),
		DestPath:   filepath.Join(dst.GetFSPath(), shareRel),
		Metadata:   metadata,
		Source:     src,
		Dest:       dst,
	})
}
