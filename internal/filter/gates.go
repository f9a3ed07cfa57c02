package filter

import (
	"path/filepath"
	"strings"

	"github.com/desertwitch/diskmv/internal/schema"
)

// typeGate rules on the entry type: regular files always qualify, symlinks
// only under the symlink policy, directories only when empty at evaluation
// time (the post-order walk guarantees children were already handled), and
// anything else never.
type typeGate struct {
	policy    *schema.Policy
	fsHandler fsProvider
}

func (g *typeGate) Name() string {
	return "type"
}

func (g *typeGate) Check(entry *schema.Entry) (Decision, error) {
	switch {
	case entry.Metadata.IsDir:
		isEmpty, err := g.fsHandler.IsEmptyFolder(entry.SourcePath)
		if err != nil {
			return DecisionSkipFiltered, err
		}
		if !isEmpty {
			return DecisionSkipFiltered, nil
		}

		return DecisionEligible, nil

	case entry.Metadata.IsSymlink:
		if !g.policy.CopySymlinks {
			return DecisionSkipFiltered, nil
		}

		return DecisionEligible, nil

	case entry.Metadata.IsRegular:
		return DecisionEligible, nil

	default:
		return DecisionSkipFiltered, nil
	}
}

// sizeGate rules out regular files strictly larger than the configured
// ceiling; the ceiling itself is still eligible.
type sizeGate struct {
	policy *schema.Policy
}

func (g *sizeGate) Name() string {
	return "size"
}

func (g *sizeGate) Check(entry *schema.Entry) (Decision, error) {
	if !entry.Metadata.IsRegular || !g.policy.SizeLimited() {
		return DecisionEligible, nil
	}

	if entry.Metadata.Size > g.policy.MaxSizeBytes {
		return DecisionSkipFiltered, nil
	}

	return DecisionEligible, nil
}

// extensionGate rules out regular files whose extension is not on the
// allow-list (case-insensitive).
type extensionGate struct {
	policy *schema.Policy
}

func (g *extensionGate) Name() string {
	return "extension"
}

func (g *extensionGate) Check(entry *schema.Entry) (Decision, error) {
	if !entry.Metadata.IsRegular || !g.policy.ExtensionFiltered() {
		return DecisionEligible, nil
	}

	ext := strings.TrimPrefix(filepath.Ext(entry.SourcePath), ".")
	if !g.policy.AllowsExtension(ext) {
		return DecisionSkipFiltered, nil
	}

	return DecisionEligible, nil
}

// busyGate rules out regular files currently open by another process. The
// underlying check is a cached scan; a file opened between check and copy is
// a known, accepted race.
type busyGate struct {
	fsHandler fsProvider
}

func (g *busyGate) Name() string {
	return "busy"
}

func (g *busyGate) Check(entry *schema.Entry) (Decision, error) {
	if !entry.Metadata.IsRegular {
		return DecisionEligible, nil
	}

	if g.fsHandler.IsInUse(entry.SourcePath) {
		return DecisionSkipBusy, nil
	}

	return DecisionEligible, nil
}

// duplicateGate rules out entries whose mirrored destination path is already
// taken by a non-directory. An existing destination directory is a merge
// target, never a duplicate. With clobber set, the gate passes everything.
type duplicateGate struct {
	policy    *schema.Policy
	fsHandler fsProvider
}

func (g *duplicateGate) Name() string {
	return "duplicate"
}

func (g *duplicateGate) Check(entry *schema.Entry) (Decision, error) {
	if g.policy.Clobber {
		return DecisionEligible, nil
	}

	exists, isDir, err := g.fsHandler.ExistsNoFollow(entry.DestPath)
	if err != nil {
		return DecisionSkipFiltered, err
	}

	if exists && !isDir {
		return DecisionSkipDuplicate, nil
	}

	return DecisionEligible, nil
}
