package schema

import "strings"

// Policy is the immutable configuration snapshot of a single move run. It is
// built once from the command line and passed explicitly to every component;
// no part of the codebase mutates it after construction.
type Policy struct {
	// DryRun reports and mutates nothing; this is the default mode.
	DryRun bool

	// KeepSource leaves the source untouched after a successful copy.
	KeepSource bool

	// CopySymlinks makes symlinks move candidates, recreated as symlinks.
	CopySymlinks bool

	// Clobber overwrites existing non-directory destination entries.
	Clobber bool

	// MaxSizeBytes caps eligible file sizes (inclusive); 0 = no limit set.
	MaxSizeBytes uint64

	// Extensions is the lowercased, dot-less extension allow-list;
	// nil = no extension filtering.
	Extensions map[string]struct{}

	// Verbosity steers per-entry reporting; 1 is the default, lower is
	// quieter, higher is louder.
	Verbosity int
}

// SizeLimited reports whether a size ceiling was configured.
func (p *Policy) SizeLimited() bool {
	return p.MaxSizeBytes > 0
}

// ExtensionFiltered reports whether an extension allow-list was configured.
func (p *Policy) ExtensionFiltered() bool {
	return p.Extensions != nil
}

// AllowsExtension checks an extension (without leading dot, any case)
// against the allow-list.
func (p *Policy) AllowsExtension(ext string) bool {
	if p.Extensions == nil {
		return true
	}
	_, exists := p.Extensions[strings.ToLower(ext)]

	return exists
}
