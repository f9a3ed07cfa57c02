// Package pathing implements the resolution of user-supplied paths into
// canonical share-relative paths. A share path has no volume prefix and no
// parent traversal; it addresses the same logical object on any volume that
// stores it. The package only ever reads from the system.
package pathing

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertwitch/diskmv/internal/schema"
)

// osProvider defines methods needed to read a filesystem of the operating
// system.
type osProvider interface {
	Stat(name string) (os.FileInfo, error)
	EvalSymlinks(path string) (string, error)
}

// Handler is the principal implementation for share path resolution.
type Handler struct {
	osHandler osProvider
	basePath  string
}

// NewHandler returns a pointer to a new [Handler]. Volumes are expected
// mounted directly under basePath.
func NewHandler(osHandler osProvider, basePath string) *Handler {
	return &Handler{
		osHandler: osHandler,
		basePath:  basePath,
	}
}

// EstablishSharePath resolves a user-supplied path into a canonical share
// path and validates its existence under the given source volume. Inputs
// naming an existing filesystem object have their symlinks resolved and the
// mountpoint prefix stripped; all other inputs are treated as already
// share-relative.
func (p *Handler) EstablishSharePath(userPath string, src schema.Volume) (string, error) {
	sharePath, err := p.toShareRelative(userPath)
	if err != nil {
		return "", err
	}

	if sharePath == "" || sharePath == "." || strings.HasPrefix(sharePath, "..") {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, userPath)
	}

	if _, err := p.osHandler.Stat(filepath.Join(src.GetFSPath(), sharePath)); err != nil {
		return "", fmt.Errorf("%w: %s (not found on %s: %w)", ErrInvalidPath, userPath, src.GetName(), err)
	}

	return sharePath, nil
}

// toShareRelative strips an existing path down to its share-relative form.
// Absolute inputs must resolve under the base path; relative inputs that do
// not fall back to being taken as already share-relative.
func (p *Handler) toShareRelative(userPath string) (string, error) {
	path := filepath.Clean(userPath)

	if abs, err := filepath.Abs(path); err == nil {
		if _, err := p.osHandler.Stat(abs); err == nil {
			return p.stripMountPrefix(userPath, abs)
		}
	}

	if filepath.IsAbs(path) {
		return "", fmt.Errorf("%w: %s (does not exist)", ErrInvalidPath, userPath)
	}

	return path, nil
}

// stripMountPrefix resolves symlinks of an existing absolute path and removes
// the base path plus the volume segment below it.
func (p *Handler) stripMountPrefix(userPath, abs string) (string, error) {
	resolved, err := p.osHandler.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %s (failed to resolve: %w)", ErrInvalidPath, userPath, err)
	}

	rel, err := filepath.Rel(p.basePath, resolved)
	if err != nil || strings.HasPrefix(rel, "..") {
		if !filepath.IsAbs(userPath) {
			return filepath.Clean(userPath), nil
		}

		return "", fmt.Errorf("%w: %s (outside of %s)", ErrInvalidPath, userPath, p.basePath)
	}

	// The first segment below the base path is the volume (or user share)
	// mountpoint, not part of the share path.
	if idx := strings.IndexByte(rel, '/'); idx >= 0 {
		return rel[idx+1:], nil
	}

	return "", fmt.Errorf("%w: %s (names a mountpoint, not a share path)", ErrInvalidPath, userPath)
}
