package unraid

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Disk is a mounted Unraid volume (a numbered array disk or a pool).
type Disk struct {
	Name   string
	FSPath string
}

// GetName returns the disk name.
func (d *Disk) GetName() string {
	return d.Name
}

// GetFSPath returns an absolute filesystem path to the disk's mountpoint.
func (d *Disk) GetFSPath() string {
	return d.FSPath
}

// EstablishDisk resolves a disk identifier into a [Disk]. The identifier may
// be given as a bare name ("disk2"), with the mountpoint prefix
// ("/mnt/disk2") or with trailing path segments ("/mnt/disk2/movies"); only
// the bare identifier is considered. It is the principal method for
// validating a user-supplied volume argument.
func (u *Handler) EstablishDisk(identifier string) (*Disk, error) {
	name := u.bareIdentifier(identifier)

	if !u.isAcceptedName(name) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDisk, identifier)
	}

	fsPath := filepath.Join(u.basePath, name)

	info, err := u.osHandler.Stat(fsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s (failed to stat: %w)", ErrInvalidDisk, identifier, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s (mountpoint is not a directory)", ErrInvalidDisk, identifier)
	}

	return &Disk{
		Name:   name,
		FSPath: fsPath,
	}, nil
}

// EstablishDiskPair resolves a source and a destination identifier, rejecting
// pairs that resolve to the same volume.
func (u *Handler) EstablishDiskPair(srcIdentifier, dstIdentifier string) (*Disk, *Disk, error) {
	src, err := u.EstablishDisk(srcIdentifier)
	if err != nil {
		return nil, nil, err
	}

	dst, err := u.EstablishDisk(dstIdentifier)
	if err != nil {
		return nil, nil, err
	}

	if src.Name == dst.Name {
		return nil, nil, fmt.Errorf("%w: %s", ErrSameDisk, src.Name)
	}

	return src, dst, nil
}

// bareIdentifier strips the mountpoint prefix and any trailing path segments
// from a disk identifier.
func (u *Handler) bareIdentifier(identifier string) string {
	name := filepath.Clean(identifier)

	if rel, err := filepath.Rel(u.basePath, name); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
		name = rel
	}

	name = strings.TrimPrefix(name, "/")
	if idx := strings.IndexByte(name, '/'); idx >= 0 {
		name = name[:idx]
	}

	return name
}

// isAcceptedName matches a bare identifier against the accepted naming
// patterns: a numbered array disk, the cache pool or a configured pool.
func (u *Handler) isAcceptedName(name string) bool {
	if u.diskPattern.MatchString(name) {
		return true
	}

	if name == CachePoolName {
		return true
	}

	_, exists := u.pools[name]

	return exists
}
