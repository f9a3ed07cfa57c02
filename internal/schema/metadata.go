package schema

import "golang.org/x/sys/unix"

// Metadata holds the source-side filesystem attributes of an [Entry], as
// captured by lstat at enumeration time. Ownership is kept by numeric ID,
// never resolved to names.
type Metadata struct {
	Inode      uint64
	Perms      uint32
	UID        uint32
	GID        uint32
	AccessedAt unix.Timespec
	ModifiedAt unix.Timespec
	Size       uint64
	IsDir      bool
	IsRegular  bool
	IsSymlink  bool
	SymlinkTo  string
}
