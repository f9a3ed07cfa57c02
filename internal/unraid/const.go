package unraid

const (
	// BasePathMounts is the default base path for volume mountpoints.
	BasePathMounts = "/mnt"

	// PatternDisks is a regex pattern used when matching for numbered
	// array [Disk] identifiers.
	PatternDisks = `^disk[1-9][0-9]?$`

	// CachePoolName is the designated cache pool identifier, always
	// accepted besides the numbered array disks.
	CachePoolName = "cache"
)
