package filesystem

import (
	"fmt"

	"github.com/desertwitch/diskmv/internal/schema"
	"golang.org/x/sys/unix"
)

// DiskStats holds disk usage information. It is meant to be passed by value.
type DiskStats struct {
	TotalSize uint64
	FreeSpace uint64
}

// GetDiskUsage gets the actual [DiskStats] for a [schema.Volume] from the OS.
func (f *Handler) GetDiskUsage(s schema.Volume) (DiskStats, error) {
	var stat unix.Statfs_t
	if err := f.unixHandler.Statfs(s.GetFSPath(), &stat); err != nil {
		return DiskStats{}, fmt.Errorf("(fs-diskstats) failed to statfs: %w", err)
	}

	stats := DiskStats{
		TotalSize: stat.Blocks * handleSize(stat.Bsize),
		FreeSpace: stat.Bavail * handleSize(stat.Bsize),
	}

	return stats, nil
}

// HasEnoughFreeSpace is a helper method that allows checking if a certain
// [schema.Volume] can house a certain fileSize.
func (f *Handler) HasEnoughFreeSpace(s schema.Volume, fileSize uint64) (bool, error) {
	stats, err := f.GetDiskUsage(s)
	if err != nil {
		return false, fmt.Errorf("(fs-diskstats-efree) failed to get usage: %w", err)
	}

	return stats.FreeSpace > fileSize, nil
}
