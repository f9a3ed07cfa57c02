package move

import (
	"fmt"

	"github.com/desertwitch/diskmv/internal/schema"
	"golang.org/x/sys/unix"
)

// ensureTimestamp mirrors access and modification times of the source onto a
// destination path, with nanosecond precision.
func (i *Handler) ensureTimestamp(path string, metadata *schema.Metadata) error {
	ts := []unix.Timespec{metadata.AccessedAt, metadata.ModifiedAt}
	if err := i.unixHandler.UtimesNano(path, ts); err != nil {
		return fmt.Errorf("failed to set timestamp on %s: %w", path, err)
	}

	return nil
}
