package filesystem

import (
	"fmt"
	"strconv"
)

// InUseChecker caches paths which are currently in use by another process of
// the operating system. This allows for fast checks if a given path is in
// use, without overloading the OS with syscalls. The check is best-effort by
// design: a file opened by another process after the scan is not seen, and
// nothing prevents a file from being opened between check and copy.
type InUseChecker struct {
	osHandler  osProvider
	inUsePaths map[string]struct{}
}

// NewInUseChecker returns a pointer to a new [InUseChecker], populated with
// one scan of the operating system's open file descriptors.
func NewInUseChecker(osHandler osProvider) (*InUseChecker, error) {
	checker := &InUseChecker{
		osHandler:  osHandler,
		inUsePaths: make(map[string]struct{}),
	}

	if err := checker.Update(); err != nil {
		return nil, err
	}

	return checker, nil
}

// IsInUse checks (the cache) if a path is currently in use by another process
// of the operating system.
func (c *InUseChecker) IsInUse(path string) bool {
	_, exists := c.inUsePaths[path]

	return exists
}

// Update queries the operating system for all in-use paths and stores them in
// the [InUseChecker] cache, replacing any previous scan.
func (c *InUseChecker) Update() error {
	c.inUsePaths = make(map[string]struct{})

	procEntries, err := c.osHandler.ReadDir("/proc")
	if err != nil {
		return fmt.Errorf("failed to read /proc: %w", err)
	}

	for _, procEntry := range procEntries {
		pid, err := strconv.Atoi(procEntry.Name())
		if err != nil {
			continue
		}

		fdPath := fmt.Sprintf("/proc/%d/fd", pid)
		fdEntries, err := c.osHandler.ReadDir(fdPath)
		if err != nil {
			continue
		}

		for _, fdEntry := range fdEntries {
			fdLink := fmt.Sprintf("/proc/%d/fd/%s", pid, fdEntry.Name())

			linkTarget, err := c.osHandler.Readlink(fdLink)
			if err != nil {
				continue
			}

			c.inUsePaths[linkTarget] = struct{}{}
		}
	}

	return nil
}
