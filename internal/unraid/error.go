package unraid

import "errors"

var (
	// ErrInvalidDisk is an error that occurs when a given identifier does
	// not name an existing, mounted volume of an accepted naming pattern.
	ErrInvalidDisk = errors.New("not a valid disk")

	// ErrSameDisk is an error that occurs when source and destination
	// resolve to the same volume.
	ErrSameDisk = errors.New("source and destination are the same disk")
)
