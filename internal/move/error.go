package move

import "errors"

var (
	// ErrNotEnoughSpace is an error that occurs when there is not enough
	// free space to take the to be moved file on the destination disk.
	ErrNotEnoughSpace = errors.New("not enough free space on destination")

	// ErrHashMismatch is an error that occurs when there is a
	// source/destination hash mismatch, this usually means that there are
	// underlying transfer/hardware issues.
	ErrHashMismatch = errors.New("hash mismatch")

	// ErrDestNotDirectory is an error that occurs when a directory is to
	// be mirrored but its destination path is taken by a non-directory.
	ErrDestNotDirectory = errors.New("destination exists and is not a directory")

	// ErrNothingToProcess is a type error that occurs when an entry is not
	// of a known type and the respective move functions do not know how to
	// process it.
	ErrNothingToProcess = errors.New("entry with nothing to process")
)
