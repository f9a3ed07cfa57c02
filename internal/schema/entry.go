package schema

// Outcome is the terminal result of one [Entry] after a move run.
type Outcome int

const (
	// OutcomeNone means the entry has not reached a terminal state yet.
	OutcomeNone Outcome = iota

	// OutcomeMoved means the entry was copied and the source removed (or
	// kept, with keep-source set).
	OutcomeMoved

	// OutcomeWouldMove means a dry run determined the entry would move.
	OutcomeWouldMove

	// OutcomeSkippedDuplicate means a non-directory entry already existed
	// at the destination and clobber was not set.
	OutcomeSkippedDuplicate

	// OutcomeSkippedBusy means another process held the source file open.
	OutcomeSkippedBusy

	// OutcomeSkippedFiltered means a policy gate (type, size, extension)
	// filtered the entry out.
	OutcomeSkippedFiltered

	// OutcomeFailed means the copy (or the removal after it) failed; the
	// source was left in place.
	OutcomeFailed
)

// String returns the reporting name of an [Outcome].
func (o Outcome) String() string {
	switch o {
	case OutcomeMoved:
		return "moved"
	case OutcomeWouldMove:
		return "would-move"
	case OutcomeSkippedDuplicate:
		return "skipped-duplicate"
	case OutcomeSkippedBusy:
		return "skipped-busy"
	case OutcomeSkippedFiltered:
		return "skipped-filtered"
	case OutcomeFailed:
		return "failed"
	case OutcomeNone:
		fallthrough
	default:
		return "unknown"
	}
}

// Entry is one filesystem object under the share path, considered exactly
// once during the post-order walk.
type Entry struct {
	// Share is the share-relative path of the object (no volume prefix).
	Share string

	// SourcePath is the absolute path on the source volume.
	SourcePath string

	// DestPath is the mirrored absolute path on the destination volume.
	DestPath string

	// Metadata is the lstat snapshot taken at enumeration time.
	Metadata *Metadata

	// Source and Dest are the volumes this entry moves between.
	Source Volume
	Dest   Volume
}
