// Package report implements the user-facing transcript of a move run. It
// maps per-entry outcomes and the configured verbosity to plain output
// lines, and keeps the aggregate counts for the final summary. The transcript
// of a dry run and a destructive run are deliberately line-compatible, so
// one can be diffed against the other.
package report

import (
	"fmt"
	"io"

	"github.com/desertwitch/diskmv/internal/schema"
	"github.com/dustin/go-humanize"
)

// Reporter is the principal implementation for run reporting.
type Reporter struct {
	out        io.Writer
	policy     *schema.Policy
	counts     map[schema.Outcome]int
	bytesMoved uint64
}

// NewReporter returns a pointer to a new [Reporter], writing to out.
func NewReporter(out io.Writer, policy *schema.Policy) *Reporter {
	return &Reporter{
		out:    out,
		policy: policy,
		counts: make(map[schema.Outcome]int),
	}
}

// Start announces the run mode. A destructive run can never be mistaken for
// a rehearsal: the mode is stated here and again in [Reporter.Summary],
// regardless of verbosity.
func (r *Reporter) Start(src, dst schema.Volume, sharePath string) {
	if r.policy.DryRun {
		fmt.Fprintf(r.out, "diskmv: dry run, no changes will be made (use -f to move) [%s: %s -> %s]\n",
			sharePath, src.GetName(), dst.GetName())

		return
	}

	fmt.Fprintf(r.out, "diskmv: moving [%s: %s -> %s]\n",
		sharePath, src.GetName(), dst.GetName())
}

// Entry records one terminal outcome and emits the per-entry line(s) the
// configured verbosity asks for. The reason names the deciding filter gate
// for skips and carries the error for failures.
func (r *Reporter) Entry(entry *schema.Entry, outcome schema.Outcome, reason string, err error) {
	r.counts[outcome]++
	if outcome == schema.OutcomeMoved || outcome == schema.OutcomeWouldMove {
		r.bytesMoved += entry.Metadata.Size
	}

	if r.policy.Verbosity < 1 {
		return
	}

	switch outcome {
	case schema.OutcomeSkippedDuplicate:
		fmt.Fprintf(r.out, "%-18s %s (existing destination not overwritten)\n", outcome, entry.Share)
	case schema.OutcomeSkippedBusy:
		fmt.Fprintf(r.out, "%-18s %s (in use by another process)\n", outcome, entry.Share)
	case schema.OutcomeSkippedFiltered:
		fmt.Fprintf(r.out, "%-18s %s (%s)\n", outcome, entry.Share, reason)
	case schema.OutcomeFailed:
		fmt.Fprintf(r.out, "%-18s %s (%v)\n", outcome, entry.Share, err)
	case schema.OutcomeMoved, schema.OutcomeWouldMove:
		fmt.Fprintf(r.out, "%-18s %s\n", outcome, entry.Share)
	case schema.OutcomeNone:
	}

	if r.policy.Verbosity >= 2 && (outcome == schema.OutcomeMoved || outcome == schema.OutcomeWouldMove) {
		r.entryDetail(entry)
	}
}

// entryDetail emits the attribute line of a moved entry: what is carried
// over to the destination besides the content.
func (r *Reporter) entryDetail(entry *schema.Entry) {
	m := entry.Metadata

	switch {
	case m.IsDir:
		fmt.Fprintf(r.out, "%-18s %s (dir, %04o, %d:%d)\n",
			"", entry.Share, m.Perms, m.UID, m.GID)
	case m.IsSymlink:
		fmt.Fprintf(r.out, "%-18s %s (symlink -> %s, %d:%d)\n",
			"", entry.Share, m.SymlinkTo, m.UID, m.GID)
	default:
		fmt.Fprintf(r.out, "%-18s %s (%s, %04o, %d:%d)\n",
			"", entry.Share, humanize.IBytes(m.Size), m.Perms, m.UID, m.GID)
	}
}

// Summary emits the unconditional final line, restating the run mode.
func (r *Reporter) Summary() {
	mode := "moved"
	if r.policy.DryRun {
		mode = "would move"
	}

	fmt.Fprintf(r.out, "diskmv: %s %d entries (%s), %d duplicate, %d busy, %d filtered, %d failed",
		mode,
		r.counts[schema.OutcomeMoved]+r.counts[schema.OutcomeWouldMove],
		humanize.IBytes(r.bytesMoved),
		r.counts[schema.OutcomeSkippedDuplicate],
		r.counts[schema.OutcomeSkippedBusy],
		r.counts[schema.OutcomeSkippedFiltered],
		r.counts[schema.OutcomeFailed],
	)

	if r.policy.DryRun {
		fmt.Fprint(r.out, " [dry run]")
	}

	fmt.Fprintln(r.out)
}

// Failures returns the number of entries that ended in a failed outcome.
func (r *Reporter) Failures() int {
	return r.counts[schema.OutcomeFailed]
}
