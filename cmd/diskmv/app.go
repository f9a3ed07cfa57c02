package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/desertwitch/diskmv/internal/filesystem"
	"github.com/desertwitch/diskmv/internal/filter"
	"github.com/desertwitch/diskmv/internal/move"
	"github.com/desertwitch/diskmv/internal/report"
	"github.com/desertwitch/diskmv/internal/schema"
)

// App ties the components of one move run together: the post-order walk
// drives the filter set, eligible entries reach the move executor, every
// terminal outcome reaches the reporter.
type App struct {
	policy      *schema.Policy
	src         schema.Volume
	dst         schema.Volume
	sharePath   string
	fsHandler   *filesystem.Handler
	moveHandler *move.Handler
	reporter    *report.Reporter
	filterSet   *filter.Set
	sim         *simFS
}

// NewApp returns a pointer to a new [App]. In a dry run that would delete
// sources, the filter set evaluates directory emptiness against a simulation
// overlay, so the rehearsal predicts what the real run will observe.
func NewApp(policy *schema.Policy, src, dst schema.Volume, sharePath string,
	fsHandler *filesystem.Handler,
	moveHandler *move.Handler,
	reporter *report.Reporter,
) *App {
	app := &App{
		policy:      policy,
		src:         src,
		dst:         dst,
		sharePath:   sharePath,
		fsHandler:   fsHandler,
		moveHandler: moveHandler,
		reporter:    reporter,
	}

	if policy.DryRun && !policy.KeepSource {
		app.sim = newSimFS(fsHandler, &schema.OS{})
		app.filterSet = filter.NewSet(policy, app.sim)
	} else {
		app.filterSet = filter.NewSet(policy, fsHandler)
	}

	return app
}

// Launch runs the walk to completion. Per-entry failures are reported and do
// not abort the run; only cancellation (or an unreadable walk root) does.
func (app *App) Launch(ctx context.Context) error {
	app.reporter.Start(app.src, app.dst, app.sharePath)

	walkErr := app.fsHandler.WalkShare(ctx, app.src, app.dst, app.sharePath,
		func(entry *schema.Entry) error {
			return app.processEntry(ctx, entry)
		})

	app.reporter.Summary()

	if walkErr != nil {
		if errors.Is(walkErr, context.Canceled) {
			return ErrRunCanceled
		}

		return fmt.Errorf("(app) %w", walkErr)
	}

	if failures := app.reporter.Failures(); failures > 0 {
		slog.Warn("Run completed with per-entry failures.",
			"failures", failures,
		)
	}

	return nil
}

// processEntry takes one entry through filter, executor and reporter. It
// only ever returns an error to abort the whole walk (cancellation); any
// per-entry problem is recovered locally as a failed outcome.
func (app *App) processEntry(ctx context.Context, entry *schema.Entry) error {
	decision, gateName, err := app.filterSet.Eligible(entry)
	if err != nil {
		slog.Warn("Failed entry: eligibility not establishable",
			"path", entry.SourcePath,
			"err", err,
		)
		app.reporter.Entry(entry, schema.OutcomeFailed, gateName, err)

		return nil
	}

	switch decision {
	case filter.DecisionSkipBusy:
		app.reporter.Entry(entry, schema.OutcomeSkippedBusy, gateName, nil)

		return nil

	case filter.DecisionSkipDuplicate:
		app.reporter.Entry(entry, schema.OutcomeSkippedDuplicate, gateName, nil)

		return nil

	case filter.DecisionSkipFiltered:
		app.reporter.Entry(entry, schema.OutcomeSkippedFiltered, gateName, nil)

		return nil

	case filter.DecisionEligible:
		return app.processEligible(ctx, entry)

	default:
		return nil
	}
}

// processEligible acts on (or, dry-running, predicts for) one eligible entry.
func (app *App) processEligible(ctx context.Context, entry *schema.Entry) error {
	if app.policy.DryRun {
		app.reporter.Entry(entry, schema.OutcomeWouldMove, "", nil)

		if app.sim != nil {
			app.sim.MarkRemoved(entry.SourcePath)
		}

		return nil
	}

	if err := app.moveHandler.EnsureDestPath(entry); err != nil {
		slog.Warn("Failed entry: destination structure not establishable",
			"path", entry.SourcePath,
			"err", err,
		)
		app.reporter.Entry(entry, schema.OutcomeFailed, "", err)

		return nil
	}

	if err := app.moveHandler.Process(ctx, entry, app.policy); err != nil {
		if errors.Is(err, context.Canceled) {
			return context.Canceled
		}

		slog.Warn("Failed entry: not moved, source left in place",
			"path", entry.SourcePath,
			"err", err,
		)
		app.reporter.Entry(entry, schema.OutcomeFailed, "", err)

		return nil
	}

	app.reporter.Entry(entry, schema.OutcomeMoved, "", nil)

	return nil
}
