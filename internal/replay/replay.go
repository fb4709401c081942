package replay

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/watchkeeper/history/internal/cursor"
	"github.com/watchkeeper/history/internal/filter"
	"github.com/watchkeeper/history/internal/locator"
	"github.com/watchkeeper/history/internal/logsource"
	"github.com/watchkeeper/history/internal/progress"
	"github.com/watchkeeper/history/internal/registry"
	"github.com/watchkeeper/history/internal/sink"
	"github.com/watchkeeper/history/internal/transition"
	"github.com/watchkeeper/history/pkg/types"
)

// Options configures one replay.
type Options struct {
	Window            types.Period
	MaxEntriesPerFile int
	Filter            filter.Predicate  // nil admits every service
	Progress          *progress.Tracker // nil disables progress reporting
}

// Result summarizes one completed replay.
type Result struct {
	EntriesProcessed int
	IntervalsEmitted int
	Aborted          bool
}

// Replayer drives one replay at a time end to end. A Replayer instance
// is reusable across replays — Replay allocates a fresh TransitionEngine,
// PeriodTracker, and blacklist for each call, per spec.md §5 ("never
// shared across replays").
type Replayer struct {
	Source     logsource.Source
	Registry   registry.Registry
	Emitter    sink.Emitter
	Authorizer sink.Authorizer
}

// New returns a Replayer wired to its collaborators.
func New(source logsource.Source, reg registry.Registry, emitter sink.Emitter, authorizer sink.Authorizer) *Replayer {
	return &Replayer{Source: source, Registry: reg, Emitter: emitter, Authorizer: authorizer}
}

// Replay runs one query window end to end: locates the starting log
// file, walks entries through warm-up and emission, and finalizes every
// still-tracked object. ctx cancellation is honored between entries in
// addition to the Emitter's cooperative abort signal.
func (r *Replayer) Replay(ctx context.Context, opts Options) (Result, error) {
	if opts.Window.Empty() {
		slog.Debug("replay: empty query window, nothing to do",
			"since", opts.Window.Since, "until", opts.Window.Until)
		return Result{}, nil
	}

	files, err := r.Source.List(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("replay: list log files: %w", err)
	}

	startIdx, ok := locator.Locate(files, opts.Window)
	if !ok {
		slog.Debug("replay: no log files contribute to this window",
			"since", opts.Window.Since, "until", opts.Window.Until)
		return Result{}, nil
	}

	cur, err := cursor.New(ctx, r.Source, files, startIdx, opts.MaxEntriesPerFile)
	if err != nil {
		return Result{}, fmt.Errorf("replay: position cursor: %w", err)
	}

	engine := transition.New(r.Emitter, r.Authorizer, opts.Window)
	gate := filter.NewGate(opts.Filter)

	onlyUpdate := true
	inInitialStates := false
	result := Result{}

	for {
		if engine.Aborted() {
			result.Aborted = true
			break
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		entry, ok, err := cur.Next(ctx)
		if err != nil {
			return result, fmt.Errorf("replay: read next entry: %w", err)
		}
		if !ok {
			break
		}

		if onlyUpdate && entry.Time >= opts.Window.Since {
			onlyUpdate = false
			engine.Emitting = true
			for _, s := range engine.Table.All() {
				s.From = opts.Window.Since
				s.Until = opts.Window.Since
			}
		}

		if !onlyUpdate && entry.Time >= opts.Window.Until {
			break
		}

		result.EntriesProcessed++
		r.dispatch(engine, gate, entry, &inInitialStates)

		if opts.Progress != nil {
			opts.Progress.Update(result.EntriesProcessed, engine.Emitted, entry.Time)
		}
	}

	if !result.Aborted {
		engine.Finalize()
	}
	result.IntervalsEmitted = engine.Emitted

	return result, nil
}
