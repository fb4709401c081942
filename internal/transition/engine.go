package transition

import (
	"github.com/watchkeeper/history/internal/objectstate"
	"github.com/watchkeeper/history/internal/period"
	"github.com/watchkeeper/history/internal/sink"
	"github.com/watchkeeper/history/pkg/types"
)

// Modification reports whether Update changed the object's tracked
// attribute, i.e. whether it emitted an interval.
type Modification int

const (
	Unchanged Modification = iota
	Changed
)

// tenMinutes is the "more than 10 minutes after period.since" threshold
// insert_new_state uses to decide whether a late-appearing object gets a
// synthetic UNMONITORED prefix (spec.md §4.5, §8 boundary behavior).
const tenMinutes = 10 * 60

// Engine is TransitionEngine. One Engine is owned by exactly one replay.
type Engine struct {
	Table   *objectstate.Table
	Periods *period.Tracker

	Emitter    sink.Emitter
	Authorizer sink.Authorizer
	Window     types.Period

	// Emitting is false during warm-up: Update still mutates ObjectState
	// but process() does not call Emitter/Authorizer (spec.md §4.3 phase 1).
	Emitting bool

	// Emitted counts every interval actually offered to Emitter (i.e. it
	// passed the Authorizer check). It does not count warm-up intervals,
	// which are never offered at all.
	Emitted int

	aborted bool
}

// New returns an Engine ready to process entries against window.
func New(emitter sink.Emitter, authorizer sink.Authorizer, window types.Period) *Engine {
	return &Engine{
		Table:      objectstate.NewTable(),
		Periods:    period.NewTracker(),
		Emitter:    emitter,
		Authorizer: authorizer,
		Window:     window,
	}
}

// Aborted reports whether the Emitter has ever signaled abort.
func (e *Engine) Aborted() bool {
	return e.aborted
}
