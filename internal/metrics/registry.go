package metrics

import "sync/atomic"

// Registry holds the counters and gauges historyd exposes on /metrics.
// All fields are safe for concurrent use across replay goroutines.
type Registry struct {
	replaysTotal          atomic.Int64
	replaysAbortedTotal   atomic.Int64
	entriesProcessedTotal atomic.Int64
	intervalsEmittedTotal atomic.Int64
	activeReplays         atomic.Int64
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// ReplayStarted records the start of one replay.
func (r *Registry) ReplayStarted() {
	r.activeReplays.Add(1)
}

// ReplayFinished records one replay's outcome: entries processed,
// intervals emitted, and whether it was aborted mid-flight.
func (r *Registry) ReplayFinished(entriesProcessed, intervalsEmitted int, aborted bool) {
	r.activeReplays.Add(-1)
	r.replaysTotal.Add(1)
	r.entriesProcessedTotal.Add(int64(entriesProcessed))
	r.intervalsEmittedTotal.Add(int64(intervalsEmitted))
	if aborted {
		r.replaysAbortedTotal.Add(1)
	}
}

// Snapshot is a point-in-time read of every tracked value.
type Snapshot struct {
	ReplaysTotal          int64
	ReplaysAbortedTotal   int64
	EntriesProcessedTotal int64
	IntervalsEmittedTotal int64
	ActiveReplays         int64
}

func (r *Registry) Snapshot() Snapshot {
	return Snapshot{
		ReplaysTotal:          r.replaysTotal.Load(),
		ReplaysAbortedTotal:   r.replaysAbortedTotal.Load(),
		EntriesProcessedTotal: r.entriesProcessedTotal.Load(),
		IntervalsEmittedTotal: r.intervalsEmittedTotal.Load(),
		ActiveReplays:         r.activeReplays.Load(),
	}
}
