package metrics

import (
	"bytes"
	"strings"
	"testing"
)

func TestRegistry_Snapshot(t *testing.T) {
	r := NewRegistry()
	r.ReplayStarted()
	r.ReplayFinished(10, 3, false)
	r.ReplayStarted()
	r.ReplayFinished(5, 0, true)

	snap := r.Snapshot()
	if snap.ReplaysTotal != 2 {
		t.Fatalf("ReplaysTotal = %d, want 2", snap.ReplaysTotal)
	}
	if snap.ReplaysAbortedTotal != 1 {
		t.Fatalf("ReplaysAbortedTotal = %d, want 1", snap.ReplaysAbortedTotal)
	}
	if snap.EntriesProcessedTotal != 15 {
		t.Fatalf("EntriesProcessedTotal = %d, want 15", snap.EntriesProcessedTotal)
	}
	if snap.IntervalsEmittedTotal != 3 {
		t.Fatalf("IntervalsEmittedTotal = %d, want 3", snap.IntervalsEmittedTotal)
	}
	if snap.ActiveReplays != 0 {
		t.Fatalf("ActiveReplays = %d, want 0", snap.ActiveReplays)
	}
}

func TestRegistry_Encode(t *testing.T) {
	r := NewRegistry()
	r.ReplayStarted()
	r.ReplayFinished(1, 1, false)

	var buf bytes.Buffer
	if err := r.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"historyreplay_replays_total",
		"historyreplay_entries_processed_total",
		"historyreplay_active_replays",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("encoded output missing %q:\n%s", want, out)
		}
	}
}
