package api

import (
	"fmt"

	"github.com/watchkeeper/history/internal/summary"
	"github.com/watchkeeper/history/pkg/types"
)

// DiagnosticHint is one human-readable insight about a replay result.
// The UI surfaces these next to the raw intervals; Detail is written
// like an assistant explaining what happened in plain English.
type DiagnosticHint struct {
	Key    string   `json:"key"`
	Level  string   `json:"level"` // "ok" | "info" | "warning" | "critical"
	Title  string   `json:"title"`
	Detail string   `json:"detail"`
	Value  *float64 `json:"value,omitempty"`
}

// computeDiagnostics derives hints for one object from its emitted
// intervals and already-computed summary. These never feed back into
// the engine — they only explain its output.
func computeDiagnostics(key string, intervals []types.Interval, s summary.ObjectSummary) []DiagnosticHint {
	var hints []DiagnosticHint

	total := s.DurationOK + s.DurationWarning + s.DurationCritical + s.DurationUnknown + s.DurationUnmonitored
	if total == 0 {
		return hints
	}

	if revivals := countRevivals(intervals); revivals > 0 {
		v := float64(revivals)
		hints = append(hints, DiagnosticHint{
			Key:   "revived",
			Level: "warning",
			Title: fmt.Sprintf("Vanished %d time(s)", revivals),
			Detail: fmt.Sprintf(
				"%s dropped out of the monitoring core's knowledge and was later rediscovered "+
					"%d time(s) during this window. This usually means the object was removed and "+
					"re-added to the registry — check for config reloads or host/service renames "+
					"around the gap.",
				key, revivals),
			Value: &v,
		})
	}

	if s.DurationUnmonitored > 0 {
		pct := float64(s.DurationUnmonitored) / float64(total) * 100
		level := "info"
		if pct >= 10 {
			level = "warning"
		}
		v := pct
		hints = append(hints, DiagnosticHint{
			Key:   "unmonitored_share",
			Level: level,
			Title: fmt.Sprintf("%.1f%% unmonitored", pct),
			Detail: fmt.Sprintf(
				"%.1f%% of this window has no known state for %s. This is expected if the "+
					"object was added partway through the window; a large share on an "+
					"established object suggests it dropped out of monitoring for a while.",
				pct, key),
			Value: &v,
		})
	}

	if s.FlappingSeconds > 0 {
		pct := float64(s.FlappingSeconds) / float64(total) * 100
		level := "info"
		if pct >= 20 {
			level = "warning"
		}
		v := pct
		hints = append(hints, DiagnosticHint{
			Key:   "flapping_share",
			Level: level,
			Title: fmt.Sprintf("%.1f%% flapping", pct),
			Detail: fmt.Sprintf(
				"%s spent %.1f%% of this window flapping between states. Sustained flapping "+
					"often means a check threshold is too tight for the object's normal jitter.",
				key, pct),
			Value: &v,
		})
	}

	if s.DowntimeSeconds > 0 {
		pct := float64(s.DowntimeSeconds) / float64(total) * 100
		v := pct
		hints = append(hints, DiagnosticHint{
			Key:   "downtime_share",
			Level: "info",
			Title: fmt.Sprintf("%.1f%% in downtime", pct),
			Detail: fmt.Sprintf(
				"%s was in a scheduled downtime for %.1f%% of this window, so any critical "+
					"durations during that time were likely expected maintenance rather than an "+
					"outage.",
				key, pct),
			Value: &v,
		})
	}

	if len(hints) == 0 {
		hints = append(hints, DiagnosticHint{
			Key:    "clean",
			Level:  "ok",
			Title:  "Clean history",
			Detail: fmt.Sprintf("%s has no vanish/revive gaps, downtime, or flapping in this window.", key),
		})
	}

	return hints
}

// countRevivals counts how many times an object transitioned into the
// Unmonitored state and then back out of it. Every such run counts,
// whether it follows a vanish or is the synthetic UNMONITORED prefix of
// an object that first appeared mid-window.
func countRevivals(intervals []types.Interval) int {
	var revivals int
	wasUnmonitored := false
	for _, iv := range intervals {
		if iv.State == types.StateUnmonitored {
			wasUnmonitored = true
			continue
		}
		if wasUnmonitored {
			revivals++
		}
		wasUnmonitored = false
	}
	return revivals
}
