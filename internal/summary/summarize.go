package summary

import "github.com/watchkeeper/history/pkg/types"

// ObjectSummary is the availability rollup for one host or service over
// one replay window, derived entirely from that object's emitted
// intervals.
type ObjectSummary struct {
	IsHost             bool
	HostName           string
	ServiceDescription string

	DurationOK          int64
	DurationWarning     int64
	DurationCritical    int64
	DurationUnknown     int64
	DurationUnmonitored int64

	AvailabilityScore float64
	State             string

	StateChanges    int
	DowntimeSeconds int64
	FlappingSeconds int64
}

// Summarize folds intervals — which must all belong to the same object,
// in chronological order, exactly as a replay emits them — into an
// ObjectSummary. An empty slice returns a zero-value summary with State
// "unknown".
func Summarize(intervals []types.Interval) ObjectSummary {
	if len(intervals) == 0 {
		return ObjectSummary{State: StateUnknown}
	}

	first := intervals[0]
	out := ObjectSummary{
		IsHost:             first.IsHost,
		HostName:           first.HostName,
		ServiceDescription: first.ServiceDescription,
	}

	var prevState types.State
	havePrev := false

	for _, iv := range intervals {
		out.DurationOK += iv.DurationOK
		out.DurationWarning += iv.DurationWarning
		out.DurationCritical += iv.DurationCritical
		out.DurationUnknown += iv.DurationUnknown
		out.DurationUnmonitored += iv.DurationUnmonitored

		if iv.InDowntime || iv.InHostDowntime {
			out.DowntimeSeconds += iv.Duration
		}
		if iv.IsFlapping {
			out.FlappingSeconds += iv.Duration
		}

		if havePrev && iv.State != prevState {
			out.StateChanges++
		}
		prevState, havePrev = iv.State, true
	}

	out.AvailabilityScore, out.State = score(
		out.DurationOK, out.DurationWarning, out.DurationCritical,
		out.DurationUnknown, out.DurationUnmonitored)

	return out
}

// Group partitions a mixed stream of intervals — as a replay emits them
// for every tracked object, interleaved in finalize order — into one
// ObjectSummary per host/service, keyed by host name alone for hosts and
// "host\x00service" for services.
func Group(intervals []types.Interval) map[string]ObjectSummary {
	byKey := make(map[string][]types.Interval)
	for _, iv := range intervals {
		byKey[groupKey(iv)] = append(byKey[groupKey(iv)], iv)
	}

	out := make(map[string]ObjectSummary, len(byKey))
	for key, ivs := range byKey {
		out[key] = Summarize(ivs)
	}
	return out
}

func groupKey(iv types.Interval) string {
	if iv.IsHost {
		return iv.HostName
	}
	return iv.HostName + "\x00" + iv.ServiceDescription
}
