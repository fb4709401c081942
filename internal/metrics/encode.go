package metrics

import (
	"io"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// Encode writes the registry's current values as Prometheus text
// exposition to w, one MetricFamily per tracked value — the same
// wire format agent/internal/scraper parses, produced here instead of
// consumed.
func (r *Registry) Encode(w io.Writer) error {
	snap := r.Snapshot()

	families := []*dto.MetricFamily{
		counterFamily("historyreplay_replays_total", "Total replays completed.", float64(snap.ReplaysTotal)),
		counterFamily("historyreplay_replays_aborted_total", "Total replays that ended via cooperative abort.", float64(snap.ReplaysAbortedTotal)),
		counterFamily("historyreplay_entries_processed_total", "Total log entries processed across all replays.", float64(snap.EntriesProcessedTotal)),
		counterFamily("historyreplay_intervals_emitted_total", "Total intervals emitted across all replays.", float64(snap.IntervalsEmittedTotal)),
		gaugeFamily("historyreplay_active_replays", "Replays currently in flight.", float64(snap.ActiveReplays)),
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}

func counterFamily(name, help string, value float64) *dto.MetricFamily {
	t := dto.MetricType_COUNTER
	return &dto.MetricFamily{
		Name: strPtr(name),
		Help: strPtr(help),
		Type: &t,
		Metric: []*dto.Metric{
			{Counter: &dto.Counter{Value: float64Ptr(value)}},
		},
	}
}

func gaugeFamily(name, help string, value float64) *dto.MetricFamily {
	t := dto.MetricType_GAUGE
	return &dto.MetricFamily{
		Name: strPtr(name),
		Help: strPtr(help),
		Type: &t,
		Metric: []*dto.Metric{
			{Gauge: &dto.Gauge{Value: float64Ptr(value)}},
		},
	}
}

func strPtr(s string) *string    { return &s }
func float64Ptr(v float64) *float64 { return &v }
