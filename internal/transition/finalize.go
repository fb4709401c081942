package transition

import (
	"sort"

	"github.com/watchkeeper/history/internal/objectstate"
)

// Finalize implements spec.md §4.7: for every tracked object flagged
// may_no_longer_exist, emit its frozen interval at last_known_time with
// its last known state and switch it to UNMONITORED; then, for every
// object, emit the final interval at period.until - 1 second. The Replayer calls this
// once after the replay loop exits normally (not on abort — "finalization
// is skipped" per spec.md §7).
//
// Objects are finalized in a stable (host, service) order so repeated
// replays of the same log produce byte-identical emission order (spec.md
// §8 idempotence).
func (e *Engine) Finalize() {
	all := e.Table.All()
	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.HostName != b.HostName {
			return a.HostName < b.HostName
		}
		return a.ServiceDescription < b.ServiceDescription
	})

	for _, s := range all {
		if s.MayNoLongerExist {
			finalizeVanishing(e, s)
		}

		s.Time = e.Window.Until - 1
		s.Until = e.Window.Until - 1
		e.process(s)
	}
}

func finalizeVanishing(e *Engine, s *objectstate.State) {
	s.Time = s.LastKnownTime
	s.Until = s.LastKnownTime
	e.process(s)

	s.StateValue = -1
	s.DebugInfo = "UNMONITORED"
	s.LogOutput = ""
	s.LongLogOutput = ""
}
