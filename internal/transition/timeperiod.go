package transition

import "github.com/watchkeeper/history/internal/objectstate"

// ApplyTimeperiodTransition re-evaluates a single object against a
// TIMEPERIOD TRANSITION affecting period name with new value active
// (spec.md §4.5 "timeperiod transition" row). Either or both of
// in_notification_period/in_service_period may change, each emitting its
// own preceding interval before being overwritten — in practice at most
// one tracked attribute changes per call since a period name is either
// the object's notification_period or its service_period (or neither),
// rarely both, but the two are independent and each gets its own
// emit-before-overwrite.
func (e *Engine) ApplyTimeperiodTransition(name string, active bool, s *objectstate.State) Modification {
	changed := Unchanged

	if s.NotificationPeriod == name && s.InNotificationPeriod != active {
		e.process(s)
		s.InNotificationPeriod = active
		s.DebugInfo = "TIMEPERIOD "
		changed = Changed
	}

	if s.ServicePeriod == name && s.InServicePeriod != active {
		e.process(s)
		s.InServicePeriod = active
		s.DebugInfo = "TIMEPERIOD "
		changed = Changed
	}

	return changed
}

// SetUnknownToUnmonitored implements spec.md §4.3: while
// in_nagios_initial_states is set, every object flagged
// may_no_longer_exist is upgraded to has_vanished. The Replayer owns the
// in_nagios_initial_states flag itself (spec.md §9: only
// log_initial_states sets it, only the next non-initial event clears
// it) and passes its current value in on every dispatched entry.
func (e *Engine) SetUnknownToUnmonitored(inInitialStates bool) {
	if !inInitialStates {
		return
	}
	for _, s := range e.Table.All() {
		if s.MayNoLongerExist {
			s.HasVanished = true
		}
	}
}

// MarkMayVanish implements the log_initial_states bookkeeping step
// (spec.md §4.3): every non-vanished tracked object is flagged
// may_no_longer_exist, stamped with last_known_time = at.
func (e *Engine) MarkMayVanish(at int64) {
	for _, s := range e.Table.All() {
		if !s.HasVanished {
			s.MayNoLongerExist = true
			s.LastKnownTime = at
		}
	}
}
