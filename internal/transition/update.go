package transition

import (
	"github.com/watchkeeper/history/internal/logentry"
	"github.com/watchkeeper/history/internal/objectstate"
)

// Update is the central state machine (spec.md §4.5 `update`). It
// revives a vanished object first, advances the object's clock, then
// dispatches on entry.Kind per the transition table: a changed tracked
// attribute emits the preceding interval before being overwritten.
//
// Update must only be called for entries whose class handling requires
// "state-entry handling" per the Replayer's dispatch table (spec.md
// §4.3): state_*, state_*_initial, alert_*, downtime_alert_*, and
// flapping_*. Callers resolve revival-relevant bookkeeping
// (may_no_longer_exist / has_vanished) independently via
// log_initial_states handling.
func (e *Engine) Update(entry logentry.LogEntry, s *objectstate.State) Modification {
	if s.HasVanished && entry.Kind != logentry.KindTimeperiodTransition {
		e.revive(s)
	}

	s.Time = entry.Time
	s.Lineno = entry.Lineno
	s.Until = entry.Time

	if entry.Kind != logentry.KindTimeperiodTransition {
		s.MayNoLongerExist = false
	}

	changed := e.dispatch(entry, s)

	if entry.Kind != logentry.KindTimeperiodTransition {
		output := entry.PluginOutput
		if entry.Kind.IsInitial() && output == "(null)" {
			output = ""
		}
		s.LogOutput = output
		s.LongLogOutput = entry.LongPluginOutput
	}

	return changed
}

// dispatch applies the transition table (spec.md §4.5) for the object's
// own entry kind — it never cascades to other objects; that's the
// Replayer's job after a host-level Update returns Changed.
func (e *Engine) dispatch(entry logentry.LogEntry, s *objectstate.State) Modification {
	switch entry.Kind {
	case logentry.KindStateHost, logentry.KindStateHostInitial, logentry.KindAlertHost:
		if s.StateValue == entry.State {
			return Unchanged
		}
		e.process(s)
		s.StateValue = entry.State
		s.HostDown = entry.State > 0
		s.DebugInfo = "HOST STATE"
		return Changed

	case logentry.KindStateService, logentry.KindStateServiceInitial, logentry.KindAlertService:
		if s.StateValue == entry.State {
			return Unchanged
		}
		e.process(s)
		s.StateValue = entry.State
		s.DebugInfo = "SVC ALERT"
		return Changed

	case logentry.KindDowntimeAlertHost:
		v := entry.IsStarted()
		if s.InHostDowntime == v {
			return Unchanged
		}
		e.process(s)
		s.InHostDowntime = v
		if s.IsHost {
			s.InDowntime = v
			s.DebugInfo = "HOST DOWNTIME"
		} else {
			s.DebugInfo = "SVC HOST DOWNTIME"
		}
		return Changed

	case logentry.KindDowntimeAlertService:
		v := entry.IsStarted()
		if s.InDowntime == v {
			return Unchanged
		}
		e.process(s)
		s.InDowntime = v
		s.DebugInfo = "DOWNTIME SERVICE"
		return Changed

	case logentry.KindFlappingHost, logentry.KindFlappingService:
		v := entry.IsStarted()
		if s.IsFlapping == v {
			return Unchanged
		}
		e.process(s)
		s.IsFlapping = v
		s.DebugInfo = "FLAPPING "
		return Changed

	default:
		return Unchanged
	}
}

// CascadeHostState applies a host's alert_host/state_host-triggered
// state change to one of its services: only host_down propagates (the
// service's own `state` is untouched). The Replayer calls this for every back-linked
// service after a host-level Update on KindAlertHost/KindStateHost
// returns Changed.
func (e *Engine) CascadeHostState(entry logentry.LogEntry, svc *objectstate.State) Modification {
	svc.Time = entry.Time
	svc.Lineno = entry.Lineno
	svc.Until = entry.Time

	v := entry.State > 0
	if svc.HostDown == v {
		return Unchanged
	}
	e.process(svc)
	svc.HostDown = v
	svc.DebugInfo = "SVC HOST STATE"
	return Changed
}

// CascadeHostDowntime applies a host's downtime_alert_host-triggered
// downtime change to one of its services: only in_host_downtime
// propagates. The Replayer calls this for every back-linked service
// after a host-level Update on KindDowntimeAlertHost returns Changed.
func (e *Engine) CascadeHostDowntime(entry logentry.LogEntry, svc *objectstate.State) Modification {
	svc.Time = entry.Time
	svc.Lineno = entry.Lineno
	svc.Until = entry.Time

	v := entry.IsStarted()
	if svc.InHostDowntime == v {
		return Unchanged
	}
	e.process(svc)
	svc.InHostDowntime = v
	svc.DebugInfo = "SVC HOST DOWNTIME"
	return Changed
}

// revive implements spec.md §4.5 Revival: emit the frozen interval at
// last_known_time, then reset vanish bookkeeping and reload period
// membership.
func (e *Engine) revive(s *objectstate.State) {
	s.Time = s.LastKnownTime
	s.Until = s.LastKnownTime
	e.process(s)

	s.MayNoLongerExist = false
	s.HasVanished = false
	s.StateValue = -1
	s.DebugInfo = "UNMONITORED"
	s.HostDown = false
	s.InDowntime = false
	s.InHostDowntime = false
	s.IsFlapping = false
	s.InNotificationPeriod = e.Periods.Active(s.NotificationPeriod)
	s.InServicePeriod = e.Periods.Active(s.ServicePeriod)
}
