package replay

import (
	"log/slog"

	"github.com/watchkeeper/history/internal/filter"
	"github.com/watchkeeper/history/internal/logentry"
	"github.com/watchkeeper/history/internal/objectstate"
	"github.com/watchkeeper/history/internal/transition"
)

// dispatch implements the per-entry-kind dispatch table (spec.md §4.3).
func (r *Replayer) dispatch(engine *transition.Engine, gate *filter.Gate, entry logentry.LogEntry, inInitialStates *bool) {
	switch entry.Kind {
	case logentry.KindStateServiceInitial, logentry.KindStateHostInitial:
		r.handleStateEntry(engine, gate, entry)

	case logentry.KindAlertHost, logentry.KindAlertService,
		logentry.KindStateHost, logentry.KindStateService,
		logentry.KindDowntimeAlertHost, logentry.KindDowntimeAlertService,
		logentry.KindFlappingHost, logentry.KindFlappingService:
		engine.SetUnknownToUnmonitored(*inInitialStates)
		r.handleStateEntry(engine, gate, entry)
		*inInitialStates = false

	case logentry.KindTimeperiodTransition:
		engine.SetUnknownToUnmonitored(*inInitialStates)
		name, value, ok := engine.Periods.Apply(entry.Options)
		if !ok {
			slog.Warn("replay: malformed TIMEPERIOD TRANSITION payload, entry skipped",
				"payload", entry.Options, "lineno", entry.Lineno)
		} else {
			for _, s := range engine.Table.All() {
				s.Time = entry.Time
				s.Lineno = entry.Lineno
				s.Until = entry.Time
				engine.ApplyTimeperiodTransition(name, value, s)
			}
		}
		*inInitialStates = false

	case logentry.KindLogInitialStates:
		engine.SetUnknownToUnmonitored(*inInitialStates)
		engine.MarkMayVanish(entry.Time)
		*inInitialStates = true

	default: // core_starting, core_stopping, log_version, acknowledge_*, none
		engine.SetUnknownToUnmonitored(*inInitialStates)
		*inInitialStates = false
	}
}

// handleStateEntry resolves entry's registry identity, finds or inserts
// its ObjectState, runs the central state machine, and — for the three
// host-level kinds that cascade — applies the same change to every
// back-linked service (spec.md §4.5 "Host → services cascade").
func (r *Replayer) handleStateEntry(engine *transition.Engine, gate *filter.Gate, entry logentry.LogEntry) {
	isHost := entry.IsHostLevel()

	var key, hostKey objectstate.Key
	var notificationPeriod, servicePeriod string

	if isHost {
		host, found := r.Registry.FindHost(entry.HostName)
		if !found {
			slog.Warn("replay: unresolved host, entry dropped", "host", entry.HostName, "lineno", entry.Lineno)
			return
		}
		key = host.Handle()
		notificationPeriod = host.NotificationPeriod()
		servicePeriod = host.ServicePeriod()
	} else {
		svc, found := r.Registry.FindService(entry.HostName, entry.ServiceDescription)
		if !found {
			slog.Warn("replay: unresolved service, entry dropped",
				"host", entry.HostName, "service", entry.ServiceDescription, "lineno", entry.Lineno)
			return
		}
		key = svc.Handle()
		notificationPeriod = svc.NotificationPeriod()
		servicePeriod = svc.ServicePeriod()
		if host, ok := r.Registry.FindHost(entry.HostName); ok {
			hostKey = host.Handle()
		}

		if gate.Blacklisted(key) {
			return
		}
	}

	state, existing := engine.Table.Get(key)
	if !existing {
		var g *filter.Gate
		if !isHost {
			g = gate
		}
		newState, admitted := engine.InsertNewState(transition.NewObjectParams{
			Key:                key,
			IsHost:             isHost,
			HostKey:            hostKey,
			HostName:           entry.HostName,
			ServiceDescription: entry.ServiceDescription,
			NotificationPeriod: notificationPeriod,
			ServicePeriod:      servicePeriod,
			At:                 entry.Time,
		}, g)
		if !admitted {
			return
		}
		state = newState
	}

	mod := engine.Update(entry, state)

	if isHost && mod == transition.Changed {
		switch entry.Kind {
		case logentry.KindAlertHost, logentry.KindStateHost:
			for _, svc := range engine.Table.Services(state) {
				engine.CascadeHostState(entry, svc)
			}
		case logentry.KindDowntimeAlertHost:
			for _, svc := range engine.Table.Services(state) {
				engine.CascadeHostDowntime(entry, svc)
			}
		}
	}
}
