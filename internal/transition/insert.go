package transition

import (
	"github.com/watchkeeper/history/internal/filter"
	"github.com/watchkeeper/history/internal/objectstate"
)

// NewObjectParams names everything insert_new_state needs about a
// freshly-seen object. The caller (Replayer) resolves these from the
// registry before calling InsertNewState; Engine never consults the
// registry directly.
type NewObjectParams struct {
	Key                objectstate.Key
	IsHost             bool
	HostKey            objectstate.Key // empty when IsHost
	HostName           string
	ServiceDescription string
	NotificationPeriod string
	ServicePeriod      string
	At                 int64 // the triggering entry's time
}

// InsertNewState implements spec.md §4.5 insert_new_state: creates an
// ObjectState, fills identity, runs the FilterGate for services (never
// for hosts), wires host↔service back-links via Table.Insert, seeds
// from = period.since, initializes period membership from Periods
// (defaulting active), inherits host_down/in_host_downtime from an
// already-tracked host, and stamps a synthetic UNMONITORED initial state
// if the object surfaces more than 10 minutes into an already-emitting
// replay.
//
// gate is nil for host-level objects (spec.md §4.4: "host-level entries
// are never filter-gated"). Returns (nil, false) if a service is
// rejected by gate — the caller must not track this key further.
func (e *Engine) InsertNewState(p NewObjectParams, gate *filter.Gate) (*objectstate.State, bool) {
	s := &objectstate.State{
		IsHost:             p.IsHost,
		HostKey:            p.HostKey,
		ServiceKey:         p.Key,
		HostName:           p.HostName,
		ServiceDescription: p.ServiceDescription,
		From:               e.Window.Since,
		Until:              e.Window.Since,
		NotificationPeriod: p.NotificationPeriod,
		ServicePeriod:      p.ServicePeriod,
	}
	if p.IsHost {
		s.HostKey = p.Key
		s.ServiceKey = ""
	}

	if !p.IsHost && gate != nil {
		id := filter.Identity{
			HostName:                  p.HostName,
			ServiceDescription:        p.ServiceDescription,
			CurrentHostName:           p.HostName,
			CurrentServiceDescription: p.ServiceDescription,
		}
		if !gate.Admit(p.Key, id) {
			return nil, false
		}
	}

	s.InNotificationPeriod = e.Periods.Active(s.NotificationPeriod)
	s.InServicePeriod = e.Periods.Active(s.ServicePeriod)

	e.Table.Insert(p.Key, s)

	if !p.IsHost {
		if host, ok := e.Table.Host(s); ok {
			s.HostDown = host.HostDown
			s.InHostDowntime = host.InHostDowntime
		}
	}

	if e.Emitting && p.At-e.Window.Since > tenMinutes {
		s.StateValue = -1
		s.DebugInfo = "UNMONITORED "
	}

	return s, true
}
