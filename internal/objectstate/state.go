package objectstate

import "github.com/watchkeeper/history/internal/registry"

// Key is the opaque object identity handle spec.md §3 describes: the
// registry's Handle for a host or service, stable for the lifetime of
// one replay.
type Key = registry.Handle

// State is the mutable per-object record the TransitionEngine updates
// as it walks the log (spec.md §3 ObjectState): identity, temporal,
// observable, duration-accumulator, lifecycle and relational fields. The
// duration-decomposition accumulators are filled in only at emission
// time (internal/transition's process step).
type State struct {
	// identity
	IsHost              bool
	HostKey             Key
	ServiceKey          Key // zero value ("") when IsHost
	HostName            string
	ServiceDescription  string

	// temporal
	From     int64
	Until    int64
	Time     int64
	Lineno   int64

	// observable
	StateValue           int
	HostDown              bool
	InDowntime            bool
	InHostDowntime        bool
	IsFlapping            bool
	InNotificationPeriod  bool
	InServicePeriod       bool
	NotificationPeriod    string
	ServicePeriod         string
	LogOutput             string
	LongLogOutput         string
	DebugInfo             string

	// per-state duration accumulators (seconds) and their window-relative parts
	DurationOK            int64
	DurationWarning       int64
	DurationCritical      int64
	DurationUnknown       int64
	DurationUnmonitored   int64
	DurationOKPart        float64
	DurationWarningPart   float64
	DurationCriticalPart  float64
	DurationUnknownPart   float64
	DurationUnmonitoredPart float64

	// lifecycle
	MayNoLongerExist bool
	HasVanished      bool
	LastKnownTime    int64

	// relational: services' keys, maintained only on a host's State.
	// Non-owning — resolved against the owning Table on each access
	// (spec.md §9 "cross-links are keys, not pointers").
	Services []Key
}

// Duration returns Until - From, the length of the currently
// accumulating (not yet emitted) interval.
func (s *State) Duration() int64 {
	return s.Until - s.From
}

// addService appends svcKey to the host's back-link list unless it is
// already present, preserving invariant 4 (each live service appears at
// most once).
func (s *State) addService(svcKey Key) {
	for _, k := range s.Services {
		if k == svcKey {
			return
		}
	}
	s.Services = append(s.Services, svcKey)
}
