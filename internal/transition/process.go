package transition

import (
	"github.com/watchkeeper/history/internal/objectstate"
	"github.com/watchkeeper/history/pkg/types"
)

// process implements spec.md §4.8: compute this interval's duration,
// partition it into the accumulator matching the object's current
// state, authorize and offer it to the Emitter (skipped entirely during
// warm-up), then open the next interval by advancing From to Until.
func (e *Engine) process(s *objectstate.State) {
	duration := s.Until - s.From

	s.DurationOK = 0
	s.DurationWarning = 0
	s.DurationCritical = 0
	s.DurationUnknown = 0
	s.DurationUnmonitored = 0
	s.DurationOKPart = 0
	s.DurationWarningPart = 0
	s.DurationCriticalPart = 0
	s.DurationUnknownPart = 0
	s.DurationUnmonitoredPart = 0

	windowDuration := e.Window.Duration()
	var part float64
	if windowDuration > 0 {
		part = float64(duration) / float64(windowDuration)
	}

	switch types.StateFromInt(s.StateValue) {
	case types.StateOK:
		s.DurationOK = duration
		s.DurationOKPart = part
	case types.StateWarning:
		s.DurationWarning = duration
		s.DurationWarningPart = part
	case types.StateCritical:
		s.DurationCritical = duration
		s.DurationCriticalPart = part
	case types.StateUnknown:
		s.DurationUnknown = duration
		s.DurationUnknownPart = part
	default: // types.StateUnmonitored
		s.DurationUnmonitored = duration
		s.DurationUnmonitoredPart = part
	}

	if e.Emitting {
		if e.Authorizer == nil || e.Authorizer.Authorized(s.HostName, s.ServiceDescription, false) {
			interval := toInterval(s, duration)
			e.Emitted++
			if e.Emitter != nil && !e.Emitter.Emit(interval) {
				e.aborted = true
			}
		}
	}

	s.From = s.Until
}

// toInterval projects an ObjectState at emission time into the wire
// Interval (spec.md §3 "Column surface"). current_host_name and
// current_service_description mirror host_name/service_description —
// the registry-resolved names are already what's stored on State.
func toInterval(s *objectstate.State, duration int64) types.Interval {
	return types.Interval{
		IsHost:                    s.IsHost,
		HostName:                  s.HostName,
		ServiceDescription:        s.ServiceDescription,
		From:                      s.From,
		Until:                     s.Until,
		Time:                      s.Time,
		Lineno:                    s.Lineno,
		Duration:                  duration,
		State:                     types.StateFromInt(s.StateValue),
		HostDown:                  s.HostDown,
		InDowntime:                s.InDowntime,
		InHostDowntime:            s.InHostDowntime,
		IsFlapping:                s.IsFlapping,
		InNotificationPeriod:      s.InNotificationPeriod,
		InServicePeriod:           s.InServicePeriod,
		NotificationPeriod:        s.NotificationPeriod,
		ServicePeriod:             s.ServicePeriod,
		LogOutput:                 s.LogOutput,
		LongLogOutput:             s.LongLogOutput,
		DebugInfo:                 s.DebugInfo,
		DurationOK:                s.DurationOK,
		DurationWarning:           s.DurationWarning,
		DurationCritical:          s.DurationCritical,
		DurationUnknown:           s.DurationUnknown,
		DurationUnmonitored:       s.DurationUnmonitored,
		DurationOKPart:            s.DurationOKPart,
		DurationWarningPart:       s.DurationWarningPart,
		DurationCriticalPart:      s.DurationCriticalPart,
		DurationUnknownPart:       s.DurationUnknownPart,
		DurationUnmonitoredPart:   s.DurationUnmonitoredPart,
		CurrentHostName:           s.HostName,
		CurrentServiceDescription: s.ServiceDescription,
	}
}
