package types

// State is the per-object monitoring state carried on an emitted interval.
// For services: OK/WARN/CRIT/UNKNOWN. For hosts: UP/DOWN/UNREACHABLE reuses
// the same 0..2 range. Unmonitored is the synthetic -1 used when the engine
// has no state event to rely on (object not yet known, or vanished).
type State int32

const (
	StateUnmonitored State = -1
	StateOK          State = 0
	StateWarning     State = 1
	StateCritical    State = 2
	StateUnknown     State = 3
)

// Interval is one emitted, fully-closed state interval for a single
// monitored object: the column surface the replay engine hands to an
// Emitter. It is a flattened projection of the engine's internal
// ObjectState at the moment the interval closed, plus the two
// current_host_*/current_service_* join-group fields sourced from the
// registry at emission time.
type Interval struct {
	IsHost              bool   `json:"is_host"`
	HostName            string `json:"host_name"`
	ServiceDescription  string `json:"service_description,omitempty"`

	From     int64 `json:"from"`
	Until    int64 `json:"until"`
	Time     int64 `json:"time"`
	Lineno   int64 `json:"lineno"`
	Duration int64 `json:"duration"`

	State                State  `json:"state"`
	HostDown             bool   `json:"host_down"`
	InDowntime           bool   `json:"in_downtime"`
	InHostDowntime       bool   `json:"in_host_downtime"`
	IsFlapping           bool   `json:"is_flapping"`
	InNotificationPeriod bool   `json:"in_notification_period"`
	InServicePeriod      bool   `json:"in_service_period"`
	NotificationPeriod   string `json:"notification_period"`
	ServicePeriod        string `json:"service_period"`
	LogOutput            string `json:"log_output"`
	LongLogOutput        string `json:"long_log_output"`
	DebugInfo            string `json:"debug_info"`

	DurationOK          int64 `json:"duration_ok"`
	DurationWarning     int64 `json:"duration_warning"`
	DurationCritical    int64 `json:"duration_critical"`
	DurationUnknown     int64 `json:"duration_unknown"`
	DurationUnmonitored int64 `json:"duration_unmonitored"`

	DurationOKPart          float64 `json:"duration_ok_part"`
	DurationWarningPart     float64 `json:"duration_warning_part"`
	DurationCriticalPart    float64 `json:"duration_critical_part"`
	DurationUnknownPart     float64 `json:"duration_unknown_part"`
	DurationUnmonitoredPart float64 `json:"duration_unmonitored_part"`

	// CurrentHostName/CurrentServiceDescription back the current_host_*/
	// current_service_* join groups in the column surface (spec.md §6).
	// They reflect the live registry entry, not the state at From/Until.
	CurrentHostName           string `json:"current_host_name,omitempty"`
	CurrentServiceDescription string `json:"current_service_description,omitempty"`
}

// StateFromInt clamps an arbitrary log-entry state integer to the State
// range the engine understands. Values below -1 collapse to Unmonitored;
// values above Unknown collapse to Unknown, which only occurs for
// malformed input the column layer should never otherwise see.
func StateFromInt(v int) State {
	switch {
	case v <= -1:
		return StateUnmonitored
	case v >= int(StateUnknown):
		return StateUnknown
	default:
		return State(v)
	}
}
