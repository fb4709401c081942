package logentry

// Kind is the tagged variant of a parsed log entry (spec.md §6).
type Kind int

const (
	KindNone Kind = iota
	KindCoreStarting
	KindCoreStopping
	KindLogVersion
	KindLogInitialStates
	KindAcknowledgeAlertHost
	KindAcknowledgeAlertService
	KindAlertHost
	KindAlertService
	KindStateHost
	KindStateHostInitial
	KindStateService
	KindStateServiceInitial
	KindDowntimeAlertHost
	KindDowntimeAlertService
	KindFlappingHost
	KindFlappingService
	KindTimeperiodTransition
)

func (k Kind) String() string {
	switch k {
	case KindCoreStarting:
		return "core_starting"
	case KindCoreStopping:
		return "core_stopping"
	case KindLogVersion:
		return "log_version"
	case KindLogInitialStates:
		return "log_initial_states"
	case KindAcknowledgeAlertHost:
		return "acknowledge_alert_host"
	case KindAcknowledgeAlertService:
		return "acknowledge_alert_service"
	case KindAlertHost:
		return "alert_host"
	case KindAlertService:
		return "alert_service"
	case KindStateHost:
		return "state_host"
	case KindStateHostInitial:
		return "state_host_initial"
	case KindStateService:
		return "state_service"
	case KindStateServiceInitial:
		return "state_service_initial"
	case KindDowntimeAlertHost:
		return "downtime_alert_host"
	case KindDowntimeAlertService:
		return "downtime_alert_service"
	case KindFlappingHost:
		return "flapping_host"
	case KindFlappingService:
		return "flapping_service"
	case KindTimeperiodTransition:
		return "timeperiod_transition"
	default:
		return "none"
	}
}

// Class is the coarse grouping LogEntryCursor filters on (spec.md §4.1):
// a file materialization keeps only entries whose class is
// alert ∪ program ∪ state. Log classes outside that set (notifications,
// passive checks, external commands) never become a LogEntry at all —
// see Parse's second return value.
type Class int

const (
	ClassProgram Class = iota
	ClassAlert
	ClassState
)

// Class reports which of the three classes LogEntryCursor keeps this kind
// belongs to.
func (k Kind) Class() Class {
	switch k {
	case KindStateHost, KindStateHostInitial, KindStateService, KindStateServiceInitial:
		return ClassState
	case KindAlertHost, KindAlertService, KindDowntimeAlertHost, KindDowntimeAlertService,
		KindFlappingHost, KindFlappingService, KindTimeperiodTransition,
		KindAcknowledgeAlertHost, KindAcknowledgeAlertService:
		return ClassAlert
	default:
		return ClassProgram
	}
}

// IsInitial reports whether k is one of the two "initial state" kinds that
// spec.md §4.3 handles without touching in_nagios_initial_states.
func (k Kind) IsInitial() bool {
	return k == KindStateHostInitial || k == KindStateServiceInitial
}

// IsHostLevel reports whether k carries a host-level subject. Service-level
// kinds carry both a host name and a service description.
func (k Kind) IsHostLevel() bool {
	switch k {
	case KindAcknowledgeAlertHost, KindAlertHost, KindStateHost, KindStateHostInitial,
		KindDowntimeAlertHost, KindFlappingHost:
		return true
	default:
		return false
	}
}

// LogEntry is one immutable record consumed by the replay engine
// (spec.md §3). State is -1 for unmonitored, 0..3 for OK/WARN/CRIT/UNKNOWN
// (services) or UP/DOWN/UNREACHABLE (hosts, 0..2 of the same range).
type LogEntry struct {
	Time               int64
	Lineno             int64
	Kind               Kind
	HostName           string
	ServiceDescription string
	State              int
	StateType          string
	PluginOutput       string
	LongPluginOutput   string
	Options            string
	Message            string
}

// IsHostLevel reports whether this entry's ServiceDescription is empty,
// i.e. the entry concerns a host, not one of its services.
func (e *LogEntry) IsHostLevel() bool {
	return e.ServiceDescription == ""
}

// IsStarted reports whether StateType begins with "STARTED", the textual
// test spec.md §3 prescribes for state_type (used for downtime/flapping
// START/STOP pairs).
func (e *LogEntry) IsStarted() bool {
	return len(e.StateType) >= len("STARTED") && e.StateType[:len("STARTED")] == "STARTED"
}
