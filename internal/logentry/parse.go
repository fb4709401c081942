package logentry

import (
	"strconv"
	"strings"
)

// Parse converts one raw monitoring-core log line into a LogEntry. lineno is
// the caller-assigned, monotonic-within-file line number (spec.md §3).
//
// The on-disk log format itself is an external collaborator's concern (out
// of scope per spec.md §1); Parse implements one concrete, line-oriented
// format so the rest of the engine has something real to replay against:
//
//	[<unix_seconds>] <PREFIX>: <field>;<field>;...
//
// ok is false when the line's class falls outside alert ∪ program ∪ state
// (spec.md §4.1) — e.g. notification or passive-check lines in the real
// log format — or when the line cannot be parsed at all. Such lines never
// become a LogEntry and are invisible to everything downstream.
func Parse(raw string, lineno int64) (LogEntry, bool) {
	line := strings.TrimSpace(raw)
	if len(line) == 0 || line[0] != '[' {
		return LogEntry{}, false
	}
	end := strings.IndexByte(line, ']')
	if end < 0 {
		return LogEntry{}, false
	}
	ts, err := strconv.ParseInt(line[1:end], 10, 64)
	if err != nil {
		return LogEntry{}, false
	}

	rest := strings.TrimSpace(line[end+1:])
	sep := strings.Index(rest, ": ")
	if sep < 0 {
		return LogEntry{}, false
	}
	prefix := rest[:sep]
	payload := rest[sep+2:]
	fields := strings.Split(payload, ";")

	e := LogEntry{Time: ts, Lineno: lineno}

	switch prefix {
	case "CORE STARTING":
		e.Kind = KindCoreStarting
		e.Message = payload
	case "CORE STOPPING":
		e.Kind = KindCoreStopping
		e.Message = payload
	case "LOG VERSION":
		e.Kind = KindLogVersion
		e.Message = payload
	case "LOG INITIAL STATES":
		e.Kind = KindLogInitialStates
		e.Message = payload
	case "NOTE":
		e.Kind = KindNone
		e.Message = payload

	case "HOST ALERT":
		if len(fields) < 5 {
			return LogEntry{}, false
		}
		e.Kind = KindAlertHost
		e.HostName = fields[0]
		e.State, e.StateType = parseState(fields[1]), fields[2]
		e.PluginOutput = fields[4]
		if len(fields) > 5 {
			e.LongPluginOutput = fields[5]
		}
	case "SERVICE ALERT":
		if len(fields) < 6 {
			return LogEntry{}, false
		}
		e.Kind = KindAlertService
		e.HostName, e.ServiceDescription = fields[0], fields[1]
		e.State, e.StateType = parseState(fields[2]), fields[3]
		e.PluginOutput = fields[5]
		if len(fields) > 6 {
			e.LongPluginOutput = fields[6]
		}

	case "INITIAL HOST STATE", "CURRENT HOST STATE":
		if len(fields) < 5 {
			return LogEntry{}, false
		}
		if prefix == "INITIAL HOST STATE" {
			e.Kind = KindStateHostInitial
		} else {
			e.Kind = KindStateHost
		}
		e.HostName = fields[0]
		e.State, e.StateType = parseState(fields[1]), fields[2]
		e.PluginOutput = fields[4]
	case "INITIAL SERVICE STATE", "CURRENT SERVICE STATE":
		if len(fields) < 6 {
			return LogEntry{}, false
		}
		if prefix == "INITIAL SERVICE STATE" {
			e.Kind = KindStateServiceInitial
		} else {
			e.Kind = KindStateService
		}
		e.HostName, e.ServiceDescription = fields[0], fields[1]
		e.State, e.StateType = parseState(fields[2]), fields[3]
		e.PluginOutput = fields[5]

	case "HOST DOWNTIME ALERT":
		if len(fields) < 2 {
			return LogEntry{}, false
		}
		e.Kind = KindDowntimeAlertHost
		e.HostName = fields[0]
		e.StateType = fields[1]
		if len(fields) > 2 {
			e.Message = fields[2]
		}
	case "SERVICE DOWNTIME ALERT":
		if len(fields) < 3 {
			return LogEntry{}, false
		}
		e.Kind = KindDowntimeAlertService
		e.HostName, e.ServiceDescription = fields[0], fields[1]
		e.StateType = fields[2]
		if len(fields) > 3 {
			e.Message = fields[3]
		}

	case "HOST FLAPPING ALERT":
		if len(fields) < 2 {
			return LogEntry{}, false
		}
		e.Kind = KindFlappingHost
		e.HostName = fields[0]
		e.StateType = fields[1]
		if len(fields) > 2 {
			e.Message = fields[2]
		}
	case "SERVICE FLAPPING ALERT":
		if len(fields) < 3 {
			return LogEntry{}, false
		}
		e.Kind = KindFlappingService
		e.HostName, e.ServiceDescription = fields[0], fields[1]
		e.StateType = fields[2]
		if len(fields) > 3 {
			e.Message = fields[3]
		}

	case "HOST ACKNOWLEDGE ALERT":
		if len(fields) < 1 {
			return LogEntry{}, false
		}
		e.Kind = KindAcknowledgeAlertHost
		e.HostName = fields[0]
		if len(fields) > 1 {
			e.Message = fields[1]
		}
	case "SERVICE ACKNOWLEDGE ALERT":
		if len(fields) < 2 {
			return LogEntry{}, false
		}
		e.Kind = KindAcknowledgeAlertService
		e.HostName, e.ServiceDescription = fields[0], fields[1]
		if len(fields) > 2 {
			e.Message = fields[2]
		}

	case "TIMEPERIOD TRANSITION":
		e.Kind = KindTimeperiodTransition
		e.Options = payload

	default:
		return LogEntry{}, false
	}

	return e, true
}

// parseState converts a state field to the engine's integer convention.
// Unparseable values default to unmonitored (-1) rather than failing the
// whole line — a single corrupt field should not sink an otherwise useful
// entry.
func parseState(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return -1
	}
	return n
}
