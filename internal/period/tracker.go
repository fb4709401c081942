package period

import (
	"strconv"
	"strings"
)

// Tracker is PeriodTracker: a name→active(0/1) map, updated by
// TIMEPERIOD TRANSITION log entries and consulted to seed/update
// in_notification_period and in_service_period on an ObjectState.
type Tracker struct {
	active map[string]bool
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{active: make(map[string]bool)}
}

// Active reports whether name is currently active. A name never seen in
// a TIMEPERIOD TRANSITION defaults to active (spec.md §4.6 "unknown
// names default to 1").
func (t *Tracker) Active(name string) bool {
	v, ok := t.active[name]
	if !ok {
		return true
	}
	return v
}

// Apply parses a TIMEPERIOD TRANSITION payload of the form
// "<name>;<from>;<to>" and records name := to. Returns the transitioned
// name and its new value, and false if the payload doesn't parse — the
// caller is expected to log a warning and otherwise ignore the entry
// (spec.md §7 "ignored data errors").
func (t *Tracker) Apply(payload string) (name string, value bool, ok bool) {
	fields := strings.Split(payload, ";")
	if len(fields) != 3 {
		return "", false, false
	}

	name = fields[0]
	if name == "" {
		return "", false, false
	}

	if _, err := strconv.Atoi(fields[1]); err != nil {
		return "", false, false
	}

	to, err := strconv.Atoi(fields[2])
	if err != nil {
		return "", false, false
	}
	if to != 0 && to != 1 {
		return "", false, false
	}

	value = to == 1
	t.active[name] = value
	return name, value, true
}
