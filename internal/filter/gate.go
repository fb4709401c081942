package filter

import "github.com/watchkeeper/history/internal/objectstate"

// Identity is the "identity-only projection view" spec.md §9 prescribes:
// the only fields of a nascent ObjectState populated at insert_new_state
// time, and the only columns a partial filter is allowed to reference
// (host_name, service_description, and their current_* join aliases).
type Identity struct {
	HostName            string
	ServiceDescription   string
	CurrentHostName      string
	CurrentServiceDescription string
}

// Predicate is the query's partial filter, already restricted at
// query-parse time to the column subset Identity exposes.
type Predicate func(Identity) bool

// Gate evaluates Predicate against newly inserted service objects and
// remembers rejections so later events for the same key are dropped
// without re-evaluating the filter.
type Gate struct {
	predicate  Predicate
	blacklist  map[objectstate.Key]bool
}

// NewGate returns a Gate that keeps everything if predicate is nil.
func NewGate(predicate Predicate) *Gate {
	return &Gate{
		predicate: predicate,
		blacklist: make(map[objectstate.Key]bool),
	}
}

// Admit evaluates predicate against id for a newly inserted service key.
// Returns true if the object should be tracked. A false result
// blacklists key for the lifetime of the replay. Host-level keys must
// never be passed here (spec.md §4.4 "host-level entries are never
// filter-gated") — callers are responsible for only gating services.
func (g *Gate) Admit(key objectstate.Key, id Identity) bool {
	if g.predicate == nil || g.predicate(id) {
		return true
	}
	g.blacklist[key] = true
	return false
}

// Blacklisted reports whether key was previously rejected by Admit.
func (g *Gate) Blacklisted(key objectstate.Key) bool {
	return g.blacklist[key]
}
