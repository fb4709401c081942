package objectstate

// Table owns every State for one replay, keyed by its identity Key. It
// also tracks host→services back-links (spec.md §3 "relational"): a
// host's State.Services holds the keys of its known services, resolved
// against this Table on each access rather than held as pointers, so
// that no destructive update to one object can dangle a reference held
// by another (spec.md §9).
//
// A Table is exclusively owned by a single replay and is never shared
// across replays (spec.md §5).
type Table struct {
	byKey map[Key]*State
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{byKey: make(map[Key]*State)}
}

// Get returns the State for key, if tracked.
func (t *Table) Get(key Key) (*State, bool) {
	s, ok := t.byKey[key]
	return s, ok
}

// Insert adds a new State under key. If key is a service, it is appended
// to its host's back-link list (when the host is already tracked); if
// key is a host, every already-tracked service whose HostName matches is
// collected into the new host's back-link list (spec.md §4.5
// insert_new_state: "for a new host, collect existing services whose
// host matches; for a new service, append to its host's back-links if
// present").
func (t *Table) Insert(key Key, s *State) {
	t.byKey[key] = s

	if s.IsHost {
		for k, other := range t.byKey {
			if k == key || other.IsHost {
				continue
			}
			if other.HostName == s.HostName {
				s.addService(k)
			}
		}
		return
	}

	if host, ok := t.byKey[s.HostKey]; ok && s.HostKey != "" {
		host.addService(key)
	}
}

// Host resolves a service State's owning host, if tracked. Returns
// (nil, false) for a host State or an untracked/zero HostKey.
func (t *Table) Host(s *State) (*State, bool) {
	if s.IsHost || s.HostKey == "" {
		return nil, false
	}
	host, ok := t.byKey[s.HostKey]
	return host, ok
}

// Services resolves a host State's back-linked services, skipping any
// key that no longer resolves (defensive; within one replay no object is
// ever destroyed, so this should never drop a live service).
func (t *Table) Services(host *State) []*State {
	out := make([]*State, 0, len(host.Services))
	for _, k := range host.Services {
		if s, ok := t.byKey[k]; ok {
			out = append(out, s)
		}
	}
	return out
}

// All returns every tracked State. Order is unspecified; callers that
// need determinism (finalization) should sort by key/name themselves.
func (t *Table) All() []*State {
	out := make([]*State, 0, len(t.byKey))
	for _, s := range t.byKey {
		out = append(out, s)
	}
	return out
}

// Len reports how many objects are tracked.
func (t *Table) Len() int {
	return len(t.byKey)
}
