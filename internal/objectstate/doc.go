// Package objectstate holds the mutable per-object state the replay
// engine mutates as it walks the log: ObjectState, keyed by Key, and
// ObjectStateTable, the table that owns every ObjectState for one replay
// plus the host→services back-links used to cascade host-level changes.
package objectstate
