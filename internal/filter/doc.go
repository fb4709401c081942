// Package filter implements FilterGate (spec.md §4.4): evaluating the
// query's partial filter against a nascent ObjectState to blacklist
// uninteresting service objects before the engine spends any further
// work tracking them. Host-level entries are never filter-gated.
package filter
