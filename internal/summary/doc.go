// Package summary folds a completed replay's emitted intervals for one
// object into an ObjectSummary: duration per state, a weighted
// availability score, and counts of state changes, downtime, and
// flapping (spec.md §4.12, supplemental — not part of the distilled
// spec.md).
//
// This is read-only post-processing over intervals the engine already
// emitted. It never feeds back into a replay and persists nothing.
package summary
