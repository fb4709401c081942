// Package registry defines the monitored-object registry interface the
// replay engine consumes read-only (spec.md §6), plus Static, an
// in-memory reference implementation used by tests and the demo mode of
// cmd/historyreplay and cmd/historyd.
//
// A production deployment supplies its own Registry backed by the live
// monitoring core; this package does not prescribe how that registry is
// populated.
package registry
