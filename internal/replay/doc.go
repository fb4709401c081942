// Package replay implements the Replayer (spec.md §4.3): the top-level
// driver that walks the LogEntryCursor, classifies each entry, dispatches
// it to the TransitionEngine per spec.md's dispatch table, manages the
// warm-up/emission phase split, the in_nagios_initial_states bookkeeping,
// the host→services cascade, and finalization.
package replay
