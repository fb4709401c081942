// Package transition implements TransitionEngine (spec.md §4.5): the
// per-event state machine that mutates one ObjectState, emitting closed
// intervals on attribute changes, plus the revival and duration-
// decomposition ("process") mechanics spec.md §4.5/§4.8 describe. The
// Replayer (internal/replay) drives it: resolving registry identities,
// classifying entries, and handling the host→services cascade and the
// warm-up/emission phase split.
package transition
