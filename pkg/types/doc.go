// Package types defines the wire-level types shared by the replay engine,
// its sinks, and the HTTP query API. These are the types that cross a
// process boundary; the mutable in-memory state the engine replays against
// lives in internal/objectstate and is never exposed directly.
package types
