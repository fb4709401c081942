// Package sink defines the engine's two consumed sink interfaces
// (spec.md §6 Emitter/Authorizer) plus the concrete Emitter
// implementations this module ships: JSONL, for one-shot CLI use, and
// Shipper, for batched HTTP delivery to an external archive.
package sink
