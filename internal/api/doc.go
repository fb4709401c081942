// Package api is the HTTP query surface: run a replay over a window,
// report engine health, and expose Prometheus metrics. It is the
// ambient "column/row projection and query parser" stand-in needed to
// exercise the replay engine over the wire — a request is a query
// window plus an optional object filter, and the response is the
// engine's own emitted intervals, summarized and annotated, never
// reshaped into something the engine didn't actually produce.
package api
