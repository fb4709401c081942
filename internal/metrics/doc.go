// Package metrics instruments a running historyd process and encodes the
// result as Prometheus text exposition. It runs the teacher's Prometheus
// stack (client_model + common/expfmt) in reverse: where
// agent/internal/scraper parses a remote exposition into MetricFamily
// values, this package builds MetricFamily values from in-process
// counters and encodes them for /metrics to serve.
package metrics
