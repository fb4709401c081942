// Package logsource discovers and opens the append-only monitoring log
// files the replay engine reads. It implements the part of spec.md §4.1/
// §4.2 that the distilled spec assumes already exists: an ordered
// collection of log files with increasing Since timestamps.
//
// Two backends satisfy Source: Local (scans a directory on disk — the
// only backend spec.md assumes) and HTTPArchive (fetches a remote,
// read-only archive of rotated logs over HTTP, for deployments that ship
// logs to object storage behind an HTTP façade instead of local disk).
package logsource
