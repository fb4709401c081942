// Package logentry defines the log-entry kind taxonomy and the line-level
// parser that turns one raw monitoring-core log line into a LogEntry.
// Classification is the boundary between the on-disk log format (out of
// scope per the engine's purpose) and the replay core: everything downstream
// of Parse deals only in LogEntry values.
package logentry
