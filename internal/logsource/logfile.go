package logsource

import (
	"context"
	"io"
)

// LogFile is one log file's identity and the wall-clock time of its first
// entry. WindowLocator and LogEntryCursor require the file collection to
// be ordered by ascending Since (spec.md §4.1).
type LogFile struct {
	// Name identifies the file to Source.Open. For Local this is the
	// filesystem path; for HTTPArchive it is the archive-relative key.
	Name string

	// Since is the timestamp of the file's first entry, in seconds. If a
	// file is empty or unparseable its Since falls back to the file's
	// modification time, so file ordering stays stable even across a
	// truncated or corrupt rotation.
	Since int64
}

// Source discovers and opens log files. It is read-only: the replay
// engine never writes, renames, or deletes anything a Source exposes.
type Source interface {
	// List returns all known log files ordered by ascending Since. An
	// empty, nil-error result means "no log files" (spec.md §7,
	// empty-result condition), not an error.
	List(ctx context.Context) ([]LogFile, error)

	// Open returns a reader over f's raw lines. The caller closes it.
	Open(ctx context.Context, f LogFile) (io.ReadCloser, error)
}
