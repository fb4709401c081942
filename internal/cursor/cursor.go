package cursor

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"

	"github.com/watchkeeper/history/internal/logentry"
	"github.com/watchkeeper/history/internal/logsource"
)

// Cursor is LogEntryCursor (spec.md §4.1): holds an ordered collection of
// log files, a pointer into that collection, a buffer of entries from
// the current file, and a pointer into that buffer. Next re-materializes
// the buffer from the next file once the current one is exhausted.
type Cursor struct {
	source logsource.Source
	files  []logsource.LogFile

	fileIdx int
	buf     []logentry.LogEntry
	bufIdx  int

	// MaxEntriesPerFile is a soft truncation: materialize stops reading a
	// file's lines once it has kept this many entries. Zero means
	// unlimited.
	MaxEntriesPerFile int
}

// New returns a Cursor over files, starting materialization at
// files[startIdx]. Use locator.Locate to compute startIdx.
func New(ctx context.Context, source logsource.Source, files []logsource.LogFile, startIdx int, maxEntriesPerFile int) (*Cursor, error) {
	c := &Cursor{
		source:            source,
		files:             files,
		fileIdx:           startIdx,
		MaxEntriesPerFile: maxEntriesPerFile,
	}
	if startIdx < len(files) {
		if err := c.materialize(ctx, files[startIdx]); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Next returns the next entry, advancing across files as needed. Returns
// (zero, false, nil) once every file is exhausted.
func (c *Cursor) Next(ctx context.Context) (logentry.LogEntry, bool, error) {
	for c.bufIdx >= len(c.buf) {
		c.fileIdx++
		if c.fileIdx >= len(c.files) {
			return logentry.LogEntry{}, false, nil
		}
		if err := c.materialize(ctx, c.files[c.fileIdx]); err != nil {
			return logentry.LogEntry{}, false, err
		}
	}
	e := c.buf[c.bufIdx]
	c.bufIdx++
	return e, true, nil
}

// materialize loads one file's alert/program/state entries into buf.
func (c *Cursor) materialize(ctx context.Context, f logsource.LogFile) error {
	rc, err := c.source.Open(ctx, f)
	if err != nil {
		return fmt.Errorf("cursor: open %q: %w", f.Name, err)
	}
	defer rc.Close()

	c.buf = c.buf[:0]
	c.bufIdx = 0

	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	var lineno int64
	for scanner.Scan() {
		lineno++
		if c.MaxEntriesPerFile > 0 && len(c.buf) >= c.MaxEntriesPerFile {
			slog.Warn("cursor: truncating file at max_lines_per_log_file",
				"file", f.Name, "limit", c.MaxEntriesPerFile)
			break
		}
		e, ok := logentry.Parse(scanner.Text(), lineno)
		if !ok {
			continue
		}
		switch e.Kind.Class() {
		case logentry.ClassAlert, logentry.ClassProgram, logentry.ClassState:
			c.buf = append(c.buf, e)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("cursor: scan %q: %w", f.Name, err)
	}
	return nil
}
