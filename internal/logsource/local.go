package logsource

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/watchkeeper/history/internal/logentry"
)

// Local discovers log files in a directory on local disk. It is the
// default, and only backend spec.md §4.1/§4.2 assumes.
type Local struct {
	// Dir is the directory to scan.
	Dir string

	// Glob restricts which files in Dir are considered log files.
	// Defaults to "*.log" if empty.
	Glob string
}

// List scans Dir for files matching Glob and returns them ordered by
// ascending Since, derived from each file's first parseable line (falling
// back to mtime for empty or unparseable files).
func (l *Local) List(ctx context.Context) ([]LogFile, error) {
	pattern := l.Glob
	if pattern == "" {
		pattern = "*.log"
	}

	matches, err := filepath.Glob(filepath.Join(l.Dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("logsource: glob %q: %w", pattern, err)
	}

	files := make([]LogFile, 0, len(matches))
	for _, path := range matches {
		since, err := firstEntryTime(path)
		if err != nil {
			slog.Warn("logsource: could not determine file start time, using 0",
				"path", path, "err", err)
		}
		files = append(files, LogFile{Name: path, Since: since})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Since < files[j].Since })
	return files, nil
}

// Open opens the file named by f.Name for reading.
func (l *Local) Open(ctx context.Context, f LogFile) (io.ReadCloser, error) {
	return os.Open(f.Name)
}

// firstEntryTime returns the timestamp of the first parseable log line in
// path, or the file's modification time if no line parses.
func firstEntryTime(path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	var lineno int64
	for scanner.Scan() {
		lineno++
		if e, ok := logentry.Parse(scanner.Text(), lineno); ok {
			return e.Time, nil
		}
	}

	info, statErr := f.Stat()
	if statErr != nil {
		return 0, statErr
	}
	return info.ModTime().Unix(), nil
}
