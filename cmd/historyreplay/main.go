// Command historyreplay runs a single replay over a log directory and
// writes the emitted intervals to stdout, one JSON object per line.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/watchkeeper/history/internal/logsource"
	"github.com/watchkeeper/history/internal/registry"
	"github.com/watchkeeper/history/internal/replay"
	"github.com/watchkeeper/history/internal/sink"
	"github.com/watchkeeper/history/pkg/types"
)

func main() {
	dir := flag.String("dir", ".", "directory of append-only monitoring log files")
	glob := flag.String("glob", "*.log", "glob pattern restricting which files in -dir are log files")
	since := flag.Int64("since", 0, "query window start, unix seconds")
	until := flag.Int64("until", 0, "query window end, unix seconds (exclusive)")
	maxLines := flag.Int("max-lines-per-file", 1_000_000, "cap on entries kept from a single log file (soft truncation; 0 means unlimited)")
	archiveEndpoint := flag.String("archive-endpoint", "", "if set, also ship emitted intervals to this HTTP archive endpoint")
	archiveKey := flag.String("archive-key", "", "x-api-key header value for -archive-endpoint")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	src := &logsource.Local{Dir: *dir, Glob: *glob}
	reg := registry.NewStatic()

	out := sink.NewJSONL(os.Stdout)
	var emitter sink.Emitter = out
	var shipper *sink.Shipper

	if *archiveEndpoint != "" {
		shipper = sink.NewShipper(*archiveEndpoint, *archiveKey, 64)
		go shipper.Run(ctx)
		emitter = teeEmitter{primary: out, secondary: shipper}
	}

	r := replay.New(src, reg, emitter, sink.AllowAll{})
	result, err := r.Replay(ctx, replay.Options{
		Window:            types.Period{Since: *since, Until: *until},
		MaxEntriesPerFile: *maxLines,
	})
	if shipper != nil {
		shipper.Flush()
	}
	if err != nil {
		slog.Error("replay failed", "err", err)
		os.Exit(1)
	}

	slog.Info("replay finished",
		"entries_processed", result.EntriesProcessed,
		"intervals_emitted", result.IntervalsEmitted,
		"aborted", result.Aborted,
	)
}

// teeEmitter fans an emitted interval out to both stdout JSONL output
// and the archive shipper, so -archive-endpoint is additive rather than
// a replacement for the usual stdout stream.
type teeEmitter struct {
	primary   sink.Emitter
	secondary sink.Emitter
}

func (t teeEmitter) Emit(iv types.Interval) bool {
	ok := t.primary.Emit(iv)
	t.secondary.Emit(iv)
	return ok
}
