package sink

import (
	"encoding/json"
	"io"
	"log/slog"
	"sync"

	"github.com/watchkeeper/history/pkg/types"
)

// JSONL emits one JSON-encoded types.Interval per line to an io.Writer.
// Used by cmd/historyreplay, where stdout is the delivery target.
type JSONL struct {
	mu sync.Mutex
	w  io.Writer
	enc *json.Encoder
}

// NewJSONL returns a JSONL writing to w.
func NewJSONL(w io.Writer) *JSONL {
	return &JSONL{w: w, enc: json.NewEncoder(w)}
}

// Emit writes iv as one JSON line. A write error logs and requests abort.
func (j *JSONL) Emit(iv types.Interval) bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := j.enc.Encode(iv); err != nil {
		slog.Error("sink: jsonl write failed, aborting replay", "err", err)
		return false
	}
	return true
}
