package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/watchkeeper/history/pkg/types"
)

const (
	backoffInitial    = 1 * time.Second
	backoffMax        = 60 * time.Second
	backoffMultiplier = 2.0
	sendTimeout       = 10 * time.Second

	defaultBatchSize = 100
)

// Shipper buffers emitted intervals and ships them in batches to an
// external HTTP archival endpoint. Emit is non-blocking: it accumulates
// intervals into the current batch and hands a full batch off to a
// bounded channel, evicting the oldest buffered batch when the channel
// is full (spec.md §6 "bounded buffer that drops the oldest batch under
// sustained failure"). Run drains that channel, retrying each batch with
// exponential backoff until it sends or the context is cancelled.
type Shipper struct {
	endpoint string
	key      string
	client   *http.Client

	batchSize int
	buf       chan []types.Interval

	mu      sync.Mutex
	pending []types.Interval
}

// NewShipper returns a Shipper posting batches to endpoint, authenticated
// with key (sent as the x-api-key header; empty disables it). bufferSize
// bounds the number of in-flight batches held before the oldest is
// evicted.
func NewShipper(endpoint, key string, bufferSize int) *Shipper {
	return &Shipper{
		endpoint:  endpoint,
		key:       key,
		client:    &http.Client{Timeout: sendTimeout},
		batchSize: defaultBatchSize,
		buf:       make(chan []types.Interval, bufferSize),
	}
}

// Emit appends iv to the current batch, enqueuing it once it reaches
// batchSize. Always returns true — delivery failures never abort a
// replay.
func (s *Shipper) Emit(iv types.Interval) bool {
	s.mu.Lock()
	s.pending = append(s.pending, iv)
	var full []types.Interval
	if len(s.pending) >= s.batchSize {
		full, s.pending = s.pending, nil
	}
	s.mu.Unlock()

	if full != nil {
		s.enqueue(full)
	}
	return true
}

// Flush enqueues any partially-filled batch. Callers invoke this once
// after a replay completes so its tail interval isn't held back waiting
// for a full batch.
func (s *Shipper) Flush() {
	s.mu.Lock()
	batch := s.pending
	s.pending = nil
	s.mu.Unlock()

	if len(batch) > 0 {
		s.enqueue(batch)
	}
}

func (s *Shipper) enqueue(batch []types.Interval) {
	select {
	case s.buf <- batch:
	default:
		select {
		case <-s.buf:
			slog.Warn("sink: shipper buffer full, evicted oldest batch",
				"buffer_cap", cap(s.buf))
		default:
		}
		s.buf <- batch
	}
}

// Run drains buffered batches, sending each to endpoint. A failed send
// retries the same batch with exponential backoff rather than dropping
// it outright; sustained failure still loses data once enqueue's
// eviction kicks in. Run blocks until ctx is cancelled.
func (s *Shipper) Run(ctx context.Context) {
	bo := newBackoff()

	for {
		select {
		case <-ctx.Done():
			return

		case batch := <-s.buf:
			for {
				if err := s.send(ctx, batch); err != nil {
					if ctx.Err() != nil {
						return
					}
					wait := bo.next()
					slog.Warn("sink: shipper send failed, retrying",
						"err", err, "batch_size", len(batch), "retry_in", wait)
					select {
					case <-ctx.Done():
						return
					case <-time.After(wait):
					}
					continue
				}
				bo.reset()
				break
			}
		}
	}
}

func (s *Shipper) send(ctx context.Context, batch []types.Interval) error {
	body, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("marshal batch: %w", err)
	}

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(sendCtx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.key != "" {
		req.Header.Set("x-api-key", s.key)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("http post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("archive endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

// backoff implements truncated exponential backoff with jitter.
type backoff struct {
	current time.Duration
}

func newBackoff() *backoff {
	return &backoff{current: backoffInitial}
}

func (b *backoff) next() time.Duration {
	d := b.current
	jitter := time.Duration(float64(b.current) * 0.25 * (rand.Float64()*2 - 1)) //nolint:gosec // not crypto
	d += jitter
	if d < 0 {
		d = 0
	}

	b.current = time.Duration(float64(b.current) * backoffMultiplier)
	if b.current > backoffMax {
		b.current = backoffMax
	}
	return d
}

func (b *backoff) reset() {
	b.current = backoffInitial
}
