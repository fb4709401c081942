package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/watchkeeper/history/internal/filter"
	"github.com/watchkeeper/history/internal/logsource"
	"github.com/watchkeeper/history/internal/metrics"
	"github.com/watchkeeper/history/internal/progress"
	"github.com/watchkeeper/history/internal/registry"
	"github.com/watchkeeper/history/internal/replay"
	"github.com/watchkeeper/history/internal/sink"
	"github.com/watchkeeper/history/internal/summary"
	"github.com/watchkeeper/history/pkg/types"
)

// ProgressReporter receives the Tracker of a newly started replay, and
// nil once it finishes. Wired to a *ws.Hub in cmd/historyd; nil in
// cmd/historyreplay and in tests where no hub is running.
type ProgressReporter interface {
	SetTracker(*progress.Tracker)
}

// Handler is the HTTP handler for /api/v1/* and /metrics. It owns no
// state of its own beyond bookkeeping for in-flight replays — every
// request builds a fresh replay.Replayer against the shared Source and
// Registry, per spec.md §5 ("never shared across replays").
type Handler struct {
	Source     logsource.Source
	Registry   registry.Registry
	Authorizer sink.Authorizer
	Metrics    *metrics.Registry
	Progress   ProgressReporter

	// ArchiveEndpoint/ArchiveAuth, if set, make GET /api/v1/health also
	// report the remote archive's leaf TLS certificate health.
	ArchiveEndpoint string
	ArchiveAuth     logsource.Auth

	MaxEntriesPerFile int
	sem               chan struct{}

	inFlight atomic.Int32
	mux      *http.ServeMux
}

// New wires a Handler and registers its routes. maxConcurrentReplays
// bounds how many POST /api/v1/replay requests run at once; additional
// requests block on the request's context until a slot frees.
func New(source logsource.Source, reg registry.Registry, authorizer sink.Authorizer,
	metricsReg *metrics.Registry, progressReporter ProgressReporter, maxConcurrentReplays int) *Handler {
	if authorizer == nil {
		authorizer = sink.AllowAll{}
	}
	if maxConcurrentReplays <= 0 {
		maxConcurrentReplays = 4
	}

	h := &Handler{
		Source:            source,
		Registry:          reg,
		Authorizer:        authorizer,
		Metrics:           metricsReg,
		Progress:          progressReporter,
		MaxEntriesPerFile: 1_000_000,
		sem:               make(chan struct{}, maxConcurrentReplays),
		mux:               http.NewServeMux(),
	}

	h.mux.HandleFunc("/api/v1/replay", h.handleReplay)
	h.mux.HandleFunc("/api/v1/health", h.handleHealth)
	if h.Metrics != nil {
		h.mux.HandleFunc("/metrics", h.handleMetrics)
	}

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleReplay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req ReplayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonErr(w, http.StatusBadRequest, "malformed request body")
		return
	}
	window := types.Period{Since: req.Since, Until: req.Until}
	if window.Empty() {
		jsonErr(w, http.StatusBadRequest, "since must be before until")
		return
	}

	select {
	case h.sem <- struct{}{}:
	case <-r.Context().Done():
		jsonErr(w, http.StatusRequestTimeout, "request cancelled while waiting for a replay slot")
		return
	}
	defer func() { <-h.sem }()

	h.inFlight.Add(1)
	defer h.inFlight.Add(-1)

	if h.Metrics != nil {
		h.Metrics.ReplayStarted()
	}

	collector := &intervalCollector{}
	tracker := progress.New()
	if h.Progress != nil {
		h.Progress.SetTracker(tracker)
		defer h.Progress.SetTracker(nil)
	}

	rp := replay.New(h.Source, h.Registry, collector, h.Authorizer)
	result, err := rp.Replay(r.Context(), replay.Options{
		Window:            window,
		MaxEntriesPerFile: h.MaxEntriesPerFile,
		Filter:            buildPredicate(req),
		Progress:          tracker,
	})

	if h.Metrics != nil {
		h.Metrics.ReplayFinished(result.EntriesProcessed, result.IntervalsEmitted, result.Aborted)
	}

	if err != nil {
		jsonErr(w, http.StatusInternalServerError, "replay failed")
		return
	}

	intervals := collector.intervals
	byKey := byObjectKey(intervals)
	grouped := make(map[string]summary.ObjectSummary, len(byKey))
	diagnostics := make([]DiagnosticHint, 0)
	for key, ivs := range byKey {
		s := summary.Summarize(ivs)
		grouped[key] = s
		diagnostics = append(diagnostics, computeDiagnostics(key, ivs, s)...)
	}

	jsonResp(w, http.StatusOK, ReplayResponse{
		Intervals:        intervals,
		Summary:          grouped,
		Diagnostics:      diagnostics,
		EntriesProcessed: result.EntriesProcessed,
		Aborted:          result.Aborted,
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	resp := HealthResponse{
		LogSourceOK:     h.checkLogSource(r.Context()),
		RegistryOK:      h.checkRegistry(),
		InFlightReplays: int(h.inFlight.Load()),
	}
	if h.ArchiveEndpoint != "" {
		resp.ArchiveCert = logsource.CheckCert(r.Context(), h.ArchiveEndpoint, h.ArchiveAuth)
	}
	resp.Status = "ok"
	if !resp.LogSourceOK || !resp.RegistryOK {
		resp.Status = "degraded"
	}
	jsonResp(w, http.StatusOK, resp)
}

func (h *Handler) checkLogSource(ctx context.Context) bool {
	if h.Source == nil {
		return false
	}
	_, err := h.Source.List(ctx)
	return err == nil
}

func (h *Handler) checkRegistry() bool {
	return h.Registry != nil
}

func (h *Handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	if err := h.Metrics.Encode(w); err != nil {
		jsonErr(w, http.StatusInternalServerError, "failed to encode metrics")
	}
}

// buildPredicate compiles ReplayRequest.HostNameFilter into the one
// filter.Predicate this HTTP surface exposes — a case-insensitive
// substring match against host_name (spec.md §9's partial filter,
// reduced to the single column a REST body can carry).
func buildPredicate(req ReplayRequest) filter.Predicate {
	if req.HostNameFilter == "" {
		return nil
	}
	needle := strings.ToLower(req.HostNameFilter)
	return func(id filter.Identity) bool {
		return strings.Contains(strings.ToLower(id.HostName), needle)
	}
}

// intervalCollector is a sink.Emitter that accumulates every interval
// the engine hands it for the HTTP response to serialize whole. The
// engine itself already applies Authorizer before calling Emit (spec.md
// §4.3), so this never re-checks authorization. It never requests an
// abort.
type intervalCollector struct {
	mu        sync.Mutex
	intervals []types.Interval
}

func (c *intervalCollector) Emit(iv types.Interval) bool {
	c.mu.Lock()
	c.intervals = append(c.intervals, iv)
	c.mu.Unlock()
	return true
}

func byObjectKey(intervals []types.Interval) map[string][]types.Interval {
	out := make(map[string][]types.Interval)
	for _, iv := range intervals {
		key := readableKey(iv)
		out[key] = append(out[key], iv)
	}
	return out
}

func readableKey(iv types.Interval) string {
	if iv.IsHost {
		return iv.HostName
	}
	return fmt.Sprintf("%s/%s", iv.HostName, iv.ServiceDescription)
}

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}
