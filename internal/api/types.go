package api

import (
	"github.com/watchkeeper/history/internal/logsource"
	"github.com/watchkeeper/history/internal/summary"
	"github.com/watchkeeper/history/pkg/types"
)

// ReplayRequest is the body of POST /api/v1/replay. HostName and
// ServiceDescription are decoded but not applied: the response carries
// the intervals of every tracked object. HostNameFilter, if set, is compiled into a filter.Predicate matching
// on substring against host_name (spec.md §9's partial filter, reduced
// to the one column this surface exposes).
type ReplayRequest struct {
	HostName           string `json:"host_name,omitempty"`
	ServiceDescription string `json:"service_description,omitempty"`
	Since              int64  `json:"since"`
	Until              int64  `json:"until"`
	HostNameFilter     string `json:"host_name_filter,omitempty"`
}

// ReplayResponse is the payload for POST /api/v1/replay.
type ReplayResponse struct {
	Intervals        []types.Interval                 `json:"intervals"`
	Summary          map[string]summary.ObjectSummary `json:"summary"`
	Diagnostics      []DiagnosticHint                 `json:"diagnostics"`
	EntriesProcessed int                               `json:"entries_processed"`
	Aborted          bool                              `json:"aborted"`
}

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	Status          string                `json:"status"` // "ok" | "degraded"
	LogSourceOK     bool                  `json:"log_source_ok"`
	RegistryOK      bool                  `json:"registry_ok"`
	InFlightReplays int                   `json:"in_flight_replays"`
	ArchiveCert     *logsource.CertStatus `json:"archive_cert,omitempty"`
}

// errorResponse is a generic JSON error body — never the raw error
// string from an internal failure (spec.md §7).
type errorResponse struct {
	Error string `json:"error"`
}
