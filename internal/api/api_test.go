package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/watchkeeper/history/internal/logsource"
	"github.com/watchkeeper/history/internal/registry"
	"github.com/watchkeeper/history/internal/sink"
)

type oneFileSource struct {
	contents string
}

func (s oneFileSource) List(ctx context.Context) ([]logsource.LogFile, error) {
	return []logsource.LogFile{{Name: "only.log", Since: 0}}, nil
}

func (s oneFileSource) Open(ctx context.Context, f logsource.LogFile) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(s.contents)), nil
}

func newTestHandler(src logsource.Source) *Handler {
	reg := registry.NewStatic()
	reg.AddHost(registry.StaticHost{HostName: "myhost"})
	reg.AddService(registry.StaticService{Host: "myhost", Desc: "mysql"})
	return New(src, reg, sink.AllowAll{}, nil, nil, 2)
}

func TestHandleReplay_ReturnsIntervalsAndSummary(t *testing.T) {
	src := oneFileSource{contents: strings.Join([]string{
		"[50] INITIAL SERVICE STATE: myhost;mysql;0;HARD;1;ok",
		"[150] SERVICE ALERT: myhost;mysql;2;HARD;1;bad",
	}, "\n")}
	h := newTestHandler(src)

	body, _ := json.Marshal(ReplayRequest{Since: 100, Until: 200})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/replay", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp ReplayResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Intervals) != 2 {
		t.Fatalf("got %d intervals, want 2: %+v", len(resp.Intervals), resp.Intervals)
	}
	s, ok := resp.Summary["myhost/mysql"]
	if !ok {
		t.Fatalf("summary missing myhost/mysql key: %+v", resp.Summary)
	}
	if s.StateChanges != 1 {
		t.Fatalf("summary.StateChanges = %d, want 1", s.StateChanges)
	}
}

func TestHandleReplay_RejectsEmptyWindow(t *testing.T) {
	h := newTestHandler(oneFileSource{})

	body, _ := json.Marshal(ReplayRequest{Since: 200, Until: 100})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/replay", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleReplay_RejectsWrongMethod(t *testing.T) {
	h := newTestHandler(oneFileSource{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/replay", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestHandleHealth_ReportsOK(t *testing.T) {
	h := newTestHandler(oneFileSource{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Status != "ok" || !resp.LogSourceOK || !resp.RegistryOK {
		t.Fatalf("health response = %+v", resp)
	}
}

func TestHandleReplay_HostNameFilterExcludesNonMatches(t *testing.T) {
	src := oneFileSource{contents: strings.Join([]string{
		"[50] INITIAL SERVICE STATE: myhost;mysql;0;HARD;1;ok",
	}, "\n")}
	h := newTestHandler(src)

	body, _ := json.Marshal(ReplayRequest{Since: 0, Until: 200, HostNameFilter: "nomatch"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/replay", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp ReplayResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Intervals) != 0 {
		t.Fatalf("got %d intervals, want 0 (filtered out): %+v", len(resp.Intervals), resp.Intervals)
	}
}
