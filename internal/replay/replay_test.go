package replay

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/watchkeeper/history/internal/filter"
	"github.com/watchkeeper/history/internal/logsource"
	"github.com/watchkeeper/history/internal/registry"
	"github.com/watchkeeper/history/internal/sink"
	"github.com/watchkeeper/history/pkg/types"
)

// oneFileSource serves a single in-memory log file, which is all these
// literal scenarios (spec.md §8) need.
type oneFileSource struct {
	contents string
	since    int64
}

func (s oneFileSource) List(ctx context.Context) ([]logsource.LogFile, error) {
	return []logsource.LogFile{{Name: "only.log", Since: s.since}}, nil
}

func (s oneFileSource) Open(ctx context.Context, f logsource.LogFile) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(s.contents)), nil
}

type captureEmitter struct {
	intervals []types.Interval
}

func (c *captureEmitter) Emit(iv types.Interval) bool {
	c.intervals = append(c.intervals, iv)
	return true
}

func (c *captureEmitter) byService(desc string) []types.Interval {
	var out []types.Interval
	for _, iv := range c.intervals {
		if iv.ServiceDescription == desc {
			out = append(out, iv)
		}
	}
	return out
}

// Scenario 1: single clean service.
func TestReplay_SingleCleanService(t *testing.T) {
	src := oneFileSource{since: 0, contents: strings.Join([]string{
		"[50] INITIAL SERVICE STATE: myhost;mysql;0;HARD;1;ok",
		"[150] SERVICE ALERT: myhost;mysql;2;HARD;1;bad",
	}, "\n")}

	reg := registry.NewStatic()
	reg.AddHost(registry.StaticHost{HostName: "myhost"})
	reg.AddService(registry.StaticService{Host: "myhost", Desc: "mysql"})

	emitter := &captureEmitter{}
	r := New(src, reg, emitter, sink.AllowAll{})

	result, err := r.Replay(context.Background(), Options{Window: types.Period{Since: 100, Until: 200}})
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if result.Aborted {
		t.Fatal("unexpected abort")
	}

	ivs := emitter.byService("mysql")
	if len(ivs) != 2 {
		t.Fatalf("got %d intervals, want 2: %+v", len(ivs), ivs)
	}
	if ivs[0].From != 100 || ivs[0].Until != 150 || ivs[0].State != types.StateOK {
		t.Fatalf("interval 0: %+v", ivs[0])
	}
	if ivs[1].From != 150 || ivs[1].Until != 199 || ivs[1].State != types.StateCritical {
		t.Fatalf("interval 1: %+v", ivs[1])
	}
	if ivs[0].DurationOK != 50 || ivs[1].DurationCritical != 49 {
		t.Fatalf("duration decomposition: %+v / %+v", ivs[0], ivs[1])
	}
}

// Scenario 2: host cascade.
func TestReplay_HostCascade(t *testing.T) {
	src := oneFileSource{since: 0, contents: strings.Join([]string{
		"[10] INITIAL HOST STATE: H;0;HARD;1;up",
		"[20] INITIAL SERVICE STATE: H;S1;0;HARD;1;ok",
		"[21] INITIAL SERVICE STATE: H;S2;0;HARD;1;ok",
		"[100] HOST ALERT: H;1;HARD;1;down",
	}, "\n")}

	reg := registry.NewStatic()
	reg.AddHost(registry.StaticHost{HostName: "H"})
	reg.AddService(registry.StaticService{Host: "H", Desc: "S1"})
	reg.AddService(registry.StaticService{Host: "H", Desc: "S2"})

	emitter := &captureEmitter{}
	r := New(src, reg, emitter, sink.AllowAll{})

	_, err := r.Replay(context.Background(), Options{Window: types.Period{Since: 0, Until: 1000}})
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}

	for _, desc := range []string{"S1", "S2"} {
		ivs := emitter.byService(desc)
		if len(ivs) != 2 {
			t.Fatalf("%s: got %d intervals, want 2: %+v", desc, len(ivs), ivs)
		}
		if ivs[0].Until != 100 || ivs[0].HostDown {
			t.Fatalf("%s interval 0: %+v", desc, ivs[0])
		}
		if ivs[1].Until != 999 || !ivs[1].HostDown {
			t.Fatalf("%s interval 1: %+v", desc, ivs[1])
		}
	}
}

// Scenario 3: vanish & revive.
func TestReplay_VanishAndRevive(t *testing.T) {
	src := oneFileSource{since: 0, contents: strings.Join([]string{
		"[50] INITIAL SERVICE STATE: h;mysql;2;HARD;1;bad",
		"[500] LOG INITIAL STATES: all hosts and services initialized",
		"[600] CORE STARTING: watchkeeper starting...",
		"[700] SERVICE ALERT: h;mysql;0;HARD;1;ok",
	}, "\n")}

	reg := registry.NewStatic()
	reg.AddHost(registry.StaticHost{HostName: "h"})
	reg.AddService(registry.StaticService{Host: "h", Desc: "mysql"})

	emitter := &captureEmitter{}
	r := New(src, reg, emitter, sink.AllowAll{})

	_, err := r.Replay(context.Background(), Options{Window: types.Period{Since: 0, Until: 1000}})
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}

	ivs := emitter.byService("mysql")
	if len(ivs) != 4 {
		t.Fatalf("got %d intervals, want 4: %+v", len(ivs), ivs)
	}
	frozen := ivs[1]
	if frozen.Until != 500 || frozen.State != types.StateCritical {
		t.Fatalf("frozen last-known-state interval: %+v", frozen)
	}
	unmonitored := ivs[2]
	if unmonitored.From != 500 || unmonitored.Until != 700 || unmonitored.State != types.StateUnmonitored {
		t.Fatalf("unmonitored gap interval: %+v", unmonitored)
	}
	fresh := ivs[3]
	if fresh.From != 700 || fresh.State != types.StateOK {
		t.Fatalf("fresh post-revival interval: %+v", fresh)
	}
}

// Scenario 4: timeperiod flip.
func TestReplay_TimeperiodFlip(t *testing.T) {
	src := oneFileSource{since: 0, contents: strings.Join([]string{
		"[50] INITIAL SERVICE STATE: h;mysql;0;HARD;1;ok",
		"[300] TIMEPERIOD TRANSITION: workhours;1;0",
	}, "\n")}

	reg := registry.NewStatic()
	reg.AddHost(registry.StaticHost{HostName: "h"})
	reg.AddService(registry.StaticService{Host: "h", Desc: "mysql", Notification: "workhours"})

	emitter := &captureEmitter{}
	r := New(src, reg, emitter, sink.AllowAll{})

	_, err := r.Replay(context.Background(), Options{Window: types.Period{Since: 0, Until: 1000}})
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}

	ivs := emitter.byService("mysql")
	if len(ivs) != 2 {
		t.Fatalf("got %d intervals, want 2: %+v", len(ivs), ivs)
	}
	if ivs[0].Until != 300 || !ivs[0].InNotificationPeriod {
		t.Fatalf("pre-flip interval: %+v", ivs[0])
	}
	if ivs[1].From != 300 || ivs[1].InNotificationPeriod {
		t.Fatalf("post-flip interval: %+v", ivs[1])
	}
}

// Scenario 5: blacklisted service.
func TestReplay_BlacklistedService(t *testing.T) {
	src := oneFileSource{since: 0, contents: strings.Join([]string{
		"[50] INITIAL SERVICE STATE: db01;mysql;0;HARD;1;ok",
		"[100] SERVICE ALERT: db01;mysql;2;HARD;1;bad",
	}, "\n")}

	reg := registry.NewStatic()
	reg.AddHost(registry.StaticHost{HostName: "db01"})
	reg.AddService(registry.StaticService{Host: "db01", Desc: "mysql"})

	emitter := &captureEmitter{}
	r := New(src, reg, emitter, sink.AllowAll{})

	_, err := r.Replay(context.Background(), Options{
		Window: types.Period{Since: 0, Until: 1000},
		Filter: func(id filter.Identity) bool { return id.HostName == "web01" },
	})
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}

	if ivs := emitter.byService("mysql"); len(ivs) != 0 {
		t.Fatalf("blacklisted service should never emit, got %+v", ivs)
	}
}

// Scenario 6: downtime on service.
func TestReplay_ServiceDowntime(t *testing.T) {
	src := oneFileSource{since: 0, contents: strings.Join([]string{
		"[50] INITIAL SERVICE STATE: h;x;0;HARD;1;ok",
		"[400] SERVICE DOWNTIME ALERT: h;x;STARTED",
		"[500] SERVICE DOWNTIME ALERT: h;x;STOPPED",
	}, "\n")}

	reg := registry.NewStatic()
	reg.AddHost(registry.StaticHost{HostName: "h"})
	reg.AddService(registry.StaticService{Host: "h", Desc: "x"})

	emitter := &captureEmitter{}
	r := New(src, reg, emitter, sink.AllowAll{})

	_, err := r.Replay(context.Background(), Options{Window: types.Period{Since: 0, Until: 1000}})
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}

	ivs := emitter.byService("x")
	if len(ivs) != 3 {
		t.Fatalf("got %d intervals, want 3: %+v", len(ivs), ivs)
	}
	if ivs[0].Until != 400 || ivs[0].InDowntime {
		t.Fatalf("interval 0: %+v", ivs[0])
	}
	if ivs[1].From != 400 || ivs[1].Until != 500 || !ivs[1].InDowntime {
		t.Fatalf("interval 1: %+v", ivs[1])
	}
	if ivs[2].From != 500 || ivs[2].InDowntime {
		t.Fatalf("interval 2: %+v", ivs[2])
	}
}
