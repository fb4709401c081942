package ws

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/watchkeeper/history/internal/progress"
)

func dialWS(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/progress"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func TestHub_BroadcastsActiveTrackerProgress(t *testing.T) {
	hub := New(20 * time.Millisecond)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	tracker := progress.New()
	tracker.Update(5, 2, 1000)
	hub.SetTracker(tracker)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	conn := dialWS(t, srv)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(msg), `"entries_processed":5`) {
		t.Fatalf("message = %s, want entries_processed:5", msg)
	}
}

func TestHub_NoBroadcastWithoutActiveTracker(t *testing.T) {
	hub := New(10 * time.Millisecond)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	conn := dialWS(t, srv)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(100 * time.Millisecond))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected no message while no replay is active")
	}
}

func TestHub_CountTracksConnections(t *testing.T) {
	hub := New(time.Second)
	srv := httptest.NewServer(hub)
	defer srv.Close()

	conn := dialWS(t, srv)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if hub.Count() == 1 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if hub.Count() != 1 {
		t.Fatalf("Count() = %d, want 1", hub.Count())
	}

	conn.Close()

	deadline = time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if hub.Count() == 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if hub.Count() != 0 {
		t.Fatalf("Count() = %d after disconnect, want 0", hub.Count())
	}
}
