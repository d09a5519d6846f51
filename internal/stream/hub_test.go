package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/drew2323/v3trading/internal/events"
)

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func dial(t *testing.T, h *Hub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(h.ServeWS))
	t.Cleanup(srv.Close)
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(msg, &out); err != nil {
		t.Fatalf("decode %s: %v", msg, err)
	}
	return out
}

func TestHub_BroadcastsToNewClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := NewHub(zap.NewNop())
	go h.Run(ctx)

	conn := dial(t, h)
	waitFor(t, "registration", func() bool { return h.Clients() == 1 })

	at := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	h.Publish(ctx, events.New(events.TradeCreated, map[string]string{"id": "t1"}, at))

	got := readEvent(t, conn)
	if got["type"] != "trade.created" {
		t.Errorf("type = %v", got["type"])
	}
	if data, _ := got["data"].(map[string]any); data["id"] != "t1" {
		t.Errorf("data = %v", got["data"])
	}
	if got["timestamp"] != "2025-01-02T03:04:05Z" {
		t.Errorf("timestamp = %v", got["timestamp"])
	}
}

func TestHub_SubscriptionFilters(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := NewHub(zap.NewNop())
	go h.Run(ctx)

	conn := dial(t, h)
	waitFor(t, "registration", func() bool { return h.Clients() == 1 })

	if err := conn.WriteJSON(SubscribeRequest{Op: "subscribe", Channels: []string{"positions"}}); err != nil {
		t.Fatal(err)
	}
	waitFor(t, "subscription", func() bool {
		h.mu.RLock()
		defer h.mu.RUnlock()
		for c := range h.clients {
			if !c.subscribed("trades") && c.subscribed("positions") {
				return true
			}
		}
		return false
	})

	h.Publish(ctx, events.New(events.TradeCancelled, "skip", time.Now()))
	h.Publish(ctx, events.New(events.PositionClosed, "keep", time.Now()))

	got := readEvent(t, conn)
	if got["type"] != "position.closed" || got["data"] != "keep" {
		t.Fatalf("got %v, want the position event only", got)
	}
}

func TestHub_ShutdownDropsClients(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	h := NewHub(zap.NewNop())
	done := make(chan struct{})
	go func() { h.Run(ctx); close(done) }()

	conn := dial(t, h)
	waitFor(t, "registration", func() bool { return h.Clients() == 1 })

	cancel()
	<-done
	if h.Clients() != 0 {
		t.Fatalf("clients = %d after shutdown", h.Clients())
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected the connection to be closed")
	}
}
