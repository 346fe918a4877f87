package core

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialLiveReload(t *testing.T, lr *LiveReloader) (*websocket.Conn, func()) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(lr.Handler))

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		server.Close()
		t.Fatalf("failed to connect to WebSocket: %v", err)
	}

	return ws, func() {
		ws.Close()
		server.Close()
	}
}

func waitForClients(t *testing.T, lr *LiveReloader, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if lr.Clients() == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("expected %d clients, got %d", want, lr.Clients())
}

func TestLiveReloader_ClientConnectsAndReceivesReload(t *testing.T) {
	lr := NewLiveReloader()
	ws, cleanup := dialLiveReload(t, lr)
	defer cleanup()

	waitForClients(t, lr, 1)
	lr.BroadcastReload()

	ws.SetReadDeadline(time.Now().Add(time.Second))
	_, msg, err := ws.ReadMessage()
	if err != nil {
		t.Fatalf("failed to read reload message: %v", err)
	}
	if string(msg) != "reload" {
		t.Errorf("expected 'reload' message, got %q", msg)
	}
}

func TestLiveReloader_RemovesDisconnectedClients(t *testing.T) {
	lr := NewLiveReloader()
	ws, cleanup := dialLiveReload(t, lr)
	defer cleanup()

	waitForClients(t, lr, 1)
	_ = ws.Close()
	waitForClients(t, lr, 0)

	lr.BroadcastReload()
}

func TestLiveReloader_IgnoreUpgradeError(t *testing.T) {
	lr := NewLiveReloader()

	req := httptest.NewRequest(http.MethodGet, LiveReloadPath, nil)
	w := httptest.NewRecorder()

	lr.Handler(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected HTTP 400 on upgrade failure, got %d", w.Code)
	}
	if lr.Clients() != 0 {
		t.Error("expected no registered clients after failed upgrade")
	}
}
