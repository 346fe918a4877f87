package core

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	LiveReloadPath    = "/__livereload"
	liveReloadMessage = "reload"
	writeWait         = time.Second
)

// Reloader pushes a reload message to every connected browser tab.
type Reloader interface {
	BroadcastReload()
	Handler(http.ResponseWriter, *http.Request)
}

type LiveReloader struct {
	mu       sync.Mutex
	clients  map[*websocket.Conn]struct{}
	upgrader websocket.Upgrader
}

func NewLiveReloader() *LiveReloader {
	return &LiveReloader{
		clients: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			// only mounted in dev mode
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (lr *LiveReloader) Handler(w http.ResponseWriter, r *http.Request) {
	conn, err := lr.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	lr.mu.Lock()
	lr.clients[conn] = struct{}{}
	lr.mu.Unlock()

	go lr.drain(conn)
}

// drain discards client frames until the connection drops.
func (lr *LiveReloader) drain(conn *websocket.Conn) {
	defer lr.remove(conn)
	for {
		if _, _, err := conn.NextReader(); err != nil {
			return
		}
	}
}

func (lr *LiveReloader) remove(conn *websocket.Conn) {
	lr.mu.Lock()
	delete(lr.clients, conn)
	lr.mu.Unlock()
	conn.Close()
}

func (lr *LiveReloader) BroadcastReload() {
	lr.mu.Lock()
	defer lr.mu.Unlock()

	for conn := range lr.clients {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, []byte(liveReloadMessage)); err != nil {
			conn.Close()
			delete(lr.clients, conn)
		}
	}
}

func (lr *LiveReloader) Clients() int {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	return len(lr.clients)
}
