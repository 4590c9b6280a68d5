// Package broadcast pushes session snapshots to remote viewers over
// websocket. Viewers are read-only: anything they send is discarded.
package broadcast

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nathoo/siegecore/engine/snapshot"
)

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Source provides the snapshot to publish. *engine.Engine satisfies it.
type Source interface {
	Snapshot() snapshot.GameState
}

// Hub tracks viewer connections and fans snapshots out to them.
type Hub struct {
	mu     sync.Mutex
	conns  map[*websocket.Conn]bool
	last   []byte
	logger *slog.Logger
	now    func() time.Time
}

// NewHub returns an empty hub that logs to logger.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		conns:  make(map[*websocket.Conn]bool),
		logger: logger,
		now:    time.Now,
	}
}

// Handler serves viewer connections on /ws.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.ServeWs)
	return mux
}

// ServeWs upgrades the request and registers the viewer. A new viewer
// immediately receives the most recent snapshot, if any.
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	h.register(conn)
	h.logger.Info("viewer connected", "remote", conn.RemoteAddr().String())
	go h.readLoop(conn)
}

// Count returns the number of connected viewers.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Publish encodes gs and sends it to every viewer. Viewers that fail the
// write are dropped.
func (h *Hub) Publish(gs snapshot.GameState) error {
	data, err := snapshot.Encode(gs, h.now())
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = data
	for c := range h.conns {
		if err := write(c, data); err != nil {
			h.logger.Debug("dropping viewer", "remote", c.RemoteAddr().String(), "error", err)
			delete(h.conns, c)
			c.Close()
		}
	}
	return nil
}

// Run publishes src's snapshot immediately and then every interval until
// ctx is cancelled. It closes every viewer connection on return.
func (h *Hub) Run(ctx context.Context, src Source, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	defer h.closeAll()

	for {
		if err := h.Publish(src.Snapshot()); err != nil {
			h.logger.Error("encode snapshot", "error", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (h *Hub) register(c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[c] = true
	if h.last != nil {
		if err := write(c, h.last); err != nil {
			delete(h.conns, c)
			c.Close()
		}
	}
}

func (h *Hub) unregister(c *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[c] {
		delete(h.conns, c)
		c.Close()
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.conns {
		c.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "session closed"),
			time.Now().Add(writeWait))
		c.Close()
		delete(h.conns, c)
	}
}

// readLoop drains the connection so close frames are processed.
func (h *Hub) readLoop(c *websocket.Conn) {
	defer h.unregister(c)
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}

func write(c *websocket.Conn, data []byte) error {
	c.SetWriteDeadline(time.Now().Add(writeWait))
	return c.WriteMessage(websocket.TextMessage, data)
}
