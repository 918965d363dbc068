package vizfeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/zeusync/collision/internal/core/observability/log"
)

const (
	writeTimeout    = 5 * time.Second
	shutdownTimeout = 5 * time.Second
	sendBuffer      = 8
)

type watcher struct {
	id   uuid.UUID
	conn *websocket.Conn
	send chan []byte
}

// Hub fans frames out to every connected websocket watcher. Broadcast
// never blocks: a watcher whose queue is full misses the frame.
type Hub struct {
	mu       sync.RWMutex
	watchers map[uuid.UUID]*watcher
	dropped  atomic.Uint64
	upgrader websocket.Upgrader
	logger   log.Log
}

func NewHub(logger log.Log) *Hub {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Hub{
		watchers: make(map[uuid.UUID]*watcher),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Router serves GET /ws and GET /healthz.
func (h *Hub) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/ws", h.serveWS).Methods(http.MethodGet)
	r.HandleFunc("/healthz", h.serveHealth).Methods(http.MethodGet)
	return r
}

// Broadcast encodes f once and queues it for every watcher.
func (h *Hub) Broadcast(f Frame) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, w := range h.watchers {
		select {
		case w.send <- data:
		default:
			h.dropped.Add(1)
		}
	}
	return nil
}

// Watchers returns the number of connected watchers.
func (h *Hub) Watchers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.watchers)
}

// Dropped returns how many frames were skipped for slow watchers.
func (h *Hub) Dropped() uint64 { return h.dropped.Load() }

// Close disconnects every watcher.
func (h *Hub) Close() {
	h.mu.Lock()
	watchers := h.watchers
	h.watchers = make(map[uuid.UUID]*watcher)
	h.mu.Unlock()
	for _, w := range watchers {
		close(w.send)
		_ = w.conn.Close()
	}
}

// Serve listens on addr until ctx is done, then shuts the server down and
// disconnects the watchers.
func (h *Hub) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: h.Router()}

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("debug feed listening", log.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("debug feed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	h.Close()
	if err != nil {
		return fmt.Errorf("debug feed shutdown: %w", err)
	}
	return nil
}

func (h *Hub) serveHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok", "watchers": h.Watchers()})
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", log.Error(err))
		return
	}

	wt := &watcher{id: uuid.New(), conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.watchers[wt.id] = wt
	h.mu.Unlock()
	h.logger.Debug("watcher connected", log.String("id", wt.id.String()), log.String("remote", conn.RemoteAddr().String()))

	go h.writeLoop(wt)

	// Watchers never send; reading only notices the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(wt.id)
}

func (h *Hub) writeLoop(wt *watcher) {
	for data := range wt.send {
		_ = wt.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := wt.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.logger.Debug("watcher write failed", log.String("id", wt.id.String()), log.Error(err))
			_ = wt.conn.Close()
			h.remove(wt.id)
			return
		}
	}
}

func (h *Hub) remove(id uuid.UUID) {
	h.mu.Lock()
	wt, ok := h.watchers[id]
	if ok {
		delete(h.watchers, id)
	}
	h.mu.Unlock()
	if !ok {
		return
	}
	close(wt.send)
	_ = wt.conn.Close()
	h.logger.Debug("watcher disconnected", log.String("id", id.String()))
}
