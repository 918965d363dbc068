package vizfeed

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/collision/internal/core/collision"
	"github.com/zeusync/collision/internal/core/geometry"
	"github.com/zeusync/collision/internal/sim"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	u := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	require.NoError(t, err)
	return conn
}

func TestBroadcastReachesWatchers(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Router())
	defer srv.Close()
	defer hub.Close()

	c1, c2 := dial(t, srv), dial(t, srv)
	defer c1.Close()
	defer c2.Close()
	require.Eventually(t, func() bool { return hub.Watchers() == 2 }, time.Second, 5*time.Millisecond)

	frame := Frame{
		Frame:    3,
		Contacts: 1,
		Shapes: []sim.Shape{{
			Type: 1, Static: true,
			Vertices: []geometry.Vector2d{geometry.Vec(0, 0), geometry.Vec(1, 0), geometry.Vec(0, 1)},
		}},
	}
	require.NoError(t, hub.Broadcast(frame))

	for _, c := range []*websocket.Conn{c1, c2} {
		require.NoError(t, c.SetReadDeadline(time.Now().Add(time.Second)))
		var got Frame
		require.NoError(t, c.ReadJSON(&got))
		require.Equal(t, frame, got)
	}
}

func TestWatcherDisconnect(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Router())
	defer srv.Close()

	c := dial(t, srv)
	require.Eventually(t, func() bool { return hub.Watchers() == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, c.Close())
	require.Eventually(t, func() bool { return hub.Watchers() == 0 }, time.Second, 5*time.Millisecond)
}

func TestSlowWatcherDropsFrames(t *testing.T) {
	hub := NewHub(nil)
	id := uuid.New()
	hub.watchers[id] = &watcher{id: id, send: make(chan []byte)}

	require.NoError(t, hub.Broadcast(Frame{Frame: 1}))
	require.NoError(t, hub.Broadcast(Frame{Frame: 2}))
	require.Equal(t, uint64(2), hub.Dropped())
}

func TestHealthz(t *testing.T) {
	hub := NewHub(nil)
	srv := httptest.NewServer(hub.Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "ok", body["status"])
	require.EqualValues(t, 0, body["watchers"])

	resp, err = http.Post(srv.URL+"/healthz", "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestServeStopsWithContext(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- hub.Serve(ctx, addr) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestNewFrame(t *testing.T) {
	h := collision.NewHandler(collision.NewArena())
	a := collision.NewObject(h.Arena().Insert(geometry.NewRectangle(geometry.Vec(0, 0), 10, 10)), 1)
	b := collision.NewObject(h.Arena().Insert(geometry.NewRectangle(geometry.Vec(5, 0), 10, 10)), 2)
	require.NoError(t, h.AddObject(a))
	require.NoError(t, h.AddObject(b))

	f := NewFrame(h.TestCollisions(), nil)
	require.Equal(t, uint64(1), f.Frame)
	require.Equal(t, 1, f.Contacts)
	require.Len(t, f.Events, 2)
	require.Equal(t, uint64(a.ID()), f.Events[0].Self)
	require.Equal(t, int32(2), f.Events[0].OtherType)
	require.InDelta(t, 5, f.Events[0].Magnitude, 1e-4)
	require.Equal(t, uint64(b.ID()), f.Events[1].Self)
}
