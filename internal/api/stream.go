package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/Yuvraajb/artemis2/internal/logging"
)

const (
	streamWriteTimeout = 10 * time.Second
	streamPongTimeout  = 60 * time.Second
	streamPingInterval = 25 * time.Second
)

// streamHub pushes driver snapshots to websocket clients. Each client
// gets its own paced sender; the hub only enforces the connection cap.
type streamHub struct {
	server     *Server
	rateHz     float64
	maxClients int

	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients int
}

func newStreamHub(server *Server) *streamHub {
	return &streamHub{
		server:     server,
		rateHz:     10,
		maxClients: 64,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// The API is served same-origin or behind a gateway that
			// enforces origin policy.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (h *streamHub) acquire() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients >= h.maxClients {
		return false
	}
	h.clients++
	if c := h.server.collector; c != nil {
		c.StreamClients.Set(float64(h.clients))
	}
	return true
}

func (h *streamHub) release() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients--
	if c := h.server.collector; c != nil {
		c.StreamClients.Set(float64(h.clients))
	}
}

func (h *streamHub) handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := h.server.log

	if !h.acquire() {
		writeError(w, http.StatusServiceUnavailable, "stream client limit reached")
		return
	}
	defer h.release()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		log.Warn(ctx, "websocket upgrade failed", logging.String("error", err.Error()))
		return
	}
	defer conn.Close()

	log.Info(ctx, "stream client connected",
		logging.String("remote", conn.RemoteAddr().String()))

	// Reader drains control frames and unblocks the sender on close.
	done := make(chan struct{})
	go func() {
		defer close(done)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(streamPongTimeout))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(streamPongTimeout))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	limiter := rate.NewLimiter(rate.Limit(h.rateHz), 1)
	ping := time.NewTicker(streamPingInterval)
	defer ping.Stop()

	for {
		select {
		case <-done:
			log.Info(ctx, "stream client disconnected")
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		default:
		}

		if err := limiter.Wait(ctx); err != nil {
			return
		}
		_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
		if err := conn.WriteJSON(h.server.driver.Snapshot()); err != nil {
			log.Info(ctx, "stream write failed, dropping client",
				logging.String("error", err.Error()))
			return
		}
	}
}
