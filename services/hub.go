package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"surveillance-map/be/logging"
	"surveillance-map/be/metrics"
	"surveillance-map/be/models"
)

const (
	EventCameraCreated = "camera.created"
	EventCameraUpdated = "camera.updated"
	EventCameraDeleted = "camera.deleted"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
)

// CameraEvent is pushed to live feed subscribers. Camera is nil for deletes.
type CameraEvent struct {
	Type     string         `json:"type"`
	CameraID string         `json:"camera_id"`
	Camera   *models.Camera `json:"camera,omitempty"`
}

// Hub fans camera events out to websocket subscribers of the live feed.
type Hub struct {
	clients    map[*liveClient]struct{}
	broadcast  chan CameraEvent
	register   chan *liveClient
	unregister chan *liveClient
	done       chan struct{}
	mu         sync.RWMutex
}

type liveClient struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	send chan CameraEvent
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*liveClient]struct{}),
		broadcast:  make(chan CameraEvent, 256),
		register:   make(chan *liveClient),
		unregister: make(chan *liveClient),
		done:       make(chan struct{}),
	}
}

// Run dispatches events until ctx is cancelled, then disconnects everyone.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for c := range h.clients {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
			metrics.LiveSubscribers.Set(0)
			return
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			n := len(h.clients)
			h.mu.Unlock()
			metrics.LiveSubscribers.Set(float64(n))
			logging.Debug().Str("client", c.id).Int("total_clients", n).Msg("live feed client connected")
		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			n := len(h.clients)
			h.mu.Unlock()
			metrics.LiveSubscribers.Set(float64(n))
			logging.Debug().Str("client", c.id).Int("total_clients", n).Msg("live feed client disconnected")
		case event := <-h.broadcast:
			h.mu.RLock()
			for c := range h.clients {
				select {
				case c.send <- event:
				default:
					logging.Warn().Str("client", c.id).Msg("live feed client too slow, dropping event")
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Publish never blocks; events are dropped when the queue is full.
func (h *Hub) Publish(event CameraEvent) {
	select {
	case h.broadcast <- event:
	default:
		logging.Warn().Str("type", event.Type).Str("camera_id", event.CameraID).Msg("live feed queue full, dropping event")
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Serve attaches an upgraded connection to the hub and blocks until the
// subscriber goes away.
func (h *Hub) Serve(conn *websocket.Conn) {
	c := &liveClient{
		id:   uuid.NewString(),
		hub:  h,
		conn: conn,
		send: make(chan CameraEvent, 64),
	}
	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return
	}
	go c.writePump()
	c.readPump()
}

// readPump only drains control frames; subscribers do not send data.
func (c *liveClient) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Warn().Err(err).Str("client", c.id).Msg("unexpected live feed close")
			}
			return
		}
	}
}

func (c *liveClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
