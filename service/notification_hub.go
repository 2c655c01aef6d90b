package service

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"storefront-pricing/models"
)

const (
	hubWriteTimeout = 5 * time.Second
	hubSendBuffer   = 16
)

type hubClient struct {
	conn *websocket.Conn
	send chan []byte
}

// writeLoop drains the send queue until Notify or ServeHTTP closes it
func (c *hubClient) writeLoop() {
	defer c.conn.Close()
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(hubWriteTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("⚠️ NotificationHub: Write to %s failed: %v", c.conn.RemoteAddr(), err)
			return
		}
	}
}

// NotificationHub is a Notifier that broadcasts every notification as JSON to the
// websocket clients connected through ServeHTTP.
// Notify only queues; each client has its own writer, so a stalled client never blocks the caller.
type NotificationHub struct {
	mu       sync.Mutex
	clients  map[*hubClient]struct{}
	upgrader websocket.Upgrader
}

// NewNotificationHub creates a hub with no clients
func NewNotificationHub() *NotificationHub {
	return &NotificationHub{
		clients: make(map[*hubClient]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Ensure NotificationHub implements Notifier
var _ Notifier = (*NotificationHub)(nil)

// Notify queues a notification for every client; clients whose queue is full are dropped
func (h *NotificationHub) Notify(message string, severity models.Severity) {
	data, err := json.Marshal(models.Notification{
		ID:      uuid.NewString(),
		Message: message,
		Type:    severity,
	})
	if err != nil {
		log.Printf("❌ NotificationHub: Error encoding notification: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			log.Printf("⚠️ NotificationHub: Dropping slow client %s", c.conn.RemoteAddr())
			h.removeLocked(c)
		}
	}
}

// removeLocked must be called with h.mu held
func (h *NotificationHub) removeLocked(c *hubClient) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	c.conn.Close()
}

// ServeHTTP upgrades the request and keeps the client registered until it disconnects
func (h *NotificationHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("❌ NotificationHub: Upgrade failed: %v", err)
		return
	}

	c := &hubClient{conn: conn, send: make(chan []byte, hubSendBuffer)}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	go c.writeLoop()
	log.Printf("🔌 NotificationHub: Client connected %s", conn.RemoteAddr())

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	h.removeLocked(c)
	h.mu.Unlock()
	log.Printf("🔌 NotificationHub: Client disconnected %s", conn.RemoteAddr())
}

// ClientCount returns the number of connected clients
func (h *NotificationHub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
