package notify

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"gemora/internal/domain/service"
	"gemora/pkg/logger"
)

// Client represents one connected notification listener.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// Hub fans notification events out to connected clients. Delivery is
// fire-and-forget: an offline recipient or a slow connection never
// affects the publishing workflow.
type Hub struct {
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start runs the hub's main loop in a goroutine.
func (h *Hub) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-h.Register:
				h.mutex.Lock()
				h.clients[client.UserID] = client
				h.mutex.Unlock()
				logger.Debug("Notification client registered: %s", client.UserID)

			case client := <-h.Unregister:
				h.mutex.Lock()
				if _, ok := h.clients[client.UserID]; ok {
					delete(h.clients, client.UserID)
					close(client.Send)
				}
				h.mutex.Unlock()
				logger.Debug("Notification client unregistered: %s", client.UserID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// Publish implements service.Notifier.
func (h *Hub) Publish(ctx context.Context, n service.Notification) {
	message, err := json.Marshal(n)
	if err != nil {
		logger.Warn("Failed to encode notification %s: %v", n.Event, err)
		return
	}

	h.mutex.RLock()
	client, ok := h.clients[n.RecipientID]
	h.mutex.RUnlock()

	if !ok {
		// Recipient not connected.
		return
	}

	select {
	case client.Send <- message:
	default:
		logger.Warn("Dropping notification for slow client: %s", n.RecipientID)
	}
}

// ReadPump drains the socket until the peer goes away.
func (c *Client) ReadPump(h *Hub) {
	defer func() {
		h.Unregister <- c
		c.Conn.Close()
	}()

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("Notification socket error: %v", err)
			}
			break
		}
	}
}

// WritePump sends queued events to the connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Warn("Notification write failed: %v", err)
			return
		}
	}
}
