package socket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Hub tracks the connected dashboard clients of the live operations feed.
type Hub struct {
	// clients maps a user's internal id to its connection.
	clients map[string]*websocket.Conn
	mu      sync.RWMutex
	log     *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*websocket.Conn),
		log:     log,
	}
}

// Register adds a client connection to the hub.
func (h *Hub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[userID] = conn
	h.log.Info("websocket client registered", zap.String("userID", userID))
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[userID]; ok {
		delete(h.clients, userID)
		h.log.Info("websocket client unregistered", zap.String("userID", userID))
	}
}

// Send delivers a message to one client. A missing client is not an error,
// it just means that user is offline.
func (h *Hub) Send(userID string, message []byte) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conn, ok := h.clients[userID]
	if !ok {
		return nil
	}
	return conn.WriteMessage(websocket.TextMessage, message)
}

type event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
	At    time.Time   `json:"at"`
}

// BroadcastEvent pushes a JSON event to every connected client. A nil hub is
// a no-op so handlers can run without a feed (tests, CLI tools).
func (h *Hub) BroadcastEvent(name string, data interface{}) {
	if h == nil {
		return
	}

	message, err := json.Marshal(event{Event: name, Data: data, At: time.Now()})
	if err != nil {
		h.log.Warn("failed to encode feed event", zap.String("event", name), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for userID, conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			h.log.Warn("failed to push feed event",
				zap.String("userID", userID), zap.String("event", name), zap.Error(err))
		}
	}
}
