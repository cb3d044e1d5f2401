package services

import (
	"encoding/json"
	"sync"

	"taste-trail-backend/internal/models"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// WSEvent is a message pushed to a user's connected clients after a
// mutation, so other tabs and devices stay in sync without polling.
type WSEvent struct {
	Type    string      `json:"type"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// WSHub tracks WebSocket connections per user. A user may be connected
// from several devices at once; events are broadcast to all of them.
type WSHub struct {
	mu          sync.RWMutex
	connections map[string]map[*websocket.Conn]bool
}

// NewWSHub creates a new WebSocket hub.
func NewWSHub() *WSHub {
	return &WSHub{
		connections: make(map[string]map[*websocket.Conn]bool),
	}
}

// Register adds a connection for a user.
func (h *WSHub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.connections[userID] == nil {
		h.connections[userID] = make(map[*websocket.Conn]bool)
	}
	h.connections[userID][conn] = true

	log.Info().Str("user_id", userID).Int("connections", len(h.connections[userID])).Msg("WebSocket connection registered")
}

// Unregister removes a connection for a user and closes it.
func (h *WSHub) Unregister(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.connections[userID]; ok {
		if conns[conn] {
			conn.Close()
			delete(conns, conn)
		}
		if len(conns) == 0 {
			delete(h.connections, userID)
		}
	}
}

// IsOnline reports whether the user has at least one open connection.
func (h *WSHub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections[userID]) > 0
}

// Broadcast sends an event to every connection the user has. Connections
// that fail to write are dropped.
func (h *WSHub) Broadcast(userID string, event WSEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("type", event.Type).Msg("Failed to marshal WebSocket event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.connections[userID]
	for conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("Failed to send WebSocket event")
			conn.Close()
			delete(conns, conn)
		}
	}
	if len(conns) == 0 {
		delete(h.connections, userID)
	}
}

// NotifyRestaurant broadcasts a restaurant mutation.
func (h *WSHub) NotifyRestaurant(userID, action string, r *models.Restaurant) {
	h.Broadcast(userID, WSEvent{Type: "restaurant_" + action, Data: r})
}

// NotifyRestaurantDeleted broadcasts a restaurant deletion.
func (h *WSHub) NotifyRestaurantDeleted(userID, restaurantID string) {
	h.Broadcast(userID, WSEvent{Type: "restaurant_deleted", Data: map[string]string{"id": restaurantID}})
}

// NotifyList broadcasts a list mutation.
func (h *WSHub) NotifyList(userID, action string, l *models.List) {
	h.Broadcast(userID, WSEvent{Type: "list_" + action, Data: l})
}

// NotifyListDeleted broadcasts a list deletion.
func (h *WSHub) NotifyListDeleted(userID, listID string) {
	h.Broadcast(userID, WSEvent{Type: "list_deleted", Data: map[string]string{"id": listID}})
}

// NotifyMembership broadcasts a list membership change.
func (h *WSHub) NotifyMembership(userID, action, listID, restaurantID string) {
	h.Broadcast(userID, WSEvent{
		Type: "list_membership_" + action,
		Data: map[string]string{"list_id": listID, "restaurant_id": restaurantID},
	})
}

// NotifyCheckIn broadcasts a new check-in.
func (h *WSHub) NotifyCheckIn(userID string, c *models.CheckIn) {
	h.Broadcast(userID, WSEvent{Type: "checkin_created", Data: c})
}
