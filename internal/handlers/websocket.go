package handlers

import (
	"encoding/json"
	"net/http"

	"taste-trail-backend/internal/middleware"
	"taste-trail-backend/internal/services"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WebSocketHandler serves the live-sync socket. Connected clients receive
// mutation events for their own data so other tabs and devices stay current.
type WebSocketHandler struct {
	hub         *services.WSHub
	userService *services.UserService
}

// NewWebSocketHandler creates a new WebSocket handler.
func NewWebSocketHandler(hub *services.WSHub, userService *services.UserService) *WebSocketHandler {
	return &WebSocketHandler{
		hub:         hub,
		userService: userService,
	}
}

// HandleWebSocket handles GET /ws?token=...
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.ValidateWebSocketToken(r.URL.Query().Get("token"), h.userService)
	if err != nil {
		respondError(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}

	h.hub.Register(userID, conn)
	defer h.hub.Unregister(userID, conn)

	log.Info().Str("user_id", userID).Msg("WebSocket connection established")

	// The socket is push-only apart from keepalives; the read loop exists
	// to answer pings and notice the peer going away.
	for {
		_, messageBytes, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error().Err(err).Str("user_id", userID).Msg("WebSocket error")
			}
			return
		}

		var msg services.WSEvent
		if err := json.Unmarshal(messageBytes, &msg); err != nil {
			h.sendError(conn, "Invalid message format")
			continue
		}

		switch msg.Type {
		case "ping":
			data, _ := json.Marshal(services.WSEvent{Type: "pong"})
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		default:
			h.sendError(conn, "Unknown message type")
		}
	}
}

func (h *WebSocketHandler) sendError(conn *websocket.Conn, message string) {
	data, _ := json.Marshal(services.WSEvent{Type: "error", Message: message})
	conn.WriteMessage(websocket.TextMessage, data)
}
