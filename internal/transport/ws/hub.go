package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgRoundReady     MessageType = "round_ready"
	MsgResultReady    MessageType = "result_ready"
	MsgImageReady     MessageType = "image_ready"
	MsgNarrationReady MessageType = "narration_ready"
	MsgSessionReset   MessageType = "session_reset"
	MsgError          MessageType = "error"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub manages WebSocket connections per session. A session can have several
// listeners (multiple tabs); every listener receives every event.
type Hub struct {
	conns map[string]map[*Connection]struct{} // sessionID -> connections

	mu sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage

	logger *zap.Logger
}

// Connection represents a WebSocket connection
type Connection struct {
	SessionID string
	Send      chan []byte
	Hub       *Hub
}

// BroadcastMessage is a message to broadcast. Close tears the session's
// listeners down instead of delivering a payload.
type BroadcastMessage struct {
	SessionID string
	Message   *Message
	Close     bool
}

// NewHub creates a new WebSocket hub
func NewHub(logger *zap.Logger) *Hub {
	h := &Hub{
		conns:      make(map[string]map[*Connection]struct{}),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
		logger:     logger,
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.conns[conn.SessionID] == nil {
				h.conns[conn.SessionID] = make(map[*Connection]struct{})
			}
			h.conns[conn.SessionID][conn] = struct{}{}
			h.mu.Unlock()
			h.logger.Debug("listener connected", zap.String("sessionId", conn.SessionID))

		case conn := <-h.unregister:
			h.mu.Lock()
			if listeners, ok := h.conns[conn.SessionID]; ok {
				if _, ok := listeners[conn]; ok {
					delete(listeners, conn)
					close(conn.Send)
					if len(listeners) == 0 {
						delete(h.conns, conn.SessionID)
					}
				}
			}
			h.mu.Unlock()
			h.logger.Debug("listener disconnected", zap.String("sessionId", conn.SessionID))

		case msg := <-h.broadcast:
			if msg.Close {
				h.mu.Lock()
				for conn := range h.conns[msg.SessionID] {
					close(conn.Send)
				}
				delete(h.conns, msg.SessionID)
				h.mu.Unlock()
				h.logger.Debug("session listeners disconnected", zap.String("sessionId", msg.SessionID))
				continue
			}

			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)
			for conn := range h.conns[msg.SessionID] {
				select {
				case conn.Send <- data:
				default:
					// Drop message if buffer full
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// BroadcastToSession sends a message to every listener of a session
// (implements service.Broadcaster)
func (h *Hub) BroadcastToSession(sessionID string, msgType string, payload interface{}) {
	data, _ := json.Marshal(payload)
	h.broadcast <- &BroadcastMessage{
		SessionID: sessionID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
}

// DisconnectSession closes every listener of a session (implements
// service.Broadcaster). Routed through the broadcast channel so queued
// messages for the session are delivered before the teardown.
func (h *Hub) DisconnectSession(sessionID string) {
	h.broadcast <- &BroadcastMessage{
		SessionID: sessionID,
		Close:     true,
	}
}
