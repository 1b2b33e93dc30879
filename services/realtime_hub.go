package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// WSClient is one open /alerts/ws connection for a user. A user can hold
// several at once (phone plus a couple of browser tabs).
type WSClient struct {
	UserID uint
	Conn   *websocket.Conn
}

// wsEnvelope is the frame every hub message is wrapped in. Kind tells the
// client what Data carries ("alert.created" for streak alerts).
type wsEnvelope struct {
	Kind string `json:"kind"`
	Data any    `json:"data"`
}

// RealtimeHub fans streak alerts and other server events out to every
// websocket a user has open.
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[uint]map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[uint]map[*WSClient]struct{})}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*WSClient]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

// Broadcast sends an enveloped event to all of the user's connections.
// Write errors are ignored; a dead socket gets unregistered by its read
// loop.
func (h *RealtimeHub) Broadcast(userID uint, kind string, data any) {
	msg, _ := json.Marshal(wsEnvelope{Kind: kind, Data: data})
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		_ = c.Conn.WriteMessage(websocket.TextMessage, msg)
	}
}
