// Package live serves autocomplete over WebSocket. Each connection gets its
// own debounce controller; the Hub tracks the open sessions.
package live

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/conorfabian/streamlinks/internal/autocomplete"
)

const writeTimeout = 2 * time.Second

type Session struct {
	ID      string
	Started time.Time

	conn    *websocket.Conn
	ctl     *autocomplete.Controller
	writeMu sync.Mutex
}

// Send writes one JSON message. Writes are serialised per connection.
func (s *Session) Send(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return s.conn.WriteMessage(websocket.TextMessage, b)
}

type Hub struct {
	mu       sync.Mutex
	sessions map[string]*Session
	total    int
	closing  bool
}

type Stats struct {
	Sessions      int  `json:"sessions"`
	TotalSessions int  `json:"total_sessions"`
	Closing       bool `json:"closing"`
}

func NewHub() *Hub {
	return &Hub{sessions: make(map[string]*Session)}
}

func (h *Hub) Add(s *Session) {
	h.mu.Lock()
	h.sessions[s.ID] = s
	h.total++
	h.mu.Unlock()
}

func (h *Hub) Remove(id string) {
	h.mu.Lock()
	s, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()
	if !ok {
		return
	}
	if s.ctl != nil {
		s.ctl.Close()
	}
	_ = s.conn.Close()
}

// BroadcastJSON sends v to every session, dropping those that fail.
func (h *Hub) BroadcastJSON(v any) {
	h.mu.Lock()
	targets := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		targets = append(targets, s)
	}
	h.mu.Unlock()

	for _, s := range targets {
		if err := s.Send(v); err != nil {
			h.Remove(s.ID)
		}
	}
}

func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

func (h *Hub) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Stats{
		Sessions:      len(h.sessions),
		TotalSessions: h.total,
		Closing:       h.closing,
	}
}

// CloseAll notifies and disconnects every session.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	h.closing = true
	h.mu.Unlock()
	h.BroadcastJSON(ServerMessage{Type: MsgClosing, At: time.Now().UTC()})
	h.mu.Lock()
	ids := make([]string, 0, len(h.sessions))
	for id := range h.sessions {
		ids = append(ids, id)
	}
	h.mu.Unlock()
	for _, id := range ids {
		h.Remove(id)
	}
}
