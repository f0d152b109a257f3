package live

import (
	"time"

	"github.com/conorfabian/streamlinks/internal/autocomplete"
)

// Client message types.
const (
	MsgInput  = "input"
	MsgScope  = "scope"
	MsgSelect = "select"
	MsgSubmit = "submit"
)

// Server message types.
const (
	MsgWelcome   = "welcome"
	MsgState     = "state"
	MsgSubmitted = "submitted"
	MsgError     = "error"
	MsgClosing   = "closing"
)

type ClientMessage struct {
	Type  string `json:"type"` // "input", "scope", "select" or "submit"
	Q     string `json:"q,omitempty"`
	Scope string `json:"scope,omitempty"`
}

type ServerMessage struct {
	Type    string                 `json:"type"`
	Session string                 `json:"session,omitempty"`
	State   *autocomplete.Snapshot `json:"state,omitempty"`
	Query   string                 `json:"query,omitempty"`
	Error   string                 `json:"error,omitempty"`
	At      time.Time              `json:"at"`
}
