package hub

import (
	"time"

	"github.com/soar/GamepadTest/internal/gamepad"
	"github.com/soar/GamepadTest/internal/overlay"
)

const (
	TypeFull  = "full"
	TypeDelta = "delta"
	TypeSync  = "sync"
)

// WSMessage represents a WebSocket message sent from server to client.
type WSMessage struct {
	Type      string                `json:"type"`
	Seq       int64                 `json:"seq"`
	Timestamp int64                 `json:"timestamp"` // Unix milliseconds
	Data      *gamepad.Snapshot     `json:"data,omitempty"`
	Changes   *gamepad.DeltaChanges `json:"changes,omitempty"`
	Frame     []overlay.Directive   `json:"frame,omitempty"`
}

// NewFullMessage creates a "full" message with the complete state.
func NewFullMessage(seq int64, state *gamepad.Snapshot, frame []overlay.Directive) *WSMessage {
	return &WSMessage{
		Type:      TypeFull,
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Data:      state,
		Frame:     frame,
	}
}

// NewDeltaMessage creates a "delta" message with only the changed groups.
func NewDeltaMessage(seq int64, changes *gamepad.DeltaChanges, frame []overlay.Directive) *WSMessage {
	return &WSMessage{
		Type:      TypeDelta,
		Seq:       seq,
		Timestamp: time.Now().UnixMilli(),
		Changes:   changes,
		Frame:     frame,
	}
}

// ClientMessage represents a message sent from the client to the server.
type ClientMessage struct {
	Type string `json:"type"`
}
