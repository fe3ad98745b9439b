package detector

import (
	"encoding/json"
	"time"

	"github.com/lox/handcricket/internal/gesture"
)

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants
const (
	// Detector to game
	MessageTypeHands   MessageType = "hands"
	MessageTypeCount   MessageType = "count"
	MessageTypeNone    MessageType = "none"
	MessageTypeCommand MessageType = "command"

	// Game to detector
	MessageTypeAck   MessageType = "ack"
	MessageTypeError MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}

// Message is the envelope for every frame on the socket
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data any) (*Message, error) {
	msg := &Message{
		Type:      messageType,
		Timestamp: time.Now().UTC(),
	}
	if data == nil {
		return msg, nil
	}
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	msg.Data = dataBytes
	return msg, nil
}

// HandsData carries raw skeletons from a landmark detector
type HandsData struct {
	Hands []gesture.HandLandmarks `json:"hands"`
}

// CountData carries an already counted gesture
type CountData struct {
	Count      int     `json:"count"`
	Handedness string  `json:"handedness,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// CommandData asks the game to start, restart or quit
type CommandData struct {
	Command string `json:"command"`
}

// AckData confirms a command was queued for the next frame. The engine may
// still ignore it, e.g. a restart while a game is running.
type AckData struct {
	Command string `json:"command"`
	Queued  bool   `json:"queued"`
}

// ErrorData describes a rejected message
type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
