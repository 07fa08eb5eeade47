package game

import (
	"encoding/json"
	"fmt"
)

// Message type for WebSocket communication between client and server.
type MessageType string

const (
	MsgTypeHello   MessageType = "hello"   // Client announces a new game session
	MsgTypeWelcome MessageType = "welcome" // Server assigns a session id
	MsgTypePing    MessageType = "ping"    // Server pings client to measure RTT
	MsgTypePong    MessageType = "pong"    // Client responds to ping
	MsgTypeResult  MessageType = "result"  // Client reports a finished game
	MsgTypeScore   MessageType = "score"   // Server replies with the recomputed final score
	MsgTypeError   MessageType = "error"   // Server sends an error message
)

// WsMessage represents a WebSocket message.
type WsMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewWsMessage creates a new WsMessage with a marshaled payload.
func NewWsMessage(msgType MessageType, payload interface{}) (WsMessage, error) {
	if payload == nil {
		return WsMessage{Type: msgType}, nil
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return WsMessage{}, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return WsMessage{
		Type:    msgType,
		Payload: payloadBytes,
	}, nil
}

// Parse unmarshals the message payload into one of the message types
// (HelloMessage, ResultMessage, etc.)
func (m *WsMessage) Parse() (any, error) {
	var target any
	switch m.Type {
	case MsgTypeHello:
		target = &HelloMessage{}
	case MsgTypeWelcome:
		target = &WelcomeMessage{}
	case MsgTypePing:
		target = &PingMessage{}
	case MsgTypePong:
		target = &PongMessage{}
	case MsgTypeResult:
		target = &ResultMessage{}
	case MsgTypeScore:
		target = &ScoreMessage{}
	case MsgTypeError:
		target = &ErrorMessage{}
	default:
		return nil, fmt.Errorf("unknown message type: %s", m.Type)
	}

	if len(m.Payload) == 0 {
		return target, nil
	}

	err := json.Unmarshal(m.Payload, target)
	return target, err
}

// HelloMessage is the payload for MsgTypeHello
type HelloMessage struct {
	ClientVersion string `json:"client_version"`
	Rows          int    `json:"rows"`
	Columns       int    `json:"columns"`
}

// WelcomeMessage is the payload for MsgTypeWelcome
type WelcomeMessage struct {
	SessionID string `json:"session_id"`
}

// PingMessage is the payload for MsgTypePing
type PingMessage struct {
	ServerTime int64 `json:"server_time"` // Nanoseconds since Unix epoch
}

// PongMessage is the payload for MsgTypePong
type PongMessage struct {
	ServerTime int64 `json:"server_time"` // Same value from Ping
	ClientTime int64 `json:"client_time"` // Client's own timestamp
}

// ResultMessage is the payload for MsgTypeResult
type ResultMessage struct {
	SessionID      string `json:"session_id"`
	Moves          int    `json:"moves"`
	Matches        int    `json:"matches"`
	TotalPairs     int    `json:"total_pairs"`
	ElapsedSeconds int    `json:"elapsed_seconds"`
	Score          int    `json:"score"` // running score accumulated during play
}

// ScoreMessage is the payload for MsgTypeScore
type ScoreMessage struct {
	SessionID  string `json:"session_id"`
	FinalScore int    `json:"final_score"`
}

// ErrorMessage is the payload for MsgTypeError
type ErrorMessage struct {
	Message string `json:"message"`
}
