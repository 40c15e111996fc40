package gateway

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nwei/chatgate/internal/model/chat"
)

// Inbound message types accepted from clients.
const (
	msgTypeChat = "chat"
	msgTypePing = "ping"
)

// inboundMessage is the wire shape of a client frame, discriminated on Type.
type inboundMessage struct {
	Type     string `json:"type"`
	Input    string `json:"input,omitempty"`
	ThreadID string `json:"threadId,omitempty"`
}

// OutboundFrame is one server-to-client frame variant. Every variant is
// serialized through encodeFrame, which wraps it in the uniform envelope
// carrying the type tag and an ISO-8601 timestamp.
type OutboundFrame interface {
	frameType() string
}

// ConnectedFrame welcomes a freshly authenticated session.
type ConnectedFrame struct {
	Message string `json:"message"`
}

func (ConnectedFrame) frameType() string { return "connected" }

// ChatResponseFrame carries the generator result back to the originating
// session.
type ChatResponseFrame struct {
	Data *chat.Result `json:"data"`
}

func (ChatResponseFrame) frameType() string { return "chat_response" }

// PongFrame answers an application-level ping.
type PongFrame struct{}

func (PongFrame) frameType() string { return "pong" }

// ErrorFrame notifies the sender of a message-local failure.
type ErrorFrame struct {
	Error string `json:"error"`
}

func (ErrorFrame) frameType() string { return "error" }

// encodeFrame flattens the variant's fields into the common envelope.
func encodeFrame(frame OutboundFrame) ([]byte, error) {
	payload, err := json.Marshal(frame)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", frame.frameType(), err)
	}

	envelope := make(map[string]any)
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("flatten %s payload: %w", frame.frameType(), err)
	}
	envelope["type"] = frame.frameType()
	envelope["timestamp"] = time.Now().UTC().Format(time.RFC3339)

	return json.Marshal(envelope)
}
