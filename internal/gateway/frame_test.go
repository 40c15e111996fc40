package gateway

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/nwei/chatgate/internal/model/chat"
)

func decodeEnvelope(t *testing.T, frame OutboundFrame) map[string]any {
	t.Helper()
	data, err := encodeFrame(frame)
	if err != nil {
		t.Fatalf("encodeFrame err: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	return decoded
}

func TestEncodeFrameEnvelope(t *testing.T) {
	cases := []struct {
		frame    OutboundFrame
		wantType string
	}{
		{ConnectedFrame{Message: "welcome"}, "connected"},
		{ChatResponseFrame{Data: &chat.Result{TextResponse: "hi"}}, "chat_response"},
		{PongFrame{}, "pong"},
		{ErrorFrame{Error: "boom"}, "error"},
	}

	for _, tc := range cases {
		decoded := decodeEnvelope(t, tc.frame)
		if decoded["type"] != tc.wantType {
			t.Fatalf("expected type %q, got %v", tc.wantType, decoded["type"])
		}
		ts, ok := decoded["timestamp"].(string)
		if !ok {
			t.Fatalf("%s frame missing timestamp", tc.wantType)
		}
		if _, err := time.Parse(time.RFC3339, ts); err != nil {
			t.Fatalf("%s timestamp not RFC3339: %v", tc.wantType, err)
		}
	}
}

func TestEncodeFramePayloadFields(t *testing.T) {
	connected := decodeEnvelope(t, ConnectedFrame{Message: "welcome"})
	if connected["message"] != "welcome" {
		t.Fatalf("connected frame missing message: %v", connected)
	}

	errFrame := decodeEnvelope(t, ErrorFrame{Error: "boom"})
	if errFrame["error"] != "boom" {
		t.Fatalf("error frame missing error: %v", errFrame)
	}

	response := decodeEnvelope(t, ChatResponseFrame{Data: &chat.Result{TextResponse: "hi"}})
	data, ok := response["data"].(map[string]any)
	if !ok || data["text_response"] != "hi" {
		t.Fatalf("chat_response frame missing data: %v", response)
	}

	pong := decodeEnvelope(t, PongFrame{})
	if len(pong) != 2 {
		t.Fatalf("pong frame should carry only the envelope, got %v", pong)
	}
}
