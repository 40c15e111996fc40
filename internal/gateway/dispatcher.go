package gateway

import (
	"context"
	"encoding/json"
	"log"
)

// Error texts sent to clients. Message-local failures never close the
// session and never leak internal error detail.
const (
	errInvalidFormat  = "Invalid message format"
	errMissingFields  = "Missing required fields or not authenticated"
	errGenerateFailed = "Failed to process chat message"
	errUnknownType    = "Unknown message type"
)

// handleInbound decodes one client frame and routes it. Any traffic counts
// as a liveness signal before anything else happens.
func (g *Gateway) handleInbound(ctx context.Context, session *Session, raw []byte) {
	session.markAlive()

	var msg inboundMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		g.sendError(session, errInvalidFormat)
		return
	}

	switch msg.Type {
	case msgTypeChat:
		g.handleChat(ctx, session, msg)
	case msgTypePing:
		g.send(session, PongFrame{})
	default:
		g.sendError(session, errUnknownType)
	}
}

func (g *Gateway) handleChat(ctx context.Context, session *Session, msg inboundMessage) {
	if msg.Input == "" || msg.ThreadID == "" || session.Principal.UserID == "" {
		g.sendError(session, errMissingFields)
		return
	}
	if g.generator == nil {
		log.Printf("[gateway] chat message dropped, no generator configured session=%s", session.ID)
		g.sendError(session, errGenerateFailed)
		return
	}

	// The generator call is the suspension point: it runs off the read loop
	// so heartbeat sweeps and other sessions proceed while it is pending.
	go func() {
		result, err := g.generator.Generate(ctx, msg.Input, session.Principal.UserID, msg.ThreadID)
		if err != nil {
			log.Printf("[gateway] chat generation failed session=%s thread=%s: %v", session.ID, msg.ThreadID, err)
			g.sendError(session, errGenerateFailed)
			return
		}
		g.send(session, ChatResponseFrame{Data: result})
	}()
}

func (g *Gateway) send(session *Session, frame OutboundFrame) {
	if err := session.Send(frame); err != nil {
		log.Printf("[gateway] write frame failed session=%s: %v", session.ID, err)
	}
}

func (g *Gateway) sendError(session *Session, message string) {
	g.send(session, ErrorFrame{Error: message})
}
