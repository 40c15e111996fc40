package gateway

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/nwei/chatgate/internal/auth"
	"github.com/nwei/chatgate/internal/model/chat"
)

// Generator produces a structured reply for one chat message. It may reject;
// the gateway treats failures as recoverable per-message errors.
type Generator interface {
	Generate(ctx context.Context, input, userID, threadID string) (*chat.Result, error)
}

// Gateway owns the live session set, the upgrade handshake, message
// dispatch, and the heartbeat supervisor. Construct one per running server
// instance.
type Gateway struct {
	registry  *Registry
	verifier  auth.Verifier
	generator Generator
	heartbeat *Heartbeat
	upgrader  websocket.Upgrader
}

// New wires a gateway around the given verifier and generator. A nil
// generator degrades chat handling to per-message errors rather than
// refusing connections.
func New(verifier auth.Verifier, generator Generator, heartbeatInterval time.Duration) *Gateway {
	registry := NewRegistry()
	return &Gateway{
		registry:  registry,
		verifier:  verifier,
		generator: generator,
		heartbeat: NewHeartbeat(registry, heartbeatInterval),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Start launches the heartbeat supervisor.
func (g *Gateway) Start() {
	g.heartbeat.Start()
}

// Broadcast delivers a frame to every open session. Closed transports are
// skipped, not errored.
func (g *Gateway) Broadcast(frame OutboundFrame) {
	for _, s := range g.registry.Snapshot() {
		if err := s.Send(frame); err != nil {
			log.Printf("[gateway] broadcast to session %s failed: %v", s.ID, err)
		}
	}
}

// SendToUser delivers a frame to every open session whose principal matches
// userID. One user may hold several concurrent sessions.
func (g *Gateway) SendToUser(userID string, frame OutboundFrame) {
	for _, s := range g.registry.Snapshot() {
		if s.Principal.UserID != userID {
			continue
		}
		if err := s.Send(frame); err != nil {
			log.Printf("[gateway] send to session %s user=%s failed: %v", s.ID, userID, err)
		}
	}
}

// Shutdown stops the heartbeat sweep and closes every live session. Safe to
// call repeatedly, with zero sessions, or before Start was ever called.
func (g *Gateway) Shutdown() {
	g.heartbeat.Stop()
	g.registry.CloseAll()
}
