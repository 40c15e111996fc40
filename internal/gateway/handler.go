package gateway

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/nwei/chatgate/internal/auth"
)

const (
	credentialCookie = "auth_token"

	closeReasonUnauthorized = "Unauthorized"

	welcomeMessage = "Connected to chat gateway"
)

// RegisterRoutes mounts the WebSocket endpoint.
func (g *Gateway) RegisterRoutes(r chi.Router) {
	r.Get("/ws", g.HandleConnection)
}

// HandleConnection upgrades the HTTP request and runs the session lifecycle:
// credential check, registration, welcome frame, then the read loop until
// the transport dies.
func (g *Gateway) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[gateway] upgrade failed: %v", err)
		return
	}

	principal, ok := g.authenticate(r)
	if !ok {
		g.rejectUnauthorized(conn)
		return
	}

	session := newSession(conn, principal)
	g.registry.Add(session)
	log.Printf("[gateway] session %s connected user=%s", session.ID, principal.UserID)

	conn.SetPongHandler(func(string) error {
		session.markAlive()
		return nil
	})

	if err := session.Send(ConnectedFrame{Message: welcomeMessage}); err != nil {
		log.Printf("[gateway] welcome frame failed session=%s: %v", session.ID, err)
	}

	g.readLoop(r.Context(), session, conn)
}

// authenticate extracts the credential from the handshake metadata and asks
// the verifier for a principal. An absent or empty credential short-circuits
// without a verifier call.
func (g *Gateway) authenticate(r *http.Request) (auth.Principal, bool) {
	cookie, err := r.Cookie(credentialCookie)
	if err != nil || strings.TrimSpace(cookie.Value) == "" {
		return auth.Principal{}, false
	}
	return g.verifier.Verify(cookie.Value)
}

// rejectUnauthorized closes the raw connection with the policy-violation
// code. No session exists at this point and the registry is untouched.
func (g *Gateway) rejectUnauthorized(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, closeReasonUnauthorized)
	if err := conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait)); err != nil {
		log.Printf("[gateway] unauthorized close failed: %v", err)
	}
	_ = conn.Close()
}

func (g *Gateway) readLoop(ctx context.Context, session *Session, conn *websocket.Conn) {
	// A disconnect must not cancel an in-flight generator call; the late
	// response lands on a closed transport and is dropped there.
	dispatchCtx := context.WithoutCancel(ctx)

	defer func() {
		g.registry.Remove(session)
		session.Close()
		log.Printf("[gateway] session %s closed user=%s", session.ID, session.Principal.UserID)
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Printf("[gateway] read error session=%s: %v", session.ID, err)
			}
			return
		}
		g.handleInbound(dispatchCtx, session, raw)
	}
}
