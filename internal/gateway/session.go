package gateway

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/nwei/chatgate/internal/auth"
)

const writeWait = 10 * time.Second

// Conn is the subset of the underlying WebSocket connection the gateway
// uses. *websocket.Conn satisfies it; tests substitute a recording fake.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	Close() error
}

// Session is one live, authenticated logical connection. Sessions exist only
// after a successful handshake: the principal is bound once and never
// changes. The alive flag is cleared by each heartbeat sweep and re-armed by
// any inbound traffic or probe acknowledgment.
type Session struct {
	ID        string
	Principal auth.Principal

	mu     sync.Mutex
	conn   Conn
	alive  bool
	closed bool
}

func newSession(conn Conn, principal auth.Principal) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Principal: principal,
		conn:      conn,
		alive:     true,
	}
}

// Send writes a frame to the peer. Writing to a session whose transport is
// no longer open is a silent no-op: half-closed peers are expected, not
// exceptional.
func (s *Session) Send(frame OutboundFrame) error {
	data, err := encodeFrame(frame)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.closed = true
		return err
	}
	return nil
}

// Ping sends a liveness probe control frame.
func (s *Session) Ping() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
		s.closed = true
		return err
	}
	return nil
}

// Close tears down the transport. Idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()
	_ = s.conn.Close()
}

// markAlive records activity on the session. Any traffic counts, not just
// probe acknowledgments.
func (s *Session) markAlive() {
	s.mu.Lock()
	s.alive = true
	s.mu.Unlock()
}

// consumeAlive reports whether activity was seen since the previous sweep
// and clears the flag for the next window.
func (s *Session) consumeAlive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	was := s.alive
	s.alive = false
	return was
}
