package gateway

import (
	"testing"

	"github.com/nwei/chatgate/internal/auth"
)

func TestRegistryAddRemove(t *testing.T) {
	r := NewRegistry()
	s := newSession(newFakeConn(), auth.Principal{UserID: "u1"})

	r.Add(s)
	if r.Len() != 1 {
		t.Fatalf("expected 1 session, got %d", r.Len())
	}

	r.Remove(s)
	if r.Len() != 0 {
		t.Fatalf("expected empty registry, got %d", r.Len())
	}

	// Removing an absent session is a no-op.
	r.Remove(s)
	if r.Len() != 0 {
		t.Fatalf("idempotent remove changed the registry")
	}
}

func TestRegistryCloseAll(t *testing.T) {
	r := NewRegistry()
	first := newFakeConn()
	second := newFakeConn()
	r.Add(newSession(first, auth.Principal{UserID: "u1"}))
	r.Add(newSession(second, auth.Principal{UserID: "u2"}))

	r.CloseAll()

	if r.Len() != 0 {
		t.Fatalf("expected empty registry after CloseAll, got %d", r.Len())
	}
	if !first.isClosed() || !second.isClosed() {
		t.Fatalf("expected every transport closed")
	}
}

func TestSessionSendAfterCloseIsNoop(t *testing.T) {
	conn := newFakeConn()
	s := newSession(conn, auth.Principal{UserID: "u1"})
	s.Close()

	if err := s.Send(PongFrame{}); err != nil {
		t.Fatalf("send on closed session must not error, got %v", err)
	}
	if conn.frameCount() != 0 {
		t.Fatalf("send on closed session must not write")
	}
}

func TestSessionCloseIdempotent(t *testing.T) {
	s := newSession(newFakeConn(), auth.Principal{UserID: "u1"})
	s.Close()
	s.Close()
}
