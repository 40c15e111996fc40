package thread_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nwei/chatgate/internal/model/chat"
	"github.com/nwei/chatgate/internal/service/thread"
)

func TestServiceAppendAndTranscript(t *testing.T) {
	svc := thread.NewService()
	ctx := context.Background()

	err := svc.Append(ctx, chat.Message{ThreadID: "thread-123", UserID: "test-user", Sender: "user", Content: "Hello, AI!"})
	if err != nil {
		t.Fatalf("Append err: %v", err)
	}
	err = svc.Append(ctx, chat.Message{ThreadID: "thread-123", UserID: "test-user", Sender: "assistant", Content: "Hello, human!"})
	if err != nil {
		t.Fatalf("Append err: %v", err)
	}

	messages, err := svc.Transcript(ctx, "thread-123")
	if err != nil {
		t.Fatalf("Transcript err: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].Sender != "user" || messages[1].Sender != "assistant" {
		t.Fatalf("messages out of order: %v", messages)
	}
	if messages[0].ID == "" || messages[0].CreatedAt.IsZero() {
		t.Fatal("expected ID and timestamp to be assigned")
	}
}

func TestServiceTranscriptUnknownThread(t *testing.T) {
	svc := thread.NewService()

	messages, err := svc.Transcript(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Transcript err: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected empty transcript, got %d messages", len(messages))
	}
}

func TestServiceAppendRequiresThread(t *testing.T) {
	svc := thread.NewService()

	err := svc.Append(context.Background(), chat.Message{Sender: "user", Content: "hi"})
	if !errors.Is(err, thread.ErrThreadRequired) {
		t.Fatalf("expected ErrThreadRequired, got %v", err)
	}
}
