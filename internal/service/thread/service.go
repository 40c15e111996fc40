package thread

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nwei/chatgate/internal/model/chat"
)

var ErrThreadRequired = errors.New("thread id is required")

// Service keeps per-thread transcripts in memory. Transcripts exist only to
// give the response generator conversational context; nothing is durable.
type Service struct {
	mu      sync.RWMutex
	entries map[string][]chat.Message
}

// NewService bootstraps the in-memory transcript store.
func NewService() *Service {
	return &Service{
		entries: make(map[string][]chat.Message),
	}
}

// Append adds a message to its thread's transcript. Threads come into being
// on first append; there is no separate creation step.
func (s *Service) Append(_ context.Context, message chat.Message) error {
	if message.ThreadID == "" {
		return ErrThreadRequired
	}

	message.ID = uuid.NewString()
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}

	s.mu.Lock()
	s.entries[message.ThreadID] = append(s.entries[message.ThreadID], message)
	s.mu.Unlock()
	return nil
}

// Transcript returns stored messages for the thread, oldest first. An
// unknown thread yields an empty transcript, not an error.
func (s *Service) Transcript(_ context.Context, threadID string) ([]chat.Message, error) {
	if threadID == "" {
		return nil, ErrThreadRequired
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := s.entries[threadID]
	copied := make([]chat.Message, len(messages))
	copy(copied, messages)
	return copied, nil
}
