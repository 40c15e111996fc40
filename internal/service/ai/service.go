package ai

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/nwei/chatgate/internal/config"
	"github.com/nwei/chatgate/internal/model/chat"
	"github.com/nwei/chatgate/internal/service/thread"
)

const systemPrompt = "You are a helpful conversational assistant. Answer the user directly and keep responses concise."

// historyLimit caps how many stored turns are replayed into the model.
const historyLimit = 10

// Service generates chat replies through an eino prompt-template + chat
// model chain, using the thread transcript store for conversational context.
// It satisfies the gateway's Generator contract.
type Service struct {
	chatModel model.ChatModel
	threads   *thread.Service
	chain     compose.Runnable[map[string]any, *schema.Message]
}

// NewService creates the AI service from model configuration.
func NewService(ctx context.Context, threads *thread.Service, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{
		chatModel: chatModel,
		threads:   threads,
		chain:     runnable,
	}, nil
}

// Generate produces a reply for one chat message. The thread's stored
// transcript is replayed as history and both turns are recorded afterwards.
func (s *Service) Generate(ctx context.Context, input, userID, threadID string) (*chat.Result, error) {
	history, err := s.threads.Transcript(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("load transcript: %w", err)
	}

	userMsg := chat.Message{ThreadID: threadID, UserID: userID, Sender: "user", Content: input}
	if err := s.threads.Append(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("record user message: %w", err)
	}

	response, err := s.chain.Invoke(ctx, map[string]any{
		"system":  systemPrompt,
		"history": buildHistory(history),
		"query":   input,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to run chat chain: %w", err)
	}

	assistantMsg := chat.Message{ThreadID: threadID, UserID: userID, Sender: "assistant", Content: response.Content}
	if err := s.threads.Append(ctx, assistantMsg); err != nil {
		log.Printf("[ai] record assistant message failed thread=%s: %v", threadID, err)
	}

	log.Printf("[ai] generated response user=%s thread=%s length=%d", userID, threadID, len(response.Content))
	return &chat.Result{TextResponse: response.Content}, nil
}

func buildHistory(messages []chat.Message) []*schema.Message {
	if len(messages) == 0 {
		return nil
	}

	startIdx := 0
	if len(messages) > historyLimit {
		startIdx = len(messages) - historyLimit
	}

	history := make([]*schema.Message, 0, len(messages)-startIdx)
	for _, msg := range messages[startIdx:] {
		switch msg.Sender {
		case "user":
			history = append(history, schema.UserMessage(msg.Content))
		case "assistant":
			history = append(history, schema.AssistantMessage(msg.Content, nil))
		}
	}

	return history
}
