package services

import (
	"context"
	"log"
	"strings"
	"time"

	"chatproxy/models"

	"github.com/google/uuid"
)

// AskResult is the outcome of a successful Ask.
type AskResult struct {
	Answer  string
	History []models.Turn
}

// ChatService ties the store, the prompt assembler and the generation
// backend together. Requests for the same conversation are serialized.
type ChatService struct {
	store     *ConversationStore
	generator Generator
	timeout   time.Duration
}

func NewChatService(store *ConversationStore, generator Generator, timeout time.Duration) *ChatService {
	return &ChatService{
		store:     store,
		generator: generator,
		timeout:   timeout,
	}
}

// Ask answers question in the context of conversation id. History is only
// updated after the backend returns successfully; on any backend error the
// stored turns are left as they were.
func (s *ChatService) Ask(ctx context.Context, id, question string) (*AskResult, error) {
	if strings.TrimSpace(question) == "" {
		return nil, ErrEmptyQuestion
	}

	unlock := s.store.Lock(id)
	defer unlock()

	history := s.store.Get(id)
	prompt := AssemblePrompt(history, question)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	answer, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		err = classifyBackendError(err)
		log.Printf("Error generating answer for conversation %s after %s: %v", id, time.Since(start), err)
		return nil, err
	}

	updated := s.store.Append(id, models.UserTurn(question), models.AssistantTurn(answer))
	return &AskResult{Answer: answer, History: updated}, nil
}

// Conversation returns the stored turns for id, or ErrConversationNotFound.
func (s *ChatService) Conversation(id string) ([]models.Turn, error) {
	turns, ok := s.store.Lookup(id)
	if !ok {
		return nil, ErrConversationNotFound
	}
	return turns, nil
}

// DeleteConversation removes id, or returns ErrConversationNotFound.
func (s *ChatService) DeleteConversation(id string) error {
	unlock := s.store.Lock(id)
	defer unlock()

	if !s.store.Delete(id) {
		return ErrConversationNotFound
	}
	return nil
}

// StartConversation assigns a fresh identifier and registers it with an
// empty history.
func (s *ChatService) StartConversation() string {
	for {
		id := uuid.NewString()
		if s.store.Create(id) {
			return id
		}
	}
}
