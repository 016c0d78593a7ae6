package client

import (
	"chatproxy/models"

	"github.com/google/uuid"
)

// Session is the client-side view of one conversation: its identifier
// and the turns rendered so far.
type Session struct {
	ID       string
	Messages []models.Turn
}

func NewSession() *Session {
	return &Session{ID: uuid.NewString()}
}

// Reset starts a new conversation with a fresh identifier.
func (s *Session) Reset() {
	s.ID = uuid.NewString()
	s.Messages = nil
}

// Record adds a completed exchange. The server's history is authoritative
// and replaces the local copy when present.
func (s *Session) Record(question string, resp *AskResponse) {
	if len(resp.ConversationHistory) > 0 {
		s.Messages = append([]models.Turn(nil), resp.ConversationHistory...)
		return
	}
	s.Messages = append(s.Messages, models.UserTurn(question), models.AssistantTurn(resp.Answer))
}
