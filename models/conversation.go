package models

// Role identifies who authored a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one stored message in a conversation. Only user and assistant
// turns are ever stored.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

func UserTurn(content string) Turn {
	return Turn{Role: RoleUser, Content: content}
}

func AssistantTurn(content string) Turn {
	return Turn{Role: RoleAssistant, Content: content}
}

// Message is a single prompt entry sent to the generation backend.
type Message struct {
	Role    Role
	Content string
}

// Conversation is the API view of a stored conversation.
type Conversation struct {
	ID       string `json:"conversation_id"`
	Messages []Turn `json:"messages"`
}
