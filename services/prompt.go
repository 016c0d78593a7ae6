package services

import "chatproxy/models"

// SystemPrompt opens every prompt sent to the generation backend.
const SystemPrompt = "You are a helpful assistant. Please respond to the user queries while maintaining context of the conversation."

// AssemblePrompt builds the backend input: the system instruction, every
// history turn in order, then the new question as a user message.
// History length is not capped here; the store's window bounds it.
func AssemblePrompt(history []models.Turn, question string) []models.Message {
	messages := make([]models.Message, 0, len(history)+2)
	messages = append(messages, models.Message{Role: models.RoleSystem, Content: SystemPrompt})
	for _, turn := range history {
		messages = append(messages, models.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, models.Message{Role: models.RoleUser, Content: question})
	return messages
}
