package services

import (
	"context"
	"log"
	"net/http"

	"chatproxy/config"
	"chatproxy/models"

	"github.com/sashabaranov/go-openai"
)

// Generator produces the assistant reply for an assembled prompt.
type Generator interface {
	Generate(ctx context.Context, prompt []models.Message) (string, error)
}

// OpenAIGenerator talks to any OpenAI-compatible chat completions API
// (OpenAI, Groq, local gateways) selected by BaseURL.
type OpenAIGenerator struct {
	client      *openai.Client
	model       string
	temperature float32
}

func NewOpenAIGenerator(cfg config.LLMConfig) *OpenAIGenerator {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = cfg.BaseURL
	clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &OpenAIGenerator{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}
}

// Generate issues a single non-streaming completion. Errors are classified
// into the backend sentinels; nothing is retried.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt []models.Message) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(prompt))
	for _, msg := range prompt {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}

	log.Printf("Calling %s with %d prompt messages", g.model, len(messages))

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Messages:    messages,
		Temperature: g.temperature,
	})
	if err != nil {
		return "", classifyBackendError(err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrMalformedResponse
	}
	return resp.Choices[0].Message.Content, nil
}
