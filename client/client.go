// Package client talks to the chat proxy API over HTTP.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"chatproxy/models"

	"github.com/go-resty/resty/v2"
)

var (
	ErrTimeout    = errors.New("request timed out")
	ErrConnection = errors.New("failed to connect to the API")
	ErrNotFound   = errors.New("conversation not found")
)

// APIError is a non-success response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

type AskResponse struct {
	Answer              string        `json:"answer"`
	ConversationHistory []models.Turn `json:"conversation_history"`
}

type errorBody struct {
	Error string `json:"error"`
}

type Client struct {
	http *resty.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
	}
}

// Welcome calls the liveness endpoint and returns its message.
func (c *Client) Welcome(ctx context.Context) (string, error) {
	var out struct {
		Message string `json:"message"`
	}
	resp, err := c.http.R().SetContext(ctx).SetResult(&out).Get("/")
	if err := checkResponse(resp, err); err != nil {
		return "", err
	}
	return out.Message, nil
}

// Ask submits question to conversation id. A single attempt is made.
func (c *Client) Ask(ctx context.Context, id, question string) (*AskResponse, error) {
	var out AskResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("conversation_id", id).
		SetBody(map[string]string{"question": question}).
		SetResult(&out).
		Post("/ask/{conversation_id}")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Conversation(ctx context.Context, id string) (*models.Conversation, error) {
	var out models.Conversation
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("conversation_id", id).
		SetResult(&out).
		Get("/conversation/{conversation_id}")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteConversation(ctx context.Context, id string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("conversation_id", id).
		Delete("/conversation/{conversation_id}")
	return checkResponse(resp, err)
}

// NewConversation asks the server to assign a conversation id.
func (c *Client) NewConversation(ctx context.Context) (string, error) {
	var out struct {
		ConversationID string `json:"conversation_id"`
	}
	resp, err := c.http.R().SetContext(ctx).SetResult(&out).Post("/conversation")
	if err := checkResponse(resp, err); err != nil {
		return "", err
	}
	return out.ConversationID, nil
}

func checkResponse(resp *resty.Response, err error) error {
	if err != nil {
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			return fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	if !resp.IsError() {
		return nil
	}
	if resp.StatusCode() == http.StatusNotFound {
		return ErrNotFound
	}

	msg := resp.String()
	var body errorBody
	if json.Unmarshal(resp.Body(), &body) == nil && body.Error != "" {
		msg = body.Error
	}
	return &APIError{StatusCode: resp.StatusCode(), Message: msg}
}
