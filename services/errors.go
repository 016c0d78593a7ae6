package services

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/sashabaranov/go-openai"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrEmptyQuestion        = errors.New("question is required")

	ErrBackendTimeout     = errors.New("generation backend timed out")
	ErrBackendUnavailable = errors.New("generation backend unreachable")
	ErrBackendStatus      = errors.New("generation backend returned an error")
	ErrMalformedResponse  = errors.New("generation backend returned no output")
)

// IsBackendError reports whether err came from the generation backend.
func IsBackendError(err error) bool {
	return errors.Is(err, ErrBackendTimeout) ||
		errors.Is(err, ErrBackendUnavailable) ||
		errors.Is(err, ErrBackendStatus) ||
		errors.Is(err, ErrMalformedResponse)
}

// classifyBackendError maps a raw backend call error onto one of the
// backend sentinels. Already classified errors are returned unchanged.
func classifyBackendError(err error) error {
	if err == nil || IsBackendError(err) {
		return err
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %v", ErrBackendTimeout, err)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: status %d: %s", ErrBackendStatus, apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("%w: status %d: %v", ErrBackendStatus, reqErr.HTTPStatusCode, reqErr.Err)
	}

	return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
}
