package ai

import (
	"context"
	"fmt"
)

// ChatProvider is the contract each completion backend must satisfy.
// Implementations must be safe for concurrent use: the provider is shared
// by every in-flight consultation and chat request.
type ChatProvider interface {
	Name() string

	// Chat sends a chat completion request and returns the model's reply.
	Chat(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

// RateLimitError indicates the local rate limiter refused a request.
type RateLimitError struct {
	Provider string
	Limit    float64
	Err      error
}

// Error implements the error interface
func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded for provider %s (limit: %.0f req/min): %v", e.Provider, e.Limit, e.Err)
}

// Unwrap returns the underlying error
func (e *RateLimitError) Unwrap() error {
	return e.Err
}
