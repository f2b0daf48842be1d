package ai

import (
	"context"
	"net/http"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"themis/pkg/errors"
	"themis/pkg/logger"
)

const providerNameOpenAI = "openai"

// Ensure OpenAIProvider implements ChatProvider
var _ ChatProvider = (*OpenAIProvider)(nil)

// OpenAIProvider implements chat completions using the official OpenAI Go SDK
type OpenAIProvider struct {
	client      openai.Client
	model       string
	timeout     time.Duration
	rateLimiter RateLimiter
	log         *logger.Logger
}

// NewOpenAIProvider creates a new OpenAI chat provider
func NewOpenAIProvider(apiKey string, model string, timeout time.Duration, limiter RateLimiter) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, errors.Wrap(errors.ErrInvalidInput, "openai API key is required")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	if limiter == nil {
		limiter = NewNoOpLimiter()
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &OpenAIProvider{
		client:      client,
		model:       model,
		timeout:     timeout,
		rateLimiter: limiter,
		log:         logger.Get().With("component", "openai_chat", "model", model),
	}, nil
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string { return providerNameOpenAI }

// Chat sends a chat completion request to the OpenAI API.
func (p *OpenAIProvider) Chat(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	// Wait for rate limiter
	if err := p.rateLimiter.Wait(ctx); err != nil {
		return nil, &RateLimitError{
			Provider: providerNameOpenAI,
			Limit:    p.rateLimiter.Limit(),
			Err:      err,
		}
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	model := req.Model
	if model == "" {
		model = p.model
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages))
	for _, msg := range req.Messages {
		switch msg.Role {
		case RoleSystem:
			messages = append(messages, openai.SystemMessage(msg.Content))
		case RoleAssistant:
			messages = append(messages, openai.AssistantMessage(msg.Content))
		default:
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: messages,
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if req.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(req.MaxTokens))
	}

	start := time.Now()
	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apierr *openai.Error
		if errors.As(err, &apierr) {
			if apierr.StatusCode == http.StatusTooManyRequests {
				return nil, errors.Wrapf(errors.ErrQuotaExceeded, "openai API (%d): %v", apierr.StatusCode, err)
			}
			return nil, errors.Wrapf(errors.ErrExternal, "openai API (%d): %v", apierr.StatusCode, err)
		}
		return nil, errors.Wrap(err, "openai API call failed")
	}

	if len(completion.Choices) == 0 {
		return nil, errors.Wrap(errors.ErrExternal, "openai returned no choices")
	}

	p.log.Debugw("Chat completion finished",
		"latency", time.Since(start),
		"tokens", completion.Usage.TotalTokens)

	return &CompletionResponse{
		ID:      completion.ID,
		Model:   completion.Model,
		Content: completion.Choices[0].Message.Content,
		Usage: Usage{
			PromptTokens:     int(completion.Usage.PromptTokens),
			CompletionTokens: int(completion.Usage.CompletionTokens),
			TotalTokens:      int(completion.Usage.TotalTokens),
		},
	}, nil
}
