package ai

import (
	"context"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"compintel/internal/adapters/ratelimit"
	"compintel/internal/metrics"
	"compintel/pkg/errors"
)

const defaultOpenAIModel = "gpt-4o"

// Ensure OpenAIClient implements Completer
var _ Completer = (*OpenAIClient)(nil)

// OpenAIClient wraps the official OpenAI Go SDK
type OpenAIClient struct {
	client    openai.Client
	model     string
	maxTokens int
	timeout   time.Duration
	limiter   *ratelimit.Limiter
}

// NewOpenAIClient creates a new OpenAI completion client using the official SDK
func NewOpenAIClient(apiKey, model string, maxTokens int, timeout time.Duration, limiter *ratelimit.Limiter) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, errors.Wrap(errors.ErrProviderNotConfigured, "openai API key not configured")
	}
	if model == "" {
		model = defaultOpenAIModel
	}
	if maxTokens == 0 {
		maxTokens = 3000
	}
	if timeout == 0 {
		timeout = 2 * time.Minute
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
	)

	return &OpenAIClient{
		client:    client,
		model:     model,
		maxTokens: maxTokens,
		timeout:   timeout,
		limiter:   limiter,
	}, nil
}

// Name returns the provider name.
func (c *OpenAIClient) Name() string { return "openai" }

// Complete sends a single-turn chat completion request.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", errors.Wrap(errors.ErrRateLimitExceeded, err.Error())
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxTokens: openai.Int(int64(c.maxTokens)),
	})
	if err != nil {
		metrics.InferenceCalls.WithLabelValues(c.Name(), "error").Inc()
		return "", errors.Wrap(err, "openai API call failed")
	}

	if len(resp.Choices) == 0 {
		metrics.InferenceCalls.WithLabelValues(c.Name(), "error").Inc()
		return "", errors.Wrap(errors.ErrExternal, "openai returned no choices")
	}

	metrics.InferenceCalls.WithLabelValues(c.Name(), "success").Inc()
	return resp.Choices[0].Message.Content, nil
}
