package ai

import (
	"context"
	"time"

	"google.golang.org/genai"

	"compintel/internal/adapters/ratelimit"
	"compintel/internal/metrics"
	"compintel/pkg/errors"
)

const defaultGeminiModel = "gemini-1.5-flash"

// Ensure GeminiClient implements Completer
var _ Completer = (*GeminiClient)(nil)

// GeminiClient wraps the Google Gen AI SDK
type GeminiClient struct {
	client    *genai.Client
	model     string
	maxTokens int
	timeout   time.Duration
	limiter   *ratelimit.Limiter
}

// NewGeminiClient creates a new Gemini completion client
func NewGeminiClient(ctx context.Context, apiKey, model string, maxTokens int, timeout time.Duration, limiter *ratelimit.Limiter) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.Wrap(errors.ErrProviderNotConfigured, "gemini API key not configured")
	}
	if model == "" {
		model = defaultGeminiModel
	}
	if maxTokens == 0 {
		maxTokens = 3000
	}
	if timeout == 0 {
		timeout = 2 * time.Minute
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create gemini client")
	}

	return &GeminiClient{
		client:    client,
		model:     model,
		maxTokens: maxTokens,
		timeout:   timeout,
		limiter:   limiter,
	}, nil
}

// Name returns the provider name.
func (c *GeminiClient) Name() string { return "gemini" }

// Complete sends a single-turn generate-content request.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", errors.Wrap(errors.ErrRateLimitExceeded, err.Error())
		}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		MaxOutputTokens: int32(c.maxTokens),
	})
	if err != nil {
		metrics.InferenceCalls.WithLabelValues(c.Name(), "error").Inc()
		return "", errors.Wrap(err, "gemini API call failed")
	}

	text := resp.Text()
	if text == "" {
		metrics.InferenceCalls.WithLabelValues(c.Name(), "error").Inc()
		return "", errors.Wrap(errors.ErrExternal, "gemini returned no content")
	}

	metrics.InferenceCalls.WithLabelValues(c.Name(), "success").Inc()
	return text, nil
}
