package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"compintel/internal/adapters/ratelimit"
	"compintel/internal/metrics"
	"compintel/pkg/errors"
)

const (
	claudeAPIURL       = "https://api.anthropic.com/v1/messages"
	claudeAPIVersion   = "2023-06-01"
	defaultClaudeModel = "claude-sonnet-4-20250514"
)

// Ensure ClaudeClient implements Completer
var _ Completer = (*ClaudeClient)(nil)

// ClaudeClient calls the Anthropic Messages API directly
type ClaudeClient struct {
	apiKey    string
	model     string
	maxTokens int
	baseURL   string
	client    *http.Client
	limiter   *ratelimit.Limiter
}

// NewClaudeClient creates a new Claude completion client
func NewClaudeClient(apiKey, model string, maxTokens int, timeout time.Duration, limiter *ratelimit.Limiter) *ClaudeClient {
	if model == "" {
		model = defaultClaudeModel
	}
	if maxTokens == 0 {
		maxTokens = 3000
	}
	if timeout == 0 {
		timeout = 2 * time.Minute
	}

	return &ClaudeClient{
		apiKey:    apiKey,
		model:     model,
		maxTokens: maxTokens,
		baseURL:   claudeAPIURL,
		client:    &http.Client{Timeout: timeout},
		limiter:   limiter,
	}
}

// Name returns the provider name.
func (c *ClaudeClient) Name() string { return "claude" }

// Complete sends a single-turn message request to the Claude API.
func (c *ClaudeClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", errors.Wrap(errors.ErrProviderNotConfigured, "claude API key not configured")
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", errors.Wrap(errors.ErrRateLimitExceeded, err.Error())
		}
	}

	claudeReq := claudeRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []claudeMessage{
			{Role: "user", Content: prompt},
		},
	}

	body, err := json.Marshal(claudeReq)
	if err != nil {
		return "", errors.Wrap(err, "marshal claude request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "create HTTP request")
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", claudeAPIVersion)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		metrics.InferenceCalls.WithLabelValues(c.Name(), "error").Inc()
		return "", errors.Wrap(err, "send claude request")
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "read claude response")
	}

	if resp.StatusCode != http.StatusOK {
		metrics.InferenceCalls.WithLabelValues(c.Name(), "error").Inc()
		var errResp struct {
			Error struct {
				Type    string `json:"type"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error.Type != "" {
			return "", errors.Wrapf(errors.ErrExternal, "claude API error (%d): %s - %s",
				resp.StatusCode, errResp.Error.Type, errResp.Error.Message)
		}
		return "", errors.Wrapf(errors.ErrExternal, "claude API error (%d): %s",
			resp.StatusCode, string(respBody))
	}

	var claudeResp claudeResponse
	if err := json.Unmarshal(respBody, &claudeResp); err != nil {
		return "", errors.Wrap(err, "unmarshal claude response")
	}

	var text strings.Builder
	for _, block := range claudeResp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	metrics.InferenceCalls.WithLabelValues(c.Name(), "success").Inc()
	return text.String(), nil
}

// Claude API types
type claudeRequest struct {
	Model     string          `json:"model"`
	Messages  []claudeMessage `json:"messages"`
	MaxTokens int             `json:"max_tokens"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}
