package search

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"compintel/internal/adapters/config"
	"compintel/internal/adapters/ratelimit"
	"compintel/pkg/errors"
)

const tavilyAPIURL = "https://api.tavily.com/search"

// Result is a single web search hit
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// Searcher is the web search capability consumed by the agent pipeline.
// The client is long-lived and stateless across calls.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}

// Ensure TavilyClient implements Searcher
var _ Searcher = (*TavilyClient)(nil)

// TavilyClient calls the Tavily search API
type TavilyClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
	limiter *ratelimit.Limiter
}

// NewTavilyClient creates a new Tavily search client
func NewTavilyClient(cfg config.SearchConfig) *TavilyClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &TavilyClient{
		apiKey:  cfg.TavilyKey,
		baseURL: tavilyAPIURL,
		client:  &http.Client{Timeout: timeout},
		limiter: ratelimit.NewLimiter("search", cfg.RequestsPerMinute),
	}
}

// Search issues a single search request and returns up to maxResults hits.
func (c *TavilyClient) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	if c.apiKey == "" {
		return nil, errors.Wrap(errors.ErrProviderNotConfigured, "tavily API key not configured")
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, errors.Wrap(errors.ErrRateLimitExceeded, err.Error())
		}
	}

	tavilyReq := tavilyRequest{
		APIKey:      c.apiKey,
		Query:       query,
		MaxResults:  maxResults,
		SearchDepth: "basic",
	}

	body, err := json.Marshal(tavilyReq)
	if err != nil {
		return nil, errors.Wrap(err, "marshal tavily request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "create HTTP request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, "send tavily request")
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read tavily response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(errors.ErrExternal, "tavily API error (%d): %s",
			resp.StatusCode, string(respBody))
	}

	var tavilyResp tavilyResponse
	if err := json.Unmarshal(respBody, &tavilyResp); err != nil {
		return nil, errors.Wrap(err, "unmarshal tavily response")
	}

	return tavilyResp.Results, nil
}

// Tavily API types
type tavilyRequest struct {
	APIKey      string `json:"api_key"`
	Query       string `json:"query"`
	MaxResults  int    `json:"max_results"`
	SearchDepth string `json:"search_depth"`
}

type tavilyResponse struct {
	Query   string   `json:"query"`
	Results []Result `json:"results"`
}
