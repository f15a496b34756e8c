package agents

import (
	"context"
	"fmt"

	"compintel/internal/adapters/search"
)

// stubCompleter replays canned responses in order and records prompts
type stubCompleter struct {
	responses []string
	prompts   []string
	err       error
}

func (s *stubCompleter) Name() string { return "stub" }

func (s *stubCompleter) Complete(_ context.Context, prompt string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.prompts = append(s.prompts, prompt)
	if len(s.responses) == 0 {
		return "", fmt.Errorf("stub completer exhausted after %d prompts", len(s.prompts))
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]
	return resp, nil
}

// stubSearcher returns the same result set for every query and records calls
type stubSearcher struct {
	results    []search.Result
	calls      []string
	maxResults []int
	failOn     map[int]error // 1-based call index -> error
}

func (s *stubSearcher) Search(_ context.Context, query string, maxResults int) ([]search.Result, error) {
	s.calls = append(s.calls, query)
	s.maxResults = append(s.maxResults, maxResults)
	if err, ok := s.failOn[len(s.calls)]; ok {
		return nil, err
	}
	return s.results, nil
}

func newTestPipeline(c *stubCompleter, s *stubSearcher) *Pipeline {
	return NewPipeline(c, s)
}

func searchResults(n int) []search.Result {
	results := make([]search.Result, n)
	for i := range results {
		results[i] = search.Result{
			Title:   fmt.Sprintf("Vendor %d", i+1),
			URL:     fmt.Sprintf("https://vendor%d.example", i+1),
			Content: fmt.Sprintf("Vendor %d sells a competing product with many features", i+1),
		}
	}
	return results
}
