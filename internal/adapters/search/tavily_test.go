package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compintel/internal/adapters/config"
	"compintel/pkg/errors"
)

func TestTavilyClient_Search(t *testing.T) {
	var gotReq tavilyRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		_ = json.NewEncoder(w).Encode(tavilyResponse{
			Query: gotReq.Query,
			Results: []Result{
				{Title: "Acme CRM", URL: "https://acme.example", Content: "CRM for small teams"},
				{Title: "Beta Desk", URL: "https://beta.example", Content: "Support desk software"},
			},
		})
	}))
	defer srv.Close()

	client := NewTavilyClient(config.SearchConfig{TavilyKey: "test-key", RequestsPerMinute: 100})
	client.baseURL = srv.URL

	results, err := client.Search(context.Background(), "crm competitors", 3)
	require.NoError(t, err)

	assert.Equal(t, "test-key", gotReq.APIKey)
	assert.Equal(t, "crm competitors", gotReq.Query)
	assert.Equal(t, 3, gotReq.MaxResults)
	require.Len(t, results, 2)
	assert.Equal(t, "Acme CRM", results[0].Title)
}

func TestTavilyClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"invalid api key"}`))
	}))
	defer srv.Close()

	client := NewTavilyClient(config.SearchConfig{TavilyKey: "bad-key", RequestsPerMinute: 100})
	client.baseURL = srv.URL

	_, err := client.Search(context.Background(), "anything", 3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrExternal))
}

func TestTavilyClient_MissingKey(t *testing.T) {
	client := NewTavilyClient(config.SearchConfig{RequestsPerMinute: 100})

	_, err := client.Search(context.Background(), "anything", 3)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrProviderNotConfigured))
}
