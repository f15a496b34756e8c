package agents

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rankedFive = `[
  {"name": "Acme", "url": "acme.com", "description": "d", "category": "SaaS", "relevanceScore": 9, "marketPosition": "leader", "relevanceReason": "r"},
  {"name": "Beta", "url": "beta.com", "description": "d", "category": "SaaS", "relevanceScore": 8, "marketPosition": "challenger", "relevanceReason": "r"},
  {"name": "Gamma", "url": "gamma.com", "description": "d", "category": "SaaS", "relevanceScore": 7, "marketPosition": "challenger", "relevanceReason": "r"},
  {"name": "Delta", "url": "delta.com", "description": "d", "category": "SaaS", "relevanceScore": 6, "marketPosition": "emerging", "relevanceReason": "r"},
  {"name": "Epsilon", "url": "epsilon.com", "description": "d", "category": "SaaS", "relevanceScore": 5, "marketPosition": "emerging", "relevanceReason": "r"}
]`

func TestDiscovery_CapsSearchCalls(t *testing.T) {
	completer := &stubCompleter{responses: []string{
		`["q1", "q2", "q3", "q4", "q5", "q6"]`,
		rankedFive,
	}}
	searcher := &stubSearcher{results: searchResults(3)}
	p := newTestPipeline(completer, searcher)

	st := NewState("note-taking app", ModeDescription)
	require.NoError(t, p.runDiscovery(context.Background(), st))

	// All planned queries are recorded but only the first three are searched.
	assert.Len(t, st.SearchQueries, 6)
	assert.Len(t, searcher.calls, 3)
	assert.Equal(t, []int{3, 3, 3}, searcher.maxResults)
	assert.Equal(t, "q1 note-taking app", searcher.calls[0])
	assert.Equal(t, StatusComplete, st.AgentStatus[StageDiscovery])
}

func TestDiscovery_QueryPlanningFallback(t *testing.T) {
	completer := &stubCompleter{responses: []string{
		"I am unable to produce queries right now.",
		rankedFive,
	}}
	searcher := &stubSearcher{results: searchResults(3)}
	p := newTestPipeline(completer, searcher)

	st := NewState("note-taking app", ModeDescription)
	require.NoError(t, p.runDiscovery(context.Background(), st))

	assert.Equal(t, []string{"competitors", "alternatives", "similar products"}, st.SearchQueries)
	assert.Len(t, searcher.calls, 3)
}

func TestDiscovery_SearchFailureSkipped(t *testing.T) {
	completer := &stubCompleter{responses: []string{
		`["q1", "q2", "q3"]`,
		rankedFive,
	}}
	searcher := &stubSearcher{
		results: searchResults(3),
		failOn:  map[int]error{2: fmt.Errorf("connection reset")},
	}
	p := newTestPipeline(completer, searcher)

	st := NewState("note-taking app", ModeDescription)
	require.NoError(t, p.runDiscovery(context.Background(), st))

	// Two successful searches, three results each.
	assert.Len(t, st.RawCompetitors, 6)
	assert.Len(t, st.Competitors, 5)

	var skipped bool
	for _, msg := range st.Messages {
		if strings.Contains(msg, "failed, skipping") {
			skipped = true
		}
	}
	assert.True(t, skipped, "expected a progress message documenting the skipped search")
}

func TestDiscovery_RankingNoPayloadYieldsEmptyList(t *testing.T) {
	completer := &stubCompleter{responses: []string{
		`["q1"]`,
		"I could not identify any competitors worth ranking.",
	}}
	searcher := &stubSearcher{results: searchResults(3)}
	p := newTestPipeline(completer, searcher)

	st := NewState("note-taking app", ModeDescription)
	require.NoError(t, p.runDiscovery(context.Background(), st))

	require.NotNil(t, st.Competitors)
	assert.Empty(t, st.Competitors)
	assert.Equal(t, StatusComplete, st.AgentStatus[StageDiscovery])
}

func TestDiscovery_RankingMalformedPayloadYieldsPlaceholder(t *testing.T) {
	completer := &stubCompleter{responses: []string{
		`["q1"]`,
		"[ {invalid json",
	}}
	searcher := &stubSearcher{results: searchResults(3)}
	p := newTestPipeline(completer, searcher)

	st := NewState("note-taking app", ModeDescription)
	require.NoError(t, p.runDiscovery(context.Background(), st))

	require.Len(t, st.Competitors, 1)
	assert.Equal(t, "Competitor A", st.Competitors[0].Name)
	assert.Equal(t, "leader", st.Competitors[0].MarketPosition)
}

func TestDiscovery_TruncatesDescriptions(t *testing.T) {
	completer := &stubCompleter{responses: []string{`["q1"]`, rankedFive}}
	searcher := &stubSearcher{results: searchResults(1)}
	searcher.results[0].Content = strings.Repeat("x", 500)
	p := newTestPipeline(completer, searcher)

	st := NewState("note-taking app", ModeDescription)
	require.NoError(t, p.runDiscovery(context.Background(), st))

	require.NotEmpty(t, st.RawCompetitors)
	assert.Len(t, st.RawCompetitors[0].Description, 200)
}

func TestDiscovery_RanksAtMostTenRaws(t *testing.T) {
	completer := &stubCompleter{responses: []string{`["q1", "q2", "q3", "q4"]`, rankedFive}}
	searcher := &stubSearcher{results: searchResults(5)}
	p := newTestPipeline(completer, searcher)

	st := NewState("note-taking app", ModeDescription)
	require.NoError(t, p.runDiscovery(context.Background(), st))

	// 3 searches x 5 results collected, but the ranking prompt sees at most 10.
	assert.Len(t, st.RawCompetitors, 15)
	require.Len(t, completer.prompts, 2)
	assert.Equal(t, 10, strings.Count(completer.prompts[1], `"source": "web_search"`))
}

func TestDiscovery_UnknownTitleDefaults(t *testing.T) {
	completer := &stubCompleter{responses: []string{`["q1"]`, rankedFive}}
	searcher := &stubSearcher{}
	searcher.results = searchResults(1)
	searcher.results[0].Title = ""
	p := newTestPipeline(completer, searcher)

	st := NewState("note-taking app", ModeDescription)
	require.NoError(t, p.runDiscovery(context.Background(), st))

	require.NotEmpty(t, st.RawCompetitors)
	assert.Equal(t, "Unknown", st.RawCompetitors[0].Name)
}
