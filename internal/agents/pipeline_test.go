package agents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compintel/pkg/errors"
)

func TestPipeline_EndToEnd(t *testing.T) {
	completer := &stubCompleter{responses: []string{
		`["chatbot competitors", "customer support AI", "helpdesk alternatives", "emerging support tools"]`,
		rankedFive,
		wellFormedNarrative,
		validMatrix,
		strategyNarrative,
	}}
	searcher := &stubSearcher{results: searchResults(3)}
	p := NewPipeline(completer, searcher)

	st, err := p.Run(context.Background(), "AI-powered customer support chatbot for e-commerce", ModeDescription)
	require.NoError(t, err)

	assert.Len(t, st.Competitors, 5)
	assert.NotEmpty(t, st.CompetitiveAnalysis)
	assert.Len(t, st.MarketGaps, 5)
	assert.Len(t, st.CompetitorWeaknesses, 5)
	assert.NotNil(t, st.FeatureComparison.Features)
	assert.NotEmpty(t, st.StrategicRecommendations)

	for _, stage := range []string{StageDiscovery, StageAnalysis, StageComparison} {
		assert.Equal(t, StatusComplete, st.AgentStatus[stage], stage)
	}

	assert.NotEmpty(t, st.Messages)
	assert.Len(t, searcher.calls, 3)
	assert.False(t, st.CompletedAt.IsZero())
}

func TestPipeline_MessagesGrowAcrossStages(t *testing.T) {
	var afterDiscovery, afterAnalysis int

	completer := &stubCompleter{responses: []string{
		`["q1", "q2"]`,
		rankedFive,
		wellFormedNarrative,
		validMatrix,
		strategyNarrative,
	}}
	searcher := &stubSearcher{results: searchResults(3)}
	p := NewPipeline(completer, searcher)

	st := NewState("note-taking app", ModeDescription)
	require.NoError(t, p.runDiscovery(context.Background(), st))
	afterDiscovery = len(st.Messages)
	require.NoError(t, p.runAnalysis(context.Background(), st))
	afterAnalysis = len(st.Messages)
	require.NoError(t, p.runComparison(context.Background(), st))

	assert.Greater(t, afterDiscovery, 0)
	assert.GreaterOrEqual(t, afterAnalysis, afterDiscovery)
	assert.GreaterOrEqual(t, len(st.Messages), afterAnalysis)
}

func TestPipeline_InferenceFailurePropagates(t *testing.T) {
	completer := &stubCompleter{err: errors.Wrap(errors.ErrExternal, "quota exhausted")}
	p := NewPipeline(completer, &stubSearcher{})

	_, err := p.Run(context.Background(), "note-taking app", ModeDescription)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrExternal))
	assert.Contains(t, err.Error(), "discovery stage")
}

func TestPipeline_EmptyCompetitorListStillCompletes(t *testing.T) {
	completer := &stubCompleter{responses: []string{
		`["q1"]`,
		"no structured ranking available",
		wellFormedNarrative,
		validMatrix,
		strategyNarrative,
	}}
	searcher := &stubSearcher{results: searchResults(3)}
	p := NewPipeline(completer, searcher)

	st, err := p.Run(context.Background(), "note-taking app", ModeDescription)
	require.NoError(t, err)

	assert.Empty(t, st.Competitors)
	for _, stage := range []string{StageDiscovery, StageAnalysis, StageComparison} {
		assert.Equal(t, StatusComplete, st.AgentStatus[stage], stage)
	}
}

func TestPipeline_SearchFailureDoesNotAbortRun(t *testing.T) {
	completer := &stubCompleter{responses: []string{
		`["q1", "q2", "q3"]`,
		rankedFive,
		wellFormedNarrative,
		validMatrix,
		strategyNarrative,
	}}
	searcher := &stubSearcher{
		results: searchResults(3),
		failOn:  map[int]error{1: errors.New("dns failure")},
	}
	p := NewPipeline(completer, searcher)

	st, err := p.Run(context.Background(), "note-taking app", ModeDescription)
	require.NoError(t, err)

	assert.Len(t, st.Competitors, 5)

	var skipped bool
	for _, msg := range st.Messages {
		if msg == `[Discovery Agent] Search 1 ("q1") failed, skipping: dns failure` {
			skipped = true
		}
	}
	assert.True(t, skipped, "expected progress message for the skipped search, got: %v", st.Messages)
}

func TestNewState_Defaults(t *testing.T) {
	st := NewState("some business", ModeURL)

	assert.Equal(t, "some business", st.UserInput)
	assert.Equal(t, ModeURL, st.AnalysisMode)
	assert.NotEqual(t, st.RunID.String(), "00000000-0000-0000-0000-000000000000")

	for _, stage := range []string{StageDiscovery, StageAnalysis, StageComparison} {
		assert.Equal(t, StatusPending, st.AgentStatus[stage], stage)
	}

	// Empty fields serialize as [] rather than null
	assert.NotNil(t, st.Messages)
	assert.NotNil(t, st.SearchQueries)
	assert.NotNil(t, st.RawCompetitors)
	assert.NotNil(t, st.Competitors)
	assert.NotNil(t, st.MarketGaps)
	assert.NotNil(t, st.CompetitorWeaknesses)
	assert.NotNil(t, st.FeatureComparison.Features)
}
