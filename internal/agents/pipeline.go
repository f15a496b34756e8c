package agents

import (
	"context"
	"time"

	"compintel/internal/adapters/ai"
	"compintel/internal/adapters/search"
	"compintel/internal/metrics"
	"compintel/pkg/errors"
	"compintel/pkg/logger"
)

// Pipeline runs the three agent stages over a shared blackboard state.
// The inference and search clients are injected at construction time and
// shared across runs; each run owns its own State.
type Pipeline struct {
	completer ai.Completer
	searcher  search.Searcher
	log       *logger.Logger
}

// NewPipeline creates a pipeline with the given external service clients
func NewPipeline(completer ai.Completer, searcher search.Searcher) *Pipeline {
	return &Pipeline{
		completer: completer,
		searcher:  searcher,
		log:       logger.Get().With("component", "pipeline"),
	}
}

type stage struct {
	name string
	run  func(context.Context, *State) error
}

// Run executes discovery, analysis and comparison strictly in order and
// returns the final state. Stages degrade gracefully on extraction and
// search failures; inference failures abort the run and propagate.
func (p *Pipeline) Run(ctx context.Context, userInput string, mode Mode) (*State, error) {
	st := NewState(userInput, mode)

	p.log.Infof("Starting analysis run %s (mode: %s)", st.RunID, mode)

	stages := []stage{
		{StageDiscovery, p.runDiscovery},
		{StageAnalysis, p.runAnalysis},
		{StageComparison, p.runComparison},
	}

	for _, s := range stages {
		started := time.Now()

		if err := s.run(ctx, st); err != nil {
			metrics.PipelineRuns.WithLabelValues("error").Inc()
			return nil, errors.Wrapf(err, "%s stage", s.name)
		}

		metrics.StageDuration.WithLabelValues(s.name).Observe(time.Since(started).Seconds())
	}

	st.CompletedAt = time.Now()
	metrics.PipelineRuns.WithLabelValues("success").Inc()

	p.log.Infof("Analysis run %s complete: %d competitors, %d features",
		st.RunID, len(st.Competitors), len(st.FeatureComparison.Features))

	return st, nil
}
