package agents

import (
	"context"

	"compintel/internal/metrics"
	"compintel/pkg/errors"
)

// analysisExcerptLimit caps how much of the analysis narrative is fed back
// into the strategy prompt
const analysisExcerptLimit = 2000

// placeholderMatrix returns the single-feature matrix substituted when the
// comparison output contains a payload that fails to parse. Never empty, so
// downstream consumers always see at least one feature in that case.
func placeholderMatrix() FeatureMatrix {
	return FeatureMatrix{
		Features: []Feature{
			{
				Name:                     "AI Features",
				YourOpportunity:          "Build",
				Competitors:              map[string]string{"Competitor A": "Partial"},
				StrategicValue:           "Differentiation",
				ImplementationComplexity: "Medium",
			},
		},
	}
}

// runComparison builds the feature comparison matrix and the strategic
// recommendation narrative.
func (p *Pipeline) runComparison(ctx context.Context, st *State) error {
	log := p.log.With("stage", StageComparison, "run_id", st.RunID)

	st.setStatus(StageComparison, StatusWorking)
	st.AddMessage("[Comparison Agent] Creating feature comparison")

	// Phase 1: feature comparison matrix
	log.Debug("Building feature comparison matrix")

	resp, err := p.completer.Complete(ctx, comparisonPrompt(st.UserInput, st.Competitors))
	if err != nil {
		return errors.Wrap(err, "feature comparison")
	}

	matrix, err := extractJSON[FeatureMatrix](resp, '{', '}')
	switch {
	case err == nil:
		if matrix.Features == nil {
			matrix.Features = []Feature{}
		}
	case errors.Is(err, ErrNoPayload):
		// Same asymmetry as competitor ranking: no payload at all yields an
		// empty matrix, an unparseable payload yields the placeholder.
		metrics.ExtractionFallbacks.WithLabelValues(StageComparison).Inc()
		log.Warn("Comparison output contained no payload, matrix is empty")
		matrix = FeatureMatrix{Features: []Feature{}}
	default:
		metrics.ExtractionFallbacks.WithLabelValues(StageComparison).Inc()
		log.Warnf("Comparison output not parseable, using placeholder: %v", err)
		matrix = placeholderMatrix()
	}

	st.FeatureComparison = matrix
	st.AddMessage("[Comparison Agent] Created comparison with %d features", len(matrix.Features))

	// Phase 2: strategic recommendations
	log.Debug("Generating strategic recommendations")

	excerpt := truncate(st.CompetitiveAnalysis, analysisExcerptLimit)

	resp, err = p.completer.Complete(ctx, strategyPrompt(st.UserInput, excerpt, matrix))
	if err != nil {
		return errors.Wrap(err, "strategic recommendations")
	}

	st.StrategicRecommendations = resp
	st.AddMessage("[Comparison Agent] Generated strategic recommendations")
	st.setStatus(StageComparison, StatusComplete)

	log.Infof("Comparison complete: %d features", len(matrix.Features))
	return nil
}
