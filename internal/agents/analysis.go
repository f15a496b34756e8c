package agents

import (
	"context"
	"strings"

	"compintel/internal/metrics"
	"compintel/pkg/errors"
)

const (
	headingMarketGaps = "Market Positioning & Gaps"
	headingWeaknesses = "Competitor Weaknesses"

	// sectionLineMin drops stray short or markup-only lines
	sectionLineMin = 20
	sectionLineCap = 5
)

// Defaults substituted when the expected heading is absent from the narrative
var (
	defaultMarketGaps = []string{
		"Underserved market segments",
		"Feature gaps in existing solutions",
	}
	defaultWeaknesses = []string{
		"Pricing complexity",
		"Limited features",
	}
)

// extractSection pulls the lines of one named section out of a markdown
// narrative: everything after the heading text up to the next "##" marker,
// keeping non-empty lines longer than sectionLineMin characters, capped at
// sectionLineCap. Returns fallback when the heading is absent.
func extractSection(narrative, heading string, fallback []string) []string {
	idx := strings.Index(narrative, heading)
	if idx < 0 {
		return append([]string(nil), fallback...)
	}

	body := narrative[idx+len(heading):]
	if next := strings.Index(body, "##"); next >= 0 {
		body = body[:next]
	}

	lines := []string{}
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || len(line) <= sectionLineMin {
			continue
		}
		lines = append(lines, trimmed)
		if len(lines) == sectionLineCap {
			break
		}
	}

	return lines
}

// runAnalysis requests one competitive-analysis narrative and derives the
// market-gap and competitor-weakness lists from its sections.
func (p *Pipeline) runAnalysis(ctx context.Context, st *State) error {
	log := p.log.With("stage", StageAnalysis, "run_id", st.RunID)

	st.setStatus(StageAnalysis, StatusWorking)
	st.AddMessage("[Analysis Agent] Starting competitive analysis")

	log.Debug("Requesting competitive analysis narrative")

	narrative, err := p.completer.Complete(ctx, analysisPrompt(st.UserInput, st.Competitors))
	if err != nil {
		return errors.Wrap(err, "competitive analysis")
	}

	st.CompetitiveAnalysis = narrative

	if !strings.Contains(narrative, headingMarketGaps) || !strings.Contains(narrative, headingWeaknesses) {
		metrics.ExtractionFallbacks.WithLabelValues(StageAnalysis).Inc()
		log.Warn("Narrative is missing expected section headings, defaults in use")
	}

	st.MarketGaps = extractSection(narrative, headingMarketGaps, defaultMarketGaps)
	st.CompetitorWeaknesses = extractSection(narrative, headingWeaknesses, defaultWeaknesses)

	st.AddMessage("[Analysis Agent] Generated comprehensive analysis")
	st.setStatus(StageAnalysis, StatusComplete)

	log.Infof("Analysis complete: %d market gaps, %d weaknesses", len(st.MarketGaps), len(st.CompetitorWeaknesses))
	return nil
}
