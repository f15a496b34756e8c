package agents

import (
	"context"

	"compintel/internal/metrics"
	"compintel/pkg/errors"
)

const (
	// maxSearchCalls is a hard cap on web searches per run, regardless of
	// how many queries were planned. Deliberate cost/latency control.
	maxSearchCalls = 3

	resultsPerSearch = 3
	maxRawForRanking = 10
	descriptionLimit = 200
	plannedQueries   = 4
	rankedTarget     = 5
)

// fallbackQueries is used when query planning yields no parseable list
var fallbackQueries = []string{"competitors", "alternatives", "similar products"}

// placeholderCompetitors returns the synthetic competitor substituted when
// ranking output contains a payload that fails to parse. Downstream stages
// then still receive a non-empty list.
func placeholderCompetitors() []Competitor {
	return []Competitor{
		{
			Name:            "Competitor A",
			URL:             "competitor-a.com",
			Description:     "Leading market player",
			Category:        "SaaS",
			RelevanceScore:  8,
			MarketPosition:  "leader",
			RelevanceReason: "Direct competitor",
		},
	}
}

// runDiscovery plans search queries, executes web searches and ranks the
// hits into the final competitor list. Individual search failures are
// logged and skipped; inference failures abort the run.
func (p *Pipeline) runDiscovery(ctx context.Context, st *State) error {
	log := p.log.With("stage", StageDiscovery, "run_id", st.RunID)

	st.setStatus(StageDiscovery, StatusWorking)
	st.AddMessage("[Discovery Agent] Starting competitor discovery")

	// Phase 1: plan search queries
	log.Debug("Planning search strategies")

	resp, err := p.completer.Complete(ctx, planningPrompt(st.UserInput))
	if err != nil {
		return errors.Wrap(err, "plan search queries")
	}

	queries, err := extractJSON[[]string](resp, '[', ']')
	if err != nil {
		metrics.ExtractionFallbacks.WithLabelValues(StageDiscovery).Inc()
		log.Warnf("Query planning output not parseable, using generic queries: %v", err)
		queries = append([]string(nil), fallbackQueries...)
	}

	st.SearchQueries = queries
	st.AddMessage("[Discovery Agent] Planned %d search strategies", len(queries))

	// Phase 2: execute web searches, one at a time in planned order
	log.Debugf("Executing up to %d web searches", maxSearchCalls)

	for i, query := range queries {
		if i >= maxSearchCalls {
			break
		}

		results, err := p.searcher.Search(ctx, query+" "+st.UserInput, resultsPerSearch)
		if err != nil {
			metrics.SearchCalls.WithLabelValues("error").Inc()
			log.Warnf("Search %d failed: %v", i+1, err)
			st.AddMessage("[Discovery Agent] Search %d (%q) failed, skipping: %v", i+1, query, err)
			continue
		}
		metrics.SearchCalls.WithLabelValues("success").Inc()

		for _, r := range results {
			name := r.Title
			if name == "" {
				name = "Unknown"
			}
			st.RawCompetitors = append(st.RawCompetitors, RawCompetitor{
				Name:        name,
				URL:         r.URL,
				Description: truncate(r.Content, descriptionLimit),
				Source:      "web_search",
			})
		}
	}

	st.AddMessage("[Discovery Agent] Found %d potential competitors", len(st.RawCompetitors))

	// Phase 3: rank and filter
	log.Debug("Ranking and filtering competitors")

	raw := st.RawCompetitors
	if len(raw) > maxRawForRanking {
		raw = raw[:maxRawForRanking]
	}

	resp, err = p.completer.Complete(ctx, rankingPrompt(st.UserInput, raw))
	if err != nil {
		return errors.Wrap(err, "rank competitors")
	}

	competitors, err := extractJSON[[]Competitor](resp, '[', ']')
	switch {
	case err == nil:
	case errors.Is(err, ErrNoPayload):
		// When the model returns no JSON at all the list stays empty; when it
		// returns JSON that fails to parse we substitute a placeholder so later
		// stages still have a competitor to work with. Both shipped behaviors,
		// kept as-is.
		metrics.ExtractionFallbacks.WithLabelValues(StageDiscovery).Inc()
		log.Warn("Ranking output contained no payload, competitor list is empty")
		competitors = []Competitor{}
	default:
		metrics.ExtractionFallbacks.WithLabelValues(StageDiscovery).Inc()
		log.Warnf("Ranking output not parseable, using placeholder: %v", err)
		competitors = placeholderCompetitors()
	}

	st.Competitors = competitors
	st.AddMessage("[Discovery Agent] Selected top %d competitors", len(competitors))
	st.setStatus(StageDiscovery, StatusComplete)

	log.Infof("Discovery complete: %d competitors", len(competitors))
	return nil
}

// truncate cuts s to at most limit runes
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
