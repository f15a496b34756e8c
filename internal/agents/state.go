package agents

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Mode selects how the user input is interpreted
type Mode string

const (
	ModeURL         Mode = "url"
	ModeDescription Mode = "description"
)

// Status tracks a stage's lifecycle on the shared state.
// Transitions only move forward: pending -> working -> complete.
type Status string

const (
	StatusPending  Status = "pending"
	StatusWorking  Status = "working"
	StatusComplete Status = "complete"
)

// Stage names as recorded in State.AgentStatus
const (
	StageDiscovery  = "discovery"
	StageAnalysis   = "analysis"
	StageComparison = "comparison"
)

// RawCompetitor is an unranked search hit collected during discovery.
// Superseded by Competitor after ranking; never read by later stages.
type RawCompetitor struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Source      string `json:"source"`
}

// Competitor is a ranked, enriched competitor produced by the discovery stage
type Competitor struct {
	Name            string `json:"name"`
	URL             string `json:"url"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	RelevanceScore  int    `json:"relevanceScore"`
	MarketPosition  string `json:"marketPosition"` // leader|challenger|emerging
	RelevanceReason string `json:"relevanceReason"`
}

// Feature is one row of the feature comparison matrix.
// Competitor keys are whatever names the model chose; no join against
// State.Competitors is performed.
type Feature struct {
	Name                     string            `json:"name"`
	YourOpportunity          string            `json:"yourOpportunity"` // Yes|No|Build
	Competitors              map[string]string `json:"competitors"`     // name -> Yes|No|Partial|Premium
	StrategicValue           string            `json:"strategicValue"`
	ImplementationComplexity string            `json:"implementationComplexity"` // Low|Medium|High
}

// FeatureMatrix is the structured output of the comparison stage
type FeatureMatrix struct {
	Features []Feature `json:"features"`
}

// State is the shared blackboard threaded through all three agent stages.
// Each stage reads the fields written by its predecessors and writes its
// own exactly once; Messages is append-only.
type State struct {
	RunID        uuid.UUID `json:"run_id"`
	UserInput    string    `json:"user_input"`
	AnalysisMode Mode      `json:"analysis_mode"`

	Messages []string `json:"messages"`

	// Discovery outputs
	SearchQueries  []string        `json:"search_queries"`
	RawCompetitors []RawCompetitor `json:"raw_competitors"`
	Competitors    []Competitor    `json:"competitors"`

	// Analysis outputs
	CompetitiveAnalysis  string   `json:"competitive_analysis"`
	MarketGaps           []string `json:"market_gaps"`
	CompetitorWeaknesses []string `json:"competitor_weaknesses"`

	// Comparison outputs
	FeatureComparison        FeatureMatrix `json:"feature_comparison"`
	StrategicRecommendations string        `json:"strategic_recommendations"`

	AgentStatus map[string]Status `json:"agent_status"`

	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at,omitempty"`
}

// NewState creates a fresh blackboard for a single pipeline run.
// Slices are non-nil so empty fields serialize as [] rather than null.
func NewState(userInput string, mode Mode) *State {
	return &State{
		RunID:                uuid.New(),
		UserInput:            userInput,
		AnalysisMode:         mode,
		Messages:             []string{},
		SearchQueries:        []string{},
		RawCompetitors:       []RawCompetitor{},
		Competitors:          []Competitor{},
		MarketGaps:           []string{},
		CompetitorWeaknesses: []string{},
		FeatureComparison:    FeatureMatrix{Features: []Feature{}},
		AgentStatus: map[string]Status{
			StageDiscovery:  StatusPending,
			StageAnalysis:   StatusPending,
			StageComparison: StatusPending,
		},
		StartedAt: time.Now(),
	}
}

// AddMessage appends a progress note to the chronological log
func (s *State) AddMessage(format string, args ...interface{}) {
	s.Messages = append(s.Messages, fmt.Sprintf(format, args...))
}

func (s *State) setStatus(stage string, status Status) {
	s.AgentStatus[stage] = status
}
