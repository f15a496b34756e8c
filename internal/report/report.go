// Package report renders and persists the results of an analysis run.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"compintel/internal/agents"
	"compintel/pkg/errors"
)

// Report is the JSON document written by the CLI's --output flag
type Report struct {
	Input           string               `json:"input"`
	Mode            agents.Mode          `json:"mode"`
	Competitors     []agents.Competitor  `json:"competitors"`
	Analysis        string               `json:"analysis"`
	Comparison      agents.FeatureMatrix `json:"comparison"`
	Recommendations string               `json:"recommendations"`
}

// FromState builds a report from a finished run
func FromState(st *agents.State) Report {
	return Report{
		Input:           st.UserInput,
		Mode:            st.AnalysisMode,
		Competitors:     st.Competitors,
		Analysis:        st.CompetitiveAnalysis,
		Comparison:      st.FeatureComparison,
		Recommendations: st.StrategicRecommendations,
	}
}

// WriteFile saves the report as indented JSON
func (r Report) WriteFile(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshal report")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write report to %s", path)
	}

	return nil
}

// Renderer pretty-prints a finished run to a terminal
type Renderer struct {
	out io.Writer
}

// NewRenderer creates a renderer writing to out
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// maxRenderedFeatures caps the matrix rows shown on the terminal;
// the full matrix is still available in the JSON report.
const maxRenderedFeatures = 5

// Render prints the full analysis in sections
func (r *Renderer) Render(st *agents.State) {
	header := color.New(color.FgCyan, color.Bold)
	section := color.New(color.FgMagenta, color.Bold)
	label := color.New(color.Bold)
	dim := color.New(color.Faint)

	rule := func() { fmt.Fprintln(r.out, dim.Sprint(strings.Repeat("-", 60))) }

	fmt.Fprintln(r.out, header.Sprint("FINAL RESULTS"))
	rule()

	fmt.Fprintln(r.out, section.Sprint("\nDISCOVERED COMPETITORS"))
	rule()
	for i, comp := range st.Competitors {
		fmt.Fprintf(r.out, "\n%s %s\n", label.Sprintf("%s:", humanize.Ordinal(i+1)), comp.Name)
		fmt.Fprintf(r.out, "   URL: %s\n", valueOr(comp.URL, "N/A"))
		fmt.Fprintf(r.out, "   Category: %s\n", valueOr(comp.Category, "N/A"))
		fmt.Fprintf(r.out, "   Position: %s\n", valueOr(comp.MarketPosition, "N/A"))
		fmt.Fprintf(r.out, "   Score: %d/10\n", comp.RelevanceScore)
		fmt.Fprintf(r.out, "   Reason: %s\n", valueOr(comp.RelevanceReason, "N/A"))
	}

	fmt.Fprintln(r.out, section.Sprint("\nCOMPETITIVE ANALYSIS"))
	rule()
	fmt.Fprintln(r.out, st.CompetitiveAnalysis)

	fmt.Fprintln(r.out, section.Sprint("\nFEATURE COMPARISON"))
	rule()
	features := st.FeatureComparison.Features
	fmt.Fprintf(r.out, "Total features analyzed: %d\n", len(features))
	shown := features
	if len(shown) > maxRenderedFeatures {
		shown = shown[:maxRenderedFeatures]
	}
	for _, f := range shown {
		fmt.Fprintf(r.out, "\n* %s\n", f.Name)
		fmt.Fprintf(r.out, "  Your Opportunity: %s\n", f.YourOpportunity)
		fmt.Fprintf(r.out, "  Strategic Value: %s\n", f.StrategicValue)
		fmt.Fprintf(r.out, "  Complexity: %s\n", f.ImplementationComplexity)
	}

	fmt.Fprintln(r.out, section.Sprint("\nSTRATEGIC RECOMMENDATIONS"))
	rule()
	fmt.Fprintln(r.out, st.StrategicRecommendations)

	fmt.Fprintln(r.out, section.Sprint("\nAGENT MESSAGES"))
	rule()
	for _, msg := range st.Messages {
		fmt.Fprintf(r.out, "  %s\n", msg)
	}
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
