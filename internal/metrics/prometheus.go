package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Pipeline metrics
	PipelineRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compintel_pipeline_runs_total",
			Help: "Total number of analysis pipeline runs",
		},
		[]string{"status"}, // status: success|error
	)

	StageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "compintel_stage_duration_seconds",
			Help:    "Agent stage execution duration in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"stage"},
	)

	ExtractionFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compintel_extraction_fallbacks_total",
			Help: "Times a stage fell back because structured output could not be extracted",
		},
		[]string{"stage"},
	)

	// External call metrics
	SearchCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compintel_search_calls_total",
			Help: "Total number of web search calls",
		},
		[]string{"status"}, // status: success|error
	)

	InferenceCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compintel_inference_calls_total",
			Help: "Total number of inference service calls",
		},
		[]string{"provider", "status"},
	)
)

func init() {
	prometheus.MustRegister(PipelineRuns)
	prometheus.MustRegister(StageDuration)
	prometheus.MustRegister(ExtractionFallbacks)
	prometheus.MustRegister(SearchCalls)
	prometheus.MustRegister(InferenceCalls)
}

// Handler returns the HTTP handler for the /metrics endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}
