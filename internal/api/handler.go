package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"compintel/internal/agents"
	"compintel/pkg/logger"
)

// Runner executes a full competitor analysis. Implemented by agents.Pipeline;
// narrowed to an interface so handlers can be tested with a stub.
type Runner interface {
	Run(ctx context.Context, userInput string, mode agents.Mode) (*agents.State, error)
}

// Handler serves the analysis API
type Handler struct {
	runner      Runner
	log         *logger.Logger
	startTime   time.Time
	serviceName string
	version     string
}

// NewHandler creates the API handler backed by the given pipeline
func NewHandler(runner Runner, serviceName, version string, log *logger.Logger) *Handler {
	return &Handler{
		runner:      runner,
		log:         log,
		startTime:   time.Now(),
		serviceName: serviceName,
		version:     version,
	}
}

// AnalyzeRequest is the body of POST /api/analyze
type AnalyzeRequest struct {
	UserInput string `json:"user_input"`
	Mode      string `json:"mode"`
}

// AnalyzeResponse is the full analysis result returned to API clients
type AnalyzeResponse struct {
	RunID                    string                   `json:"run_id"`
	Competitors              []agents.Competitor      `json:"competitors"`
	CompetitiveAnalysis      string                   `json:"competitive_analysis"`
	MarketGaps               []string                 `json:"market_gaps"`
	CompetitorWeaknesses     []string                 `json:"competitor_weaknesses"`
	FeatureComparison        agents.FeatureMatrix     `json:"feature_comparison"`
	StrategicRecommendations string                   `json:"strategic_recommendations"`
	AgentMessages            []string                 `json:"agent_messages"`
	AgentStatus              map[string]agents.Status `json:"agent_status"`
}

// HandleAnalyze runs the pipeline for one request and returns the final state
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if strings.TrimSpace(req.UserInput) == "" {
		writeError(w, http.StatusBadRequest, "user_input must not be empty")
		return
	}

	mode := agents.Mode(req.Mode)
	if mode == "" {
		mode = agents.ModeDescription
	}
	if mode != agents.ModeURL && mode != agents.ModeDescription {
		writeError(w, http.StatusBadRequest, "mode must be \"url\" or \"description\"")
		return
	}

	h.log.Infof("Received analysis request: %s", truncateForLog(req.UserInput, 50))

	st, err := h.runner.Run(r.Context(), req.UserInput, mode)
	if err != nil {
		h.log.Errorf("Analysis failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, AnalyzeResponse{
		RunID:                    st.RunID.String(),
		Competitors:              st.Competitors,
		CompetitiveAnalysis:      st.CompetitiveAnalysis,
		MarketGaps:               st.MarketGaps,
		CompetitorWeaknesses:     st.CompetitorWeaknesses,
		FeatureComparison:        st.FeatureComparison,
		StrategicRecommendations: st.StrategicRecommendations,
		AgentMessages:            st.Messages,
		AgentStatus:              st.AgentStatus,
	})
}

// HealthStatus is the payload of GET /api/health
type HealthStatus struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp"`
}

// HandleHealth reports service liveness
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthStatus{
		Status:    "healthy",
		Service:   h.serviceName,
		Version:   h.version,
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleDashboard serves the embedded single-page web interface
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(dashboardHTML)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"error": detail})
}

func truncateForLog(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
