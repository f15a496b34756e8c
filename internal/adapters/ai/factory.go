package ai

import (
	"context"

	"compintel/internal/adapters/config"
	"compintel/internal/adapters/ratelimit"
	"compintel/pkg/errors"
	"compintel/pkg/logger"
)

// New constructs the inference client selected by configuration.
func New(ctx context.Context, cfg config.AIConfig, log *logger.Logger) (Completer, error) {
	limiter := ratelimit.NewLimiter("inference", cfg.RequestsPerMinute)

	switch cfg.Provider {
	case "claude":
		log.Infof("Using Claude inference provider (model: %s)", orDefault(cfg.Model, defaultClaudeModel))
		return NewClaudeClient(cfg.ClaudeKey, cfg.Model, cfg.MaxTokens, cfg.Timeout, limiter), nil

	case "openai":
		log.Infof("Using OpenAI inference provider (model: %s)", orDefault(cfg.Model, defaultOpenAIModel))
		return NewOpenAIClient(cfg.OpenAIKey, cfg.Model, cfg.MaxTokens, cfg.Timeout, limiter)

	case "gemini":
		log.Infof("Using Gemini inference provider (model: %s)", orDefault(cfg.Model, defaultGeminiModel))
		return NewGeminiClient(ctx, cfg.GeminiKey, cfg.Model, cfg.MaxTokens, cfg.Timeout, limiter)

	default:
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown AI provider %q", cfg.Provider)
	}
}

func orDefault(model, fallback string) string {
	if model == "" {
		return fallback
	}
	return model
}
