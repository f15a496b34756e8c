package ai

import "context"

// Completer is the single capability the agent pipeline needs from an
// inference provider: one prompt in, free-form text out. Structured output
// is coaxed through prompt wording and recovered by the caller.
type Completer interface {
	// Name returns the provider name for logging and metrics.
	Name() string

	// Complete sends a prompt and returns the model's text response.
	Complete(ctx context.Context, prompt string) (string, error)
}
