package agents

import (
	"encoding/json"
	"errors"
	"strings"

	pkgerrors "compintel/pkg/errors"
)

// Extraction failures are recoverable by design: every caller supplies a
// fallback value, so neither error ever reaches the end user.
var (
	// ErrNoPayload means no bracketed substring of the expected form was present
	ErrNoPayload = errors.New("no structured payload in model output")

	// ErrMalformedPayload means a candidate substring was found but did not parse
	ErrMalformedPayload = errors.New("malformed structured payload in model output")
)

// extractJSON recovers a structured value of type T from free-form model
// output: the candidate substring runs from the first occurrence of open to
// the last occurrence of close. This is pattern matching, not parsing — a
// closer inside a string literal or trailing prose containing one can
// truncate or extend the candidate, so callers must tolerate
// ErrMalformedPayload and apply their fallback.
func extractJSON[T any](text string, open, close byte) (T, error) {
	var out T

	start := strings.IndexByte(text, open)
	if start < 0 {
		return out, ErrNoPayload
	}

	// An opener with no closer still counts as a (truncated) candidate; it
	// fails to parse below and reports ErrMalformedPayload, not ErrNoPayload.
	candidate := text[start:]
	if end := strings.LastIndexByte(text, close); end > start {
		candidate = text[start : end+1]
	}

	if err := json.Unmarshal([]byte(candidate), &out); err != nil {
		var zero T
		return zero, pkgerrors.Wrapf(ErrMalformedPayload, "unmarshal: %v", err)
	}

	return out, nil
}
