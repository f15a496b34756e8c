package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compintel/pkg/errors"
)

func TestExtractJSON_ArrayInMarkdownFence(t *testing.T) {
	text := "Here are the queries:\n```json\n[\"a\", \"b\", \"c\"]\n```\nLet me know if you need more."

	out, err := extractJSON[[]string](text, '[', ']')
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, out)
}

func TestExtractJSON_Object(t *testing.T) {
	text := "Sure! {\"features\": [{\"name\": \"SSO\"}]}"

	out, err := extractJSON[FeatureMatrix](text, '{', '}')
	require.NoError(t, err)
	require.Len(t, out.Features, 1)
	assert.Equal(t, "SSO", out.Features[0].Name)
}

func TestExtractJSON_ObjectFormSkipsEarlierArray(t *testing.T) {
	// Array brackets before the object must not confuse object-form extraction.
	text := "[see notes] {\"features\": []}"

	out, err := extractJSON[FeatureMatrix](text, '{', '}')
	require.NoError(t, err)
	assert.NotNil(t, out.Features)
	assert.Empty(t, out.Features)
}

func TestExtractJSON_NoPayload(t *testing.T) {
	_, err := extractJSON[[]string]("I could not produce any structured output, sorry.", '[', ']')
	assert.True(t, errors.Is(err, ErrNoPayload))
}

func TestExtractJSON_MalformedPayload(t *testing.T) {
	_, err := extractJSON[[]Competitor]("[ {invalid json", '[', ']')
	assert.False(t, errors.Is(err, ErrNoPayload))
	assert.True(t, errors.Is(err, ErrMalformedPayload))
}

func TestExtractJSON_TrailingCloserBreaksCandidate(t *testing.T) {
	// The last closer wins even when it belongs to trailing prose, which
	// produces an unparseable candidate. Callers absorb this via fallback.
	text := "[1, 2, 3] and one stray ] at the end"

	_, err := extractJSON[[]int](text, '[', ']')
	assert.True(t, errors.Is(err, ErrMalformedPayload))
}

func TestExtractJSON_WholeTextIsPayload(t *testing.T) {
	out, err := extractJSON[[]int]("[1, 2, 3]", '[', ']')
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, out)
}
