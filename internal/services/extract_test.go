package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bare object",
			input:    `{"category":"disputes"}`,
			expected: `{"category":"disputes"}`,
		},
		{
			name:     "object wrapped in prose",
			input:    "Sure, here is the analysis:\n{\"category\":\"tax\"}\nLet me know if you need more.",
			expected: `{"category":"tax"}`,
		},
		{
			name:     "object in markdown fences",
			input:    "```json\n{\"urgency\":\"high\"}\n```",
			expected: `{"urgency":"high"}`,
		},
		{
			name:     "nested braces kept intact",
			input:    `prefix {"a":{"b":1}} suffix`,
			expected: `{"a":{"b":1}}`,
		},
		{
			name:     "no object present",
			input:    "I cannot help with that.",
			expected: "",
		},
		{
			name:     "closing brace before opening",
			input:    "} nope {",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractJSONObject(tt.input))
		})
	}
}

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bare array",
			input:    `[{"lawyerId":"a","score":80}]`,
			expected: `[{"lawyerId":"a","score":80}]`,
		},
		{
			name:     "array wrapped in prose",
			input:    "Top matches below.\n[{\"lawyerId\":\"a\",\"score\":90}]\nGood luck!",
			expected: `[{"lawyerId":"a","score":90}]`,
		},
		{
			name:     "no array present",
			input:    "No suitable lawyers found.",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractJSONArray(tt.input))
		})
	}
}

// Parsing is a pure function of its input: the same reply yields the
// same span however many times it is scanned.
func TestExtractionIsIdempotent(t *testing.T) {
	input := "Here you go: {\"category\":\"contracts\",\"urgency\":\"low\"} ... anything else?"

	first := extractJSONObject(input)
	second := extractJSONObject(input)

	assert.Equal(t, first, second)
	assert.Equal(t, `{"category":"contracts","urgency":"low"}`, first)
}
