package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"findmyvakeel/backend/internal/models"
)

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain text untouched", input: "my landlord kept the deposit", want: "my landlord kept the deposit"},
		{name: "script tag escaped", input: `<script>alert("x")</script>`, want: "&lt;script&gt;alert(&quot;x&quot;)&lt;/script&gt;"},
		{name: "single quotes escaped", input: "it's mine", want: "it&#x27;s mine"},
		{name: "whitespace trimmed", input: "  hello  ", want: "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeString(tt.input))
		})
	}
}

func TestValidateProblem(t *testing.T) {
	t.Run("accepts and sanitizes", func(t *testing.T) {
		got, verr := ValidateProblem("My <b>cofounder</b> took the company bank account")
		require.Nil(t, verr)
		assert.Equal(t, "My &lt;b&gt;cofounder&lt;/b&gt; took the company bank account", got)
	})

	t.Run("empty rejected", func(t *testing.T) {
		_, verr := ValidateProblem("")
		require.NotNil(t, verr)
		assert.Equal(t, "problem", verr.Field)
	})

	t.Run("too short rejected", func(t *testing.T) {
		_, verr := ValidateProblem("help me")
		require.NotNil(t, verr)
	})

	t.Run("whitespace padding does not satisfy minimum", func(t *testing.T) {
		_, verr := ValidateProblem("hi      \t\t\t      ")
		require.NotNil(t, verr)
	})

	t.Run("at minimum length accepted", func(t *testing.T) {
		_, verr := ValidateProblem(strings.Repeat("a", MinProblemLength))
		assert.Nil(t, verr)
	})

	t.Run("too long rejected", func(t *testing.T) {
		_, verr := ValidateProblem(strings.Repeat("a", MaxProblemLength+1))
		require.NotNil(t, verr)
	})

	t.Run("limits count characters not bytes", func(t *testing.T) {
		// 5000 Devanagari characters are 15000 bytes, still well inside
		// the character window.
		_, verr := ValidateProblem(strings.Repeat("क", 5000))
		assert.Nil(t, verr)
	})

	t.Run("multibyte padding does not satisfy minimum", func(t *testing.T) {
		// 4 characters, 12 bytes; the minimum is measured in characters.
		_, verr := ValidateProblem("कखगघ")
		require.NotNil(t, verr)
	})

	t.Run("multibyte over the maximum rejected", func(t *testing.T) {
		_, verr := ValidateProblem(strings.Repeat("क", MaxProblemLength+1))
		require.NotNil(t, verr)
	})
}

func TestValidateChatHistory(t *testing.T) {
	valid := []models.ChatMessage{
		{Role: "user", Content: "What are my options?"},
		{Role: "assistant", Content: "It depends on the contract."},
		{Role: "user", Content: "There is no contract."},
	}

	t.Run("valid history passes", func(t *testing.T) {
		got, verr := ValidateChatHistory(valid)
		require.Nil(t, verr)
		require.Len(t, got, 3)
	})

	t.Run("content is sanitized", func(t *testing.T) {
		got, verr := ValidateChatHistory([]models.ChatMessage{
			{Role: "user", Content: `<img src=x>`},
		})
		require.Nil(t, verr)
		assert.Equal(t, "&lt;img src=x&gt;", got[0].Content)
	})

	t.Run("empty history rejected", func(t *testing.T) {
		_, verr := ValidateChatHistory(nil)
		require.NotNil(t, verr)
	})

	t.Run("too many messages rejected", func(t *testing.T) {
		history := make([]models.ChatMessage, MaxChatMessages+1)
		for i := range history {
			history[i] = models.ChatMessage{Role: "user", Content: "hi"}
		}
		_, verr := ValidateChatHistory(history)
		require.NotNil(t, verr)
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		_, verr := ValidateChatHistory([]models.ChatMessage{
			{Role: "moderator", Content: "hello"},
		})
		require.NotNil(t, verr)
	})

	t.Run("empty content rejected", func(t *testing.T) {
		_, verr := ValidateChatHistory([]models.ChatMessage{
			{Role: "user", Content: ""},
		})
		require.NotNil(t, verr)
	})

	t.Run("oversized message rejected", func(t *testing.T) {
		_, verr := ValidateChatHistory([]models.ChatMessage{
			{Role: "user", Content: strings.Repeat("a", MaxMessageLength+1)},
		})
		require.NotNil(t, verr)
	})

	t.Run("message length counts characters not bytes", func(t *testing.T) {
		_, verr := ValidateChatHistory([]models.ChatMessage{
			{Role: "user", Content: strings.Repeat("क", MaxMessageLength)},
		})
		assert.Nil(t, verr)
	})
}

func TestValidateMessageContent(t *testing.T) {
	got, verr := ValidateMessageContent("see the attached <notice>")
	require.Nil(t, verr)
	assert.Equal(t, "see the attached &lt;notice&gt;", got)

	_, verr = ValidateMessageContent("   ")
	assert.NotNil(t, verr)

	_, verr = ValidateMessageContent(strings.Repeat("a", MaxMessageLength+1))
	assert.NotNil(t, verr)

	_, verr = ValidateMessageContent(strings.Repeat("क", MaxMessageLength))
	assert.Nil(t, verr)
}
