package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestProblemAnalyzer_Analyze_Success(t *testing.T) {
	llm := &stubLLM{
		reply: `Here is my assessment:
{"processedProblem":"Equity dispute between co-founders without a written agreement.","category":"disputes","urgency":"high","keyFacts":["no written agreement"],"suggestedActions":["document communications"],"estimatedComplexity":"moderate"}`,
	}
	analyzer := NewProblemAnalyzer(llm, zaptest.NewLogger(t))

	analysis, err := analyzer.Analyze(context.Background(), "My cofounder wants 50% but never signed anything")
	require.NoError(t, err)

	assert.Equal(t, "Equity dispute between co-founders without a written agreement.", analysis.ProcessedProblem)
	assert.Equal(t, "disputes", analysis.Category)
	assert.Equal(t, "high", analysis.Urgency)
	assert.Equal(t, []string{"no written agreement"}, analysis.KeyFacts)
	assert.Equal(t, []string{"document communications"}, analysis.SuggestedActions)
	assert.Equal(t, "moderate", analysis.EstimatedComplexity)

	// The raw text is the task input, not part of the system prompt.
	assert.Equal(t, "My cofounder wants 50% but never signed anything", llm.lastPrompt)
	assert.Contains(t, llm.lastSystem, "expert legal assistant")
}

func TestProblemAnalyzer_Analyze_RequestFailure(t *testing.T) {
	llm := &stubLLM{err: errors.New("connection refused")}
	analyzer := NewProblemAnalyzer(llm, zaptest.NewLogger(t))

	analysis, err := analyzer.Analyze(context.Background(), "some problem text here")
	require.Error(t, err)
	assert.Nil(t, analysis)

	var nerr *NormalizationError
	require.ErrorAs(t, err, &nerr)
	assert.ErrorContains(t, nerr.Cause, "connection refused")
}

func TestProblemAnalyzer_Analyze_NoJSONInReply(t *testing.T) {
	llm := &stubLLM{reply: "I'm sorry, I can't produce that."}
	analyzer := NewProblemAnalyzer(llm, zaptest.NewLogger(t))

	_, err := analyzer.Analyze(context.Background(), "some problem text here")

	var nerr *NormalizationError
	require.ErrorAs(t, err, &nerr)
}

func TestProblemAnalyzer_Analyze_CoercesUnknownEnums(t *testing.T) {
	llm := &stubLLM{
		reply: `{"processedProblem":"Something.","category":"maritime-law","urgency":"apocalyptic","keyFacts":[],"suggestedActions":[],"estimatedComplexity":"byzantine"}`,
	}
	analyzer := NewProblemAnalyzer(llm, zaptest.NewLogger(t))

	analysis, err := analyzer.Analyze(context.Background(), "raw text of the problem")
	require.NoError(t, err)

	assert.Equal(t, "other", analysis.Category)
	assert.Equal(t, "medium", analysis.Urgency)
	assert.Equal(t, "moderate", analysis.EstimatedComplexity)
}

func TestProblemAnalyzer_Analyze_EmptyProcessedFallsBackToRaw(t *testing.T) {
	llm := &stubLLM{
		reply: `{"processedProblem":"","category":"tax","urgency":"low","keyFacts":[],"suggestedActions":[],"estimatedComplexity":"simple"}`,
	}
	analyzer := NewProblemAnalyzer(llm, zaptest.NewLogger(t))

	analysis, err := analyzer.Analyze(context.Background(), "raw text of the problem")
	require.NoError(t, err)
	assert.Equal(t, "raw text of the problem", analysis.ProcessedProblem)
}

func TestFallbackAnalysis(t *testing.T) {
	fb := FallbackAnalysis("my original messy text")

	assert.Equal(t, "my original messy text", fb.ProcessedProblem)
	assert.Equal(t, "other", fb.Category)
	assert.Equal(t, "medium", fb.Urgency)
	assert.NotEmpty(t, fb.KeyFacts)
	assert.NotEmpty(t, fb.SuggestedActions)
	assert.Equal(t, "moderate", fb.EstimatedComplexity)
}
