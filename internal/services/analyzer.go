package services

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"findmyvakeel/backend/internal/models"
)

const analysisTemperature = 0.3

// AIAnalysis is the analyzer's output contract. It is attached to the
// case on success or replaced wholesale by FallbackAnalysis on failure.
type AIAnalysis struct {
	ProcessedProblem    string   `json:"processedProblem"`
	Category            string   `json:"category"`
	Urgency             string   `json:"urgency"`
	KeyFacts            []string `json:"keyFacts"`
	SuggestedActions    []string `json:"suggestedActions"`
	EstimatedComplexity string   `json:"estimatedComplexity"`
}

// NormalizationError wraps an analyzer-level failure: the external call
// failed or no JSON object could be located in the reply. Callers decide
// the fallback policy; the analyzer never substitutes one itself.
type NormalizationError struct {
	Cause error
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("problem analysis failed: %v", e.Cause)
}

func (e *NormalizationError) Unwrap() error {
	return e.Cause
}

// ProblemAnalyzer converts unstructured problem text into an AIAnalysis
// via a single best-effort round trip to the language model.
type ProblemAnalyzer interface {
	Analyze(ctx context.Context, rawText string) (*AIAnalysis, error)
}

type problemAnalyzer struct {
	llm     LLMService
	prompts *PromptBuilder
	log     *zap.Logger
}

func NewProblemAnalyzer(llm LLMService, log *zap.Logger) ProblemAnalyzer {
	return &problemAnalyzer{
		llm:     llm,
		prompts: NewPromptBuilder(),
		log:     log,
	}
}

// Analyze implements ProblemAnalyzer. Length and sanitation constraints
// on rawText are enforced upstream by the validation layer.
func (a *problemAnalyzer) Analyze(ctx context.Context, rawText string) (*AIAnalysis, error) {
	reply, err := a.llm.GenerateText(ctx, a.prompts.ProblemAnalysisSystemPrompt(), rawText, analysisTemperature)
	if err != nil {
		a.log.Warn("problem analysis request failed", zap.Error(err))
		return nil, &NormalizationError{Cause: err}
	}

	span := extractJSONObject(reply)
	if span == "" {
		a.log.Warn("no JSON object found in analysis reply", zap.Int("reply_len", len(reply)))
		return nil, &NormalizationError{Cause: fmt.Errorf("no JSON object in model reply")}
	}

	var analysis AIAnalysis
	if err := json.Unmarshal([]byte(span), &analysis); err != nil {
		return nil, &NormalizationError{Cause: fmt.Errorf("failed to parse analysis JSON: %w", err)}
	}

	sanitizeAnalysis(&analysis, rawText)
	return &analysis, nil
}

// sanitizeAnalysis coerces out-of-enum values from the model to defaults
// instead of rejecting the whole analysis.
func sanitizeAnalysis(a *AIAnalysis, rawText string) {
	a.Category = string(models.NormalizeCategory(a.Category))
	a.Urgency = string(models.NormalizeUrgency(a.Urgency))

	switch a.EstimatedComplexity {
	case "simple", "moderate", "complex":
	default:
		a.EstimatedComplexity = "moderate"
	}

	if a.ProcessedProblem == "" {
		a.ProcessedProblem = rawText
	}
}

// FallbackAnalysis is the degraded record substituted by callers when
// analysis fails: the raw input stands in for the processed problem and
// the placeholders keep downstream consumers from observing nil.
func FallbackAnalysis(rawText string) *AIAnalysis {
	return &AIAnalysis{
		ProcessedProblem:    rawText,
		Category:            string(models.CategoryOther),
		Urgency:             string(models.UrgencyMedium),
		KeyFacts:            []string{"Unable to process with AI - using original input"},
		SuggestedActions:    []string{"Consult with a legal expert"},
		EstimatedComplexity: "moderate",
	}
}
