package services

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"findmyvakeel/backend/internal/models"
)

const (
	matchingTemperature = 0.2
	minMatchScore       = 60
	maxMatches          = 5
	// MaxCandidates caps the pool serialized into the matching prompt.
	MaxCandidates = 20
)

// MatchResult is one scored candidate from the model's ranking. Ordering
// within the returned slice is the model's own; no local re-sort happens.
type MatchResult struct {
	LawyerID string `json:"lawyerId"`
	Score    int    `json:"score"`
	Reason   string `json:"reason"`
}

// MatchingError wraps a request-level matcher failure. A reply with no
// JSON array is not a MatchingError; it is a legitimate empty result.
type MatchingError struct {
	Cause error
}

func (e *MatchingError) Error() string {
	return fmt.Sprintf("lawyer matching failed: %v", e.Cause)
}

func (e *MatchingError) Unwrap() error {
	return e.Cause
}

// LawyerMatcher ranks a pre-filtered candidate pool against a case. The
// caller filters by specialization and availability and caps the pool;
// the matcher only enforces the output contract (score > 60, at most 5).
type LawyerMatcher interface {
	Match(ctx context.Context, caseCtx models.CaseContext, candidates []models.CandidateProfile) ([]MatchResult, error)
}

type lawyerMatcher struct {
	llm     LLMService
	prompts *PromptBuilder
	log     *zap.Logger
}

func NewLawyerMatcher(llm LLMService, log *zap.Logger) LawyerMatcher {
	return &lawyerMatcher{
		llm:     llm,
		prompts: NewPromptBuilder(),
		log:     log,
	}
}

// Match implements LawyerMatcher.
func (m *lawyerMatcher) Match(ctx context.Context, caseCtx models.CaseContext, candidates []models.CandidateProfile) ([]MatchResult, error) {
	if len(candidates) == 0 {
		return []MatchResult{}, nil
	}
	if len(candidates) > MaxCandidates {
		candidates = candidates[:MaxCandidates]
	}

	payload, err := m.prompts.BuildMatchingPayload(caseCtx, candidates)
	if err != nil {
		return nil, &MatchingError{Cause: err}
	}

	reply, err := m.llm.GenerateText(ctx, m.prompts.LawyerMatchingSystemPrompt(), payload, matchingTemperature)
	if err != nil {
		m.log.Warn("lawyer matching request failed", zap.Error(err))
		return nil, &MatchingError{Cause: err}
	}

	span := extractJSONArray(reply)
	if span == "" {
		// The model declined to produce a ranking; treat as no matches
		// found rather than a failure.
		m.log.Info("no JSON array found in matching reply, treating as zero matches")
		return []MatchResult{}, nil
	}

	var results []MatchResult
	if err := json.Unmarshal([]byte(span), &results); err != nil {
		// A present-but-broken array is a failure, unlike the no-array
		// reply above.
		m.log.Warn("failed to parse matching reply", zap.Error(err))
		return nil, &MatchingError{Cause: fmt.Errorf("failed to parse match results: %w", err)}
	}

	return enforceMatchContract(results), nil
}

// enforceMatchContract applies the output contract server-side instead of
// trusting the model: scores clamped to [0,100], entries at or below the
// threshold dropped, list capped at maxMatches. The model's ordering is
// preserved for the survivors.
func enforceMatchContract(results []MatchResult) []MatchResult {
	kept := make([]MatchResult, 0, maxMatches)
	for _, r := range results {
		if r.LawyerID == "" {
			continue
		}
		if r.Score > 100 {
			r.Score = 100
		}
		if r.Score < 0 {
			r.Score = 0
		}
		if r.Score <= minMatchScore {
			continue
		}
		kept = append(kept, r)
		if len(kept) == maxMatches {
			break
		}
	}
	return kept
}
