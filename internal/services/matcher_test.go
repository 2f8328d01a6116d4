package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"findmyvakeel/backend/internal/models"
)

func testCandidates(n int) []models.CandidateProfile {
	candidates := make([]models.CandidateProfile, n)
	for i := range candidates {
		candidates[i] = models.CandidateProfile{
			ID:              uuid.New(),
			Name:            fmt.Sprintf("Lawyer %d", i+1),
			Specializations: []string{"disputes"},
			Experience:      5 + i,
			Rating:          4.0,
			City:            "Bengaluru",
			State:           "Karnataka",
			Languages:       []string{"English", "Hindi"},
		}
	}
	return candidates
}

func testCaseContext() models.CaseContext {
	return models.CaseContext{
		Problem:  "Equity dispute between co-founders.",
		Category: "disputes",
		Urgency:  "high",
	}
}

func TestLawyerMatcher_Match_EnforcesScoreAndBound(t *testing.T) {
	candidates := testCandidates(8)

	// Eight scored entries: two at/below threshold, six above.
	entries := make([]MatchResult, len(candidates))
	for i, cand := range candidates {
		entries[i] = MatchResult{LawyerID: cand.ID.String(), Score: 95 - i*6, Reason: "fit"}
	}
	reply, err := json.Marshal(entries)
	require.NoError(t, err)

	llm := &stubLLM{reply: "Ranked:\n" + string(reply)}
	matcher := NewLawyerMatcher(llm, zaptest.NewLogger(t))

	results, err := matcher.Match(context.Background(), testCaseContext(), candidates)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(results), 5)
	for _, r := range results {
		assert.Greater(t, r.Score, 60)
	}
	// The model's ordering is preserved.
	assert.Equal(t, candidates[0].ID.String(), results[0].LawyerID)
}

func TestLawyerMatcher_Match_ClampsOutOfRangeScores(t *testing.T) {
	candidates := testCandidates(2)
	llm := &stubLLM{
		reply: fmt.Sprintf(`[{"lawyerId":%q,"score":140,"reason":"great"},{"lawyerId":%q,"score":-10,"reason":"poor"}]`,
			candidates[0].ID, candidates[1].ID),
	}
	matcher := NewLawyerMatcher(llm, zaptest.NewLogger(t))

	results, err := matcher.Match(context.Background(), testCaseContext(), candidates)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, 100, results[0].Score)
}

func TestLawyerMatcher_Match_NoArrayMeansZeroMatches(t *testing.T) {
	llm := &stubLLM{reply: "None of these lawyers are a good fit for this case."}
	matcher := NewLawyerMatcher(llm, zaptest.NewLogger(t))

	results, err := matcher.Match(context.Background(), testCaseContext(), testCandidates(3))
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestLawyerMatcher_Match_MalformedArrayIsFailure(t *testing.T) {
	llm := &stubLLM{reply: `[{"lawyerId": "abc", "score": }]`}
	matcher := NewLawyerMatcher(llm, zaptest.NewLogger(t))

	results, err := matcher.Match(context.Background(), testCaseContext(), testCandidates(2))
	require.Error(t, err)
	assert.Nil(t, results)

	var merr *MatchingError
	require.ErrorAs(t, err, &merr)
}

func TestLawyerMatcher_Match_RequestFailure(t *testing.T) {
	llm := &stubLLM{err: errors.New("deadline exceeded")}
	matcher := NewLawyerMatcher(llm, zaptest.NewLogger(t))

	results, err := matcher.Match(context.Background(), testCaseContext(), testCandidates(3))
	require.Error(t, err)
	assert.Nil(t, results)

	var merr *MatchingError
	require.ErrorAs(t, err, &merr)
}

func TestLawyerMatcher_Match_EmptyPoolSkipsRequest(t *testing.T) {
	llm := &stubLLM{reply: "should never be called"}
	matcher := NewLawyerMatcher(llm, zaptest.NewLogger(t))

	results, err := matcher.Match(context.Background(), testCaseContext(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, llm.calls)
}

func TestLawyerMatcher_Match_CapsCandidatePool(t *testing.T) {
	candidates := testCandidates(30)
	llm := &stubLLM{reply: "[]"}
	matcher := NewLawyerMatcher(llm, zaptest.NewLogger(t))

	_, err := matcher.Match(context.Background(), testCaseContext(), candidates)
	require.NoError(t, err)

	var payload struct {
		Lawyers []models.CandidateProfile `json:"lawyers"`
	}
	require.NoError(t, json.Unmarshal([]byte(llm.lastPrompt), &payload))
	assert.Len(t, payload.Lawyers, MaxCandidates)
}
