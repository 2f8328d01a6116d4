package services

import (
	"encoding/json"
	"fmt"

	"findmyvakeel/backend/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// ProblemAnalysisSystemPrompt instructs the model to turn a messy problem
// description into the structured analysis record.
func (pb *PromptBuilder) ProblemAnalysisSystemPrompt() string {
	return `You are an expert legal assistant for Indian startups and businesses. Your job is to:
1. Take messy, informal problem descriptions from users
2. Clean them up into clear, professional legal explanations
3. Identify the legal category
4. Assess urgency level
5. Extract key facts

Respond in JSON format with:
{
  "processedProblem": "Clear, professional legal explanation of the issue",
  "category": "one of: corporate, intellectual-property, employment, contracts, compliance, fundraising, disputes, real-estate, tax, other",
  "urgency": "one of: low, medium, high, critical",
  "keyFacts": ["list of important facts extracted"],
  "suggestedActions": ["immediate steps the user should consider"],
  "estimatedComplexity": "simple, moderate, complex"
}`
}

// LawyerMatchingSystemPrompt instructs the model to score each candidate
// against the case on the six weighted criteria.
func (pb *PromptBuilder) LawyerMatchingSystemPrompt() string {
	return `You are a legal matching expert. Given a case and a list of lawyers, score each lawyer's suitability for this case on a scale of 0-100.
Consider:
- Specialization match
- Experience level
- Language preferences
- Location
- Availability
- Rating and success rate

Return JSON array of lawyer IDs with scores:
[{"lawyerId": "id", "score": 85, "reason": "brief explanation"}]
Only include lawyers with score > 60. Return top 5 matches.`
}

// AssistantSystemPrompt sets the assistant persona plus the serialized
// case context. The safety instruction defers to the matched lawyer.
func (pb *PromptBuilder) AssistantSystemPrompt(context models.CaseContext) string {
	ctxJSON, err := json.Marshal(context)
	if err != nil {
		ctxJSON = []byte("{}")
	}

	return fmt.Sprintf(`You are a helpful legal assistant for Find My Vakeel. Help users understand their legal situation and guide them through the process.

Case Context: %s

Be helpful, professional, and concise. If unsure, recommend consulting with the matched lawyer.`, ctxJSON)
}

// BuildMatchingPayload serializes the case-plus-candidates task input for
// the matching prompt.
func (pb *PromptBuilder) BuildMatchingPayload(caseCtx models.CaseContext, candidates []models.CandidateProfile) (string, error) {
	payload := struct {
		Case    models.CaseContext        `json:"case"`
		Lawyers []models.CandidateProfile `json:"lawyers"`
	}{
		Case:    caseCtx,
		Lawyers: candidates,
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to serialize matching payload: %w", err)
	}
	return string(b), nil
}
