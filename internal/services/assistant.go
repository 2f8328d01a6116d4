package services

import (
	"context"

	"go.uber.org/zap"

	"findmyvakeel/backend/internal/models"
)

const chatTemperature = 0.5

// ApologyReply is returned whenever the assistant cannot reach the model.
// This is the one place in the pipeline where failure is swallowed and
// replaced with a user-visible message instead of a structured error.
const ApologyReply = "I apologize, there was an error processing your request. Please try again."

// CaseAssistant produces one conversational reply per invocation given a
// bounded message history and whatever case context is currently stored.
type CaseAssistant interface {
	Respond(ctx context.Context, history []models.ChatMessage, caseCtx models.CaseContext) string
}

type caseAssistant struct {
	llm     LLMService
	prompts *PromptBuilder
	log     *zap.Logger
}

func NewCaseAssistant(llm LLMService, log *zap.Logger) CaseAssistant {
	return &caseAssistant{
		llm:     llm,
		prompts: NewPromptBuilder(),
		log:     log,
	}
}

// Respond implements CaseAssistant. It never returns an error: any
// failure degrades to the fixed apology string.
func (a *caseAssistant) Respond(ctx context.Context, history []models.ChatMessage, caseCtx models.CaseContext) string {
	system := a.prompts.AssistantSystemPrompt(caseCtx)

	reply, err := a.llm.GenerateConversation(ctx, system, history, chatTemperature)
	if err != nil {
		a.log.Warn("assistant reply failed", zap.Error(err))
		return ApologyReply
	}

	return reply
}
