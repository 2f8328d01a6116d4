package handlers

import (
	"github.com/gofiber/fiber/v2"

	"findmyvakeel/backend/internal/models"
	"findmyvakeel/backend/internal/services"
	"findmyvakeel/backend/internal/validation"
)

// AIHandler exposes the analyzer and assistant without a case attached,
// used by the public problem wizard and the standalone chat feature.
type AIHandler struct {
	analyzer  services.ProblemAnalyzer
	assistant services.CaseAssistant
}

func NewAIHandler(analyzer services.ProblemAnalyzer, assistant services.CaseAssistant) *AIHandler {
	return &AIHandler{
		analyzer:  analyzer,
		assistant: assistant,
	}
}

// HandleProcess handles POST /ai/process. Analysis failure degrades to
// the fixed fallback record with a 200; the caller never sees an error.
func (h *AIHandler) HandleProcess(c *fiber.Ctx) error {
	var req models.ProcessProblemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	problem, verr := validation.ValidateProblem(req.Problem)
	if verr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"message": verr.Message,
			"field":   verr.Field,
		})
	}

	analysis, err := h.analyzer.Analyze(c.Context(), problem)
	if err != nil {
		analysis = services.FallbackAnalysis(problem)
	}

	return c.JSON(fiber.Map{"analysis": analysis})
}

// HandleChat handles POST /ai/chat.
func (h *AIHandler) HandleChat(c *fiber.Ctx) error {
	var req models.AIChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	history, verr := validation.ValidateChatHistory(req.Messages)
	if verr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"message": verr.Message,
			"field":   verr.Field,
		})
	}

	caseCtx := models.CaseContext{}
	if req.CaseContext != nil {
		caseCtx = *req.CaseContext
	}

	response := h.assistant.Respond(c.Context(), history, caseCtx)

	return c.JSON(fiber.Map{"response": response})
}
