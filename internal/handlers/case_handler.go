package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"findmyvakeel/backend/internal/models"
	"findmyvakeel/backend/internal/repositories"
	"findmyvakeel/backend/internal/services"
	"findmyvakeel/backend/internal/validation"
)

type CaseHandler struct {
	pipeline services.CasePipeline
	caseRepo repositories.CaseRepository
}

func NewCaseHandler(pipeline services.CasePipeline, caseRepo repositories.CaseRepository) *CaseHandler {
	return &CaseHandler{
		pipeline: pipeline,
		caseRepo: caseRepo,
	}
}

// HandleCreate handles POST /cases: stores the problem and runs the full
// analyze-then-match pipeline before responding.
func (h *CaseHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateCaseRequest
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

	result, err := h.pipeline.SubmitProblem(c.Context(), CurrentUserID(c), problem, req.Documents)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create case",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"case":       result.Case,
		"aiAnalysis": result.Analysis,
	})
}

// HandleList handles GET /cases.
func (h *CaseHandler) HandleList(c *fiber.Ctx) error {
	cases, err := h.caseRepo.FindByUser(CurrentUserID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list cases",
		})
	}

	return c.JSON(fiber.Map{"cases": cases})
}

// HandleGet handles GET /cases/:id.
func (h *CaseHandler) HandleGet(c *fiber.Ctx) error {
	caseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid case id",
		})
	}

	caseData, err := h.caseRepo.FindByIDForUser(caseID, CurrentUserID(c))
	if err != nil {
		if errors.Is(err, repositories.ErrCaseNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Case not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load case",
		})
	}

	return c.JSON(fiber.Map{"case": caseData})
}

// HandleSelectLawyer handles POST /cases/:id/select-lawyer.
func (h *CaseHandler) HandleSelectLawyer(c *fiber.Ctx) error {
	caseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid case id",
		})
	}

	var req models.SelectLawyerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	lawyerID, err := uuid.Parse(req.LawyerID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid lawyer id",
		})
	}

	caseData, err := h.pipeline.SelectLawyer(c.Context(), CurrentUserID(c), caseID, lawyerID)
	if err != nil {
		return h.renderPipelineError(c, err)
	}

	return c.JSON(fiber.Map{"case": caseData})
}

// HandleAddDocument handles POST /cases/:id/documents.
func (h *CaseHandler) HandleAddDocument(c *fiber.Ctx) error {
	caseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid case id",
		})
	}

	var req models.AddDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Name == "" || req.URL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name and url are required",
		})
	}

	doc := models.CaseDocument{
		Name:       req.Name,
		URL:        req.URL,
		Type:       req.Type,
		UploadedAt: time.Now(),
	}

	caseData, err := h.pipeline.AddDocument(c.Context(), CurrentUserID(c), caseID, doc)
	if err != nil {
		return h.renderPipelineError(c, err)
	}

	return c.JSON(fiber.Map{"case": caseData})
}

// HandleUpdateStatus handles PATCH /cases/:id/status.
func (h *CaseHandler) HandleUpdateStatus(c *fiber.Ctx) error {
	caseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid case id",
		})
	}

	var req models.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	caseData, err := h.pipeline.UpdateStatus(c.Context(), CurrentUserID(c), caseID, models.CaseStatus(req.Status))
	if err != nil {
		return h.renderPipelineError(c, err)
	}

	return c.JSON(fiber.Map{"case": caseData})
}

func (h *CaseHandler) renderPipelineError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repositories.ErrCaseNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Case not found",
		})
	case errors.Is(err, services.ErrLawyerNotMatched):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Lawyer not in matched list",
		})
	case errors.Is(err, services.ErrUnknownStatus):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unknown case status",
		})
	case errors.Is(err, services.ErrInvalidTransition):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Invalid case status transition",
		})
	case errors.Is(err, repositories.ErrStaleCase):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Case was modified concurrently, please retry",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update case",
		})
	}
}
