package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"findmyvakeel/backend/internal/models"
	"findmyvakeel/backend/internal/repositories"
	"findmyvakeel/backend/internal/services"
	"findmyvakeel/backend/internal/validation"
)

type ChatHandler struct {
	messageRepo repositories.MessageRepository
	caseRepo    repositories.CaseRepository
	userRepo    repositories.UserRepository
	assistant   services.CaseAssistant
}

func NewChatHandler(
	messageRepo repositories.MessageRepository,
	caseRepo repositories.CaseRepository,
	userRepo repositories.UserRepository,
	assistant services.CaseAssistant,
) *ChatHandler {
	return &ChatHandler{
		messageRepo: messageRepo,
		caseRepo:    caseRepo,
		userRepo:    userRepo,
		assistant:   assistant,
	}
}

// ownedCase loads the case and enforces caller ownership.
func (h *ChatHandler) ownedCase(c *fiber.Ctx) (*models.Case, error) {
	caseID, err := uuid.Parse(c.Params("caseId"))
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid case id",
		})
	}

	caseData, err := h.caseRepo.FindByIDForUser(caseID, CurrentUserID(c))
	if err != nil {
		if errors.Is(err, repositories.ErrCaseNotFound) {
			return nil, c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Case not found",
			})
		}
		return nil, c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load case",
		})
	}

	return caseData, nil
}

// HandleListMessages handles GET /chat/:caseId.
func (h *ChatHandler) HandleListMessages(c *fiber.Ctx) error {
	caseData, err := h.ownedCase(c)
	if caseData == nil {
		return err
	}

	messages, err := h.messageRepo.FindByCase(caseData.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list messages",
		})
	}

	return c.JSON(fiber.Map{"messages": messages})
}

// HandleSendMessage handles POST /chat/:caseId.
func (h *ChatHandler) HandleSendMessage(c *fiber.Ctx) error {
	caseData, err := h.ownedCase(c)
	if caseData == nil {
		return err
	}

	var req models.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	content, verr := validation.ValidateMessageContent(req.Content)
	if verr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"message": verr.Message,
			"field":   verr.Field,
		})
	}

	userID := CurrentUserID(c)
	senderType := models.SenderClient
	if user, err := h.userRepo.FindByID(userID); err == nil && user.Role == "lawyer" {
		senderType = models.SenderLawyer
	}

	message := &models.Message{
		ID:          uuid.New(),
		CaseID:      caseData.ID,
		SenderID:    userID,
		SenderType:  senderType,
		Content:     content,
		Attachments: req.Attachments,
	}

	if err := h.messageRepo.Create(message); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to send message",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": message})
}

// HandleMarkRead handles PATCH /chat/:caseId/read.
func (h *ChatHandler) HandleMarkRead(c *fiber.Ctx) error {
	caseData, err := h.ownedCase(c)
	if caseData == nil {
		return err
	}

	if err := h.messageRepo.MarkRead(caseData.ID, CurrentUserID(c)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to mark messages read",
		})
	}

	return c.JSON(fiber.Map{"message": "Messages marked as read"})
}

// HandleAIAssist handles POST /chat/:caseId/ai-assist: one assistant
// reply grounded in whatever case context is currently stored.
func (h *ChatHandler) HandleAIAssist(c *fiber.Ctx) error {
	caseData, err := h.ownedCase(c)
	if caseData == nil {
		return err
	}

	var req models.AIAssistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	question, verr := validation.ValidateMessageContent(req.Question)
	if verr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"message": verr.Message,
			"field":   verr.Field,
		})
	}

	response := h.assistant.Respond(
		c.Context(),
		[]models.ChatMessage{{Role: "user", Content: question}},
		models.CaseContext{
			Problem:  caseData.ProcessedProblem,
			Category: string(caseData.Category),
			Urgency:  string(caseData.Urgency),
		},
	)

	return c.JSON(fiber.Map{"response": response})
}
