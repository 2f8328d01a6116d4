package handlers

import (
	"github.com/gofiber/fiber/v2"

	"findmyvakeel/backend/internal/repositories"
)

type LawyerHandler struct {
	lawyerRepo repositories.LawyerRepository
}

func NewLawyerHandler(lawyerRepo repositories.LawyerRepository) *LawyerHandler {
	return &LawyerHandler{lawyerRepo: lawyerRepo}
}

// HandleList handles GET /lawyers with optional category and available
// filters.
func (h *LawyerHandler) HandleList(c *fiber.Ctx) error {
	category := c.Query("category")
	availableOnly := c.Query("available") == "true"

	lawyers, err := h.lawyerRepo.List(category, availableOnly)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list lawyers",
		})
	}

	return c.JSON(fiber.Map{"lawyers": lawyers})
}
