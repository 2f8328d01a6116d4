package handlers

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"findmyvakeel/backend/internal/models"
	"findmyvakeel/backend/internal/services"
)

const maxFilesPerUpload = 10

type UploadHandler struct {
	storageService services.StorageService
	pdfParser      services.PDFParserService
	maxFileSize    int64
}

func NewUploadHandler(
	storageService services.StorageService,
	pdfParser services.PDFParserService,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		storageService: storageService,
		pdfParser:      pdfParser,
		maxFileSize:    maxFileSize,
	}
}

// HandleUploadSingle handles POST /upload/single.
func (h *UploadHandler) HandleUploadSingle(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file uploaded",
		})
	}

	uploaded, errResp := h.saveOne(c, file)
	if errResp != nil {
		return errResp
	}

	return c.JSON(fiber.Map{"file": uploaded})
}

// HandleUploadMultiple handles POST /upload/multiple.
func (h *UploadHandler) HandleUploadMultiple(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	files := form.File["files"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No files uploaded",
		})
	}
	if len(files) > maxFilesPerUpload {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Too many files. Max: %d", maxFilesPerUpload),
		})
	}

	uploads := make([]*models.UploadedFile, 0, len(files))
	for _, file := range files {
		uploaded, errResp := h.saveOne(c, file)
		if errResp != nil {
			return errResp
		}
		uploads = append(uploads, uploaded)
	}

	return c.JSON(fiber.Map{"files": uploads})
}

// HandleDelete handles DELETE /upload/:filename.
func (h *UploadHandler) HandleDelete(c *fiber.Ctx) error {
	filename := filepath.Base(c.Params("filename"))

	if err := h.storageService.DeleteFile(CurrentUserID(c), filename); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "File not found",
		})
	}

	return c.JSON(fiber.Map{"message": "File deleted successfully"})
}

func (h *UploadHandler) saveOne(c *fiber.Ctx, file *multipart.FileHeader) (*models.UploadedFile, error) {
	if file.Size > h.maxFileSize {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("File too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	userID := CurrentUserID(c)

	filename, filePath, err := h.storageService.SaveFile(file, userID)
	if err != nil {
		return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save file: %v", err),
		})
	}

	// PDFs are opened once so corrupt uploads are rejected at the door.
	if strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
		if _, err := h.pdfParser.PageCount(filePath); err != nil {
			h.storageService.DeleteFile(userID, filename)
			return nil, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Uploaded PDF could not be read",
			})
		}
	}

	return &models.UploadedFile{
		Name: file.Filename,
		URL:  fmt.Sprintf("/uploads/%s/%s", userID, filename),
		Type: file.Header.Get("Content-Type"),
		Size: file.Size,
	}, nil
}
