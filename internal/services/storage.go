package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// allowedExtensions mirrors the upload policy: PDFs, images, Word
// documents and plain text.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
}

type StorageService interface {
	// SaveFile stores an upload under the owner's directory and returns
	// the stored filename and its absolute path.
	SaveFile(file *multipart.FileHeader, ownerID uuid.UUID) (string, string, error)
	GetFilePath(ownerID uuid.UUID, filename string) string
	DeleteFile(ownerID uuid.UUID, filename string) error
	EnsureUploadDir() error
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}
	return nil
}

func (s *storageService) SaveFile(file *multipart.FileHeader, ownerID uuid.UUID) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return "", "", fmt.Errorf("invalid file extension: %s", ext)
	}

	ownerDir := filepath.Join(s.uploadPath, ownerID.String())
	if err := os.MkdirAll(ownerDir, 0755); err != nil {
		return "", "", fmt.Errorf("failed to create owner directory: %w", err)
	}

	uniqueFilename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	filePath := filepath.Join(ownerDir, uniqueFilename)

	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return "", "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", "", fmt.Errorf("failed to save file: %w", err)
	}

	return uniqueFilename, filePath, nil
}

func (s *storageService) GetFilePath(ownerID uuid.UUID, filename string) string {
	return filepath.Join(s.uploadPath, ownerID.String(), filename)
}

func (s *storageService) DeleteFile(ownerID uuid.UUID, filename string) error {
	filePath := s.GetFilePath(ownerID, filename)
	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
