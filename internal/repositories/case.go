package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"findmyvakeel/backend/internal/models"
)

var (
	ErrCaseNotFound = errors.New("case not found")
	// ErrStaleCase means a versioned update lost a race with a concurrent
	// writer and must not be retried blindly.
	ErrStaleCase = errors.New("case was modified concurrently")
)

type CaseRepository interface {
	Create(c *models.Case) error
	FindByID(id uuid.UUID) (*models.Case, error)
	FindByIDForUser(id, userID uuid.UUID) (*models.Case, error)
	FindByUser(userID uuid.UUID) ([]models.Case, error)
	// UpdateVersioned applies updates only if the stored version still
	// matches; on success the version is incremented in the same write.
	UpdateVersioned(id uuid.UUID, version int, updates map[string]interface{}) error
	UpdateFields(id uuid.UUID, updates map[string]interface{}) error
}

type caseRepository struct {
	db *gorm.DB
}

func NewCaseRepository(db *gorm.DB) CaseRepository {
	return &caseRepository{db: db}
}

func (r *caseRepository) Create(c *models.Case) error {
	if err := r.db.Create(c).Error; err != nil {
		return fmt.Errorf("failed to create case: %w", err)
	}
	return nil
}

func (r *caseRepository) FindByID(id uuid.UUID) (*models.Case, error) {
	var c models.Case
	if err := r.db.Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaseNotFound
		}
		return nil, fmt.Errorf("failed to find case: %w", err)
	}
	return &c, nil
}

func (r *caseRepository) FindByIDForUser(id, userID uuid.UUID) (*models.Case, error) {
	var c models.Case
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaseNotFound
		}
		return nil, fmt.Errorf("failed to find case: %w", err)
	}
	return &c, nil
}

func (r *caseRepository) FindByUser(userID uuid.UUID) ([]models.Case, error) {
	var cases []models.Case
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&cases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}
	return cases, nil
}

func (r *caseRepository) UpdateVersioned(id uuid.UUID, version int, updates map[string]interface{}) error {
	merged := map[string]interface{}{
		"version":    version + 1,
		"updated_at": time.Now(),
	}
	for k, v := range updates {
		merged[k] = v
	}

	result := r.db.Model(&models.Case{}).
		Where("id = ? AND version = ?", id, version).
		Updates(merged)

	if result.Error != nil {
		return fmt.Errorf("failed to update case: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		// Distinguish a missing row from a lost race.
		var count int64
		if err := r.db.Model(&models.Case{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to update case: %w", err)
		}
		if count == 0 {
			return ErrCaseNotFound
		}
		return ErrStaleCase
	}

	return nil
}

func (r *caseRepository) UpdateFields(id uuid.UUID, updates map[string]interface{}) error {
	merged := map[string]interface{}{
		"updated_at": time.Now(),
	}
	for k, v := range updates {
		merged[k] = v
	}

	result := r.db.Model(&models.Case{}).
		Where("id = ?", id).
		Updates(merged)

	if result.Error != nil {
		return fmt.Errorf("failed to update case: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrCaseNotFound
	}

	return nil
}
