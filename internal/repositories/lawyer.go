package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"findmyvakeel/backend/internal/models"
)

var ErrLawyerNotFound = errors.New("lawyer not found")

type LawyerRepository interface {
	Create(l *models.Lawyer) error
	FindByID(id uuid.UUID) (*models.Lawyer, error)
	// FindCandidates returns available lawyers whose specialization set
	// includes the given category, capped at limit.
	FindCandidates(category models.CaseCategory, limit int) ([]models.Lawyer, error)
	List(category string, availableOnly bool) ([]models.Lawyer, error)
}

type lawyerRepository struct {
	db *gorm.DB
}

func NewLawyerRepository(db *gorm.DB) LawyerRepository {
	return &lawyerRepository{db: db}
}

func (r *lawyerRepository) Create(l *models.Lawyer) error {
	if err := r.db.Create(l).Error; err != nil {
		return fmt.Errorf("failed to create lawyer: %w", err)
	}
	return nil
}

func (r *lawyerRepository) FindByID(id uuid.UUID) (*models.Lawyer, error) {
	var l models.Lawyer
	if err := r.db.Where("id = ?", id).First(&l).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLawyerNotFound
		}
		return nil, fmt.Errorf("failed to find lawyer: %w", err)
	}
	return &l, nil
}

func (r *lawyerRepository) FindCandidates(category models.CaseCategory, limit int) ([]models.Lawyer, error) {
	var lawyers []models.Lawyer
	err := r.db.
		Where("is_available = ?", true).
		Where("specializations @> ?", fmt.Sprintf(`[%q]`, string(category))).
		Limit(limit).
		Find(&lawyers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find candidate lawyers: %w", err)
	}
	return lawyers, nil
}

func (r *lawyerRepository) List(category string, availableOnly bool) ([]models.Lawyer, error) {
	query := r.db.Model(&models.Lawyer{})
	if availableOnly {
		query = query.Where("is_available = ?", true)
	}
	if category != "" {
		query = query.Where("specializations @> ?", fmt.Sprintf(`[%q]`, category))
	}

	var lawyers []models.Lawyer
	if err := query.Order("rating DESC").Find(&lawyers).Error; err != nil {
		return nil, fmt.Errorf("failed to list lawyers: %w", err)
	}
	return lawyers, nil
}
