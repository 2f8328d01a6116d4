package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"findmyvakeel/backend/internal/models"
)

type MessageRepository interface {
	Create(m *models.Message) error
	FindByCase(caseID uuid.UUID) ([]models.Message, error)
	// MarkRead flags every unread message in the thread that was not sent
	// by the given reader.
	MarkRead(caseID, readerID uuid.UUID) error
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(m *models.Message) error {
	if err := r.db.Create(m).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (r *messageRepository) FindByCase(caseID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.
		Where("case_id = ?", caseID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

func (r *messageRepository) MarkRead(caseID, readerID uuid.UUID) error {
	err := r.db.Model(&models.Message{}).
		Where("case_id = ? AND sender_id <> ? AND read = ?", caseID, readerID, false).
		Update("read", true).Error
	if err != nil {
		return fmt.Errorf("failed to mark messages read: %w", err)
	}
	return nil
}
