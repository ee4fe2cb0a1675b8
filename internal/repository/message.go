package repository

import (
	"context"

	"tripsync/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines the interface for the append-only message log.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	ListByGroup(ctx context.Context, groupID uint) ([]models.Message, error)
	DeleteByGroup(ctx context.Context, groupID uint) error
}

// messageRepository implements MessageRepository
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ListByGroup returns the log ordered by creation time ascending. The row id
// breaks ties between equal timestamps so the order is total.
func (r *messageRepository) ListByGroup(ctx context.Context, groupID uint) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

func (r *messageRepository) DeleteByGroup(ctx context.Context, groupID uint) error {
	if err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Delete(&models.Message{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
