package database

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rpupo63/portfolio-site-backend/models"
)

type ContactMessageRepo struct {
	db *gorm.DB
}

func NewContactMessageRepo(db *gorm.DB) *ContactMessageRepo {
	return &ContactMessageRepo{db}
}

func (r *ContactMessageRepo) Create(ctx context.Context, message *models.ContactMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// List returns messages newest first. An empty status lists every message.
func (r *ContactMessageRepo) List(ctx context.Context, status models.MessageStatus) ([]models.ContactMessage, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	messages := []models.ContactMessage{}
	err := query.Find(&messages).Error
	return messages, err
}

func (r *ContactMessageRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error) {
	var message models.ContactMessage
	if err := r.db.WithContext(ctx).First(&message, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// Archive moves a new message to archived. Archiving an archived message
// changes nothing and returns it as is.
func (r *ContactMessageRepo) Archive(ctx context.Context, id uuid.UUID) (*models.ContactMessage, error) {
	err := r.db.WithContext(ctx).
		Model(&models.ContactMessage{}).
		Where("id = ? AND status = ?", id, models.MessageStatusNew).
		Update("status", models.MessageStatusArchived).Error
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *ContactMessageRepo) CountByStatus(ctx context.Context, status models.MessageStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ContactMessage{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}
