package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-manager/internal/messaging"
	"github.com/BruksfildServices01/salon-manager/internal/models"
)

type MessageGormRepository struct {
	db *gorm.DB
}

func NewMessageGormRepository(db *gorm.DB) *MessageGormRepository {
	return &MessageGormRepository{db: db}
}

func (r *MessageGormRepository) SaveMessage(
	ctx context.Context,
	msg *models.MessageHistory,
) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *MessageGormRepository) ListByClient(
	ctx context.Context,
	clientID uuid.UUID,
	limit int,
) ([]models.MessageHistory, error) {

	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var rows []models.MessageHistory
	if err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("sent_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

var _ messaging.Store = (*MessageGormRepository)(nil)
