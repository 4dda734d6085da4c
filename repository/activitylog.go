package repository

import (
	"context"

	"gorm.io/gorm"

	"learninghub/models"
)

// ActivityLogRepository is the append-only audit trail. Records are never
// updated or deleted.
type ActivityLogRepository interface {
	Create(ctx context.Context, entry *models.ActivityLog) error
	FindAllNewestFirst(ctx context.Context) ([]models.ActivityLog, error)
}

type activityLogRepository struct {
	db *gorm.DB
}

// NewActivityLogRepository creates the GORM-backed ActivityLogRepository
func NewActivityLogRepository(db *gorm.DB) ActivityLogRepository {
	return &activityLogRepository{db: db}
}

func (r *activityLogRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *activityLogRepository) FindAllNewestFirst(ctx context.Context) ([]models.ActivityLog, error) {
	var logs []models.ActivityLog
	if err := r.db.WithContext(ctx).Order("timestamp DESC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
