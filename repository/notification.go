package repository

import (
	"context"

	"gorm.io/gorm"

	"learninghub/models"
)

// NotificationRepository is the data access contract for notifications.
// MarkRead and MarkAllRead are single atomic update statements scoped to one
// user; MarkRead is a silent no-op when the id/user pair does not match.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	FindByUserID(ctx context.Context, userID int64) ([]models.Notification, error)
	FindAll(ctx context.Context) ([]models.Notification, error)
	CountUnreadByUserID(ctx context.Context, userID int64) (int64, error)
	MarkRead(ctx context.Context, id, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates the GORM-backed NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *models.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepository) FindByUserID(ctx context.Context, userID int64) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepository) FindAll(ctx context.Context) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := r.db.WithContext(ctx).Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *notificationRepository) CountUnreadByUserID(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, userID int64) error {
	return r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true).Error
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ?", userID).
		Update("is_read", true).Error
}
