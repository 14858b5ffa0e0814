package repository

import (
	"context"

	"fluxo/internal/model"

	"gorm.io/gorm"
)

type NotificationRepo interface {
	Create(ctx context.Context, notification *model.Notification) error
	ListByUserID(ctx context.Context, userID uint64, limit, offset int) ([]*model.Notification, error)
	GetUnreadCount(ctx context.Context, userID uint64) (int64, error)
	MarkAllRead(ctx context.Context, userID uint64) error
	DeleteOrphaned(ctx context.Context) (int64, error)
}

type NotificationRepoImpl struct {
	db *gorm.DB
}

func NewNotificationRepo(db *gorm.DB) NotificationRepo {
	return &NotificationRepoImpl{db}
}

func (s *NotificationRepoImpl) Create(ctx context.Context, notification *model.Notification) error {
	return s.db.WithContext(ctx).Create(notification).Error
}

func (s *NotificationRepoImpl) ListByUserID(ctx context.Context, userID uint64, limit, offset int) ([]*model.Notification, error) {
	var notifications []*model.Notification
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&notifications).Error
	return notifications, err
}

func (s *NotificationRepoImpl) GetUnreadCount(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (s *NotificationRepoImpl) MarkAllRead(ctx context.Context, userID uint64) error {
	return s.db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

// DeleteOrphaned 清理帖子已删除的通知行
func (s *NotificationRepoImpl) DeleteOrphaned(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("post_id IS NOT NULL AND post_id NOT IN (?)", s.db.Model(&model.Post{}).Select("id")).
		Delete(&model.Notification{})
	return res.RowsAffected, res.Error
}
