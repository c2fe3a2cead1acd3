package services

import (
	"context"
	"errors"
	"time"

	"dashboard/models"

	"gorm.io/gorm"
)

// notificationPageLimit bounds a single retrieval so a pathological inbox
// cannot blow up page rendering. This is not a pagination cursor: callers
// needing full history have no operation for it.
const notificationPageLimit = 50

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// GetUserNotifications returns the user's notifications, most urgent and
// most recent first, capped at 50 rows.
func (s *NotificationService) GetUserNotifications(ctx context.Context, userID uint, unreadOnly bool) ([]models.Notification, error) {
	query := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	err := query.
		Order("priority DESC, created_at DESC").
		Limit(notificationPageLimit).
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// CreateNotification stores a new notification. It always starts unread,
// whatever the producer put in the struct. Nothing ever purges old rows;
// the table grows without bound and retrieval relies on the read cap.
func (s *NotificationService) CreateNotification(ctx context.Context, notification *models.Notification) (*models.Notification, error) {
	notification.CreatedAt = time.Now().UTC()
	notification.IsRead = false

	if err := s.db.WithContext(ctx).Create(notification).Error; err != nil {
		return nil, err
	}
	return notification, nil
}

func (s *NotificationService) GetNotificationByID(ctx context.Context, notificationID uint) (*models.Notification, error) {
	var notification models.Notification
	err := s.db.WithContext(ctx).First(&notification, notificationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

// MarkAsRead flips a notification to read. Marking one that is already
// read succeeds and changes nothing; only a missing id yields false.
func (s *NotificationService) MarkAsRead(ctx context.Context, notificationID uint) (bool, error) {
	var notification models.Notification
	err := s.db.WithContext(ctx).First(&notification, notificationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	notification.IsRead = true
	if err := s.db.WithContext(ctx).Save(&notification).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (s *NotificationService) GetUnreadCount(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
