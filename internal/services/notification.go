package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"medibook-server/internal/models"
)

// Dispatcher receives lifecycle events and persists user-facing
// notifications. Callers treat it as fire-and-forget: a returned error is
// logged, never propagated into the triggering transaction.
type Dispatcher interface {
	Notify(recipientID string, role models.Role, title, body, relatedType, relatedID string) error
}

// NotificationStore is the GORM-backed Dispatcher plus the read side used by
// the notifications endpoints.
type NotificationStore struct {
	DB *gorm.DB
}

// NewNotificationStore creates a new NotificationStore.
func NewNotificationStore(db *gorm.DB) *NotificationStore {
	return &NotificationStore{DB: db}
}

// Notify persists one notification row.
func (s *NotificationStore) Notify(recipientID string, role models.Role, title, body, relatedType, relatedID string) error {
	n := models.Notification{
		RecipientID:   recipientID,
		RecipientRole: role,
		Title:         title,
		Body:          body,
		RelatedType:   relatedType,
		RelatedID:     relatedID,
	}
	if err := s.DB.Create(&n).Error; err != nil {
		return fmt.Errorf("persisting notification: %w", err)
	}
	return nil
}

// ListForUser returns the user's notifications, newest first.
func (s *NotificationStore) ListForUser(userID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.DB.Where("recipient_id = ?", userID).
		Order("created_at desc").
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("loading notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead flags a notification as read, scoped to its recipient.
func (s *NotificationStore) MarkRead(notificationID, userID string) (*models.Notification, error) {
	var n models.Notification
	err := s.DB.Where("id = ? AND recipient_id = ?", notificationID, userID).First(&n).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading notification: %w", err)
	}
	if !n.IsRead {
		now := time.Now()
		n.IsRead = true
		n.ReadAt = &now
		if err := s.DB.Save(&n).Error; err != nil {
			return nil, fmt.Errorf("marking notification read: %w", err)
		}
	}
	return &n, nil
}
