package models

import (
	"time"
)

// Notification is a persisted, user-facing notification written by the
// dispatcher as a side effect of lifecycle events. Delivery is best-effort:
// a failed insert never fails the operation that triggered it.
type Notification struct {
	BaseModel
	RecipientID   string     `gorm:"size:36;index" json:"recipientId"`
	RecipientRole Role       `gorm:"size:20" json:"recipientRole"`
	Title         string     `gorm:"size:255" json:"title"`
	Body          string     `gorm:"type:text" json:"body"`
	RelatedType   string     `gorm:"size:50" json:"relatedType,omitempty"`
	RelatedID     string     `gorm:"size:36" json:"relatedId,omitempty"`
	IsRead        bool       `gorm:"default:false" json:"isRead"`
	ReadAt        *time.Time `json:"readAt,omitempty"`

	Recipient User `gorm:"foreignKey:RecipientID" json:"-"`
}
