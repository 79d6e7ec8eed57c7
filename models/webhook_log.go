package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Webhook event types delivered by Cal.com
const (
	WebhookEventBookingCreated     = "BOOKING_CREATED"
	WebhookEventBookingRescheduled = "BOOKING_RESCHEDULED"
	WebhookEventBookingCancelled   = "BOOKING_CANCELLED"
)

// WebhookLog is the audit record for every received webhook delivery,
// persisted verbatim before processing. Writes are best-effort.
type WebhookLog struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"webhook_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Source    string `gorm:"not null;default:calcom" json:"source"`
	EventType string `gorm:"not null;index" json:"event_type"`
	Payload   string `gorm:"type:text" json:"payload"`

	Success     bool       `gorm:"not null;default:false" json:"success"`
	Error       string     `gorm:"type:text" json:"error,omitempty"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
}

// BeforeCreate hook to generate UUID
func (w *WebhookLog) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for WebhookLog model
func (WebhookLog) TableName() string {
	return "webhook_logs"
}
