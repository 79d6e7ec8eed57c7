package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Portal status constants
const (
	PortalStatusPending   = "pending"
	PortalStatusCreated   = "created"
	PortalStatusActive    = "active"
	PortalStatusSuspended = "suspended"
)

// Registration status constants
const (
	RegistrationStatusPending   = "pending"
	RegistrationStatusCompleted = "completed"
	RegistrationStatusAbandoned = "abandoned"
)

// Portal represents a client's portal access record.
// One portal per client by convention, not enforced by the store.
type Portal struct {
	PortalUUID string    `gorm:"type:uuid;primarykey" json:"portal_uuid"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	ClientID           string `gorm:"type:uuid;not null;index" json:"client_id"`
	PortalStatus       string `gorm:"not null;default:pending" json:"portal_status"`
	RegistrationStatus string `gorm:"not null;default:pending" json:"registration_status"`
}

// BeforeCreate hook to generate UUID
func (p *Portal) BeforeCreate(tx *gorm.DB) error {
	if p.PortalUUID == "" {
		p.PortalUUID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Portal model
func (Portal) TableName() string {
	return "portals"
}
