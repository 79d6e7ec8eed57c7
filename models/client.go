package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client status constants
const (
	ClientStatusLead     = "lead"
	ClientStatusRetained = "retained"
	ClientStatusClosed   = "closed"
	ClientStatusActive   = "active"
	ClientStatusPaid     = "paid"
	ClientStatusInactive = "inactive"
)

// Client represents a prospective or retained client of the firm.
// Email is a natural key used for lookups and dedup, but uniqueness is
// not enforced at the storage layer.
type Client struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"client_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	FirstName       string `gorm:"not null" json:"first_name"`
	LastName        string `gorm:"not null" json:"last_name"`
	Email           string `gorm:"not null;index" json:"email"`
	CellPhone       string `gorm:"not null" json:"cell_phone"`
	PropertyAddress string `json:"property_address,omitempty"`

	Status string `gorm:"not null;default:lead;index" json:"status"`

	// Booking metadata, set by webhook reconciliation
	ConsultationBooked bool       `gorm:"not null;default:false" json:"consultation_booked"`
	ConsultationDate   *time.Time `json:"consultation_date,omitempty"`
	BookingID          string     `json:"booking_id,omitempty"`

	// Google Contacts mirror reference (best-effort sync)
	GoogleContactResourceName string `json:"google_contact_resource_name,omitempty"`
}

// BeforeCreate hook to generate UUID
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// FullName returns the client's display name
func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

// TableName specifies the table name for Client model
func (Client) TableName() string {
	return "clients"
}

// IsValidClientStatus checks if the status is valid
func IsValidClientStatus(status string) bool {
	validStatuses := []string{
		ClientStatusLead,
		ClientStatusRetained,
		ClientStatusClosed,
		ClientStatusActive,
		ClientStatusPaid,
		ClientStatusInactive,
	}
	for _, s := range validStatuses {
		if s == status {
			return true
		}
	}
	return false
}
