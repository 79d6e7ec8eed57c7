package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Case types handled by the practice
const (
	CaseTypeCondo        = "Condo Apartment"
	CaseTypeCoop         = "Coop Apartment"
	CaseTypeSingleFamily = "Single Family House"
	CaseTypeOther        = "Other"
)

// Case status constants
const (
	CaseStatusIntake    = "intake"
	CaseStatusActive    = "active"
	CaseStatusCompleted = "completed"
	CaseStatusCancelled = "cancelled"
)

// Case represents a legal matter. Ownership by one or more clients is
// modeled through the ClientCase junction table.
type Case struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"case_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CaseType string `gorm:"not null;default:Other" json:"case_type"`
	Status   string `gorm:"not null;default:intake;index" json:"status"`

	PropertyAddress string   `json:"property_address,omitempty"`
	PurchasePrice   *float64 `json:"purchase_price,omitempty"`

	// Booking metadata, set by webhook reconciliation
	ConsultationBookingID string     `json:"consultation_booking_id,omitempty"`
	ConsultationDateTime  *time.Time `json:"consultation_date_time,omitempty"`
}

// BeforeCreate hook to generate UUID
func (c *Case) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Case model
func (Case) TableName() string {
	return "cases"
}

// IsValidCaseType checks if the case type is valid
func IsValidCaseType(caseType string) bool {
	validTypes := []string{
		CaseTypeCondo,
		CaseTypeCoop,
		CaseTypeSingleFamily,
		CaseTypeOther,
	}
	for _, t := range validTypes {
		if t == caseType {
			return true
		}
	}
	return false
}

// IsValidCaseStatus checks if the status is valid
func IsValidCaseStatus(status string) bool {
	validStatuses := []string{
		CaseStatusIntake,
		CaseStatusActive,
		CaseStatusCompleted,
		CaseStatusCancelled,
	}
	for _, s := range validStatuses {
		if s == status {
			return true
		}
	}
	return false
}
