package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Participant role constants
const (
	ParticipantRolePrimary = "primary"
	ParticipantRoleCoBuyer = "co-buyer"
)

// ClientCase is the junction record linking clients to cases.
// A case may have multiple participants and a client may have multiple
// cases. Referential integrity is not enforced by the store.
type ClientCase struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"participant_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ClientID string `gorm:"type:uuid;not null;index" json:"client_id"`
	CaseID   string `gorm:"type:uuid;not null;index" json:"case_id"`
	Role     string `gorm:"not null;default:primary" json:"role"`
}

// BeforeCreate hook to generate UUID
func (cc *ClientCase) BeforeCreate(tx *gorm.DB) error {
	if cc.ID == "" {
		cc.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for ClientCase model
func (ClientCase) TableName() string {
	return "client_cases"
}

// IsValidParticipantRole checks if the role is valid
func IsValidParticipantRole(role string) bool {
	return role == ParticipantRolePrimary || role == ParticipantRoleCoBuyer
}
