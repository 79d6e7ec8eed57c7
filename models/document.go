package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document types for real estate matters
const (
	DocTypeContractOfSale = "contract of sale"
	DocTypeTermSheet      = "term sheet"
	DocTypeTitleReport    = "title report"
	DocTypeBoardMinutes   = "board minutes"
	DocTypeOfferingPlan   = "offering plan"
	DocTypeFinancials     = "financials"
	DocTypeByLaws         = "by-laws"
)

// Document represents a file attached to exactly one case
type Document struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"document_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CaseID string `gorm:"type:uuid;not null;index" json:"case_id"`

	FileName string `gorm:"not null" json:"file_name"`
	FileURL  string `json:"file_url,omitempty"`
	FileSize int64  `json:"file_size,omitempty"`
	// Storage key/path, not exposed in JSON
	StorageKey string `json:"-"`

	DocType    string    `gorm:"not null" json:"doc_type"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// BeforeCreate hook to generate UUID
func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for Document model
func (Document) TableName() string {
	return "documents"
}

// IsValidDocType checks if the document type is valid
func IsValidDocType(docType string) bool {
	validTypes := []string{
		DocTypeContractOfSale,
		DocTypeTermSheet,
		DocTypeTitleReport,
		DocTypeBoardMinutes,
		DocTypeOfferingPlan,
		DocTypeFinancials,
		DocTypeByLaws,
	}
	for _, t := range validTypes {
		if t == docType {
			return true
		}
	}
	return false
}
