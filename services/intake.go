package services

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"law_shop_app_go/models"

	"gorm.io/gorm"
)

// MaxIntakesPerEmailPerDay is the rolling-window cap on non-attorney
// submissions sharing an email address
const MaxIntakesPerEmailPerDay = 3

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Loose E.164-ish: optional +, 7 to 15 digits, common separators allowed
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9\-\s().]{5,19}$`)
)

// IntakeInput is the consultation form payload
type IntakeInput struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	CellPhone       string `json:"cellPhone"`
	PropertyAddress string `json:"propertyAddress"`
	CaseType        string `json:"caseType"`
}

// IntakeResult identifies the records created by a successful intake
type IntakeResult struct {
	Client     *models.Client
	Case       *models.Case
	ClientCase *models.ClientCase
	Message    string
}

// ValidateIntakeInput checks required fields and formats, returning a
// validation error that lists every offending field
func ValidateIntakeInput(input IntakeInput) error {
	var bad []string
	if strings.TrimSpace(input.FirstName) == "" {
		bad = append(bad, "firstName")
	}
	if strings.TrimSpace(input.LastName) == "" {
		bad = append(bad, "lastName")
	}
	if strings.TrimSpace(input.Email) == "" || !emailPattern.MatchString(input.Email) {
		bad = append(bad, "email")
	}
	if strings.TrimSpace(input.CellPhone) == "" || !phonePattern.MatchString(input.CellPhone) {
		bad = append(bad, "cellPhone")
	}
	if len(bad) > 0 {
		return NewValidationError(bad...)
	}
	return nil
}

// CheckIntakeRateLimit counts client records created for this email in the
// last 24 hours. Best-effort anti-abuse: the count-then-create window is
// racy and email variation bypasses it entirely.
func CheckIntakeRateLimit(db *gorm.DB, email string) error {
	since := time.Now().Add(-24 * time.Hour)
	var count int64
	if err := db.Model(&models.Client{}).
		Where("email = ? AND created_at > ?", email, since).
		Count(&count).Error; err != nil {
		return NewInternalError("Failed to check submission rate", err)
	}
	if count >= MaxIntakesPerEmailPerDay {
		return NewRateLimitError()
	}
	return nil
}

// CreateIntake runs the client intake workflow: validates the form,
// rate-limits public submissions by email, then creates the Client, its
// Case, and the primary ClientCase link in a single transaction
// (all-or-nothing create).
func CreateIntake(db *gorm.DB, input IntakeInput, isAttorney bool) (*IntakeResult, error) {
	if err := ValidateIntakeInput(input); err != nil {
		return nil, err
	}

	input.Email = strings.TrimSpace(input.Email)

	if !isAttorney {
		if err := CheckIntakeRateLimit(db, input.Email); err != nil {
			return nil, err
		}
	}

	clientStatus := models.ClientStatusLead
	if isAttorney {
		clientStatus = models.ClientStatusActive
	}

	caseType := strings.TrimSpace(input.CaseType)
	if !models.IsValidCaseType(caseType) {
		caseType = models.CaseTypeOther
	}

	client := &models.Client{
		FirstName:       strings.TrimSpace(input.FirstName),
		LastName:        strings.TrimSpace(input.LastName),
		Email:           input.Email,
		CellPhone:       strings.TrimSpace(input.CellPhone),
		PropertyAddress: strings.TrimSpace(input.PropertyAddress),
		Status:          clientStatus,
	}
	newCase := &models.Case{
		CaseType:        caseType,
		Status:          models.CaseStatusIntake,
		PropertyAddress: client.PropertyAddress,
	}
	link := &models.ClientCase{Role: models.ParticipantRolePrimary}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(client).Error; err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}
		if err := tx.Create(newCase).Error; err != nil {
			return fmt.Errorf("failed to create case: %w", err)
		}
		link.ClientID = client.ID
		link.CaseID = newCase.ID
		if err := tx.Create(link).Error; err != nil {
			return fmt.Errorf("failed to link client to case: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, NewInternalError("Failed to create client", err)
	}

	message := "Consultation request submitted successfully"
	if isAttorney {
		message = "Client created successfully"
	}

	return &IntakeResult{
		Client:     client,
		Case:       newCase,
		ClientCase: link,
		Message:    message,
	}, nil
}
