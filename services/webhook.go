package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"time"

	"law_shop_app_go/models"

	"gorm.io/gorm"
)

// CalcomAttendee is a booking attendee from the webhook payload
type CalcomAttendee struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	TimeZone string `json:"timeZone"`
}

// CalcomBooking is the inner payload of a Cal.com webhook delivery
type CalcomBooking struct {
	Type            string                 `json:"type"`
	Title           string                 `json:"title"`
	StartTime       time.Time              `json:"startTime"`
	EndTime         time.Time              `json:"endTime"`
	Attendees       []CalcomAttendee       `json:"attendees"`
	Responses       map[string]interface{} `json:"responses"`
	UID             string                 `json:"uid"`
	AdditionalNotes string                 `json:"additionalNotes"`
}

// CalcomWebhookPayload is the envelope Cal.com posts to the webhook endpoint
type CalcomWebhookPayload struct {
	TriggerEvent string        `json:"triggerEvent"`
	CreatedAt    string        `json:"createdAt"`
	Payload      CalcomBooking `json:"payload"`
}

// VerifyWebhookSignature computes an HMAC-SHA256 over the raw body and
// compares it against the header value in constant time. Cal.com may send
// the signature with a "sha256=" prefix.
func VerifyWebhookSignature(rawBody []byte, signature, secret string) bool {
	if signature == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))

	actual := strings.TrimPrefix(signature, "sha256=")
	return subtle.ConstantTimeCompare([]byte(expected), []byte(actual)) == 1
}

// LogWebhookEvent persists a webhook delivery to the audit collection
// asynchronously. Failures are logged and swallowed so they never block
// the main flow.
func LogWebhookEvent(db *gorm.DB, eventType, rawPayload string, success bool, errMsg string) {
	go func() {
		now := time.Now()
		entry := models.WebhookLog{
			Source:      "calcom",
			EventType:   eventType,
			Payload:     rawPayload,
			Success:     success,
			Error:       errMsg,
			ProcessedAt: &now,
		}
		if err := db.Create(&entry).Error; err != nil {
			log.Printf("[AUDIT] Failed to log webhook event: %v", err)
		}
	}()
}

// ReconcileResult identifies the records updated by a booking reconciliation
type ReconcileResult struct {
	Client *models.Client
	Case   *models.Case
}

// ReconcileBooking links a BOOKING_CREATED event to existing records: it
// looks up the client by the first attendee's email, stamps the booking
// metadata on the client, then updates the client's first associated case
// via the junction table. The client must already exist through the intake
// form; no client is auto-created from a webhook.
//
// Redelivery of the same booking uid is not deduplicated: a second
// delivery re-applies the same updates.
func ReconcileBooking(db *gorm.DB, payload *CalcomWebhookPayload) (*ReconcileResult, error) {
	if len(payload.Payload.Attendees) == 0 {
		return nil, fmt.Errorf("no attendee found in booking")
	}
	attendee := payload.Payload.Attendees[0]

	var client models.Client
	err := db.Where("email = ?", attendee.Email).Order("created_at ASC").First(&client).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("no client found with email %s. Client must fill consultation form before booking", attendee.Email)
		}
		return nil, fmt.Errorf("failed to look up client: %w", err)
	}

	startTime := payload.Payload.StartTime
	if err := db.Model(&client).Updates(map[string]interface{}{
		"consultation_booked": true,
		"consultation_date":   startTime,
		"booking_id":          payload.Payload.UID,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to update client with booking: %w", err)
	}

	var links []models.ClientCase
	if err := db.Where("client_id = ?", client.ID).Order("created_at ASC").Find(&links).Error; err != nil {
		return nil, fmt.Errorf("failed to look up client cases: %w", err)
	}
	if len(links) == 0 {
		return nil, fmt.Errorf("no case found for client %s", client.ID)
	}

	var matchedCase models.Case
	if err := db.First(&matchedCase, "id = ?", links[0].CaseID).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch case %s: %w", links[0].CaseID, err)
	}

	if err := db.Model(&matchedCase).Updates(map[string]interface{}{
		"consultation_booking_id": payload.Payload.UID,
		"consultation_date_time":  startTime,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to update case with booking: %w", err)
	}

	// Re-read so callers see the stamped booking fields
	if err := db.First(&client, "id = ?", client.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload client: %w", err)
	}
	if err := db.First(&matchedCase, "id = ?", matchedCase.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload case: %w", err)
	}

	log.Printf("Linked booking %s to client %s and case %s", payload.Payload.UID, client.ID, matchedCase.ID)

	return &ReconcileResult{Client: &client, Case: &matchedCase}, nil
}
