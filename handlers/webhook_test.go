package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"law_shop_app_go/models"

	"github.com/stretchr/testify/assert"
)

func bookingCreatedBody(email string, start time.Time) string {
	return fmt.Sprintf(`{
		"triggerEvent": "BOOKING_CREATED",
		"createdAt": "%s",
		"payload": {
			"type": "consultation",
			"title": "Initial Consultation",
			"startTime": "%s",
			"endTime": "%s",
			"uid": "bkng_abc123",
			"attendees": [{"email": "%s", "name": "Jane Doe", "timeZone": "America/New_York"}]
		}
	}`, time.Now().Format(time.RFC3339), start.Format(time.RFC3339), start.Add(30*time.Minute).Format(time.RFC3339), email)
}

func signWebhookBody(body, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestCalcomWebhookHandler_BookingCreated(t *testing.T) {
	h, testDB := newTestHandler(t)
	intake := seedIntake(t, testDB, "jane@example.com")

	start := time.Date(2026, 9, 15, 14, 0, 0, 0, time.UTC)
	body := bookingCreatedBody("jane@example.com", start)

	_, c, rec := setupEcho(http.MethodPost, "/api/webhooks/calcom", strings.NewReader(body))
	assert.NoError(t, h.CalcomWebhookHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, intake.Client.ID, resp["clientId"])
	assert.Equal(t, intake.Case.ID, resp["caseId"])

	// Client and case carry the booking metadata
	var client models.Client
	assert.NoError(t, testDB.First(&client, "id = ?", intake.Client.ID).Error)
	assert.True(t, client.ConsultationBooked)
	assert.Equal(t, "bkng_abc123", client.BookingID)

	var matter models.Case
	assert.NoError(t, testDB.First(&matter, "id = ?", intake.Case.ID).Error)
	assert.Equal(t, "bkng_abc123", matter.ConsultationBookingID)

	// Delivery is recorded
	time.Sleep(100 * time.Millisecond)
	var whLog models.WebhookLog
	assert.NoError(t, testDB.First(&whLog, "event_type = ?", models.WebhookEventBookingCreated).Error)
	assert.True(t, whLog.Success)
}

func TestCalcomWebhookHandler_NoMatchingClient(t *testing.T) {
	h, testDB := newTestHandler(t)

	body := bookingCreatedBody("stranger@example.com", time.Now().Add(48*time.Hour))
	_, c, rec := setupEcho(http.MethodPost, "/api/webhooks/calcom", strings.NewReader(body))

	assert.NoError(t, h.CalcomWebhookHandler(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	assert.Equal(t, "Failed to process booking", resp["error"])
	assert.Contains(t, resp["details"], "no client found with email stranger@example.com")

	// Failure is recorded
	time.Sleep(100 * time.Millisecond)
	var whLog models.WebhookLog
	assert.NoError(t, testDB.First(&whLog, "event_type = ?", models.WebhookEventBookingCreated).Error)
	assert.False(t, whLog.Success)
}

func TestCalcomWebhookHandler_InvalidJSON(t *testing.T) {
	h, _ := newTestHandler(t)

	_, c, rec := setupEcho(http.MethodPost, "/api/webhooks/calcom", strings.NewReader("not json"))
	assert.NoError(t, h.CalcomWebhookHandler(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCalcomWebhookHandler_UnhandledEventAcked(t *testing.T) {
	h, testDB := newTestHandler(t)

	body := `{"triggerEvent":"MEETING_ENDED","payload":{"uid":"bkng_xyz"}}`
	_, c, rec := setupEcho(http.MethodPost, "/api/webhooks/calcom", strings.NewReader(body))

	assert.NoError(t, h.CalcomWebhookHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	assert.Equal(t, "Webhook processed successfully", resp["message"])

	time.Sleep(100 * time.Millisecond)
	var whLog models.WebhookLog
	assert.NoError(t, testDB.First(&whLog, "event_type = ?", "MEETING_ENDED").Error)
	assert.True(t, whLog.Success)
	assert.Equal(t, "Event logged but not processed", whLog.Error)
}

func TestCalcomWebhookHandler_ProductionSignature(t *testing.T) {
	h, testDB := newTestHandler(t)
	h.Config.Environment = "production"
	seedIntake(t, testDB, "jane@example.com")

	body := bookingCreatedBody("jane@example.com", time.Now().Add(24*time.Hour))

	// Valid signature accepted
	_, c, rec := setupEcho(http.MethodPost, "/api/webhooks/calcom", strings.NewReader(body))
	c.Request().Header.Set("x-cal-signature-256", signWebhookBody(body, h.Config.CalcomWebhookSecret))
	assert.NoError(t, h.CalcomWebhookHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	// Wrong signature rejected
	_, c, rec = setupEcho(http.MethodPost, "/api/webhooks/calcom", strings.NewReader(body))
	c.Request().Header.Set("x-cal-signature-256", signWebhookBody(body, "wrong-secret"))
	assert.NoError(t, h.CalcomWebhookHandler(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Missing signature rejected
	_, c, rec = setupEcho(http.MethodPost, "/api/webhooks/calcom", strings.NewReader(body))
	assert.NoError(t, h.CalcomWebhookHandler(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCalcomWebhookHandler_ProductionMissingSecret(t *testing.T) {
	h, _ := newTestHandler(t)
	h.Config.Environment = "production"
	h.Config.CalcomWebhookSecret = ""

	body := bookingCreatedBody("jane@example.com", time.Now())
	_, c, rec := setupEcho(http.MethodPost, "/api/webhooks/calcom", strings.NewReader(body))

	assert.NoError(t, h.CalcomWebhookHandler(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]interface{}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	assert.Equal(t, "Webhook secret not configured", resp["message"])
}

func TestCalcomWebhookHandler_DevModeSkipsSignature(t *testing.T) {
	h, testDB := newTestHandler(t)
	seedIntake(t, testDB, "jane@example.com")

	// No signature header at all; development accepts it
	body := bookingCreatedBody("jane@example.com", time.Now().Add(24*time.Hour))
	_, c, rec := setupEcho(http.MethodPost, "/api/webhooks/calcom", strings.NewReader(body))

	assert.NoError(t, h.CalcomWebhookHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCalcomWebhookHandler_CancelledEventLogged(t *testing.T) {
	h, testDB := newTestHandler(t)

	body := `{"triggerEvent":"BOOKING_CANCELLED","payload":{"uid":"bkng_abc123"}}`
	_, c, rec := setupEcho(http.MethodPost, "/api/webhooks/calcom", strings.NewReader(body))

	assert.NoError(t, h.CalcomWebhookHandler(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	time.Sleep(100 * time.Millisecond)
	var whLog models.WebhookLog
	assert.NoError(t, testDB.First(&whLog, "event_type = ?", models.WebhookEventBookingCancelled).Error)
	assert.True(t, whLog.Success)
}
