package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"law_shop_app_go/models"
	"law_shop_app_go/services"

	"github.com/labstack/echo/v4"
)

// Signature header names Cal.com is known to send, in lookup order
var calcomSignatureHeaders = []string{
	"x-cal-signature-256",
	"x-signature-256",
	"x-cal-signature",
}

// CalcomWebhookHandler ingests Cal.com booking webhooks: verifies the
// HMAC signature (production only), persists an audit record for every
// delivery, and reconciles BOOKING_CREATED events against existing
// client and case records.
func (h *Handler) CalcomWebhookHandler(c echo.Context) error {
	rawBody, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return respondError(c, services.NewInternalError("Failed to read request body", err))
	}

	signature := ""
	for _, header := range calcomSignatureHeaders {
		if v := c.Request().Header.Get(header); v != "" {
			signature = v
			break
		}
	}

	if h.Config.IsProduction() {
		if h.Config.CalcomWebhookSecret == "" {
			log.Printf("[ERROR] CALCOM_WEBHOOK_SECRET not configured for production")
			return c.JSON(http.StatusInternalServerError, map[string]interface{}{
				"error":   services.CodeInternalError,
				"message": "Webhook secret not configured",
			})
		}
		if !services.VerifyWebhookSignature(rawBody, signature, h.Config.CalcomWebhookSecret) {
			log.Printf("[WARNING] Cal.com webhook signature verification failed (signature present: %t)", signature != "")
			return c.JSON(http.StatusUnauthorized, map[string]interface{}{
				"error":   services.CodeUnauthorized,
				"message": "Webhook signature verification failed",
			})
		}
	} else {
		// Development: log signature info but don't block.
		// Intentional bypass carried over from the original design; risky
		// if the environment flag is ever mis-set in a deployment.
		log.Printf("Development mode: webhook signature verification skipped (signature present: %t)", signature != "")
	}

	var payload services.CalcomWebhookPayload
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		log.Printf("[WARNING] Failed to parse Cal.com webhook payload: %v", err)
		services.LogWebhookEvent(h.DB, "UNPARSEABLE", string(rawBody), false, "Invalid JSON payload")
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":   services.CodeValidation,
			"message": "Invalid JSON payload",
		})
	}

	log.Printf("Cal.com webhook received: event=%s booking=%s", payload.TriggerEvent, payload.Payload.UID)

	switch payload.TriggerEvent {
	case models.WebhookEventBookingCreated:
		result, err := services.ReconcileBooking(h.DB, &payload)
		if err != nil {
			log.Printf("[ERROR] Booking reconciliation failed: %v", err)
			services.LogWebhookEvent(h.DB, payload.TriggerEvent, string(rawBody), false, err.Error())
			return c.JSON(http.StatusInternalServerError, map[string]interface{}{
				"error":   "Failed to process booking",
				"details": err.Error(),
			})
		}

		services.LogWebhookEvent(h.DB, payload.TriggerEvent, string(rawBody), true, "")
		services.SendEmailAsync(h.Config, services.BuildBookingConfirmationEmail(
			result.Client.Email, result.Client.FirstName, payload.Payload.StartTime))

		return c.JSON(http.StatusOK, map[string]interface{}{
			"success":  true,
			"message":  "Booking linked to existing client and case",
			"clientId": result.Client.ID,
			"caseId":   result.Case.ID,
		})

	case models.WebhookEventBookingRescheduled:
		// TODO: update the consultation date on the matched client and case
		log.Printf("Booking rescheduled - not yet implemented")
		services.LogWebhookEvent(h.DB, payload.TriggerEvent, string(rawBody), true, "Event logged but not processed")

	case models.WebhookEventBookingCancelled:
		// TODO: flag the consultation as cancelled on the matched records
		log.Printf("Booking cancelled - not yet implemented")
		services.LogWebhookEvent(h.DB, payload.TriggerEvent, string(rawBody), true, "Event logged but not processed")

	default:
		log.Printf("Unhandled Cal.com event: %s", payload.TriggerEvent)
		services.LogWebhookEvent(h.DB, payload.TriggerEvent, string(rawBody), true, "Event logged but not processed")
	}

	// Acknowledge unprocessed event types so the sender does not retry
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Webhook processed successfully",
	})
}
