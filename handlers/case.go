package handlers

import (
	"net/http"
	"strings"

	"law_shop_app_go/middleware"
	"law_shop_app_go/models"
	"law_shop_app_go/services"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// GetCasesHandler returns all cases, newest first. Attorney only.
func (h *Handler) GetCasesHandler(c echo.Context) error {
	var cases []models.Case
	if err := h.DB.Order("created_at DESC").Find(&cases).Error; err != nil {
		return respondError(c, services.NewInternalError("Failed to retrieve cases", err))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"cases":   cases,
		"count":   len(cases),
	})
}

// GetCaseHandler returns a single case with its participants. Attorney only.
func (h *Handler) GetCaseHandler(c echo.Context) error {
	id := c.Param("id")

	var matter models.Case
	if err := h.DB.First(&matter, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return respondError(c, services.NewNotFoundError("Case"))
		}
		return respondError(c, services.NewInternalError("Failed to retrieve case", err))
	}

	var participants []models.ClientCase
	if err := h.DB.Where("case_id = ?", matter.ID).Order("created_at ASC").Find(&participants).Error; err != nil {
		return respondError(c, services.NewInternalError("Failed to retrieve case participants", err))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":      true,
		"case":         matter,
		"participants": participants,
	})
}

// UpdateCasePayload is the partial-update body for a case
type UpdateCasePayload struct {
	CaseType        *string  `json:"caseType"`
	Status          *string  `json:"status"`
	PropertyAddress *string  `json:"propertyAddress"`
	PurchasePrice   *float64 `json:"purchasePrice"`
}

// UpdateCaseHandler applies a partial update to a case. Attorney only.
func (h *Handler) UpdateCaseHandler(c echo.Context) error {
	id := c.Param("id")

	var matter models.Case
	if err := h.DB.First(&matter, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return respondError(c, services.NewNotFoundError("Case"))
		}
		return respondError(c, services.NewInternalError("Failed to retrieve case", err))
	}

	var payload UpdateCasePayload
	if err := c.Bind(&payload); err != nil {
		return respondError(c, services.NewValidationError("body"))
	}

	updates := map[string]interface{}{}
	if payload.CaseType != nil {
		if !models.IsValidCaseType(*payload.CaseType) {
			return respondError(c, services.NewValidationError("caseType"))
		}
		updates["case_type"] = *payload.CaseType
	}
	if payload.Status != nil {
		if !models.IsValidCaseStatus(*payload.Status) {
			return respondError(c, services.NewValidationError("status"))
		}
		updates["status"] = *payload.Status
	}
	if payload.PropertyAddress != nil {
		updates["property_address"] = strings.TrimSpace(*payload.PropertyAddress)
	}
	if payload.PurchasePrice != nil {
		updates["purchase_price"] = *payload.PurchasePrice
	}

	if len(updates) == 0 {
		return respondError(c, &services.AppError{
			Code:    services.CodeValidation,
			Message: "At least one field must be provided for update",
		})
	}

	before := matter
	if err := h.DB.Model(&matter).Updates(updates).Error; err != nil {
		return respondError(c, services.NewInternalError("Failed to update case", err))
	}
	if err := h.DB.First(&matter, "id = ?", id).Error; err != nil {
		return respondError(c, services.NewInternalError("Failed to reload case", err))
	}

	auditCtx := middleware.GetAuditContext(c)
	services.LogAuditEvent(h.DB, auditCtx, models.AuditActionUpdate, "Case", matter.ID,
		matter.CaseType, "Updated case record", before, matter)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Case updated successfully",
		"case":    matter,
	})
}
