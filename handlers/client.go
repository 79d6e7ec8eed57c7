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

// CreateClientHandler handles the consultation intake form: public
// submissions create leads, attorney-authenticated requests create
// active clients. Runs the full intake workflow (client + case +
// participant link) and kicks off the best-effort side effects.
func (h *Handler) CreateClientHandler(c echo.Context) error {
	var input services.IntakeInput
	if err := c.Bind(&input); err != nil {
		return respondError(c, services.NewValidationError("body"))
	}

	isAttorney := middleware.IsAttorneyRequest(c)

	result, err := services.CreateIntake(h.DB, input, isAttorney)
	if err != nil {
		return respondError(c, err)
	}

	// Best-effort side effects; failures are logged, never surfaced
	services.SyncContactAsync(h.DB, h.Contacts, result.Client)
	if !isAttorney {
		services.SendEmailAsync(h.Config, services.BuildIntakeConfirmationEmail(result.Client.Email, result.Client.FirstName))
	}

	if isAttorney {
		auditCtx := middleware.GetAuditContext(c)
		services.LogAuditEvent(h.DB, auditCtx, models.AuditActionCreate, "Client", result.Client.ID,
			result.Client.FullName(), "Attorney created client with intake case", nil, result.Client)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success":  true,
		"clientId": result.Client.ID,
		"caseId":   result.Case.ID,
		"message":  result.Message,
	})
}

// GetClientsHandler returns all clients, newest first. Attorney only.
func (h *Handler) GetClientsHandler(c echo.Context) error {
	var clients []models.Client
	if err := h.DB.Order("created_at DESC").Find(&clients).Error; err != nil {
		return respondError(c, services.NewInternalError("Failed to retrieve clients", err))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"clients": clients,
		"count":   len(clients),
	})
}

// GetClientHandler returns a single client by id. Attorney only.
func (h *Handler) GetClientHandler(c echo.Context) error {
	id := c.Param("id")

	var client models.Client
	if err := h.DB.First(&client, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return respondError(c, services.NewNotFoundError("Client"))
		}
		return respondError(c, services.NewInternalError("Failed to retrieve client", err))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"client":  client,
	})
}

// UpdateClientPayload is the partial-update body for a client
type UpdateClientPayload struct {
	Email           *string `json:"email"`
	FirstName       *string `json:"firstName"`
	LastName        *string `json:"lastName"`
	CellPhone       *string `json:"cellPhone"`
	PropertyAddress *string `json:"propertyAddress"`
	Status          *string `json:"status"`
}

// UpdateClientHandler applies a partial update to a client. Attorney only.
func (h *Handler) UpdateClientHandler(c echo.Context) error {
	id := c.Param("id")

	var client models.Client
	if err := h.DB.First(&client, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return respondError(c, services.NewNotFoundError("Client"))
		}
		return respondError(c, services.NewInternalError("Failed to retrieve client", err))
	}

	var payload UpdateClientPayload
	if err := c.Bind(&payload); err != nil {
		return respondError(c, services.NewValidationError("body"))
	}

	updates := map[string]interface{}{}
	if payload.Email != nil {
		updates["email"] = strings.TrimSpace(*payload.Email)
	}
	if payload.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*payload.FirstName)
	}
	if payload.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*payload.LastName)
	}
	if payload.CellPhone != nil {
		updates["cell_phone"] = strings.TrimSpace(*payload.CellPhone)
	}
	if payload.PropertyAddress != nil {
		updates["property_address"] = strings.TrimSpace(*payload.PropertyAddress)
	}
	if payload.Status != nil {
		if !models.IsValidClientStatus(*payload.Status) {
			return respondError(c, services.NewValidationError("status"))
		}
		updates["status"] = *payload.Status
	}

	if len(updates) == 0 {
		return respondError(c, &services.AppError{
			Code:    services.CodeValidation,
			Message: "At least one field must be provided for update",
		})
	}

	before := client
	if err := h.DB.Model(&client).Updates(updates).Error; err != nil {
		return respondError(c, services.NewInternalError("Failed to update client", err))
	}
	if err := h.DB.First(&client, "id = ?", id).Error; err != nil {
		return respondError(c, services.NewInternalError("Failed to reload client", err))
	}

	auditCtx := middleware.GetAuditContext(c)
	services.LogAuditEvent(h.DB, auditCtx, models.AuditActionUpdate, "Client", client.ID,
		client.FullName(), "Updated client record", before, client)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Client updated successfully",
		"client":  client,
	})
}
