package handlers

import (
	"net/http"

	"law_shop_app_go/middleware"
	"law_shop_app_go/models"
	"law_shop_app_go/services"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// CreatePortalHandler provisions a portal for a client. One portal per
// client by convention; a second request is rejected. Attorney only.
func (h *Handler) CreatePortalHandler(c echo.Context) error {
	clientID := c.Param("id")

	var client models.Client
	if err := h.DB.First(&client, "id = ?", clientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return respondError(c, services.NewNotFoundError("Client"))
		}
		return respondError(c, services.NewInternalError("Failed to retrieve client", err))
	}

	var count int64
	if err := h.DB.Model(&models.Portal{}).Where("client_id = ?", client.ID).Count(&count).Error; err != nil {
		return respondError(c, services.NewInternalError("Failed to check existing portal", err))
	}
	if count > 0 {
		return respondError(c, &services.AppError{
			Code:    services.CodeValidation,
			Message: "Client already has a portal",
		})
	}

	portal := models.Portal{
		ClientID:           client.ID,
		PortalStatus:       models.PortalStatusCreated,
		RegistrationStatus: models.RegistrationStatusPending,
	}
	if err := h.DB.Create(&portal).Error; err != nil {
		return respondError(c, services.NewInternalError("Failed to create portal", err))
	}

	auditCtx := middleware.GetAuditContext(c)
	services.LogAuditEvent(h.DB, auditCtx, models.AuditActionCreate, "Portal", portal.PortalUUID,
		client.FullName(), "Created portal for client", nil, portal)

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"portal":  portal,
	})
}

// GetPortalHandler returns a portal by its uuid. Attorney only.
func (h *Handler) GetPortalHandler(c echo.Context) error {
	uuid := c.Param("uuid")

	var portal models.Portal
	if err := h.DB.First(&portal, "portal_uuid = ?", uuid).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return respondError(c, services.NewNotFoundError("Portal"))
		}
		return respondError(c, services.NewInternalError("Failed to retrieve portal", err))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"portal":  portal,
	})
}
