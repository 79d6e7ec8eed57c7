package handlers

import (
	"log"
	"net/http"

	"law_shop_app_go/config"
	"law_shop_app_go/services"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// Handler carries the injected collaborators shared by all endpoints:
// the database handle, configuration, and the best-effort side-channel
// clients. Constructed once in main; no package-level state.
type Handler struct {
	DB       *gorm.DB
	Config   *config.Config
	Contacts services.ContactsSyncer
	Storage  services.StorageProvider
}

// New creates a Handler with its collaborators
func New(db *gorm.DB, cfg *config.Config, contacts services.ContactsSyncer, storage services.StorageProvider) *Handler {
	return &Handler{
		DB:       db,
		Config:   cfg,
		Contacts: contacts,
		Storage:  storage,
	}
}

// statusForCode maps stable error codes to HTTP statuses
func statusForCode(code string) int {
	switch code {
	case services.CodeUnauthorized:
		return http.StatusUnauthorized
	case services.CodeForbidden:
		return http.StatusForbidden
	case services.CodeValidation:
		return http.StatusBadRequest
	case services.CodeRateLimited:
		return http.StatusTooManyRequests
	case services.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the structured error envelope. Internal causes are
// logged server-side and never exposed to the caller.
func respondError(c echo.Context, err error) error {
	if appErr, ok := services.AsAppError(err); ok {
		if appErr.Err != nil {
			log.Printf("[ERROR] %s %s: %v", c.Request().Method, c.Path(), appErr.Err)
		}
		body := map[string]interface{}{
			"error":   appErr.Code,
			"message": appErr.Message,
		}
		if len(appErr.Fields) > 0 {
			body["fields"] = appErr.Fields
		}
		return c.JSON(statusForCode(appErr.Code), body)
	}

	log.Printf("[ERROR] %s %s: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"error":   services.CodeInternalError,
		"message": "An unexpected error occurred",
	})
}

// HealthHandler is a liveness probe
func (h *Handler) HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
