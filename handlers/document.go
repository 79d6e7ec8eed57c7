package handlers

import (
	"context"
	"net/http"
	"time"

	"law_shop_app_go/middleware"
	"law_shop_app_go/models"
	"law_shop_app_go/services"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// UploadDocumentHandler uploads a file for a case and records its
// metadata. Multipart form fields: file, docType. Attorney only.
func (h *Handler) UploadDocumentHandler(c echo.Context) error {
	caseID := c.Param("id")

	var matter models.Case
	if err := h.DB.First(&matter, "id = ?", caseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return respondError(c, services.NewNotFoundError("Case"))
		}
		return respondError(c, services.NewInternalError("Failed to retrieve case", err))
	}

	docType := c.FormValue("docType")
	if !models.IsValidDocType(docType) {
		return respondError(c, services.NewValidationError("docType"))
	}

	file, err := c.FormFile("file")
	if err != nil || file == nil {
		return respondError(c, services.NewValidationError("file"))
	}

	storageKey := services.DocumentStorageKey(matter.ID, file.Filename)
	uploadResult, err := h.Storage.Upload(c.Request().Context(), file, storageKey)
	if err != nil {
		return respondError(c, services.NewInternalError("Failed to upload file", err))
	}

	doc := models.Document{
		CaseID:     matter.ID,
		FileName:   file.Filename,
		FileURL:    uploadResult.URL,
		FileSize:   uploadResult.FileSize,
		StorageKey: uploadResult.Key,
		DocType:    docType,
		UploadedAt: time.Now(),
	}
	if err := h.DB.Create(&doc).Error; err != nil {
		// Cleanup the uploaded file on record failure
		h.Storage.Delete(context.Background(), uploadResult.Key)
		return respondError(c, services.NewInternalError("Failed to save document", err))
	}

	auditCtx := middleware.GetAuditContext(c)
	services.LogAuditEvent(h.DB, auditCtx, models.AuditActionUpload, "Document", doc.ID,
		doc.FileName, "Uploaded case document", nil, doc)

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success":  true,
		"document": doc,
	})
}

// GetCaseDocumentsHandler lists the documents of one case. Attorney only.
func (h *Handler) GetCaseDocumentsHandler(c echo.Context) error {
	caseID := c.Param("id")

	var matter models.Case
	if err := h.DB.First(&matter, "id = ?", caseID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return respondError(c, services.NewNotFoundError("Case"))
		}
		return respondError(c, services.NewInternalError("Failed to retrieve case", err))
	}

	var docs []models.Document
	if err := h.DB.Where("case_id = ?", matter.ID).Order("created_at DESC").Find(&docs).Error; err != nil {
		return respondError(c, services.NewInternalError("Failed to retrieve documents", err))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":   true,
		"documents": docs,
		"count":     len(docs),
	})
}

// DownloadDocumentHandler serves a document file: a short-lived signed
// URL redirect for R2, a direct stream for local storage. Attorney only.
func (h *Handler) DownloadDocumentHandler(c echo.Context) error {
	id := c.Param("id")

	var doc models.Document
	if err := h.DB.First(&doc, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return respondError(c, services.NewNotFoundError("Document"))
		}
		return respondError(c, services.NewInternalError("Failed to retrieve document", err))
	}

	if _, ok := h.Storage.(*services.R2Storage); ok {
		signedURL, err := h.Storage.GetSignedURL(c.Request().Context(), doc.StorageKey, 15*time.Minute)
		if err != nil {
			return respondError(c, services.NewInternalError("Failed to generate download URL", err))
		}
		return c.Redirect(http.StatusTemporaryRedirect, signedURL)
	}

	reader, contentType, err := h.Storage.Get(c.Request().Context(), doc.StorageKey)
	if err != nil {
		return respondError(c, services.NewInternalError("Failed to read document", err))
	}
	defer reader.Close()

	return c.Stream(http.StatusOK, contentType, reader)
}
