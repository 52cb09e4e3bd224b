package handler

import (
	"io"
	"net/http"

	"github.com/dafibh/brokerly/brokerly-backend/internal/middleware"
	"github.com/dafibh/brokerly/brokerly-backend/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// DocumentHandler handles policy document uploads
type DocumentHandler struct {
	documentService *service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documentService *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// enabled reports whether document storage is configured
func (h *DocumentHandler) enabled() bool {
	return h.documentService != nil && h.documentService.IsEnabled()
}

// UploadDocument godoc
// @Summary Upload a policy document
// @Description Multipart upload of a JPEG or PNG scan (max 5MB, min 50x50 px)
// @Tags policies
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Policy ID"
// @Param file formData file true "Scan"
// @Success 201 {object} service.DocumentView
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /policies/{id}/documents [post]
func (h *DocumentHandler) UploadDocument(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	// Refuse before reading the body when storage is off
	if !h.enabled() {
		return NewServiceUnavailableError(c, "Document uploads are disabled (storage not configured)")
	}

	policyID, ok := parseIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid policy ID", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "No file provided", []ValidationError{
			{Field: "file", Message: "File is required"},
		})
	}
	if file.Size > service.MaxDocumentSize {
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "file", Message: service.ErrDocumentTooLarge.Error()},
		})
	}

	src, err := file.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded file")
		return NewInternalError(c, "Failed to process file")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, service.MaxDocumentSize+1))
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded file")
		return NewInternalError(c, "Failed to read file")
	}

	view, err := h.documentService.Upload(c.Request().Context(), workspaceID, policyID, middleware.GetUserID(c), data, file.Filename)
	if err != nil {
		return requestError(c, err, "upload document")
	}

	return c.JSON(http.StatusCreated, view)
}

// ListDocuments handles GET /api/v1/policies/:id/documents
func (h *DocumentHandler) ListDocuments(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}
	if !h.enabled() {
		return NewServiceUnavailableError(c, "Document uploads are disabled (storage not configured)")
	}

	policyID, ok := parseIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid policy ID", nil)
	}

	views, err := h.documentService.List(c.Request().Context(), workspaceID, policyID)
	if err != nil {
		return requestError(c, err, "list documents")
	}
	return c.JSON(http.StatusOK, views)
}

// DeleteDocument handles DELETE /api/v1/policies/:id/documents/:documentId
func (h *DocumentHandler) DeleteDocument(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}
	if !h.enabled() {
		return NewServiceUnavailableError(c, "Document uploads are disabled (storage not configured)")
	}

	policyID, ok := parseIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid policy ID", nil)
	}
	documentID, err := uuid.Parse(c.Param("documentId"))
	if err != nil {
		return NewValidationError(c, "Invalid document ID", nil)
	}

	if err := h.documentService.Delete(c.Request().Context(), workspaceID, policyID, documentID); err != nil {
		return requestError(c, err, "delete document")
	}

	return c.NoContent(http.StatusNoContent)
}
