package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/trimeca/inventory/internal/models"
	"github.com/trimeca/inventory/internal/services"
)

type AttachmentHandler struct {
	attachmentService *services.AttachmentService
}

func NewAttachmentHandler(attachmentService *services.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

// UploadAttachments stores files for an existing asset.
// POST /assets/:id/attachments
// Multipart form: photos[] and/or documents[] file fields.
func (h *AttachmentHandler) UploadAttachments(c *gin.Context) {
	maxMemory := int64(50 * 1024 * 1024)
	if err := c.Request.ParseMultipartForm(maxMemory); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse multipart form"})
		return
	}

	files, err := collectFiles(c.Request.MultipartForm)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photos[] or documents[] is required"})
		return
	}

	assetID := c.Param("id")
	stored := make([]*models.Attachment, 0, len(files))
	var failed []gin.H
	for _, f := range files {
		att, err := h.attachmentService.Store(c.Request.Context(), assetID, f.Data, f.Filename, f.Kind)
		if err != nil {
			failed = append(failed, gin.H{"filename": f.Filename, "error": err.Error()})
			continue
		}
		stored = append(stored, att)
	}

	// A missing asset fails every file the same way; report it as not found.
	if len(stored) == 0 && len(failed) == len(files) {
		if _, err := h.attachmentService.ListFor(assetID, ""); err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"stored": stored,
		"failed": failed,
	})
}

// ListAttachments returns an asset's attachments in insertion order.
// GET /assets/:id/attachments?kind=photo|document
func (h *AttachmentHandler) ListAttachments(c *gin.Context) {
	attachments, err := h.attachmentService.ListFor(c.Param("id"), models.AttachmentKind(c.Query("kind")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attachments": attachments})
}

// DeleteAttachment removes one attachment, content and row together.
// DELETE /attachments/:id
func (h *AttachmentHandler) DeleteAttachment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid attachment id"})
		return
	}

	if err := h.attachmentService.Remove(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// ServeAttachment serves the file content: a redirect to the stored URL in
// remote mode, the inline bytes otherwise.
// GET /attachments/:id/file
func (h *AttachmentHandler) ServeAttachment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid attachment id"})
		return
	}

	att, err := h.attachmentService.GetByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	if att.URL != "" {
		c.Redirect(http.StatusFound, att.URL)
		return
	}

	if att.Filename != "" {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", att.Filename))
	}
	c.Data(http.StatusOK, att.ContentType, att.Data)
}
