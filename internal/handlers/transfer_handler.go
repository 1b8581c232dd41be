package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trimeca/inventory/internal/models"
	"github.com/trimeca/inventory/internal/services"
)

type TransferHandler struct {
	transferService *services.TransferService
}

func NewTransferHandler(transferService *services.TransferService) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

// TransferAsset relocates an asset and appends a ledger entry.
// POST /assets/:id/transfer
func (h *TransferHandler) TransferAsset(c *gin.Context) {
	var req struct {
		Country  models.Country `json:"country"`
		Location string         `json:"location"`
		Reason   string         `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := h.transferService.Transfer(c.Request.Context(), c.Param("id"), req.Country, req.Location, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// GetHistory returns the movement ledger, most recent first.
// GET /transfers?page=&limit=
func (h *TransferHandler) GetHistory(c *gin.Context) {
	limit, offset := pageParams(c)
	records, total, err := h.transferService.History(limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"transfers": records,
		"total":     total,
	})
}

// GetDeletions returns the deleted-asset audit trail, most recent first.
// GET /deleted-assets?page=&limit=
func (h *TransferHandler) GetDeletions(c *gin.Context) {
	limit, offset := pageParams(c)
	records, total, err := h.transferService.ListDeletions(limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"deletions": records,
		"total":     total,
	})
}
