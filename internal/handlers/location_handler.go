package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/trimeca/inventory/internal/models"
	"github.com/trimeca/inventory/internal/services"
)

type LocationHandler struct {
	locationService *services.LocationService
}

func NewLocationHandler(locationService *services.LocationService) *LocationHandler {
	return &LocationHandler{locationService: locationService}
}

// ListLocations returns locations, optionally for one country.
// GET /locations?country=
func (h *LocationHandler) ListLocations(c *gin.Context) {
	locations, err := h.locationService.List(models.Country(c.Query("country")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": locations})
}

// CreateLocation registers a new location.
// POST /locations
func (h *LocationHandler) CreateLocation(c *gin.Context) {
	var req struct {
		Name    string         `json:"name"`
		Country models.Country `json:"country"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	loc, err := h.locationService.Create(req.Name, req.Country)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, loc)
}

// RenameLocation renames a location and cascades to its assets.
// PUT /locations/rename
func (h *LocationHandler) RenameLocation(c *gin.Context) {
	var req struct {
		OldName string         `json:"old_name"`
		Country models.Country `json:"country"`
		NewName string         `json:"new_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.locationService.Rename(req.OldName, req.Country, req.NewName); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"renamed": req.NewName})
}

// DeleteLocation removes an unreferenced location.
// DELETE /locations?name=&country=
func (h *LocationHandler) DeleteLocation(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	if err := h.locationService.Delete(name, models.Country(c.Query("country"))); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": name})
}
