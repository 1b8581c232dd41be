package handlers

import (
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/trimeca/inventory/internal/models"
	"github.com/trimeca/inventory/internal/services"
)

type AssetHandler struct {
	assetService *services.AssetService
}

func NewAssetHandler(assetService *services.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// RegisterAsset handles the registration form.
// POST /assets
// Multipart form: id (required), plate, brand, model, category, country,
// location, status, status_reason, description, last_review (YYYY-MM-DD),
// photos[] and documents[] file fields.
func (h *AssetHandler) RegisterAsset(c *gin.Context) {
	maxMemory := int64(50 * 1024 * 1024)
	if err := c.Request.ParseMultipartForm(maxMemory); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse multipart form"})
		return
	}

	in := services.AssetInput{
		Plate:        c.PostForm("plate"),
		Description:  c.PostForm("description"),
		Brand:        c.PostForm("brand"),
		Model:        c.PostForm("model"),
		Category:     models.AssetCategory(c.PostForm("category")),
		Country:      models.Country(c.PostForm("country")),
		Location:     c.PostForm("location"),
		Status:       models.AssetStatus(c.PostForm("status")),
		StatusReason: c.PostForm("status_reason"),
	}
	if v := c.PostForm("last_review"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "last_review must be YYYY-MM-DD"})
			return
		}
		in.LastReview = t
	}

	files, err := collectFiles(c.Request.MultipartForm)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	asset, err := h.assetService.Register(c.Request.Context(), c.PostForm("id"), in, files)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, asset)
}

// collectFiles reads the photos[] and documents[] fields of a parsed
// multipart form.
func collectFiles(form *multipart.Form) ([]services.AssetFile, error) {
	if form == nil {
		return nil, nil
	}

	var files []services.AssetFile
	fields := map[string]models.AttachmentKind{
		"photos[]":    models.AttachmentKindPhoto,
		"documents[]": models.AttachmentKindDocument,
	}
	for field, kind := range fields {
		for _, fh := range form.File[field] {
			f, err := fh.Open()
			if err != nil {
				return nil, err
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return nil, err
			}
			files = append(files, services.AssetFile{
				Filename: fh.Filename,
				Data:     data,
				Kind:     kind,
			})
		}
	}
	return files, nil
}

// ListAssets queries the registry.
// GET /assets?category=&country=&status=&location=&q=&page=&limit=
func (h *AssetHandler) ListAssets(c *gin.Context) {
	limit, offset := pageParams(c)
	filter := services.AssetFilter{
		Category: models.AssetCategory(c.Query("category")),
		Country:  models.Country(c.Query("country")),
		Status:   models.AssetStatus(c.Query("status")),
		Location: c.Query("location"),
		Text:     c.Query("q"),
		Limit:    limit,
		Offset:   offset,
	}

	assets, total, err := h.assetService.Query(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"assets": assets,
		"total":  total,
	})
}

// GetAsset returns a single asset.
// GET /assets/:id
func (h *AssetHandler) GetAsset(c *gin.Context) {
	asset, err := h.assetService.GetByID(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, asset)
}

// UpdateAsset overwrites all mutable fields of an asset.
// PUT /assets/:id
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	var in services.AssetInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	asset, err := h.assetService.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, asset)
}

// DeleteAsset permanently removes an asset, leaving a deletion record.
// DELETE /assets/:id?reason=
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	if err := h.assetService.SoftDelete(c.Request.Context(), c.Param("id"), c.Query("reason")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": c.Param("id")})
}
