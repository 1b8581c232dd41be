package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/trimeca/inventory/internal/models"
	"github.com/trimeca/inventory/pkg/validation"
	"gorm.io/gorm"
)

// AssetInput carries the fields of the registration and edit forms. Free-text
// fields are normalized (trimmed, upper-cased) before validation.
type AssetInput struct {
	Plate        string               `json:"plate"`
	Description  string               `json:"description"`
	Brand        string               `json:"brand"`
	Model        string               `json:"model"`
	Category     models.AssetCategory `json:"category"`
	Country      models.Country       `json:"country"`
	Location     string               `json:"location"`
	Status       models.AssetStatus   `json:"status"`
	StatusReason string               `json:"status_reason"`
	LastReview   time.Time            `json:"last_review"`
}

// AssetFile is a file supplied alongside a registration.
type AssetFile struct {
	Filename string
	Data     []byte
	Kind     models.AttachmentKind
}

// AssetFilter narrows a registry query. All set filters AND together; Text
// matches substring, case-insensitively, across id, brand and plate.
type AssetFilter struct {
	Category models.AssetCategory
	Country  models.Country
	Status   models.AssetStatus
	Location string
	Text     string
	Limit    int
	Offset   int
}

// AssetService is the authoritative registry of assets.
type AssetService struct {
	db          *gorm.DB
	attachments *AttachmentService
}

func NewAssetService(db *gorm.DB, attachments *AttachmentService) *AssetService {
	return &AssetService{db: db, attachments: attachments}
}

func (in *AssetInput) normalize() {
	in.Plate = validation.Normalize(in.Plate)
	in.Description = validation.Normalize(in.Description)
	in.Brand = validation.Normalize(in.Brand)
	in.Model = validation.Normalize(in.Model)
	in.Location = validation.Normalize(in.Location)
	in.StatusReason = validation.Normalize(in.StatusReason)
}

// validate checks the enum selections and the status/reason rule shared by
// Register and Update.
func (s *AssetService) validate(in *AssetInput) error {
	if !models.ValidCategory(in.Category) {
		return fmt.Errorf("%w: category must be selected", ErrValidation)
	}
	if !models.ValidCountry(in.Country) {
		return fmt.Errorf("%w: country must be selected", ErrValidation)
	}
	if in.Location == "" {
		return fmt.Errorf("%w: location must be selected", ErrValidation)
	}
	if !models.ValidStatus(in.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, in.Status)
	}
	if in.Status != models.AssetStatusOperational && in.StatusReason == "" {
		return fmt.Errorf("%w: a reason is required when status is %s", ErrValidation, in.Status)
	}

	// The destination must be a registered location for that country.
	var count int64
	if err := s.db.Model(&models.Location{}).
		Where("name = ? AND country = ?", in.Location, in.Country).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: location %s does not exist in %s", ErrValidation, in.Location, in.Country)
	}
	return nil
}

// Register creates a new asset. Duplicate ids and duplicate non-empty plates
// are rejected before any mutation. Supplied files are stored afterwards;
// a storage failure never rolls back the already-committed asset row.
func (s *AssetService) Register(ctx context.Context, id string, in AssetInput, files []AssetFile) (*models.Asset, error) {
	id = validation.Normalize(id)
	if !validation.ValidateAssetID(id) {
		return nil, fmt.Errorf("%w: invalid asset id %q", ErrValidation, id)
	}
	in.normalize()
	if err := s.validate(&in); err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.Asset{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: asset id %s already exists", ErrDuplicateKey, id)
	}
	if in.Plate != "" {
		if err := s.db.Model(&models.Asset{}).Where("plate = ?", in.Plate).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, fmt.Errorf("%w: plate %s already exists", ErrDuplicateKey, in.Plate)
		}
	}

	lastReview := in.LastReview
	if lastReview.IsZero() {
		lastReview = time.Now().UTC()
	}

	asset := &models.Asset{
		ID:           id,
		Plate:        in.Plate,
		Description:  in.Description,
		Brand:        in.Brand,
		Model:        in.Model,
		Category:     in.Category,
		Country:      in.Country,
		Location:     in.Location,
		Status:       in.Status,
		StatusReason: in.StatusReason,
		LastReview:   lastReview,
	}
	if err := s.db.Create(asset).Error; err != nil {
		return nil, err
	}

	// Attachment failures are isolated per file; the asset exists either way.
	for _, f := range files {
		if _, err := s.attachments.Store(ctx, id, f.Data, f.Filename, f.Kind); err != nil {
			log.Printf("WARN: attachment %q for asset %s not saved: %v", f.Filename, id, err)
		}
	}

	return asset, nil
}

// Update overwrites all mutable fields of an existing asset. There is no
// optimistic-lock check: the last writer wins.
func (s *AssetService) Update(ctx context.Context, id string, in AssetInput) (*models.Asset, error) {
	id = validation.Normalize(id)
	in.normalize()
	if err := s.validate(&in); err != nil {
		return nil, err
	}

	if in.Plate != "" {
		var count int64
		if err := s.db.Model(&models.Asset{}).
			Where("plate = ? AND id <> ?", in.Plate, id).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, fmt.Errorf("%w: plate %s already exists", ErrDuplicateKey, in.Plate)
		}
	}

	updates := map[string]interface{}{
		"plate":         in.Plate,
		"description":   in.Description,
		"brand":         in.Brand,
		"model":         in.Model,
		"category":      in.Category,
		"country":       in.Country,
		"location":      in.Location,
		"status":        in.Status,
		"status_reason": in.StatusReason,
	}
	if !in.LastReview.IsZero() {
		updates["last_review"] = in.LastReview
	}

	result := s.db.Model(&models.Asset{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: asset %s", ErrNotFound, id)
	}

	return s.GetByID(id)
}

// SoftDelete removes an asset and its attachment rows and appends a deletion
// record, all in one transaction. Stored attachment content is cleaned up
// after commit; a sink failure there is logged, never re-raised.
func (s *AssetService) SoftDelete(ctx context.Context, id, reason string) error {
	id = validation.Normalize(id)
	reason = validation.Normalize(reason)
	if reason == "" {
		reason = "MANUAL DELETION"
	}

	attachments, err := s.attachments.ListFor(id, "")
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var asset models.Asset
		if err := tx.First(&asset, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: asset %s", ErrNotFound, id)
			}
			return err
		}

		record := &models.DeletionRecord{
			AssetID:  id,
			Location: asset.Location,
			Reason:   reason,
		}
		if err := tx.Create(record).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Asset{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Deleted between the read and the delete.
			return fmt.Errorf("%w: asset %s", ErrNotFound, id)
		}

		return tx.Delete(&models.Attachment{}, "asset_id = ?", id).Error
	})
	if err != nil {
		return err
	}

	for i := range attachments {
		if err := s.attachments.sink.Remove(ctx, &attachments[i]); err != nil {
			log.Printf("WARN: stored content for attachment %s not removed: %v", attachments[i].ID, err)
		}
	}

	return nil
}

// GetByID returns a single asset.
func (s *AssetService) GetByID(id string) (*models.Asset, error) {
	var asset models.Asset
	if err := s.db.First(&asset, "id = ?", validation.Normalize(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: asset %s", ErrNotFound, id)
		}
		return nil, err
	}
	return &asset, nil
}

// Query returns assets matching all supplied filters plus the total count.
func (s *AssetService) Query(f AssetFilter) ([]models.Asset, int64, error) {
	query := s.db.Model(&models.Asset{})

	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if f.Country != "" {
		query = query.Where("country = ?", f.Country)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.Location != "" {
		query = query.Where("location = ?", validation.Normalize(f.Location))
	}
	if f.Text != "" {
		needle := "%" + strings.ToUpper(strings.TrimSpace(f.Text)) + "%"
		query = query.Where("UPPER(id) LIKE ? OR UPPER(brand) LIKE ? OR UPPER(plate) LIKE ?", needle, needle, needle)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit > 0 {
		query = query.Limit(f.Limit).Offset(f.Offset)
	}

	var assets []models.Asset
	if err := query.Order("created_at DESC, id").Find(&assets).Error; err != nil {
		return nil, 0, err
	}
	return assets, total, nil
}
