package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/trimeca/inventory/internal/models"
	"gorm.io/gorm"
)

// AttachmentService persists photos and documents for assets through the
// configured AttachmentSink.
type AttachmentService struct {
	db   *gorm.DB
	sink AttachmentSink
}

func NewAttachmentService(db *gorm.DB, sink AttachmentSink) *AttachmentService {
	return &AttachmentService{db: db, sink: sink}
}

// Mode reports which sink variant is active ("remote" or "inline").
func (s *AttachmentService) Mode() string {
	return s.sink.Name()
}

// Store persists one file and associates it with the asset. The owning asset
// must exist; storage failures surface as ErrStorageUnavailable and leave no
// association row behind.
func (s *AttachmentService) Store(ctx context.Context, assetID string, data []byte, filename string, kind models.AttachmentKind) (*models.Attachment, error) {
	if !models.ValidAttachmentKind(kind) {
		return nil, fmt.Errorf("%w: unknown attachment kind %q", ErrValidation, kind)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrValidation)
	}

	var count int64
	if err := s.db.Model(&models.Asset{}).Where("id = ?", assetID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: asset %s", ErrNotFound, assetID)
	}

	att := &models.Attachment{
		AssetID:     assetID,
		Kind:        kind,
		Filename:    filename,
		ContentType: http.DetectContentType(data),
		SizeBytes:   int64(len(data)),
	}

	if err := s.sink.Put(ctx, att, data); err != nil {
		return nil, err
	}

	if err := s.db.Create(att).Error; err != nil {
		// The content is already in the sink; clean it up so a failed
		// association row does not orphan a remote object.
		_ = s.sink.Remove(ctx, att)
		return nil, fmt.Errorf("failed to create attachment record: %w", err)
	}

	return att, nil
}

// Remove deletes an attachment as one logical operation: the stored content
// first, then the association row. If the sink fails the row is kept and the
// caller sees ErrStorageUnavailable, so nothing is half-deleted.
func (s *AttachmentService) Remove(ctx context.Context, id uuid.UUID) error {
	var att models.Attachment
	if err := s.db.First(&att, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: attachment %s", ErrNotFound, id)
		}
		return err
	}

	if err := s.sink.Remove(ctx, &att); err != nil {
		return err
	}

	return s.db.Delete(&models.Attachment{}, "id = ?", id).Error
}

// ListFor returns the asset's attachments in insertion order. An empty kind
// returns photos and documents alike.
func (s *AttachmentService) ListFor(assetID string, kind models.AttachmentKind) ([]models.Attachment, error) {
	query := s.db.Where("asset_id = ?", assetID)
	if kind != "" {
		if !models.ValidAttachmentKind(kind) {
			return nil, fmt.Errorf("%w: unknown attachment kind %q", ErrValidation, kind)
		}
		query = query.Where("kind = ?", kind)
	}

	var attachments []models.Attachment
	if err := query.Order("created_at, id").Find(&attachments).Error; err != nil {
		return nil, err
	}
	return attachments, nil
}

// GetByID returns a single attachment including inline content.
func (s *AttachmentService) GetByID(id uuid.UUID) (*models.Attachment, error) {
	var att models.Attachment
	if err := s.db.First(&att, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: attachment %s", ErrNotFound, id)
		}
		return nil, err
	}
	return &att, nil
}
