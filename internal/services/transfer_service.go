package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/trimeca/inventory/internal/models"
	"github.com/trimeca/inventory/pkg/validation"
	"gorm.io/gorm"
)

// TransferService relocates assets and keeps the append-only movement ledger.
type TransferService struct {
	db *gorm.DB
}

func NewTransferService(db *gorm.DB) *TransferService {
	return &TransferService{db: db}
}

// Transfer moves an asset to a destination location and appends exactly one
// transfer record, atomically. The asset update is conditional on the origin
// read inside the same transaction, so a concurrent move cannot be silently
// overwritten.
func (s *TransferService) Transfer(ctx context.Context, assetID string, destCountry models.Country, destLocation, reason string) (*models.TransferRecord, error) {
	assetID = validation.Normalize(assetID)
	destLocation = validation.Normalize(destLocation)
	reason = validation.Normalize(reason)

	if !models.ValidCountry(destCountry) {
		return nil, fmt.Errorf("%w: destination country must be selected", ErrValidation)
	}

	var count int64
	if err := s.db.Model(&models.Location{}).
		Where("name = ? AND country = ?", destLocation, destCountry).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: location %s does not exist in %s", ErrValidation, destLocation, destCountry)
	}

	var record *models.TransferRecord
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var asset models.Asset
		if err := tx.First(&asset, "id = ?", assetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: asset %s", ErrNotFound, assetID)
			}
			return err
		}

		result := tx.Model(&models.Asset{}).
			Where("id = ? AND country = ? AND location = ?", assetID, asset.Country, asset.Location).
			Updates(map[string]interface{}{
				"country":  destCountry,
				"location": destLocation,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: asset %s", ErrConcurrentUpdate, assetID)
		}

		record = &models.TransferRecord{
			AssetID:     assetID,
			Origin:      fmt.Sprintf("%s-%s", asset.Country, asset.Location),
			Destination: fmt.Sprintf("%s-%s", destCountry, destLocation),
			Reason:      reason,
		}
		return tx.Create(record).Error
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// History returns transfer records, most recent first. Re-querying re-derives
// the sequence from stored state.
func (s *TransferService) History(limit, offset int) ([]models.TransferRecord, int64, error) {
	var total int64
	if err := s.db.Model(&models.TransferRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := s.db.Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var records []models.TransferRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// ListDeletions returns the deleted-asset audit trail, most recent first.
func (s *TransferService) ListDeletions(limit, offset int) ([]models.DeletionRecord, int64, error) {
	var total int64
	if err := s.db.Model(&models.DeletionRecord{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := s.db.Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var records []models.DeletionRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, 0, err
	}
	return records, total, nil
}
