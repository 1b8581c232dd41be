package services

import (
	"fmt"

	"github.com/trimeca/inventory/internal/models"
	"github.com/trimeca/inventory/pkg/validation"
	"gorm.io/gorm"
)

// LocationService maintains the directory of valid (name, country) locations.
type LocationService struct {
	db *gorm.DB
}

func NewLocationService(db *gorm.DB) *LocationService {
	return &LocationService{db: db}
}

// Create registers a new location for a country.
func (s *LocationService) Create(name string, country models.Country) (*models.Location, error) {
	name = validation.Normalize(name)
	if name == "" {
		return nil, fmt.Errorf("%w: location name is required", ErrValidation)
	}
	if !models.ValidCountry(country) {
		return nil, fmt.Errorf("%w: country must be selected", ErrValidation)
	}

	var count int64
	if err := s.db.Model(&models.Location{}).
		Where("name = ? AND country = ?", name, country).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: location %s already exists in %s", ErrDuplicateKey, name, country)
	}

	loc := &models.Location{Name: name, Country: country}
	if err := s.db.Create(loc).Error; err != nil {
		return nil, err
	}
	return loc, nil
}

// Rename changes a location's name and cascades the change to every asset
// currently assigned to it, as one atomic unit. A partially applied rename is
// never observable.
func (s *LocationService) Rename(oldName string, country models.Country, newName string) error {
	oldName = validation.Normalize(oldName)
	newName = validation.Normalize(newName)
	if newName == "" {
		return fmt.Errorf("%w: new name is required", ErrValidation)
	}
	if newName == oldName {
		return fmt.Errorf("%w: new name equals the current name", ErrValidation)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Location{}).
			Where("name = ? AND country = ?", newName, country).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: location %s already exists in %s", ErrDuplicateKey, newName, country)
		}

		result := tx.Model(&models.Location{}).
			Where("name = ? AND country = ?", oldName, country).
			Update("name", newName)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: location %s in %s", ErrNotFound, oldName, country)
		}

		return tx.Model(&models.Asset{}).
			Where("location = ? AND country = ?", oldName, country).
			Update("location", newName).Error
	})
}

// Delete removes a location. It fails with a ConflictError carrying the
// exact count while any asset still references the location.
func (s *LocationService) Delete(name string, country models.Country) error {
	name = validation.Normalize(name)

	var count int64
	if err := s.db.Model(&models.Asset{}).
		Where("location = ? AND country = ?", name, country).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return &ConflictError{Count: count}
	}

	result := s.db.Delete(&models.Location{}, "name = ? AND country = ?", name, country)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: location %s in %s", ErrNotFound, name, country)
	}
	return nil
}

// List returns locations, newest first, optionally narrowed to one country.
func (s *LocationService) List(country models.Country) ([]models.Location, error) {
	query := s.db.Model(&models.Location{})
	if country != "" {
		query = query.Where("country = ?", country)
	}

	var locations []models.Location
	if err := query.Order("created_at DESC, name").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}
