package models

import (
	"time"
)

type AssetStatus string

const (
	AssetStatusOperational AssetStatus = "OPERATIONAL"
	AssetStatusDamaged     AssetStatus = "DAMAGED"
	AssetStatusInRepair    AssetStatus = "IN_REPAIR"
)

func ValidStatus(s AssetStatus) bool {
	switch s {
	case AssetStatusOperational, AssetStatusDamaged, AssetStatusInRepair:
		return true
	}
	return false
}

type AssetCategory string

const (
	CategoryHeavyMachinery      AssetCategory = "HEAVY_MACHINERY"
	CategoryLightMachinery      AssetCategory = "LIGHT_MACHINERY"
	CategoryFleetVehicles       AssetCategory = "FLEET_VEHICLES"
	CategoryIndustrialEquipment AssetCategory = "INDUSTRIAL_EQUIPMENT"
	CategoryITEquipment         AssetCategory = "IT_EQUIPMENT"
)

// Categories in the order they appear in the registration form.
func Categories() []AssetCategory {
	return []AssetCategory{
		CategoryHeavyMachinery,
		CategoryLightMachinery,
		CategoryFleetVehicles,
		CategoryIndustrialEquipment,
		CategoryITEquipment,
	}
}

func ValidCategory(c AssetCategory) bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

type Country string

const (
	CountryVenezuela    Country = "VENEZUELA"
	CountryColombia     Country = "COLOMBIA"
	CountryUnitedStates Country = "UNITED_STATES"
)

func Countries() []Country {
	return []Country{CountryVenezuela, CountryColombia, CountryUnitedStates}
}

func ValidCountry(c Country) bool {
	for _, known := range Countries() {
		if c == known {
			return true
		}
	}
	return false
}

// Asset is a tracked physical item. The ID is user-assigned and globally
// unique; Plate is unique only when non-empty (enforced in the service layer
// so that absent plates never collide).
type Asset struct {
	ID           string        `gorm:"primaryKey;size:64" json:"id"`
	Plate        string        `gorm:"size:64;index" json:"plate"`
	Description  string        `gorm:"type:text" json:"description"`
	Brand        string        `gorm:"size:120" json:"brand"`
	Model        string        `gorm:"size:120" json:"model"`
	Category     AssetCategory `gorm:"size:40;not null;index" json:"category"`
	Country      Country       `gorm:"size:20;not null;index" json:"country"`
	Location     string        `gorm:"size:120;not null;index" json:"location"`
	Status       AssetStatus   `gorm:"size:20;not null" json:"status"`
	StatusReason string        `gorm:"size:255" json:"status_reason"`
	LastReview   time.Time     `json:"last_review"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
