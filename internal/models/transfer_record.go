package models

import "time"

// TransferRecord is an append-only log entry produced whenever an asset
// changes location. Origin and Destination are "COUNTRY-LOCATION" descriptors
// frozen at the time of the move; records are never mutated or deleted.
type TransferRecord struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AssetID     string    `gorm:"size:64;not null;index" json:"asset_id"`
	Origin      string    `gorm:"size:160;not null" json:"origin"`
	Destination string    `gorm:"size:160;not null" json:"destination"`
	Reason      string    `gorm:"size:255" json:"reason"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (TransferRecord) TableName() string {
	return "transfer_records"
}
