package models

import "time"

// DeletionRecord is the audit entry written when an asset is permanently
// removed. The asset row itself is hard-deleted; this record keeps its id,
// last known location and the stated reason.
type DeletionRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AssetID   string    `gorm:"size:64;not null;index" json:"asset_id"`
	Location  string    `gorm:"size:160" json:"location"`
	Reason    string    `gorm:"size:255" json:"reason"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (DeletionRecord) TableName() string {
	return "deletion_records"
}
