package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttachmentKind string

const (
	AttachmentKindPhoto    AttachmentKind = "photo"
	AttachmentKindDocument AttachmentKind = "document"
)

func ValidAttachmentKind(k AttachmentKind) bool {
	return k == AttachmentKindPhoto || k == AttachmentKindDocument
}

// Attachment is a photo or document owned by exactly one asset. In remote
// mode Key/URL point into the object-storage bucket and Data stays empty; in
// inline mode the file content lives in Data and Key/URL stay empty.
type Attachment struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	AssetID     string         `gorm:"size:64;not null;index" json:"asset_id"`
	Kind        AttachmentKind `gorm:"size:16;not null;index" json:"kind"`
	Filename    string         `gorm:"size:255" json:"filename"`
	Key         string         `gorm:"size:512" json:"key,omitempty"`
	URL         string         `gorm:"size:1024" json:"url,omitempty"`
	Data        []byte         `json:"-"`
	ContentType string         `gorm:"size:120" json:"content_type"`
	SizeBytes   int64          `json:"size_bytes"`

	CreatedAt time.Time `json:"created_at"`
}

func (a *Attachment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
