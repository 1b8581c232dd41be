package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/trimeca/inventory/internal/models"
)

// AttachmentSink abstracts where attachment content lives. The variant is
// chosen once at process startup; business logic only ever sees the
// interface.
type AttachmentSink interface {
	Name() string
	// Put persists the content and fills the storage fields on the row
	// (Key/URL for remote storage, Data for inline storage).
	Put(ctx context.Context, att *models.Attachment, data []byte) error
	// Remove deletes the persisted content for the row. Inline content
	// disappears together with the row, so removal is storage work only in
	// remote mode.
	Remove(ctx context.Context, att *models.Attachment) error
}

// RemoteSink stores attachment bytes in an S3-compatible bucket and records
// the object key plus a public URL on the row.
type RemoteSink struct {
	s3 *S3Service
}

func NewRemoteSink(s3 *S3Service) *RemoteSink {
	return &RemoteSink{s3: s3}
}

func (s *RemoteSink) Name() string { return "remote" }

func (s *RemoteSink) Put(ctx context.Context, att *models.Attachment, data []byte) error {
	ext := strings.ToLower(filepath.Ext(att.Filename))
	key := fmt.Sprintf("%ss/%s_%s%s", att.Kind, att.AssetID, uuid.New().String(), ext)

	if err := s.s3.Upload(ctx, key, data, att.ContentType); err != nil {
		return fmt.Errorf("%w: upload failed: %v", ErrStorageUnavailable, err)
	}

	att.Key = key
	att.URL = s.s3.PublicURL(key)
	return nil
}

func (s *RemoteSink) Remove(ctx context.Context, att *models.Attachment) error {
	if att.Key == "" {
		return nil
	}
	if err := s.s3.Delete(ctx, att.Key); err != nil {
		return fmt.Errorf("%w: delete failed: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// InlineSink keeps attachment bytes in the database row itself. Used when no
// object storage is configured or the bucket is unreachable at startup.
type InlineSink struct{}

func NewInlineSink() *InlineSink { return &InlineSink{} }

func (s *InlineSink) Name() string { return "inline" }

func (s *InlineSink) Put(ctx context.Context, att *models.Attachment, data []byte) error {
	att.Data = data
	return nil
}

func (s *InlineSink) Remove(ctx context.Context, att *models.Attachment) error {
	return nil
}
