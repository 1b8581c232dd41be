package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/trimeca/inventory/internal/models"
	"gorm.io/gorm"
)

// failingSink simulates an unreachable storage backend.
type failingSink struct {
	failPut    bool
	failRemove bool
}

func (s *failingSink) Name() string { return "failing" }

func (s *failingSink) Put(ctx context.Context, att *models.Attachment, data []byte) error {
	if s.failPut {
		return fmt.Errorf("%w: bucket down", ErrStorageUnavailable)
	}
	att.Data = data
	return nil
}

func (s *failingSink) Remove(ctx context.Context, att *models.Attachment) error {
	if s.failRemove {
		return fmt.Errorf("%w: bucket down", ErrStorageUnavailable)
	}
	return nil
}

func seedAsset(t *testing.T, db *gorm.DB, id string) {
	t.Helper()
	seedLocation(t, db, "L1-"+id, models.CountryVenezuela)
	attachments := NewAttachmentService(db, NewInlineSink())
	assets := NewAssetService(db, attachments)
	if _, err := assets.Register(context.Background(), id, validInput(models.CountryVenezuela, "L1-"+id), nil); err != nil {
		t.Fatalf("seed asset %s: %v", id, err)
	}
}

func TestStoreListRemoveInline(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttachmentService(db, NewInlineSink())
	ctx := context.Background()
	seedAsset(t, db, "EXC-001")

	photo, err := svc.Store(ctx, "EXC-001", []byte("photo-bytes"), "front.png", models.AttachmentKindPhoto)
	if err != nil {
		t.Fatalf("Store photo: %v", err)
	}
	doc, err := svc.Store(ctx, "EXC-001", []byte("doc-bytes"), "manual.pdf", models.AttachmentKindDocument)
	if err != nil {
		t.Fatalf("Store document: %v", err)
	}

	all, err := svc.ListFor("EXC-001", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("ListFor all = %d", len(all))
	}
	if all[0].ID != photo.ID || all[1].ID != doc.ID {
		t.Errorf("attachments not in insertion order")
	}

	photos, err := svc.ListFor("EXC-001", models.AttachmentKindPhoto)
	if err != nil {
		t.Fatal(err)
	}
	if len(photos) != 1 || photos[0].Kind != models.AttachmentKindPhoto {
		t.Errorf("ListFor photo = %+v", photos)
	}

	got, err := svc.GetByID(photo.ID)
	if err != nil {
		t.Fatal(err)
	}
	if string(got.Data) != "photo-bytes" {
		t.Errorf("inline data = %q", got.Data)
	}
	if got.URL != "" || got.Key != "" {
		t.Errorf("inline attachment must not carry remote fields: %+v", got)
	}

	if err := svc.Remove(ctx, photo.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	remaining, _ := svc.ListFor("EXC-001", "")
	if len(remaining) != 1 {
		t.Errorf("attachments after remove = %d", len(remaining))
	}
	if _, err := svc.GetByID(photo.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("removed attachment still readable: %v", err)
	}
}

func TestStoreValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttachmentService(db, NewInlineSink())
	ctx := context.Background()
	seedAsset(t, db, "EXC-001")

	if _, err := svc.Store(ctx, "GHOST", []byte("x"), "a.png", models.AttachmentKindPhoto); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing asset: %v", err)
	}
	if _, err := svc.Store(ctx, "EXC-001", []byte("x"), "a.png", "video"); !errors.Is(err, ErrValidation) {
		t.Errorf("bad kind: %v", err)
	}
	if _, err := svc.Store(ctx, "EXC-001", nil, "a.png", models.AttachmentKindPhoto); !errors.Is(err, ErrValidation) {
		t.Errorf("empty file: %v", err)
	}
}

func TestStoreFailureLeavesNoRow(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttachmentService(db, &failingSink{failPut: true})
	ctx := context.Background()
	seedAsset(t, db, "EXC-001")

	_, err := svc.Store(ctx, "EXC-001", []byte("x"), "a.png", models.AttachmentKindPhoto)
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}

	var count int64
	db.Model(&models.Attachment{}).Count(&count)
	if count != 0 {
		t.Errorf("association rows after failed store = %d", count)
	}
}

func TestRegisterSurvivesStorageFailure(t *testing.T) {
	db := newTestDB(t)
	seedLocation(t, db, "L1", models.CountryVenezuela)
	attachments := NewAttachmentService(db, &failingSink{failPut: true})
	assets := NewAssetService(db, attachments)
	ctx := context.Background()

	files := []AssetFile{{Filename: "a.png", Data: []byte("x"), Kind: models.AttachmentKindPhoto}}
	asset, err := assets.Register(ctx, "EXC-001", validInput(models.CountryVenezuela, "L1"), files)
	if err != nil {
		t.Fatalf("Register must not fail on attachment storage: %v", err)
	}
	if asset.ID != "EXC-001" {
		t.Errorf("asset = %+v", asset)
	}

	got, err := attachments.ListFor("EXC-001", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("attachments saved despite sink failure = %d", len(got))
	}
}

func TestRemoveSinkFailureKeepsRow(t *testing.T) {
	db := newTestDB(t)
	sink := &failingSink{}
	svc := NewAttachmentService(db, sink)
	ctx := context.Background()
	seedAsset(t, db, "EXC-001")

	att, err := svc.Store(ctx, "EXC-001", []byte("x"), "a.png", models.AttachmentKindPhoto)
	if err != nil {
		t.Fatal(err)
	}

	sink.failRemove = true
	if err := svc.Remove(ctx, att.ID); !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected ErrStorageUnavailable, got %v", err)
	}

	// The association row must survive so nothing is half-deleted.
	if _, err := svc.GetByID(att.ID); err != nil {
		t.Errorf("row removed despite sink failure: %v", err)
	}
}
