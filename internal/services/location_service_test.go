package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/trimeca/inventory/internal/models"
)

func TestCreateLocation(t *testing.T) {
	svc := NewLocationService(newTestDB(t))

	loc, err := svc.Create("caracas plant", models.CountryVenezuela)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if loc.Name != "CARACAS PLANT" {
		t.Errorf("name = %q, want upper-cased", loc.Name)
	}

	if _, err := svc.Create("CARACAS PLANT", models.CountryVenezuela); !errors.Is(err, ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}

	// Same name in another country is a different location.
	if _, err := svc.Create("CARACAS PLANT", models.CountryColombia); err != nil {
		t.Fatalf("same name in other country: %v", err)
	}

	if _, err := svc.Create("", models.CountryVenezuela); !errors.Is(err, ErrValidation) {
		t.Fatalf("empty name: %v", err)
	}
	if _, err := svc.Create("SOMEWHERE", "NARNIA"); !errors.Is(err, ErrValidation) {
		t.Fatalf("unknown country: %v", err)
	}
}

func TestRenameCascadeScope(t *testing.T) {
	db := newTestDB(t)
	locs := NewLocationService(db)
	attachments := NewAttachmentService(db, NewInlineSink())
	assets := NewAssetService(db, attachments)
	ctx := context.Background()

	seedLocation(t, db, "L1", models.CountryVenezuela)
	seedLocation(t, db, "L1", models.CountryColombia)

	// 3 assets at (L1, VENEZUELA), 2 at (L1, COLOMBIA).
	for i := 0; i < 3; i++ {
		if _, err := assets.Register(ctx, fmt.Sprintf("VE-%d", i), validInput(models.CountryVenezuela, "L1"), nil); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < 2; i++ {
		if _, err := assets.Register(ctx, fmt.Sprintf("CO-%d", i), validInput(models.CountryColombia, "L1"), nil); err != nil {
			t.Fatal(err)
		}
	}

	if err := locs.Rename("L1", models.CountryVenezuela, "L2"); err != nil {
		t.Fatalf("Rename: %v", err)
	}

	var moved, untouched int64
	db.Model(&models.Asset{}).Where("location = ? AND country = ?", "L2", models.CountryVenezuela).Count(&moved)
	db.Model(&models.Asset{}).Where("location = ? AND country = ?", "L1", models.CountryColombia).Count(&untouched)
	if moved != 3 {
		t.Errorf("assets moved to L2 in VENEZUELA = %d, want 3", moved)
	}
	if untouched != 2 {
		t.Errorf("assets left at L1 in COLOMBIA = %d, want 2", untouched)
	}

	// The directory row itself was renamed.
	var count int64
	db.Model(&models.Location{}).Where("name = ? AND country = ?", "L2", models.CountryVenezuela).Count(&count)
	if count != 1 {
		t.Errorf("location L2/VENEZUELA rows = %d", count)
	}
	db.Model(&models.Location{}).Where("name = ? AND country = ?", "L1", models.CountryVenezuela).Count(&count)
	if count != 0 {
		t.Errorf("location L1/VENEZUELA still present")
	}
}

func TestRenameValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewLocationService(db)
	seedLocation(t, db, "L1", models.CountryVenezuela)
	seedLocation(t, db, "L2", models.CountryVenezuela)

	if err := svc.Rename("L1", models.CountryVenezuela, ""); !errors.Is(err, ErrValidation) {
		t.Errorf("empty new name: %v", err)
	}
	if err := svc.Rename("L1", models.CountryVenezuela, "l1"); !errors.Is(err, ErrValidation) {
		t.Errorf("same name: %v", err)
	}
	if err := svc.Rename("L1", models.CountryVenezuela, "L2"); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("existing target name: %v", err)
	}
	if err := svc.Rename("GHOST", models.CountryVenezuela, "L3"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing location: %v", err)
	}
}

func TestDeleteLocationGuard(t *testing.T) {
	db := newTestDB(t)
	locs := NewLocationService(db)
	attachments := NewAttachmentService(db, NewInlineSink())
	assets := NewAssetService(db, attachments)
	ctx := context.Background()

	seedLocation(t, db, "L1", models.CountryVenezuela)
	for i := 0; i < 3; i++ {
		if _, err := assets.Register(ctx, fmt.Sprintf("A-%d", i), validInput(models.CountryVenezuela, "L1"), nil); err != nil {
			t.Fatal(err)
		}
	}

	err := locs.Delete("L1", models.CountryVenezuela)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if conflict.Count != 3 {
		t.Errorf("conflict count = %d, want 3", conflict.Count)
	}

	// Move the assets away; deletion then succeeds.
	if err := db.Model(&models.Asset{}).Where("1 = 1").Update("location", "ELSEWHERE").Error; err != nil {
		t.Fatal(err)
	}
	if err := locs.Delete("L1", models.CountryVenezuela); err != nil {
		t.Fatalf("Delete after unreferencing: %v", err)
	}
	if err := locs.Delete("L1", models.CountryVenezuela); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: %v", err)
	}
}

func TestListLocations(t *testing.T) {
	db := newTestDB(t)
	svc := NewLocationService(db)
	seedLocation(t, db, "L1", models.CountryVenezuela)
	seedLocation(t, db, "L2", models.CountryColombia)

	all, err := svc.List("")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Errorf("List() = %d locations", len(all))
	}

	ve, err := svc.List(models.CountryVenezuela)
	if err != nil {
		t.Fatal(err)
	}
	if len(ve) != 1 || ve[0].Name != "L1" {
		t.Errorf("List(VENEZUELA) = %+v", ve)
	}
}
