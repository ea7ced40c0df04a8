package layout

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/avashisht/homeplan-core/internal/device"
	"github.com/avashisht/homeplan-core/internal/infrastructure/database"

	// Registers embedded schema migrations.
	_ "github.com/avashisht/homeplan-core/migrations"
)

// newTestRepository opens a throwaway SQLite database with migrations
// applied.
func newTestRepository(t *testing.T) *SQLiteRepository {
	t.Helper()

	db, err := database.Open(database.Config{
		Path:        filepath.Join(t.TempDir(), "layout_test.db"),
		WALMode:     true,
		BusyTimeout: 5,
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck

	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("applying migrations: %v", err)
	}

	return NewSQLiteRepository(db.DB)
}

var testChannel = device.Channel{DeviceID: "dev-1", SwitchNumber: 1}

func TestRepository_SaveAndGet(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	want := device.Position{X: 0.25, Y: 0.75}
	if err := repo.Save(ctx, testChannel, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := repo.Get(ctx, testChannel)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestRepository_SaveOverwrites(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.Save(ctx, testChannel, device.Position{X: 0.1, Y: 0.1}); err != nil {
		t.Fatalf("first Save() error = %v", err)
	}
	want := device.Position{X: 0.9, Y: 0.9}
	if err := repo.Save(ctx, testChannel, want); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	got, err := repo.Get(ctx, testChannel)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != want {
		t.Errorf("Get() = %+v, want %+v after overwrite", got, want)
	}

	entries, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("List() returned %d entries, want 1 after upsert", len(entries))
	}
}

func TestRepository_GetMissing(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Get(context.Background(), device.Channel{DeviceID: "missing", SwitchNumber: 9})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestRepository_List(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	channels := []device.Channel{
		{DeviceID: "dev-1", SwitchNumber: 2},
		{DeviceID: "dev-1", SwitchNumber: 1},
		{DeviceID: "dev-2", SwitchNumber: 1},
	}
	for i, ch := range channels {
		if err := repo.Save(ctx, ch, device.Position{X: float64(i), Y: float64(i)}); err != nil {
			t.Fatalf("Save(%v) error = %v", ch, err)
		}
	}

	entries, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("List() returned %d entries, want 3", len(entries))
	}

	// Ordered by device_id then switch_number.
	if entries[0].Channel != (device.Channel{DeviceID: "dev-1", SwitchNumber: 1}) {
		t.Errorf("entries[0].Channel = %+v, want dev-1/1", entries[0].Channel)
	}
	if entries[2].Channel != (device.Channel{DeviceID: "dev-2", SwitchNumber: 1}) {
		t.Errorf("entries[2].Channel = %+v, want dev-2/1", entries[2].Channel)
	}
	if entries[0].UpdatedAt.IsZero() {
		t.Error("entries[0].UpdatedAt is zero, want parsed timestamp")
	}
}

func TestRepository_Delete(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	if err := repo.Save(ctx, testChannel, device.Position{X: 0.5, Y: 0.5}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := repo.Delete(ctx, testChannel); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.Get(ctx, testChannel); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}

	if err := repo.Delete(ctx, testChannel); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestApply(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	catalog := device.NewCatalog()
	d := device.Device{
		Name:         "Living Room Fan",
		DeviceID:     "dev-1",
		SwitchNumber: 1,
		Type:         device.TypeFan,
		Room:         device.RoomLiving,
		Position:     device.Position{X: 0.3, Y: 0.4},
		Source:       device.SourceAPI,
	}
	if err := catalog.Add(d); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	saved := device.Position{X: 0.88, Y: 0.12}
	if err := repo.Save(ctx, testChannel, saved); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	// A stale entry for a channel no longer discovered must be skipped.
	if err := repo.Save(ctx, device.Channel{DeviceID: "gone", SwitchNumber: 1}, device.Position{X: 0.5, Y: 0.5}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := Apply(ctx, repo, catalog); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	got, err := catalog.Get(testChannel)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Position != saved {
		t.Errorf("Position = %+v, want saved override %+v", got.Position, saved)
	}
}
