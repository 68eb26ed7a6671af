package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/Veraticus/claimflow/internal/common"
	"github.com/Veraticus/claimflow/internal/model"
)

func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return store
}

func TestMigrate_Idempotent(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}

	version, err := store.SchemaVersion(ctx)
	if err != nil {
		t.Fatalf("SchemaVersion() error = %v", err)
	}
	if version != ExpectedSchemaVersion {
		t.Errorf("SchemaVersion() = %d, want %d", version, ExpectedSchemaVersion)
	}
}

func TestMigrate_NewerSchemaRejected(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	if _, err := store.db.ExecContext(ctx, "PRAGMA user_version = 99"); err != nil {
		t.Fatalf("failed to bump version: %v", err)
	}
	if err := store.Migrate(ctx); err == nil {
		t.Error("Migrate() on a newer schema should fail")
	}
}

func TestNewSQLiteStorage_Memory(t *testing.T) {
	store, err := NewSQLiteStorage(MemoryPath)
	if err != nil {
		t.Fatalf("NewSQLiteStorage() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	if store.Path() != MemoryPath {
		t.Errorf("Path() = %q", store.Path())
	}
}

func TestNewSQLiteStorage_EmptyPath(t *testing.T) {
	if _, err := NewSQLiteStorage("  "); !errors.Is(err, ErrEmptyString) {
		t.Errorf("NewSQLiteStorage(\"  \") error = %v, want ErrEmptyString", err)
	}
}

func TestKeyValue(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	if _, err := store.GetValue(ctx, "claim:c1:password"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("GetValue() on missing key error = %v, want ErrNotFound", err)
	}

	if err := store.SetValue(ctx, "claim:c1:password", "first"); err != nil {
		t.Fatalf("SetValue() error = %v", err)
	}
	if err := store.SetValue(ctx, "claim:c1:password", "second"); err != nil {
		t.Fatalf("SetValue() overwrite error = %v", err)
	}

	got, err := store.GetValue(ctx, "claim:c1:password")
	if err != nil {
		t.Fatalf("GetValue() error = %v", err)
	}
	if got != "second" {
		t.Errorf("GetValue() = %q, want %q", got, "second")
	}

	// Empty values are stored, not treated as missing.
	if err := store.SetValue(ctx, "claim:c2:password", ""); err != nil {
		t.Fatalf("SetValue(empty) error = %v", err)
	}
	if got, err := store.GetValue(ctx, "claim:c2:password"); err != nil || got != "" {
		t.Errorf("GetValue(empty) = %q, %v", got, err)
	}

	if err := store.DeleteValue(ctx, "claim:c1:password"); err != nil {
		t.Fatalf("DeleteValue() error = %v", err)
	}
	if err := store.DeleteValue(ctx, "claim:c1:password"); err != nil {
		t.Fatalf("DeleteValue() on missing key error = %v", err)
	}
	if _, err := store.GetValue(ctx, "claim:c1:password"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("GetValue() after delete error = %v", err)
	}

	if err := store.SetValue(ctx, "", "x"); !errors.Is(err, ErrEmptyString) {
		t.Errorf("SetValue(\"\") error = %v, want ErrEmptyString", err)
	}
}

func TestRecentClaims(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	claims := []*model.Claim{
		{ID: "c1", Title: "Taxi", Status: model.StatusSubmitted},
		{ID: "c2", Title: "Hotel", Status: model.StatusApproved},
		{ID: "c3", Title: "Lunch", Status: model.StatusPaid},
	}
	for _, c := range claims {
		if err := store.RecordClaim(ctx, c); err != nil {
			t.Fatalf("RecordClaim(%s) error = %v", c.ID, err)
		}
	}

	// Reopening moves c1 to the front with its latest status.
	if err := store.RecordClaim(ctx, &model.Claim{ID: "c1", Title: "Taxi", Status: model.StatusWithdraw}); err != nil {
		t.Fatalf("RecordClaim(c1) error = %v", err)
	}

	got, err := store.RecentClaims(ctx, 2)
	if err != nil {
		t.Fatalf("RecentClaims() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("RecentClaims() returned %d rows, want 2", len(got))
	}
	if got[0].ID != "c1" || got[0].Status != model.StatusWithdraw {
		t.Errorf("RecentClaims()[0] = %+v, want c1 WITHDRAW", got[0])
	}
	if got[1].ID != "c3" {
		t.Errorf("RecentClaims()[1].ID = %q, want c3", got[1].ID)
	}
	if got[0].OpenedAt.IsZero() {
		t.Error("OpenedAt should be set")
	}

	if err := store.ForgetClaim(ctx, "c1"); err != nil {
		t.Fatalf("ForgetClaim() error = %v", err)
	}
	got, err = store.RecentClaims(ctx, 10)
	if err != nil {
		t.Fatalf("RecentClaims() error = %v", err)
	}
	if len(got) != 2 || got[0].ID != "c3" {
		t.Errorf("RecentClaims() after forget = %+v", got)
	}

	if _, err := store.RecentClaims(ctx, 0); !errors.Is(err, ErrInvalidLimit) {
		t.Errorf("RecentClaims(0) error = %v, want ErrInvalidLimit", err)
	}
}
