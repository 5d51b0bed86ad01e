package report

import (
	"context"
	"path/filepath"
	"testing"
)

func TestStoreRecordAndRecent(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "report.db")
	store, err := Open(dsn)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if _, err := store.Record(ctx, "level1.lvlx", 3, "id:1;", "bad field"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if _, err := store.Record(ctx, "level1.lvlx", 9, "id:2;", "bad array element 0"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if _, err := store.Record(ctx, "world1.wldx", 1, "id:3;", "missing delimiter ';'"); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries, err := store.Recent(ctx, "level1.lvlx", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries for level1.lvlx, want 2", len(entries))
	}
	if entries[0].LineNumber != 9 {
		t.Errorf("most recent entry LineNumber = %d, want 9", entries[0].LineNumber)
	}

	all, err := store.Recent(ctx, "", 10)
	if err != nil {
		t.Fatalf("Recent(all): %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d entries overall, want 3", len(all))
	}
}
