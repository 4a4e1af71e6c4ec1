package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/model"
)

func testDB(t *testing.T) *Cache {
	t.Helper()
	dir := t.TempDir()
	db, err := Open(filepath.Join(dir, "history.db"))
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleHistory() []model.Article {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return []model.Article{
		{ID: "a1", Title: "Cumbre climática", Summary: "S1", Category: model.CategoryWorld, Source: "Agencia", PublishedTime: "Hace 2 horas", ImageKeyword: "climate", FetchedAt: now},
		{ID: "b2", Title: "Chip cuántico", Summary: "S2", Category: model.CategoryTechnology, Source: "TecDiario", PublishedTime: "Hace 1 hora", ImageKeyword: "quantum", FetchedAt: now, DeepDive: "Análisis"},
	}
}

func TestSaveAndLoad(t *testing.T) {
	db := testDB(t)
	want := sampleHistory()

	if err := db.Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := db.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].ID != "a1" || got[1].DeepDive != "Análisis" {
		t.Errorf("snapshot round trip lost data: %+v", got)
	}
}

func TestSaveReplacesSnapshot(t *testing.T) {
	db := testDB(t)
	if err := db.Save(sampleHistory()); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := db.Save(sampleHistory()[:1]); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := db.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected latest snapshot to win, got %d records", len(got))
	}
}

func TestLoadAbsentSnapshot(t *testing.T) {
	db := testDB(t)
	got, err := db.Load()
	if err != nil {
		t.Fatalf("load on empty db: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil history, got %d records", len(got))
	}
}

func TestLoadCorruptSnapshot(t *testing.T) {
	db := testDB(t)
	_, err := db.writeDB.Exec(`
		INSERT INTO snapshots (key, value, updated_at) VALUES (?, ?, ?)
	`, historyKey, []byte("{not json"), time.Now().UTC())
	if err != nil {
		t.Fatalf("planting corrupt blob: %v", err)
	}

	got, err := db.Load()
	if err != nil {
		t.Fatalf("corrupt snapshot must not error: %v", err)
	}
	if got != nil {
		t.Errorf("expected empty history from corrupt blob, got %d records", len(got))
	}
}

func TestClear(t *testing.T) {
	db := testDB(t)
	if err := db.Save(sampleHistory()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := db.SetLastRefresh(); err != nil {
		t.Fatalf("SetLastRefresh: %v", err)
	}

	if err := db.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	got, _ := db.Load()
	if got != nil {
		t.Errorf("expected empty history after clear, got %d", len(got))
	}
	if !db.NeedsRefresh(time.Hour) {
		t.Error("expected NeedsRefresh=true after clear")
	}
}

func TestStats(t *testing.T) {
	db := testDB(t)
	if err := db.Save(sampleHistory()); err != nil {
		t.Fatalf("save: %v", err)
	}

	count, size, err := db.Stats()
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if count != 2 {
		t.Errorf("expected count 2, got %d", count)
	}
	if size == 0 {
		t.Error("expected non-zero db size")
	}
}

func TestNeedsRefresh(t *testing.T) {
	db := testDB(t)

	if !db.NeedsRefresh(time.Hour) {
		t.Error("expected NeedsRefresh=true when never refreshed")
	}

	if err := db.SetLastRefresh(); err != nil {
		t.Fatalf("SetLastRefresh: %v", err)
	}
	if db.NeedsRefresh(time.Hour) {
		t.Error("expected NeedsRefresh=false right after SetLastRefresh")
	}
	if !db.NeedsRefresh(0) {
		t.Error("expected NeedsRefresh=true with zero interval")
	}
}

func TestOpenCreatesDir(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "sub", "deep", "history.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("opening db in nested dir: %v", err)
	}
	db.Close()

	if _, err := os.Stat(filepath.Dir(dbPath)); os.IsNotExist(err) {
		t.Error("expected directory to be created")
	}
}

func TestReopenKeepsSnapshot(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "history.db")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.Save(sampleHistory()); err != nil {
		t.Fatalf("save: %v", err)
	}
	db.Close()

	db2, err := Open(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db2.Close()

	got, err := db2.Load()
	if err != nil {
		t.Fatalf("load after reopen: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 records after reopen, got %d", len(got))
	}
}
