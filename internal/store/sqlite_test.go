package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteIDsAreUniquePerAppend(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for i := 0; i < 5; i++ {
		if err := s.Append(ctx, "Acme Corp"); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	var n, ids int
	s.db.QueryRowContext(ctx, `SELECT COUNT(*), COUNT(DISTINCT id) FROM companies`).Scan(&n, &ids)
	if n != 5 || ids != 5 {
		t.Errorf("expected 5 rows with 5 ids, got %d rows / %d ids", n, ids)
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "persist.db")

	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	s.Append(ctx, "Globex")
	s.Close()

	s, err = NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer s.Close()

	got, _ := s.ReadAll(ctx)
	if len(got) != 1 || got[0] != "Globex" {
		t.Errorf("expected [Globex] after reopen, got %v", got)
	}
}

func TestDBPathCreation(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "sub", "dir", "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("expected db file to be created")
	}
}
