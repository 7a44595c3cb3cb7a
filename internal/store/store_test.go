package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// backends returns a fresh instance of every backend that runs without
// external services.
func backends(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	sq, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create sqlite store: %v", err)
	}
	t.Cleanup(func() { sq.Close() })

	return map[string]Store{
		"file":   NewFileStore(filepath.Join(dir, "memory", "companies.txt")),
		"sqlite": sq,
	}
}

func TestReadAllEmpty(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			got, err := s.ReadAll(ctx)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if got == nil || len(got) != 0 {
				t.Errorf("expected empty non-nil slice, got %#v", got)
			}
		})
	}
}

func TestAppendKeepsOrderAndDuplicates(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, n := range []string{"Acme Corp", "Globex", "Acme Corp"} {
				if err := s.Append(ctx, n); err != nil {
					t.Fatalf("append %q: %v", n, err)
				}
			}
			got, err := s.ReadAll(ctx)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			want := []string{"Acme Corp", "Globex", "Acme Corp"}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("got %v, want %v", got, want)
			}
		})
	}
}

func TestAppendThenReadLast(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s.Append(ctx, "Initech")
			if err := s.Append(ctx, "  Umbrella Holdings \n"); err != nil {
				t.Fatalf("append: %v", err)
			}
			got, _ := s.ReadAll(ctx)
			if len(got) != 2 {
				t.Fatalf("expected 2 names, got %d", len(got))
			}
			if got[len(got)-1] != "Umbrella Holdings" {
				t.Errorf("expected last name 'Umbrella Holdings', got %q", got[len(got)-1])
			}
		})
	}
}

func TestAppendRejectsBlank(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Append(ctx, "   "); !errors.Is(err, ErrEmptyName) {
				t.Errorf("expected ErrEmptyName, got %v", err)
			}
			got, _ := s.ReadAll(ctx)
			if len(got) != 0 {
				t.Errorf("blank append should not write, got %v", got)
			}
		})
	}
}

func TestResetClearsEverything(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s.Append(ctx, "a")
			s.Append(ctx, "b")
			if err := s.Reset(ctx); err != nil {
				t.Fatalf("reset: %v", err)
			}
			got, _ := s.ReadAll(ctx)
			if len(got) != 0 {
				t.Errorf("expected empty after reset, got %v", got)
			}

			// Reset on an already empty store is a no-op.
			if err := s.Reset(ctx); err != nil {
				t.Fatalf("second reset: %v", err)
			}
			s.Append(ctx, "c")
			got, _ = s.ReadAll(ctx)
			if !reflect.DeepEqual(got, []string{"c"}) {
				t.Errorf("expected [c] after reset+append, got %v", got)
			}
		})
	}
}

func TestOpenDrivers(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(Options{Path: filepath.Join(dir, "log.txt")})
	if err != nil {
		t.Fatalf("open default: %v", err)
	}
	if _, ok := s.(*FileStore); !ok {
		t.Errorf("expected *FileStore for empty driver, got %T", s)
	}

	s, err = Open(Options{Driver: DriverSQLite, Path: filepath.Join(dir, "x.db")})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	s.Close()

	if _, err := Open(Options{Driver: "redis"}); err == nil {
		t.Error("expected error for unknown driver")
	}
	if _, err := Open(Options{Driver: DriverPostgres}); err == nil {
		t.Error("expected error for postgres without dsn")
	}
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("CAMPAIGN_AGENT_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("CAMPAIGN_AGENT_TEST_PG_DSN not set")
	}
	ctx := context.Background()
	s, err := NewPostgresStore(dsn)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	defer s.Close()

	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	s.Append(ctx, "Acme Corp")
	s.Append(ctx, "Acme Corp")
	got, err := s.ReadAll(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"Acme Corp", "Acme Corp"}) {
		t.Errorf("unexpected contents %v", got)
	}
}
