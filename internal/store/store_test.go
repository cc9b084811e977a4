package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

// Backends under test share the same contract, so they share the same suite.
// The sqlite backend is exercised against a temp database file.
func backends(t *testing.T) map[string]Store {
	t.Helper()

	fileStore, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("file store: %v", err)
	}

	sqliteStore, err := NewSQLiteStore(filepath.Join(t.TempDir(), "autocare.db"))
	if err != nil {
		t.Fatalf("sqlite store: %v", err)
	}

	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fileStore,
		"sqlite": sqliteStore,
	}
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			defer s.Close()

			if _, err := s.Get(ctx, KeyVehicles); !errors.Is(err, ErrNotFound) {
				t.Fatalf("missing key: got %v, want ErrNotFound", err)
			}

			blob := []byte(`[{"id":"v1"}]`)
			if err := s.Set(ctx, KeyVehicles, blob); err != nil {
				t.Fatalf("set: %v", err)
			}

			got, err := s.Get(ctx, KeyVehicles)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if string(got) != string(blob) {
				t.Errorf("get = %s, want %s", got, blob)
			}

			// Overwrite: last write wins.
			updated := []byte(`[]`)
			if err := s.Set(ctx, KeyVehicles, updated); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			got, _ = s.Get(ctx, KeyVehicles)
			if string(got) != "[]" {
				t.Errorf("after overwrite = %s, want []", got)
			}

			// Remove is idempotent and tolerates missing keys.
			if err := s.Remove(ctx, KeyVehicles, "never_written"); err != nil {
				t.Fatalf("remove: %v", err)
			}
			if _, err := s.Get(ctx, KeyVehicles); !errors.Is(err, ErrNotFound) {
				t.Errorf("after remove: got %v, want ErrNotFound", err)
			}
		})
	}
}

func TestOpenFactory(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"memory", Config{Backend: MemoryBackend}, false},
		{"file", Config{Backend: FileBackend, DataDir: t.TempDir()}, false},
		{"sqlite", Config{Backend: SQLiteBackend, SQLiteDBPath: filepath.Join(t.TempDir(), "kv.db")}, false},
		{"unknown", Config{Backend: "postgres"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Open(tt.cfg, nil)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			s.Close()
		})
	}
}

func TestBackendIsValid(t *testing.T) {
	for _, b := range []Backend{FileBackend, SQLiteBackend, MemoryBackend} {
		if !b.IsValid() {
			t.Errorf("%s should be valid", b)
		}
	}
	if Backend("redis").IsValid() {
		t.Error("redis should not be valid")
	}
}
