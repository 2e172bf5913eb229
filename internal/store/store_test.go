package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// exerciseKV runs the shared contract every backend must satisfy.
func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := kv.Get(ctx, KeySelectedDate); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := kv.Set(ctx, KeySelectedDate, "2024-10-22"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := kv.Set(ctx, KeyStatsCache, `{"date":"2024-10-22"}`); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if v, ok, err := kv.Get(ctx, KeySelectedDate); err != nil || !ok || v != "2024-10-22" {
		t.Fatalf("expected stored date, got %q ok=%v err=%v", v, ok, err)
	}
	if err := kv.Set(ctx, KeySelectedDate, "2024-10-23"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	if v, _, _ := kv.Get(ctx, KeySelectedDate); v != "2024-10-23" {
		t.Fatalf("expected overwritten value, got %q", v)
	}
	if err := kv.Remove(ctx, KeySelectedDate); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, KeySelectedDate); ok {
		t.Fatalf("expected key removed")
	}
	if err := kv.Remove(ctx, "never-set"); err != nil {
		t.Fatalf("removing a missing key should succeed, got %v", err)
	}
	if v, ok, _ := kv.Get(ctx, KeyStatsCache); !ok || v == "" {
		t.Fatalf("expected unrelated key untouched")
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseKV(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	exerciseKV(t, s)

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be renamed away")
	}

	reopened, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if _, ok, _ := reopened.Get(context.Background(), KeyStatsCache); !ok {
		t.Fatalf("expected value to survive reopen")
	}
}

func TestFileStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, _ := NewFileStore(path)
	if _, _, err := s.Get(context.Background(), KeySelectedDate); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestFileStoreRequiresPath(t *testing.T) {
	if _, err := NewFileStore(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestNilStoresReportNotConfigured(t *testing.T) {
	ctx := context.Background()
	var mem *MemoryStore
	var file *FileStore
	var rs *RedisStore
	var lite *SQLiteStore
	var pg *PostgresStore
	for _, kv := range []KV{mem, file, rs, lite, pg} {
		if _, _, err := kv.Get(ctx, "k"); err != ErrNotConfigured {
			t.Fatalf("%T: expected ErrNotConfigured, got %v", kv, err)
		}
		if err := kv.Set(ctx, "k", "v"); err != ErrNotConfigured {
			t.Fatalf("%T: expected ErrNotConfigured, got %v", kv, err)
		}
		if err := kv.Remove(ctx, "k"); err != ErrNotConfigured {
			t.Fatalf("%T: expected ErrNotConfigured, got %v", kv, err)
		}
		if err := kv.Close(); err != nil {
			t.Fatalf("%T: expected nil close, got %v", kv, err)
		}
	}
}
