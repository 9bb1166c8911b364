package db

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestOpen_MemoryCreatesSchema(t *testing.T) {
	database, err := Open(":memory:")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer database.Close()

	var n int
	if err := database.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&n); err != nil {
		t.Fatalf("kv table missing: %v", err)
	}
	if n != 0 {
		t.Errorf("count = %d, want 0", n)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	database, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer database.Close()

	if err := Migrate(database); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}

func TestOpenWith_AppliesOptions(t *testing.T) {
	database, err := OpenWith(":memory:", Options{BusyTimeout: 1500 * time.Millisecond, CacheKB: 512})
	if err != nil {
		t.Fatal(err)
	}
	defer database.Close()

	var timeout int
	if err := database.QueryRow(`PRAGMA busy_timeout`).Scan(&timeout); err != nil {
		t.Fatal(err)
	}
	if timeout != 1500 {
		t.Errorf("busy_timeout = %d, want 1500", timeout)
	}
	var cache int
	if err := database.QueryRow(`PRAGMA cache_size`).Scan(&cache); err != nil {
		t.Fatal(err)
	}
	if cache != -512 {
		t.Errorf("cache_size = %d, want -512", cache)
	}
}

func TestOpen_FileUsesWAL(t *testing.T) {
	database, err := Open(filepath.Join(t.TempDir(), "kv.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer database.Close()

	var mode string
	if err := database.QueryRow(`PRAGMA journal_mode`).Scan(&mode); err != nil {
		t.Fatal(err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestPragmas_MemorySkipsWAL(t *testing.T) {
	for _, p := range pragmas(":memory:", DefaultOptions) {
		if strings.Contains(p, "journal_mode") {
			t.Errorf("unexpected pragma %q for in-memory database", p)
		}
	}
}
