package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Options tunes the connection pragmas of the key-value database.
type Options struct {
	BusyTimeout time.Duration
	// CacheKB is the page cache size in KiB.
	CacheKB int
}

var DefaultOptions = Options{
	BusyTimeout: 5 * time.Second,
	CacheKB:     20000,
}

func Open(path string) (*sql.DB, error) {
	return OpenWith(path, DefaultOptions)
}

// OpenWith opens the kv database at path and migrates it. In-memory
// databases stay in the default journal mode since WAL needs a file.
func OpenWith(path string, o Options) (*sql.DB, error) {
	kvdb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open kv database %s: %w", path, err)
	}
	// One connection: a second :memory: connection would be a separate database.
	kvdb.SetMaxOpenConns(1)

	for _, p := range pragmas(path, o) {
		if _, err := kvdb.Exec(p); err != nil {
			kvdb.Close()
			return nil, fmt.Errorf("kv database %s: %q: %w", path, p, err)
		}
	}

	if err := Migrate(kvdb); err != nil {
		kvdb.Close()
		return nil, fmt.Errorf("migrate kv table: %w", err)
	}
	return kvdb, nil
}

func pragmas(path string, o Options) []string {
	var out []string
	if !inMemory(path) {
		out = append(out, "PRAGMA journal_mode=WAL", "PRAGMA synchronous=NORMAL")
	}
	if o.BusyTimeout > 0 {
		out = append(out, fmt.Sprintf("PRAGMA busy_timeout=%d", o.BusyTimeout.Milliseconds()))
	}
	if o.CacheKB > 0 {
		out = append(out, fmt.Sprintf("PRAGMA cache_size=-%d", o.CacheKB))
	}
	return out
}

func inMemory(path string) bool {
	return path == ":memory:" || strings.Contains(path, "mode=memory")
}
