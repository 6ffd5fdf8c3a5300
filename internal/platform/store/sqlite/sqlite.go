// Package sqlite opens the embedded database backing the sqlite store adapter
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"apisupport/internal/platform/store/trace"

	_ "github.com/mattn/go-sqlite3" // registers the "sqlite3" driver
)

// Config configures the sqlite handle
type Config struct {
	// Path is a file path or ":memory:"
	Path     string
	MaxConns int
	SlowMs   int
}

// DB is a sqlite handle with an optional tracer
type DB struct {
	SQL    *sql.DB
	Tracer trace.QueryTracer
	SlowMs int
}

var openDB = sql.Open

// DSN builds the driver string: foreign keys on, busy timeout set, memory databases shared
// so every pooled connection sees the same schema
func DSN(path string) string {
	if path == "" || path == ":memory:" {
		return "file:apisupport?mode=memory&cache=shared&_foreign_keys=on&_busy_timeout=5000"
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return "file:" + path + sep + "_foreign_keys=on&_busy_timeout=5000"
}

// Open opens and pings the database
func Open(ctx context.Context, cfg Config, tracer trace.QueryTracer) (*DB, error) {
	db, err := openDB("sqlite3", DSN(cfg.Path))
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(cfg.MaxConns)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite ping: %w", err)
	}
	return &DB{SQL: db, Tracer: tracer, SlowMs: cfg.SlowMs}, nil
}

// Close closes the handle
func (d *DB) Close() error {
	if d == nil || d.SQL == nil {
		return nil
	}
	return d.SQL.Close()
}
