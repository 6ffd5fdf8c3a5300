package store

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"apisupport/internal/platform/logger"

	"github.com/rs/zerolog"
)

func TestOpen_NothingEnabled(t *testing.T) {
	s, err := Open(context.Background(), Config{})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if s.PG != nil || s.SQLite != nil {
		t.Fatalf("no backends expected")
	}
	if _, err := s.SQL(); err != ErrNoBackend {
		t.Fatalf("SQL() = %v", err)
	}
	if err := s.Guard(context.Background()); err != nil {
		t.Fatalf("guard on empty store: %v", err)
	}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, Config{SQLite: SQLiteConfig{Enabled: true, Path: t.TempDir() + "/open.db", LogSQL: true}})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(ctx) })

	q, err := s.SQL()
	if err != nil || q != s.SQLite {
		t.Fatalf("SQL() should fall back to sqlite: %v", err)
	}
	if DialectOf(q) != DialectSQLite {
		t.Fatalf("dialect = %s", DialectOf(q))
	}
	if err := s.Guard(ctx); err != nil {
		t.Fatalf("guard: %v", err)
	}
}

func TestSQL_PrefersPostgres(t *testing.T) {
	pgSeam, liteSeam := &pgAdapter{}, &sqliteAdapter{}
	s := &Store{PG: pgSeam, SQLite: liteSeam}
	q, err := s.SQL()
	if err != nil || q != TxRunner(pgSeam) {
		t.Fatalf("want pg seam, got %T %v", q, err)
	}
	var nilStore *Store
	if _, err := nilStore.SQL(); err != ErrNoBackend {
		t.Fatalf("nil store SQL() = %v", err)
	}
}

func TestOpen_BadPostgresURL(t *testing.T) {
	_, err := Open(context.Background(), Config{PG: PGConfig{Enabled: true, URL: "::not a url::"}})
	if err == nil {
		t.Fatalf("want error for bad url")
	}
}

func TestOpen_PostgresUnreachable(t *testing.T) {
	var buf bytes.Buffer
	log := logger.Logger(zerolog.New(&buf))

	_, err := Open(context.Background(), Config{PG: PGConfig{
		Enabled:        true,
		URL:            "postgres://u:p@127.0.0.1:1/none?connect_timeout=1",
		ConnectRetries: 1,
		PingTimeout:    500 * time.Millisecond,
	}}, WithLogger(log))
	if err == nil || !strings.Contains(err.Error(), "after 1 attempts") {
		t.Fatalf("err = %v", err)
	}
	if strings.Count(buf.String(), "postgres not ready") != 1 {
		t.Fatalf("want one warn, got %q", buf.String())
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logger.Logger(zerolog.New(&buf))
	s := &Store{}
	if err := WithLogger(log)(s); err != nil {
		t.Fatalf("option: %v", err)
	}
	s.Log.Info().Msg("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Fatalf("logger not applied")
	}
}
