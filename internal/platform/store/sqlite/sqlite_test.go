package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"apisupport/internal/platform/testkit"
)

func TestDSN(t *testing.T) {
	cases := map[string]string{
		"":               "file:apisupport?mode=memory&cache=shared&_foreign_keys=on&_busy_timeout=5000",
		":memory:":       "file:apisupport?mode=memory&cache=shared&_foreign_keys=on&_busy_timeout=5000",
		"/tmp/api.db":    "file:/tmp/api.db?_foreign_keys=on&_busy_timeout=5000",
		"api.db?mode=ro": "file:api.db?mode=ro&_foreign_keys=on&_busy_timeout=5000",
	}
	for in, want := range cases {
		if got := DSN(in); got != want {
			t.Fatalf("DSN(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOpen_FileAndClose(t *testing.T) {
	db, err := Open(context.Background(), Config{Path: t.TempDir() + "/api.db", MaxConns: 2, SlowMs: 10}, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	var one int
	if err := db.SQL.QueryRow("SELECT 1").Scan(&one); err != nil || one != 1 {
		t.Fatalf("select 1: %v %d", err, one)
	}
	if db.SlowMs != 10 {
		t.Fatalf("SlowMs = %d", db.SlowMs)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	var nilDB *DB
	if err := nilDB.Close(); err != nil {
		t.Fatalf("nil Close: %v", err)
	}
}

func TestOpen_DriverError(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &openDB, func(string, string) (*sql.DB, error) {
		return nil, errors.New("no driver")
	})
	if _, err := Open(context.Background(), Config{}, nil); err == nil {
		t.Fatalf("expected open error")
	}
}
