package store

import (
	"context"
	"reflect"
	"testing"
	"time"

	perr "apisupport/internal/platform/errors"
	"apisupport/internal/platform/store/sqlite"
)

// newLite opens a throwaway sqlite adapter with a small queues table
func newLite(t *testing.T) *sqliteAdapter {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.Config{Path: t.TempDir() + "/store.db"}, nil)
	if err != nil {
		t.Fatalf("sqlite open: %v", err)
	}
	a := newSQLiteAdapter(db)
	t.Cleanup(func() { _ = a.Close() })

	if _, err := a.Exec(ctx, `CREATE TABLE queues (
		id         INTEGER PRIMARY KEY,
		uuid       TEXT NOT NULL UNIQUE,
		name       TEXT NOT NULL,
		venue      TEXT,
		opened_at  TIMESTAMP
	)`); err != nil {
		t.Fatalf("create: %v", err)
	}
	opened := time.Date(2021, 3, 1, 9, 30, 0, 0, time.UTC)
	if _, err := a.Exec(ctx,
		`INSERT INTO queues (id, uuid, name, venue, opened_at) VALUES (?, ?, ?, ?, ?), (?, ?, ?, ?, ?)`,
		1, "u-1", "front desk", "lobby", opened,
		2, "u-2", "pharmacy", nil, nil,
	); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return a
}

func TestScalar(t *testing.T) {
	a := newLite(t)
	n, err := Scalar[int64](context.Background(), a, `SELECT COUNT(*) FROM queues`)
	if err != nil || n != 2 {
		t.Fatalf("Scalar = %d, %v", n, err)
	}
	_, err = Scalar[int64](context.Background(), a, `SELECT id FROM queues WHERE uuid = ?`, "missing")
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("no rows should map to not found, got %v", err)
	}
}

func TestMapAndMaps(t *testing.T) {
	a := newLite(t)
	ctx := context.Background()

	m, err := Map(ctx, a, `SELECT id, uuid, name, venue, opened_at FROM queues WHERE id = 1`)
	if err != nil {
		t.Fatalf("Map: %v", err)
	}
	if m["uuid"] != "u-1" || m["name"] != "front desk" || m["id"] != int64(1) {
		t.Fatalf("Map = %#v", m)
	}
	if ts, ok := m["opened_at"].(time.Time); !ok || !ts.Equal(time.Date(2021, 3, 1, 9, 30, 0, 0, time.UTC)) {
		t.Fatalf("opened_at = %#v", m["opened_at"])
	}

	if _, err := Map(ctx, a, `SELECT id FROM queues WHERE id = 99`); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("Map missing = %v", err)
	}

	ms, err := Maps(ctx, a, `SELECT id, venue FROM queues ORDER BY id DESC`)
	if err != nil || len(ms) != 2 {
		t.Fatalf("Maps = %v, %v", ms, err)
	}
	if ms[0]["id"] != int64(2) || ms[0]["venue"] != nil || ms[1]["venue"] != "lobby" {
		t.Fatalf("Maps rows = %#v", ms)
	}
}

func TestExecAffected(t *testing.T) {
	a := newLite(t)
	ctx := context.Background()
	if err := ExecAffected(ctx, a, 1, `UPDATE queues SET venue = ? WHERE id = ?`, "annex", 2); err != nil {
		t.Fatalf("ExecAffected: %v", err)
	}
	err := ExecAffected(ctx, a, 1, `UPDATE queues SET venue = ?`, "annex")
	if !perr.IsCode(err, perr.ErrorCodeServer) {
		t.Fatalf("want server error on count mismatch, got %v", err)
	}
	if _, err := Exec(ctx, a, `DELETE FROM queues WHERE id = ?`, 1); err != nil {
		t.Fatalf("Exec: %v", err)
	}
}


func TestMap_MoreThanOneRow(t *testing.T) {
	a := newLite(t)
	if _, err := Map(context.Background(), a, `SELECT id FROM queues`); !perr.IsCode(err, perr.ErrorCodeServer) {
		t.Fatalf("want server error for two rows, got %v", err)
	}
}

func TestFlatten(t *testing.T) {
	ts := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	var nilTime *time.Time
	cases := []struct {
		in, want any
	}{
		{&ts, ts},
		{nilTime, nil},
		{[]byte("front desk"), "front desk"},
		{int64(3), int64(3)},
		{nil, nil},
	}
	for _, c := range cases {
		if got := flatten(c.in); !reflect.DeepEqual(got, c.want) {
			t.Fatalf("flatten(%#v) = %#v, want %#v", c.in, got, c.want)
		}
	}
}
