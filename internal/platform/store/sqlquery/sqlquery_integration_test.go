//go:build integration_pg

package sqlquery

import (
	"context"
	"fmt"
	"reflect"
	"testing"
	"time"

	"apisupport/internal/core/pagination"
	perr "apisupport/internal/platform/errors"
	"apisupport/internal/platform/store"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	t.Cleanup(cancel)

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "postgres",
				"POSTGRES_DB":       "postgres",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	return fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, port.Port())
}

func TestSelect_WalksPostgres_Integration(t *testing.T) {
	ctx := context.Background()
	s, err := store.Open(ctx, store.Config{
		AppName: "apisupport-sqlquery-it",
		PG:      store.PGConfig{Enabled: true, URL: startPostgres(t)},
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(ctx) })

	db, err := s.SQL()
	if err != nil {
		t.Fatalf("sql: %v", err)
	}
	if _, err := db.Exec(ctx, `CREATE TABLE queues (
		id     bigserial PRIMARY KEY,
		uuid   uuid NOT NULL UNIQUE,
		name   text NOT NULL,
		status text NOT NULL
	)`); err != nil {
		t.Fatalf("ddl: %v", err)
	}
	for i := 1; i <= 40; i++ {
		if _, err := db.Exec(ctx, `INSERT INTO queues (uuid, name, status) VALUES ($1, $2, 'open')`,
			queueUUID(i), fmt.Sprintf("queue %02d", i)); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	// uuid columns come back as [16]byte and must still stringify into cursors
	for _, limit := range []int{1, 3, 10, 20} {
		asc := New(db, "queues q").Columns("q.id", "q.uuid").OrderBy("q.id", pagination.Asc)
		if got := walk(t, asc, limit); !reflect.DeepEqual(got, seq(1, 40, 1)) {
			t.Fatalf("asc limit %d: %v", limit, got)
		}
		desc := New(db, "queues").Columns("id", "uuid").As("weight", "id * 10").OrderBy("weight", pagination.Desc)
		if got := walk(t, desc, limit); !reflect.DeepEqual(got, seq(40, 1, -1)) {
			t.Fatalf("desc limit %d: %v", limit, got)
		}
	}

	_, err = db.Exec(ctx, `INSERT INTO queues (uuid, name, status) VALUES ($1, 'dup', 'open')`, queueUUID(1))
	if !perr.IsCode(err, perr.ErrorCodeConflict) {
		t.Fatalf("unique violation should map to conflict, got %v", err)
	}
}
