// Package storetest opens throwaway store seams for tests in other packages
package storetest

import (
	"context"
	"path/filepath"
	"testing"

	"apisupport/internal/platform/store"
)

// SQLite opens a file-backed sqlite seam under t.TempDir and runs ddl against it
func SQLite(t testing.TB, ddl ...string) store.TxRunner {
	t.Helper()
	ctx := context.Background()
	s, err := store.Open(ctx, store.Config{SQLite: store.SQLiteConfig{
		Enabled: true,
		Path:    filepath.Join(t.TempDir(), "test.db"),
	}})
	if err != nil {
		t.Fatalf("storetest: open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(ctx) })

	for _, stmt := range ddl {
		if _, err := s.SQLite.Exec(ctx, stmt); err != nil {
			t.Fatalf("storetest: %v\n%s", err, stmt)
		}
	}
	return s.SQLite
}
