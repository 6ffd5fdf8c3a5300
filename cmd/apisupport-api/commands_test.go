package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"apisupport/internal/platform/store"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := newRootCommand()
	for _, name := range []string{"serve", "migrate", "seed"} {
		c, _, err := root.Find([]string{name})
		if err != nil || c.Name() != name {
			t.Fatalf("missing %q: %v", name, err)
		}
	}
	if !strings.Contains(root.Version, "commit") {
		t.Fatalf("version = %q", root.Version)
	}
}

func TestSeed_RejectsNonPositiveCount(t *testing.T) {
	if _, err := run(t, "seed", "--count", "0"); err == nil {
		t.Fatalf("want error")
	}
}

func TestMigrateThenSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "queues.db")
	t.Setenv("SERVICE_SQLITE_PATH", path)

	if _, err := run(t, "migrate"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	out, err := run(t, "seed", "-n", "7")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !strings.Contains(out, "seeded 7 queues") {
		t.Fatalf("out = %q", out)
	}

	// a second seed leaves a populated table alone
	out, err = run(t, "seed", "-n", "3")
	if err != nil {
		t.Fatalf("reseed: %v", err)
	}
	if !strings.Contains(out, "seeded 0 queues") {
		t.Fatalf("out = %q", out)
	}

	ctx := context.Background()
	st, err := store.Open(ctx, store.Config{SQLite: store.SQLiteConfig{Enabled: true, Path: path}})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = st.Close(ctx) }()
	n, err := store.Scalar[int64](ctx, st.SQLite, "SELECT COUNT(*) FROM queues")
	if err != nil || n != 7 {
		t.Fatalf("count = %d err=%v", n, err)
	}
}
