package repo

import (
	"context"

	"apisupport/internal/modkit/repokit"
	perr "apisupport/internal/platform/errors"
	"apisupport/internal/platform/store"
)

var schema = map[store.Dialect][]string{
	store.DialectPostgres: {
		`CREATE TABLE IF NOT EXISTS queues (
			id         bigserial   PRIMARY KEY,
			uuid       uuid        NOT NULL UNIQUE,
			name       text        NOT NULL,
			venue      text,
			status     text        NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'closed')),
			created_at timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS queues_status_id_idx ON queues (status, id)`,
	},
	store.DialectSQLite: {
		`CREATE TABLE IF NOT EXISTS queues (
			id         INTEGER   PRIMARY KEY AUTOINCREMENT,
			uuid       TEXT      NOT NULL UNIQUE,
			name       TEXT      NOT NULL,
			venue      TEXT,
			status     TEXT      NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'closed')),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS queues_status_id_idx ON queues (status, id)`,
	},
}

// Migrate creates the queues table for q's dialect; it is safe to run repeatedly
func Migrate(ctx context.Context, q repokit.Queryer) error {
	stmts, ok := schema[store.DialectOf(q)]
	if !ok {
		return perr.Internalf("queues: no schema for dialect %s", store.DialectOf(q))
	}
	for _, stmt := range stmts {
		if _, err := store.Exec(ctx, q, stmt); err != nil {
			return perr.WithOp(err, "queues.Migrate")
		}
	}
	return nil
}
