package store

import (
	"context"

	"apisupport/internal/platform/store/pg"
	"apisupport/internal/platform/store/sqlite"
	"apisupport/internal/platform/store/trace"
)

// openPG waits for postgres and wraps the pool with the pg adapter
func openPG(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer trace.QueryTracer
	if cfg.PG.LogSQL {
		tracer = trace.Tracer(s.Log, "pg")
	}

	p, err := pg.Open(ctx, pg.Config{
		URL:         cfg.PG.URL,
		AppName:     cfg.AppName,
		MaxConns:    cfg.PG.MaxConns,
		SlowMs:      cfg.PG.SlowQueryMs,
		Attempts:    cfg.PG.ConnectRetries,
		PingTimeout: cfg.PG.PingTimeout,
		OnRetry: func(attempt int, err error) {
			s.Log.Warn().Err(err).Int("attempt", attempt).Msg("postgres not ready")
		},
	}, tracer)
	if err != nil {
		return nil, err
	}
	return newPGAdapter(p), nil
}

// openSQLite opens the embedded database and wraps it with the sqlite adapter
func openSQLite(ctx context.Context, cfg Config, s *Store) (TxRunner, error) {
	var tracer trace.QueryTracer
	if cfg.SQLite.LogSQL {
		tracer = trace.Tracer(s.Log, "sqlite")
	}
	db, err := sqlite.Open(ctx, sqlite.Config{
		Path:     cfg.SQLite.Path,
		MaxConns: cfg.SQLite.MaxConns,
		SlowMs:   cfg.SQLite.SlowQueryMs,
	}, tracer)
	if err != nil {
		return nil, err
	}
	return newSQLiteAdapter(db), nil
}
