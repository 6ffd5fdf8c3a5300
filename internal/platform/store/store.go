// Package store provides the sql seams repos depend on and the backends behind them
package store

import (
	"context"
	"errors"
	"fmt"

	"apisupport/internal/platform/logger"
)

// Store is the facade for optional backends
// zero value is safe but does nothing
type Store struct {
	// Log is the logger used by subclients
	// zero means a no op zerolog logger
	Log logger.Logger

	// PG is the postgres seam, nil when disabled
	PG TxRunner

	// SQLite is the embedded seam, nil when disabled
	SQLite TxRunner
}

// Row exposes the minimal scan contract a single row needs
type Row interface {
	Scan(dest ...any) error
}

// Rows exposes the minimal iteration and scan for a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

// CommandTag is a tiny interface to inspect command results
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the read and write surface repos use for sql
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner wraps transaction execution around a function
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Dialect names the placeholder style a backend expects
type Dialect string

// Dialects
const (
	DialectPostgres Dialect = "postgres" // $1, $2
	DialectSQLite   Dialect = "sqlite"   // ?
)

// Dialecter is implemented by adapters that know their placeholder style
type Dialecter interface{ Dialect() Dialect }

// DialectOf returns q's dialect, defaulting to postgres
func DialectOf(q RowQuerier) Dialect {
	if d, ok := q.(Dialecter); ok {
		return d.Dialect()
	}
	return DialectPostgres
}

// Pinger is any seam that can report readiness
type Pinger interface{ Ping(context.Context) error }

// ErrNoBackend is returned by SQL when neither backend is enabled
var ErrNoBackend = errors.New("store: no sql backend enabled")

// Open constructs a Store with the requested backends
// backends not enabled in cfg remain nil on the Store
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	// defaults for zero logger to avoid nil checks
	s.Log = s.Log.With().Logger()

	if cfg.PG.Enabled {
		pgClient, err := openPG(ctx, cfg, s)
		if err != nil {
			return nil, err
		}
		s.PG = pgClient
	}

	if cfg.SQLite.Enabled {
		lite, err := openSQLite(ctx, cfg, s)
		if err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
		s.SQLite = lite
	}

	return s, nil
}

// SQL returns the backend repos should use: postgres when enabled, otherwise sqlite
func (s *Store) SQL() (TxRunner, error) {
	switch {
	case s == nil:
		return nil, ErrNoBackend
	case s.PG != nil:
		return s.PG, nil
	case s.SQLite != nil:
		return s.SQLite, nil
	}
	return nil, ErrNoBackend
}

// Guard pings every configured seam
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	var errs []error
	for name, seam := range map[string]TxRunner{"pg": s.PG, "sqlite": s.SQLite} {
		if seam == nil {
			continue
		}
		if p, ok := seam.(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
			}
		}
	}
	return errors.Join(errs...)
}

// Close closes all initialized backends gracefully
// nil backends are ignored
func (s *Store) Close(ctx context.Context) error {
	var errs []error
	for _, seam := range []TxRunner{s.PG, s.SQLite} {
		if c, ok := seam.(interface{ Close() error }); ok {
			if e := c.Close(); e != nil {
				errs = append(errs, e)
			}
		}
	}
	return errors.Join(errs...)
}
