package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	perr "apisupport/internal/platform/errors"
	"apisupport/internal/platform/store/sqlite"
	"apisupport/internal/platform/store/trace"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// sqlExecer is the surface shared by *sql.DB and *sql.Tx
type sqlExecer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// sqliteAdapter wraps sqlite.DB and implements RowQuerier + TxRunner
type sqliteAdapter struct {
	db *sqlite.DB
	sqliteQuerier
}

func newSQLiteAdapter(db *sqlite.DB) *sqliteAdapter {
	return &sqliteAdapter{
		db:            db,
		sqliteQuerier: sqliteQuerier{x: db.SQL, tracer: db.Tracer, slowMs: db.SlowMs},
	}
}

func (a *sqliteAdapter) Ping(ctx context.Context) error {
	if a == nil || a.db == nil {
		return errors.New("sqlite: nil adapter")
	}
	return a.db.SQL.PingContext(ctx)
}

func (a *sqliteAdapter) Close() error { return a.db.Close() }

func (a *sqliteAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.db.SQL.BeginTx(ctx, nil)
	if err != nil {
		return sqliteErr(err, "sqlite begin")
	}
	q := sqliteQuerier{x: tx, tracer: a.tracer, slowMs: a.slowMs}
	if err := fn(q); err != nil {
		_ = tx.Rollback()
		return err
	}
	return sqliteErr(tx.Commit(), "sqlite commit")
}

// sqliteQuerier runs statements on a handle or a transaction
type sqliteQuerier struct {
	x      sqlExecer
	tracer trace.QueryTracer
	slowMs int
}

func (q sqliteQuerier) Dialect() Dialect { return DialectSQLite }

func (q sqliteQuerier) Exec(ctx context.Context, query string, args ...any) (CommandTag, error) {
	start := time.Now()
	res, err := q.x.ExecContext(ctx, query, args...)
	q.emit(ctx, query, args, start, err)
	if err != nil {
		return nil, sqliteErr(err, "sqlite exec")
	}
	n, _ := res.RowsAffected()
	return sqlTag{affected: n}, nil
}

func (q sqliteQuerier) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := q.x.QueryContext(ctx, query, args...)
	q.emit(ctx, query, args, start, err)
	if err != nil {
		return nil, sqliteErr(err, "sqlite query")
	}
	cols, err := rs.Columns()
	if err != nil {
		_ = rs.Close()
		return nil, sqliteErr(err, "sqlite columns")
	}
	return sqlRows{r: rs, cols: cols}, nil
}

func (q sqliteQuerier) QueryRow(ctx context.Context, query string, args ...any) Row {
	start := time.Now()
	r := q.x.QueryRowContext(ctx, query, args...)
	return sqlRow{r: r, after: func(err error) { q.emit(ctx, query, args, start, err) }}
}

func (q sqliteQuerier) emit(ctx context.Context, query string, args []any, start time.Time, err error) {
	if q.tracer == nil {
		return
	}
	elapsedUS := time.Since(start).Microseconds()
	q.tracer.OnQuery(ctx, trace.QueryEvent{
		SQL:       query,
		Args:      args,
		ElapsedUS: elapsedUS,
		Err:       err,
		Slow:      trace.IsSlow(elapsedUS, q.slowMs),
	})
}

// sqliteErr maps driver failures onto the catalog: no rows -> not found, unique -> conflict,
// other constraint failures -> invalid request
func sqliteErr(err error, msg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return perr.Wrap(err, perr.ErrorCodeNotFound, msg)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var se sqlite3.Error
	if errors.As(err, &se) {
		switch {
		case se.ExtendedCode == sqlite3.ErrConstraintUnique, se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey:
			return perr.Wrap(err, perr.ErrorCodeConflict, msg)
		case se.Code == sqlite3.ErrConstraint:
			return perr.Wrap(err, perr.ErrorCodeInvalidRequest, msg)
		case se.Code == sqlite3.ErrBusy, se.Code == sqlite3.ErrLocked:
			return perr.Wrap(err, perr.ErrorCodeConflict, msg)
		}
	}
	return perr.Wrap(err, perr.ErrorCodeServer, msg)
}

type sqlRow struct {
	r     *sql.Row
	after func(error)
}

func (x sqlRow) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	if x.after != nil {
		x.after(err)
	}
	return sqliteErr(err, "sqlite scan")
}

type sqlRows struct {
	r    *sql.Rows
	cols []string
}

func (x sqlRows) Next() bool            { return x.r.Next() }
func (x sqlRows) Scan(dst ...any) error { return sqliteErr(x.r.Scan(dst...), "sqlite scan") }
func (x sqlRows) Err() error            { return sqliteErr(x.r.Err(), "sqlite rows") }
func (x sqlRows) Close()                { _ = x.r.Close() }
func (x sqlRows) Columns() []string     { return x.cols }

// sqlTag renders database/sql results in the pg command tag style
type sqlTag struct{ affected int64 }

func (t sqlTag) String() string      { return fmt.Sprintf("OK %d", t.affected) }
func (t sqlTag) RowsAffected() int64 { return t.affected }
