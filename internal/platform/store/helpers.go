package store

import (
	"context"
	"time"

	perr "apisupport/internal/platform/errors"
)

// Exec runs a write and returns the raw CommandTag
func Exec(ctx context.Context, q RowQuerier, sql string, args ...any) (CommandTag, error) {
	return q.Exec(ctx, sql, args...)
}

// ExecAffected runs a write and fails unless exactly want rows changed
func ExecAffected(ctx context.Context, q RowQuerier, want int64, sql string, args ...any) error {
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if got := tag.RowsAffected(); got != want {
		return perr.Internalf("expected %d rows affected, got %d", want, got)
	}
	return nil
}

// Scalar scans the first column of the first row into T; no row is a not-found error
func Scalar[T any](ctx context.Context, q RowQuerier, sql string, args ...any) (T, error) {
	var v T
	if err := q.QueryRow(ctx, sql, args...).Scan(&v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// Map returns exactly one row keyed by column name
func Map(ctx context.Context, q RowQuerier, sql string, args ...any) (map[string]any, error) {
	ms, err := collect(ctx, q, 2, sql, args...)
	switch {
	case err != nil:
		return nil, err
	case len(ms) == 0:
		return nil, perr.ErrNotFound
	case len(ms) > 1:
		return nil, perr.Internalf("expected 1 row, got more")
	}
	return ms[0], nil
}

// Maps returns every row keyed by column name, the shape the paginator consumes
func Maps(ctx context.Context, q RowQuerier, sql string, args ...any) ([]map[string]any, error) {
	return collect(ctx, q, -1, sql, args...)
}

// collect scans up to limit rows (all when limit < 0)
func collect(ctx context.Context, q RowQuerier, limit int, sql string, args ...any) ([]map[string]any, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []map[string]any
	for (limit < 0 || len(out) < limit) && rows.Next() {
		m, err := scanMap(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// scanMap reads the current row into column -> value
func scanMap(rows Rows) (map[string]any, error) {
	cols := rows.Columns()
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, err
	}
	m := make(map[string]any, len(cols))
	for i, c := range cols {
		m[c] = flatten(vals[i])
	}
	return m, nil
}

// flatten turns *time.Time into time.Time and text returned as []byte into string
func flatten(v any) any {
	switch x := v.(type) {
	case *time.Time:
		if x == nil {
			return nil
		}
		return *x
	case []byte:
		return string(x)
	}
	return v
}
