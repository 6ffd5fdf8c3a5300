// Package sqlquery builds ordered SELECTs with squirrel and runs them through a store seam.
// Select implements pagination.Query so repos hand it straight to the paginator.
package sqlquery

import (
	"context"
	"strings"

	"apisupport/internal/core/pagination"
	perr "apisupport/internal/platform/errors"
	"apisupport/internal/platform/store"

	sq "github.com/Masterminds/squirrel"
)

// Select is an immutable SELECT; every builder method returns a modified copy
type Select struct {
	q       store.RowQuerier
	from    string
	columns []string
	exprs   []aliased
	orders  []pagination.Order
	filters []sq.Sqlizer
	limit   int
}

type aliased struct{ name, expr string }

var _ pagination.Query = (*Select)(nil)

// New starts a SELECT over from ("queues" or "queues q") on q
func New(q store.RowQuerier, from string) *Select {
	return &Select{q: q, from: from}
}

// Columns appends plain select columns
func (s *Select) Columns(cols ...string) *Select {
	c := s.clone()
	c.columns = append(c.columns, cols...)
	return c
}

// As selects expr under name; OrderBy and Where may then refer to name
func (s *Select) As(name, expr string) *Select {
	c := s.clone()
	c.exprs = append(c.exprs, aliased{name: name, expr: expr})
	return c
}

// OrderBy appends an order-by clause
func (s *Select) OrderBy(column string, dir pagination.Direction) *Select {
	c := s.clone()
	c.orders = append(c.orders, pagination.Order{Column: column, Direction: dir})
	return c
}

// Filter adds an arbitrary squirrel predicate (sq.Eq, sq.Like, sq.Expr...)
func (s *Select) Filter(pred sq.Sqlizer) *Select {
	c := s.clone()
	c.filters = append(c.filters, pred)
	return c
}

// Orders implements pagination.Query
func (s *Select) Orders() []pagination.Order {
	out := make([]pagination.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

// From implements pagination.Query
func (s *Select) From() string { return s.from }

// Where implements pagination.Query; aliased names are replaced by their expression
func (s *Select) Where(column string, op pagination.Operator, value any) pagination.Query {
	col := s.resolve(column)
	var pred sq.Sqlizer
	switch op {
	case pagination.OpGte:
		pred = sq.GtOrEq{col: value}
	case pagination.OpLte:
		pred = sq.LtOrEq{col: value}
	default:
		pred = sq.Eq{col: value}
	}
	return s.Filter(pred)
}

// Limit implements pagination.Query; n <= 0 removes the limit
func (s *Select) Limit(n int) pagination.Query {
	c := s.clone()
	c.limit = max(n, 0)
	return c
}

// Clone implements pagination.Query
func (s *Select) Clone() pagination.Query { return s.clone() }

// Get implements pagination.Query
func (s *Select) Get(ctx context.Context) ([]pagination.Row, error) {
	query, args, err := s.ToSQL()
	if err != nil {
		return nil, err
	}
	rows, err := store.Maps(ctx, s.q, query, args...)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []pagination.Row{}
	}
	return rows, nil
}

// ToSQL renders the statement with placeholders for the seam's dialect
func (s *Select) ToSQL() (string, []any, error) {
	b := Statement(s.q).
		Select(s.selectList()...).
		From(s.from)
	for _, f := range s.filters {
		b = b.Where(f)
	}
	for _, o := range s.orders {
		b = b.OrderBy(o.Column + " " + strings.ToUpper(string(o.Direction)))
	}
	if s.limit > 0 {
		b = b.Limit(uint64(s.limit))
	}
	query, args, err := b.ToSql()
	if err != nil {
		return "", nil, perr.WithOp(perr.Wrap(err, perr.ErrorCodeServer, "sqlquery: build select"), "sqlquery.ToSQL")
	}
	return query, args, nil
}

func (s *Select) selectList() []string {
	cols := make([]string, 0, len(s.columns)+len(s.exprs))
	cols = append(cols, s.columns...)
	for _, e := range s.exprs {
		cols = append(cols, e.expr+" AS "+e.name)
	}
	if len(cols) == 0 {
		cols = append(cols, "*")
	}
	return cols
}

// resolve maps an output alias to its expression; postgres rejects aliases in WHERE
func (s *Select) resolve(column string) string {
	for _, e := range s.exprs {
		if e.name == column {
			return e.expr
		}
	}
	return column
}

func (s *Select) clone() *Select {
	c := *s
	c.columns = append([]string(nil), s.columns...)
	c.exprs = append([]aliased(nil), s.exprs...)
	c.orders = append([]pagination.Order(nil), s.orders...)
	c.filters = append([]sq.Sqlizer(nil), s.filters...)
	return &c
}

// Statement returns a squirrel builder using q's placeholder style, for inserts and updates
func Statement(q store.RowQuerier) sq.StatementBuilderType {
	if store.DialectOf(q) == store.DialectSQLite {
		return sq.StatementBuilder.PlaceholderFormat(sq.Question)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}
