// Package pagination implements forward-only cursor (seek) pagination over ordered queries.
//
// A page is fetched by resolving the cursor to its row, bounding every order-by column by that
// row's value (>= for ascending, <= for descending), and asking for one row more than the limit.
// The extra row, when present, is dropped from the page and its identity becomes the next cursor.
//
// Known limitations:
//   - The bound is inclusive per column with no tie breaking, so only a single, uniquely valued
//     order-by column walks every row exactly once. Several columns or duplicate values may skip
//     or repeat rows at page boundaries.
//   - Rows inserted or deleted inside the walked key range during a walk may be skipped or repeated.
//   - A cursor naming a row that no longer exists yields an empty page with no next cursor.
package pagination

import (
	"context"
	"fmt"
	"strconv"

	perr "apisupport/internal/platform/errors"
	"apisupport/internal/platform/logger"

	"github.com/google/uuid"
)

// DefaultIdentity is the column carrying each row's cursor token
const DefaultIdentity = "uuid"

// Paginator is immutable after construction and safe for concurrent use
type Paginator struct {
	identity string
}

// Option configures a Paginator
type Option func(*Paginator)

// WithIdentity sets the identity column (default "uuid")
func WithIdentity(column string) Option {
	return func(p *Paginator) {
		if column != "" {
			p.identity = column
		}
	}
}

// New builds a Paginator
func New(opts ...Option) *Paginator {
	p := &Paginator{identity: DefaultIdentity}
	for _, o := range opts {
		o(p)
	}
	return p
}

var std = New()

// Paginate runs the default paginator (identity column "uuid")
func Paginate(ctx context.Context, req Request, q Query) (*Page, error) {
	return std.Paginate(ctx, req, q)
}

// Identity returns the identity column name
func (p *Paginator) Identity() string { return p.identity }

// Paginate fetches one page of q starting at req's cursor
func (p *Paginator) Paginate(ctx context.Context, req Request, q Query) (*Page, error) {
	orders := q.Orders()
	if len(orders) == 0 {
		return nil, perr.WithOp(perr.Paginationf("%s", MsgOrderByMissing), "pagination.Paginate")
	}

	log := logger.C(ctx)
	limit := req.Limit()
	cursor, hasCursor := req.Cursor()

	if hasCursor {
		lookupCol := qualify(Alias(q.From()), p.identity)
		rows, err := q.Clone().Where(lookupCol, OpEq, cursor).Limit(1).Get(ctx)
		if err != nil {
			return nil, queryError(err, "resolve cursor")
		}
		if len(rows) == 0 {
			log.Debug().
				Str("cursor", cursor).
				Str("from", q.From()).
				Msg("pagination cursor resolved to no row")
			return &Page{identity: p.identity, Results: []Row{}}, nil
		}
		resolved := rows[0]

		for _, o := range orders {
			v, ok := lookup(resolved, o.Column)
			if !ok {
				return nil, perr.Internalf("pagination: cursor row has no value for order column %q", o.Column)
			}
			op := OpGte
			if o.Direction == Desc {
				op = OpLte
			}
			q = q.Where(o.Column, op, v)
		}
	}

	rows, err := q.Limit(limit + 1).Get(ctx)
	if err != nil {
		return nil, queryError(err, "fetch page")
	}

	page := &Page{identity: p.identity, Results: rows}
	if page.Results == nil {
		page.Results = []Row{}
	}
	if len(rows) > limit {
		extra := rows[limit]
		page.Results = rows[:limit]
		next, ok := identityOf(extra, p.identity)
		if !ok {
			return nil, perr.Internalf("pagination: row has no %q identity", p.identity)
		}
		page.next = next
		page.hasNext = true
	}

	log.Debug().
		Int("limit", limit).
		Str("cursor", cursor).
		Int("rows", len(page.Results)).
		Str("next_cursor", page.next).
		Msg("pagination page")

	return page, nil
}

// queryError keeps store errors as mapped and wraps anything foreign as a server error
func queryError(err error, op string) error {
	if _, ok := perr.As(err); ok {
		return perr.WithOp(err, "pagination."+op)
	}
	return perr.WithOp(perr.Wrap(err, perr.ErrorCodeServer, "pagination: "+op), "pagination."+op)
}

// identityOf stringifies the identity column of row
func identityOf(row Row, column string) (string, bool) {
	v, ok := lookup(row, column)
	if !ok || v == nil {
		return "", false
	}
	switch x := v.(type) {
	case string:
		return x, true
	case []byte:
		if len(x) == 16 {
			if u, err := uuid.FromBytes(x); err == nil {
				return u.String(), true
			}
		}
		return string(x), true
	case uuid.UUID:
		return x.String(), true
	case [16]byte:
		return uuid.UUID(x).String(), true
	case fmt.Stringer:
		return x.String(), true
	case int:
		return strconv.Itoa(x), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	default:
		return fmt.Sprint(x), true
	}
}
