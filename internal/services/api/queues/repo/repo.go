// Package repo provides sql access for queues on postgres or sqlite
package repo

import (
	"context"

	"apisupport/internal/core/pagination"
	"apisupport/internal/modkit/repokit"
	perr "apisupport/internal/platform/errors"
	"apisupport/internal/platform/store"
	"apisupport/internal/platform/store/sqlquery"
	pstrings "apisupport/internal/platform/strings"
	"apisupport/internal/services/api/queues/domain"

	sq "github.com/Masterminds/squirrel"
)

// From is the aliased table every queues select reads
const From = "queues q"

// Repo is the minimal persistence surface for queues
type Repo interface {
	// List is the ordered query the paginator walks
	List(f domain.Filter) pagination.Query
	ByUUID(ctx context.Context, id string) (pagination.Row, error)
	Insert(ctx context.Context, qs ...domain.Queue) error
	Count(ctx context.Context) (int64, error)
}

type queries struct{ q repokit.Queryer }

// NewSQL returns a binder that binds the repo to the pool or a tx
func NewSQL() repokit.Binder[Repo] {
	return repokit.BindFunc[Repo](func(q repokit.Queryer) Repo { return &queries{q: q} })
}

func (r *queries) selectQueues() *sqlquery.Select {
	return sqlquery.New(r.q, From).
		Columns("q.id", "q.uuid", "q.name", "q.venue", "q.status", "q.created_at").
		OrderBy("q.id", pagination.Asc)
}

func (r *queries) List(f domain.Filter) pagination.Query {
	s := r.selectQueues()
	if f.Status != "" {
		s = s.Filter(sq.Eq{"q.status": f.Status})
	}
	return s
}

func (r *queries) ByUUID(ctx context.Context, id string) (pagination.Row, error) {
	query, args, err := r.selectQueues().Filter(sq.Eq{"q.uuid": id}).ToSQL()
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeServer, "queues: build select")
	}
	row, err := store.Map(ctx, r.q, query, args...)
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return nil, perr.NotFoundf("queue %s not found", id)
	}
	return row, err
}

func (r *queries) Insert(ctx context.Context, qs ...domain.Queue) error {
	if len(qs) == 0 {
		return nil
	}
	b := sqlquery.Statement(r.q).Insert("queues").
		Columns("uuid", "name", "venue", "status", "created_at")
	for _, q := range qs {
		b = b.Values(q.UUID, q.Name, pstrings.SQLNullPtr(q.Venue), string(q.Status), q.CreatedAt.UTC())
	}
	query, args, err := b.ToSql()
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeServer, "queues: build insert")
	}
	return store.ExecAffected(ctx, r.q, int64(len(qs)), query, args...)
}

func (r *queries) Count(ctx context.Context) (int64, error) {
	return store.Scalar[int64](ctx, r.q, `SELECT count(*) FROM queues`)
}
