// Package service contains queues workflows: paging, shaping per api version and seeding
package service

import (
	"context"

	"apisupport/internal/core/pagination"
	"apisupport/internal/core/transform"
	"apisupport/internal/core/versioning"
	"apisupport/internal/modkit/repokit"
	"apisupport/internal/platform/logger"
	"apisupport/internal/services/api/queues/domain"
	"apisupport/internal/services/api/queues/repo"
)

// Service defines the queues service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the queues service
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	pager  *pagination.Paginator
	tf     *transform.Transformer[pagination.Row]
}

var _ Service = (*Svc)(nil)

// New constructs a queues service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("queues.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("queues.Service requires a non nil Repo binder")
	}
	return &Svc{
		Repo:   repokit.MustBind(binder, db),
		binder: binder,
		db:     db,
		pager:  pagination.New(),
		tf:     domain.NewTransformer(),
	}
}

func (s *Svc) page(ctx context.Context, in domain.ListInput) (*pagination.Page, error) {
	return s.pager.Paginate(ctx, in.Page, s.Repo.List(in.Filter))
}

// List returns one page of queues in the standard shape
func (s *Svc) List(ctx context.Context, in domain.ListInput, v versioning.APIVersion) (pagination.Response, error) {
	p, err := s.page(ctx, in)
	if err != nil {
		return pagination.Response{}, err
	}
	return p.Response(s.tf, v), nil
}

// ListLegacy returns one page of queues in the legacy cursor shape
func (s *Svc) ListLegacy(ctx context.Context, in domain.ListInput, v versioning.APIVersion) (pagination.LegacyResponse, error) {
	p, err := s.page(ctx, in)
	if err != nil {
		return pagination.LegacyResponse{}, err
	}
	return p.LegacyResponse(s.tf, v), nil
}

// Get returns one queue shaped for v
func (s *Svc) Get(ctx context.Context, id string, v versioning.APIVersion) (transform.Data, error) {
	row, err := s.Repo.ByUUID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.tf.TransformModel(row, v), nil
}

// Migrate creates the queues schema
func (s *Svc) Migrate(ctx context.Context) error {
	return repo.Migrate(ctx, s.db)
}

// Seed inserts n demo queues in one transaction unless the table already has rows
// it returns how many rows were inserted
func (s *Svc) Seed(ctx context.Context, n int) (int, error) {
	log := logger.C(ctx)
	have, err := s.Repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if have > 0 {
		log.Info().Int64("rows", have).Msg("queues already seeded")
		return 0, nil
	}
	qs := Fixtures(n)
	err = repokit.InTx(ctx, s.db, s.binder, func(r repo.Repo) error {
		return r.Insert(ctx, qs...)
	})
	if err != nil {
		return 0, err
	}
	log.Info().Int("rows", len(qs)).Msg("queues seeded")
	return len(qs), nil
}
