// Package module wires queues into the API using modkit
package module

import (
	modkit "apisupport/internal/modkit"
	"apisupport/internal/modkit/httpkit"

	queueshttp "apisupport/internal/services/api/queues/http"
	queuesrepo "apisupport/internal/services/api/queues/repo"
	queuessvc "apisupport/internal/services/api/queues/service"
)

// Module implements the queues module
type Module struct {
	built modkit.Built
	svc   *queuessvc.Svc
}

// New constructs the queues module; deps.SQL must be set
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	if !deps.HasSQL() {
		panic("queues: module needs a sql backend")
	}
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("queues"),
		modkit.WithPrefix("/queues"),
	}, opts...)...)

	return &Module{
		built: b,
		svc:   queuessvc.New(deps.SQL, queuesrepo.NewSQL()),
	}
}

// Service exposes the queues service to the migrate and seed commands
func (m *Module) Service() *queuessvc.Svc { return m.svc }

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) { queueshttp.Register(rr, m.svc) })
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.built.Name }

var _ modkit.Module = (*Module)(nil)
