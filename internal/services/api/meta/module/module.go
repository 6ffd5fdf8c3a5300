// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	modkit "apisupport/internal/modkit"
	"apisupport/internal/modkit/httpkit"

	metahttp "apisupport/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	built modkit.Built
	deps  metahttp.Deps
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	d := metahttp.Deps{StartedAt: time.Now()}
	if deps.Store != nil {
		d.Store = deps.Store
	}
	if !deps.Latest.IsZero() {
		d.LatestVersion = deps.Latest.String()
	}
	return &Module{built: b, deps: d}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.built.Name }
