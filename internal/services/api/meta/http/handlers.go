// Package http provides meta endpoints
package http

import (
	"context"
	"net/http"
	"time"

	"apisupport/internal/core/version"
	"apisupport/internal/modkit/httpkit"
	perr "apisupport/internal/platform/errors"
)

// Guard is satisfied by *store.Store
type Guard interface {
	Guard(context.Context) error
}

// Deps are the handler dependencies
type Deps struct {
	StartedAt time.Time
	// Store is nil when the api runs without a sql backend
	Store Guard
	// LatestVersion is the newest X-API-VERSION served, empty when unbounded
	LatestVersion string
}

type handlers struct {
	deps Deps
	now  func() time.Time
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d, now: time.Now}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
}

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"apisupport-api"`
	Started string `json:"started" example:"2021-03-01T09:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string `json:"status" example:"ok"` // ok or skipped
	Now    string `json:"now"    example:"2021-03-01T09:05:00Z"`
}

// VersionResponse is build info plus the api versions served
type VersionResponse struct {
	version.BuildInfo
	LatestAPIVersion string `json:"latest_api_version,omitempty" example:"01-03-2021"`
}

// @Summary Health check
// @Tags Meta
// @Produce json
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	now := h.now()
	return HealthResponse{
		OK:      true,
		Service: version.Service,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(now.Sub(h.deps.StartedAt) / time.Second),
	}, nil
}

// @Summary Readiness probe, pings every configured backend
// @Tags Meta
// @Produce json
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	resp := ReadyResponse{Status: "ok", Now: h.now().UTC().Format(time.RFC3339)}
	if h.deps.Store == nil {
		resp.Status = "skipped"
		return resp, nil
	}
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.deps.Store.Guard(ctx); err != nil {
		return nil, perr.WithOp(perr.Wrap(err, perr.ErrorCodeServer, "store not ready"), "meta.ready")
	}
	return resp, nil
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return VersionResponse{BuildInfo: version.Info(), LatestAPIVersion: h.deps.LatestVersion}, nil
}
