// Package http provides the queues endpoints
package http

import (
	"net/http"

	"apisupport/internal/core/pagination"
	"apisupport/internal/core/versioning"
	"apisupport/internal/modkit/httpkit"
	perr "apisupport/internal/platform/errors"
	"apisupport/internal/platform/net/http/bind"
	"apisupport/internal/services/api/queues/domain"

	"github.com/google/uuid"
)

type handlers struct {
	svc domain.ServicePort
}

// Register mounts the queues routes
func Register(r httpkit.Router, svc domain.ServicePort) {
	h := &handlers{svc: svc}

	httpkit.GetResponse(r, "/", h.list)
	httpkit.GetResponse(r, "/legacy", h.legacy)
	httpkit.Get(r, "/{uuid}", h.get)
}

// listInput reads cursor_limit, cursor and status from the query string
func listInput(r *http.Request) (domain.ListInput, error) {
	page, err := pagination.FromHTTP(r)
	if err != nil {
		return domain.ListInput{}, err
	}
	f, err := bind.Query[domain.Filter](r.URL.Query())
	if err != nil {
		return domain.ListInput{}, err
	}
	return domain.ListInput{Page: page, Filter: f}, nil
}

// requestVersion is set by the api version middleware; its absence is a wiring bug
func requestVersion(r *http.Request) (versioning.APIVersion, error) {
	v, ok := versioning.FromContext(r.Context())
	if !ok {
		return versioning.APIVersion{}, perr.UnsupportedAPIVersionf("no api version on request context")
	}
	return v, nil
}

// @Summary List queues
// @Tags Queues
// @Param X-API-VERSION header string true "dd-mm-yyyy"
// @Param cursor_limit query int false "1 to 20"
// @Param cursor query string false "uuid of the first queue on the page"
// @Param status query string false "open or closed"
// @Router /queues [get]
func (h *handlers) list(r *http.Request) httpkit.Response {
	in, err := listInput(r)
	if err != nil {
		return httpkit.Error(err)
	}
	v, err := requestVersion(r)
	if err != nil {
		return httpkit.Error(err)
	}
	resp, err := h.svc.List(r.Context(), in, v)
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.Raw(http.StatusOK, resp)
}

// @Summary List queues in the legacy cursor shape
// @Tags Queues
// @Router /queues/legacy [get]
func (h *handlers) legacy(r *http.Request) httpkit.Response {
	in, err := listInput(r)
	if err != nil {
		return httpkit.Error(err)
	}
	v, err := requestVersion(r)
	if err != nil {
		return httpkit.Error(err)
	}
	resp, err := h.svc.ListLegacy(r.Context(), in, v)
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.Raw(http.StatusOK, resp)
}

// @Summary Fetch one queue
// @Tags Queues
// @Router /queues/{uuid} [get]
func (h *handlers) get(r *http.Request) (any, error) {
	id := httpkit.Param(r, "uuid")
	if _, err := uuid.Parse(id); err != nil {
		return nil, perr.NotFoundf("queue %q is not a uuid", id)
	}
	v, err := requestVersion(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Get(r.Context(), id, v)
}
