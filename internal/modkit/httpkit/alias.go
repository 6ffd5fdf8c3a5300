// Package httpkit is the slice of the platform http package that modules use,
// so handlers never import internal/platform/net/http themselves
package httpkit

import (
	"net/http"

	phttp "apisupport/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

type (
	// Response is a status plus a body to encode
	Response = phttp.Response

	// Handler is the platform handler func
	Handler = phttp.Handler

	// Router is the platform router
	Router = phttp.Router
)

// OK wraps data in the {"data": ...} envelope with a 200
func OK(data any) Response { return phttp.OK(data) }

// Raw writes body without the data envelope; list endpoints carry their own
func Raw(status int, body any) Response { return phttp.Raw(status, body) }

// Error maps err onto its catalog status and error envelope
func Error(err error) Response { return phttp.Error(err) }

// Param is the named path parameter of the matched route
func Param(r *http.Request, name string) string { return chi.URLParam(r, name) }
