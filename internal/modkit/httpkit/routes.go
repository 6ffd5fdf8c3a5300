package httpkit

import (
	"net/http"
	"strings"

	phttp "apisupport/internal/platform/net/http"
)

// Get registers h on GET path; a non Response result is wrapped in the data envelope
func Get(r Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, phttp.JSONHandlerNoBody(h))
}

// GetResponse registers h on GET path and writes whatever Response it returns
func GetResponse(r Router, path string, h func(*http.Request) Response) {
	r.Get(path, phttp.Handle(h))
}

// MountUnder opens a sub router at prefix with mw applied before mount registers routes on it
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(prefix, func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	})
}

// MountAPI mounts under /api/{generation}. The generation is part of the path and has nothing
// to do with the X-API-VERSION header, which picks the payload shape inside a generation.
//
//	httpkit.MountAPI(r, "v1", nil, func(api httpkit.Router) {
//		queues.MountRoutes(api)
//	})
func MountAPI(r Router, generation string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountUnder(r, "/api/"+strings.Trim(generation, "/"), mw, mount)
}

// MountAPIV1 is MountAPI for v1
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountAPI(r, "v1", mw, mount)
}
