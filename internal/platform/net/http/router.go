package http

import "net/http"

// Handler is a plain handler func; chi and the json helpers both speak it
type Handler = func(http.ResponseWriter, *http.Request)

// Router is what modules mount against. Everything served here is read only,
// so GET and HEAD get shorthands and anything else goes through Method.
type Router interface {
	Get(path string, h Handler)
	Head(path string, h Handler)
	Method(method, path string, h Handler)
	Handle(path string, h http.Handler)

	Use(mw ...func(http.Handler) http.Handler)
	Group(fn func(Router))
	Route(pattern string, fn func(Router))

	// Mux is the underlying handler, for tests and for serving
	Mux() http.Handler
}
