package http

import (
	"net/http"
)

// JSONHandlerNoBody adapts fn to a platform Handler without reading a request body
// a returned Response is written as is, anything else becomes {"data": out}
func JSONHandlerNoBody(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		out, err := fn(r)
		if err != nil {
			return Error(err)
		}
		if resp, ok := out.(Response); ok {
			return resp
		}
		return OK(out)
	})
}
