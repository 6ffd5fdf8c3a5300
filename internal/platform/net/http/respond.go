// Package http provides the chi router seam and JSON responders for the data and error envelopes
package http

import (
	"encoding/json"
	stdhttp "net/http"

	"apisupport/internal/platform/logger"
	pnet "apisupport/internal/platform/net"
)

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError writes the catalog envelope for err
// server errors are logged with their cause, which never reaches the body
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status, body := pnet.Error(err)
	if status >= stdhttp.StatusInternalServerError {
		logger.C(r.Context()).Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("client", pnet.Client(r.Context())).
			Msg("request failed")
	}
	if id := pnet.RequestID(r.Context()); id != "" {
		w.Header().Set("X-Request-ID", id)
	}
	JSON(w, status, body)
}

// Response is a functional response object for return-style handlers
type Response struct {
	Status int
	Body   any
	// optional headers if a handler wants to add any
	Header stdhttp.Header

	// raw bodies are written as is; others are wrapped in {"data": ...}
	raw bool
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	if err, ok := resp.Body.(error); ok && err != nil {
		RespondError(w, r, err)
		return
	}

	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	switch {
	case status == stdhttp.StatusNoContent:
		w.WriteHeader(status)
	case resp.raw:
		JSON(w, status, resp.Body)
	default:
		JSON(w, status, pnet.Data{Data: resp.Body})
	}
}

// OK returns a 200 {"data": v} response
func OK(v any) Response { return Response{Status: stdhttp.StatusOK, Body: v} }

// Raw returns body unwrapped; page shapes already carry their own data and meta keys
func Raw(status int, body any) Response { return Response{Status: status, Body: body, raw: true} }

// Error returns a response that maps the error to status and envelope
func Error(err error) Response { return Response{Body: err} }
