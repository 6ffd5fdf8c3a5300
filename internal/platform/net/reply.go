package net

import (
	perr "apisupport/internal/platform/errors"
)

// Data is the success body for a single resource: {"data": ...}
type Data struct {
	Data any `json:"data"`
}

// Error builds the catalog error body for err
// foreign errors render as server.error without leaking their text
func Error(err error) (int, perr.Wire) {
	if err == nil {
		err = perr.Internalf("nil error rendered")
	}
	return perr.HTTPStatus(err), perr.WireFrom(err)
}
