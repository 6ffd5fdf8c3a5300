package pagination

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	perr "apisupport/internal/platform/errors"
	"apisupport/internal/platform/net/http/bind"
)

// Limits accepted for a page
const (
	MinLimit     = 1
	MaxLimit     = 20
	DefaultLimit = 10
)

// Query string keys read by FromValues
const (
	ParamLimit  = "cursor_limit"
	ParamCursor = "cursor"
)

// Messages rendered as the description of pagination errors
const (
	MsgInvalidLimit   = "Pagination only supports a limit between 1 and 20."
	MsgInvalidCursor  = "An invalid pagination cursor was provided."
	MsgOrderByMissing = "An order-by clause must be set to use pagination."
)

// Request is an immutable, validated (limit, cursor) pair
type Request struct {
	limit  int
	cursor string
}

type requestInput struct {
	Limit  int    `json:"cursor_limit" validate:"min=1,max=20"`
	Cursor string `json:"cursor" validate:"omitempty,uuid"`
}

// NewRequest validates limit and cursor; an empty cursor means the first page
func NewRequest(limit int, cursor string) (Request, error) {
	in := requestInput{Limit: limit, Cursor: cursor}
	if err := bind.Validate(in); err != nil {
		return Request{}, requestError(err)
	}
	return Request{limit: limit, cursor: cursor}, nil
}

// DefaultRequest is the first page with the default limit
func DefaultRequest() Request { return Request{limit: DefaultLimit} }

// FromValues reads cursor_limit and cursor from a query string
// A missing or blank cursor_limit falls back to DefaultLimit
func FromValues(v url.Values) (Request, error) {
	limit := DefaultLimit
	if raw := strings.TrimSpace(v.Get(ParamLimit)); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Request{}, perr.WithField(perr.Paginationf("%s", MsgInvalidLimit), ParamLimit)
		}
		limit = n
	}
	return NewRequest(limit, strings.TrimSpace(v.Get(ParamCursor)))
}

// FromHTTP is FromValues over the request query string
func FromHTTP(r *http.Request) (Request, error) { return FromValues(r.URL.Query()) }

// Limit returns the page size
func (r Request) Limit() int {
	if r.limit == 0 {
		return DefaultLimit
	}
	return r.limit
}

// Cursor returns the cursor and whether one was given
func (r Request) Cursor() (string, bool) { return r.cursor, r.cursor != "" }

// requestError maps a validation failure onto the pagination message for its field
func requestError(err error) error {
	e, ok := perr.As(err)
	if !ok || e.Code() != perr.ErrorCodeInvalidRequest {
		return err
	}
	switch e.Field() {
	case ParamLimit:
		return perr.WithField(perr.Paginationf("%s", MsgInvalidLimit), ParamLimit)
	case ParamCursor:
		return perr.WithField(perr.Paginationf("%s", MsgInvalidCursor), ParamCursor)
	}
	return perr.Paginationf("%s", e.Message())
}
