package pagination

import (
	"apisupport/internal/core/transform"
	"apisupport/internal/core/versioning"
)

// Page is one bounded slice of an ordered result set
type Page struct {
	Results []Row

	identity string
	next     string
	hasNext  bool
}

// NextCursor returns the identity of the first row after this page, if any
func (p *Page) NextCursor() (string, bool) { return p.next, p.hasNext }

// Meta is the meta block of the standard page response
type Meta struct {
	NextCursor *string `json:"next_cursor"`
}

// Response is {"data": [...], "meta": {"next_cursor": ...}}
type Response struct {
	Data []transform.Data `json:"data"`
	Meta Meta             `json:"meta"`
}

// LegacyCursor is the cursor block of the legacy response; previous is always null
type LegacyCursor struct {
	Previous *string `json:"previous"`
	Current  *string `json:"current"`
	Next     *string `json:"next"`
}

// LegacyMeta wraps LegacyCursor
type LegacyMeta struct {
	Cursor LegacyCursor `json:"cursor"`
}

// LegacyResponse is {"data": [...], "meta": {"cursor": {...}}}
type LegacyResponse struct {
	Data []transform.Data `json:"data"`
	Meta LegacyMeta       `json:"meta"`
}

// Response transforms the page rows for version v into the standard shape
func (p *Page) Response(t *transform.Transformer[Row], v versioning.APIVersion) Response {
	return Response{
		Data: t.TransformCollection(p.Results, v),
		Meta: Meta{NextCursor: p.nextPtr()},
	}
}

// LegacyResponse transforms the page rows for version v into the legacy cursor shape
// current is the identity of the first row on the page
func (p *Page) LegacyResponse(t *transform.Transformer[Row], v versioning.APIVersion) LegacyResponse {
	var current *string
	if len(p.Results) > 0 {
		if id, ok := identityOf(p.Results[0], p.identity); ok {
			current = &id
		}
	}
	return LegacyResponse{
		Data: t.TransformCollection(p.Results, v),
		Meta: LegacyMeta{Cursor: LegacyCursor{Current: current, Next: p.nextPtr()}},
	}
}

func (p *Page) nextPtr() *string {
	if !p.hasNext {
		return nil
	}
	n := p.next
	return &n
}
