// Package swaggerkit serves the hand maintained OpenAPI document and the swagger UI over it
package swaggerkit

import (
	_ "embed"
	"net/http"

	phttp "apisupport/internal/platform/net/http"
)

// DocPath is where the OpenAPI document is served
const DocPath = "/api/docs/doc.json"

//go:embed openapi.json
var doc []byte

// Doc returns a copy of the embedded OpenAPI document
func Doc() []byte { return append([]byte(nil), doc...) }

// Mount the swagger UI and its JSON document when enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get(DocPath, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(doc)
	})
	phttp.MountSwaggerUI(r, "/api/docs", DocPath)
}
