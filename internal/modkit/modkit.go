package modkit

import (
	phttp "apisupport/internal/platform/net/http"
)

// Module is a unit of the API that owns a route prefix
type Module interface {
	MountRoutes(r phttp.Router)
	Name() string
}
