package domain

import (
	"context"

	"apisupport/internal/core/pagination"
	"apisupport/internal/core/transform"
	"apisupport/internal/core/versioning"
)

// ServicePort is what the http layer needs from the queues service
type ServicePort interface {
	List(ctx context.Context, in ListInput, v versioning.APIVersion) (pagination.Response, error)
	ListLegacy(ctx context.Context, in ListInput, v versioning.APIVersion) (pagination.LegacyResponse, error)
	Get(ctx context.Context, id string, v versioning.APIVersion) (transform.Data, error)
}
