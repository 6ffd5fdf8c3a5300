// Package domain holds the queues resource model, its versioned payload and ports
package domain

import (
	"time"

	"apisupport/internal/core/pagination"
)

// Status is the lifecycle state of a queue
type Status string

// Statuses
const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Queue is one waiting line at a venue
type Queue struct {
	UUID      string
	Name      string
	Venue     *string
	Status    Status
	CreatedAt time.Time
}

// Filter narrows a listing; zero means every queue
type Filter struct {
	Status string `json:"status" validate:"omitempty,oneof=open closed"`
}

// ListInput is a validated page request plus filter
type ListInput struct {
	Page   pagination.Request
	Filter Filter
}
