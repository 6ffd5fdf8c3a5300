// Package modkit provides module wiring and core deps
package modkit

import (
	"apisupport/internal/core/versioning"
	"apisupport/internal/modkit/repokit"
	"apisupport/internal/platform/config"
	"apisupport/internal/platform/logger"
	"apisupport/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf

	// SQL is the backend repos bind to, postgres when enabled, otherwise sqlite
	SQL repokit.TxRunner

	// Store is consulted by readiness checks, nil in most tests
	Store *store.Store

	// Latest is the newest api version the service answers, zero means unbounded
	Latest versioning.APIVersion
}

// HasSQL reports whether a sql backend is wired
func (d Deps) HasSQL() bool { return d.SQL != nil }
