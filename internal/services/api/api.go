// Package api composes the HTTP API out of the meta and queues modules
package api

import (
	"time"

	"apisupport/internal/core/versioning"
	"apisupport/internal/modkit"
	"apisupport/internal/modkit/httpkit"
	"apisupport/internal/modkit/swaggerkit"
	"apisupport/internal/platform/config"
	perr "apisupport/internal/platform/errors"
	"apisupport/internal/platform/logger"
	phttp "apisupport/internal/platform/net/http"
	"apisupport/internal/platform/net/middleware"
	"apisupport/internal/platform/store"

	metamod "apisupport/internal/services/api/meta/module"
	queuesdomain "apisupport/internal/services/api/queues/domain"
	queuesmod "apisupport/internal/services/api/queues/module"
)

// DefaultLatest is the newest version the bundled transformers know about
var DefaultLatest = versioning.MustParse(queuesdomain.VersionOpened)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Tokens         middleware.Tokens
	Latest         versioning.APIVersion
	CORSOrigins    []string
	MaxInFlight    int
	EnableSwagger  bool
	EnableProfiler bool
}

// FromConfig reads the CORE_API_ keys; Store is left for the caller to open
func FromConfig(c config.Conf) Options {
	api := c.Prefix("CORE_API_")
	return Options{
		Config:         c,
		Tokens:         middleware.ParseTokens(api.MayCSV("TOKENS", nil)),
		Latest:         config.MayParse(api, "LATEST_VERSION", DefaultLatest, versioning.Parse),
		CORSOrigins:    api.MayCSV("CORS_ORIGINS", nil),
		MaxInFlight:    api.MayInt("MAX_INFLIGHT", 0),
		EnableSwagger:  api.MayBool("SWAGGER", true),
		EnableProfiler: api.MayBool("PROFILER", false),
	}
}

// ServerOptions reads the listen address and timeouts
func ServerOptions(c config.Conf) phttp.ServerOptions {
	api := c.Prefix("CORE_API_")
	return phttp.ServerOptions{
		Addr:              api.MayPort("PORT", 4000),
		ReadHeaderTimeout: api.MayDuration("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      api.MayDuration("WRITE_TIMEOUT", 0),
	}
}

// StoreConfig reads the SERVICE_PGSQL_ and SERVICE_SQLITE_ keys
// with nothing set the store falls back to an in-memory sqlite database
func StoreConfig(c config.Conf) store.Config {
	pg := c.Prefix("SERVICE_PGSQL_")
	lite := c.Prefix("SERVICE_SQLITE_")

	cfg := store.Config{
		AppName: c.Prefix("LOG_").MayString("SERVICE", "apisupport-api"),
		PG: store.PGConfig{
			Enabled:        pg.MayBool("ENABLED", false),
			MaxConns:       int32(pg.MayInt("MAX_CONNS", 10)),
			LogSQL:         pg.MayBool("LOG_SQL", false),
			SlowQueryMs:    pg.MayInt("SLOW_MS", 250),
			ConnectRetries: pg.MayInt("CONNECT_RETRIES", 0),
		},
		SQLite: store.SQLiteConfig{
			Enabled:     lite.MayBool("ENABLED", true),
			Path:        lite.MayString("PATH", ":memory:"),
			LogSQL:      lite.MayBool("LOG_SQL", false),
			SlowQueryMs: lite.MayInt("SLOW_MS", 250),
		},
	}
	if cfg.PG.Enabled {
		cfg.PG.URL = pg.MustString("DBURL")
	}
	return cfg
}

// Mount mounts the API onto r; r must not have routes yet since chi wants middleware first
func Mount(r phttp.Router, opt Options) (*queuesmod.Module, error) {
	if opt.Latest.IsZero() {
		opt.Latest = DefaultLatest
	}
	sql, err := opt.Store.SQL()
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeServer, "api: no sql backend")
	}

	deps := modkit.Deps{
		Log:    *logger.Get(),
		Cfg:    opt.Config,
		SQL:    sql,
		Store:  opt.Store,
		Latest: opt.Latest,
	}

	queues := queuesmod.New(deps,
		modkit.WithMiddlewares(httpkit.APIStack(opt.Tokens, opt.Latest)...),
	)
	mods := []modkit.Module{
		metamod.New(deps),
		queues,
	}

	r.Use(httpkit.CommonStack(httpkit.StackOptions{
		CORSOrigins: opt.CORSOrigins,
		MaxInFlight: opt.MaxInFlight,
	})...)

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.MountAPIV1(r, nil, func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})

	deps.Log.Info().
		Str("latest_api_version", opt.Latest.String()).
		Int("tokens", len(opt.Tokens)).
		Bool("swagger", opt.EnableSwagger).
		Msg("api mounted")

	return queues, nil
}
