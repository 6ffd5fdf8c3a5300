// Package pg opens the pgxpool behind the postgres store adapter and waits for the server
package pg

import (
	"context"
	"fmt"
	"time"

	"apisupport/internal/platform/store/trace"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultAttempts    = 20
	defaultPingTimeout = 3 * time.Second
	backoffStart       = 150 * time.Millisecond
	backoffCeiling     = 2 * time.Second
)

// Config configures the pool and the boot wait
type Config struct {
	URL      string
	AppName  string
	MaxConns int32
	SlowMs   int

	// Attempts and PingTimeout bound the wait for the server; zero picks 20 and 3s
	Attempts    int
	PingTimeout time.Duration

	// OnRetry is told about every failed ping before the backoff sleep
	OnRetry func(attempt int, err error)
}

// PG is an open pool plus the tracer and slow threshold the adapter reports with
type PG struct {
	Pool   *pgxpool.Pool
	Tracer trace.QueryTracer
	SlowMs int
}

// seams for tests
var (
	newPool = pgxpool.NewWithConfig
	ping    = func(ctx context.Context, p *pgxpool.Pool) error { return p.Ping(ctx) }
	sleep   = time.Sleep
)

// poolConfig turns cfg into a pgxpool config
func poolConfig(cfg Config) (*pgxpool.Config, error) {
	pc, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("pg: parse url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if cfg.AppName != "" {
		if pc.ConnConfig.RuntimeParams == nil {
			pc.ConnConfig.RuntimeParams = map[string]string{}
		}
		pc.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}
	return pc, nil
}

// Open builds the pool and pings until the server answers, backing off between attempts.
// The pool is closed again if the server never answers or ctx ends first.
func Open(ctx context.Context, cfg Config, tracer trace.QueryTracer) (*PG, error) {
	pc, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}
	pool, err := newPool(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("pg: new pool: %w", err)
	}

	attempts := cfg.Attempts
	if attempts <= 0 {
		attempts = defaultAttempts
	}
	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}

	var lastErr error
	backoff := backoffStart
	for i := 1; i <= attempts; i++ {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		lastErr = ping(pctx, pool)
		cancel()
		if lastErr == nil {
			return &PG{Pool: pool, Tracer: tracer, SlowMs: cfg.SlowMs}, nil
		}
		if ctx.Err() != nil {
			pool.Close()
			return nil, ctx.Err()
		}
		if cfg.OnRetry != nil {
			cfg.OnRetry(i, lastErr)
		}
		if i < attempts {
			sleep(backoff)
			backoff = min(backoff*2, backoffCeiling)
		}
	}
	pool.Close()
	return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", attempts, lastErr)
}

// Close closes the pool; nil safe
func (p *PG) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}
