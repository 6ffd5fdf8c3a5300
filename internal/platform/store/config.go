package store

import (
	"time"

	"apisupport/internal/platform/logger"
)

// Config picks the backends Open brings up; a disabled backend stays nil on the Store
type Config struct {
	AppName string // postgres application_name

	PG     PGConfig
	SQLite SQLiteConfig
}

// PGConfig configures the postgres pool
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// zero means 20 attempts with a 3s ping timeout each
	ConnectRetries int
	PingTimeout    time.Duration
}

// SQLiteConfig configures the embedded database
type SQLiteConfig struct {
	Enabled     bool
	Path        string // file path or ":memory:"
	MaxConns    int
	LogSQL      bool
	SlowQueryMs int
}

// Option adjusts the Store before any backend opens
type Option func(*Store) error

// WithLogger sends backend logs, slow queries and connect retries included, to log
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}
