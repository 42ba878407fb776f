// Package config loads process configuration from CLUBSYNC_* environment variables.
// Tracing is configured separately by the otel package.
package config

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata" // CLUBSYNC_TZ must resolve in minimal containers

	"github.com/caarlos0/env/v11"
)

// EnvProduction is the CLUBSYNC_ENV value that turns on production checks.
const EnvProduction = "production"

// Web configures cmd/server, the browser-facing client.
type Web struct {
	Addr           string        `env:"CLUBSYNC_ADDR" envDefault:":8080"`
	Env            string        `env:"CLUBSYNC_ENV" envDefault:"development"`
	APIURL         string        `env:"CLUBSYNC_API_URL" envDefault:"http://localhost:8000"`
	APITimeout     time.Duration `env:"CLUBSYNC_API_TIMEOUT" envDefault:"10s"`
	CSRFKey        string        `env:"CLUBSYNC_CSRF_KEY"`
	TrustedOrigins []string      `env:"CLUBSYNC_TRUSTED_ORIGINS" envSeparator:","`
	ClubName       string        `env:"CLUBSYNC_CLUB_NAME" envDefault:"ClubSync"`
	TimeZone       string        `env:"CLUBSYNC_TZ" envDefault:"Europe/Dublin"`
	RateLimit      int           `env:"CLUBSYNC_RATE_LIMIT" envDefault:"10"`
	SlowRequestMs  int           `env:"CLUBSYNC_SLOW_REQUEST_MS" envDefault:"200"`
}

// API configures cmd/api, the reference REST API server.
type API struct {
	Addr          string   `env:"CLUBSYNC_API_ADDR" envDefault:":8000"`
	Env           string   `env:"CLUBSYNC_ENV" envDefault:"development"`
	DBPath        string   `env:"CLUBSYNC_DB_PATH" envDefault:"clubsync.db"`
	SampleData    bool     `env:"CLUBSYNC_SAMPLE_DATA" envDefault:"false"`
	ClubName      string   `env:"CLUBSYNC_CLUB_NAME" envDefault:"ClubSync"`
	ResendKey     string   `env:"CLUBSYNC_RESEND_KEY"`
	ResendFrom    string   `env:"CLUBSYNC_RESEND_FROM" envDefault:"ClubSync <noreply@clubsync.local>"`
	NotifyTo      []string `env:"CLUBSYNC_NOTIFY_TO" envSeparator:","`
	SlowRequestMs int      `env:"CLUBSYNC_SLOW_REQUEST_MS" envDefault:"200"`
	SlowQueryMs   int      `env:"CLUBSYNC_SLOW_QUERY_MS" envDefault:"50"`

	// PerfReport exposes GET /admin/perf on the API port, which has no auth.
	PerfReport bool `env:"CLUBSYNC_API_PERF" envDefault:"false"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadWeb parses and checks the web client configuration.
// POST: Location resolves; production requires a CSRF key
func LoadWeb() (Web, error) {
	var cfg Web
	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Validate checks the web client configuration.
func (c Web) Validate() error {
	if c.APIURL == "" {
		return errors.New("CLUBSYNC_API_URL is required")
	}
	if c.APITimeout <= 0 {
		return errors.New("CLUBSYNC_API_TIMEOUT must be positive")
	}
	if c.RateLimit <= 0 {
		return errors.New("CLUBSYNC_RATE_LIMIT must be positive")
	}
	if c.SlowRequestMs <= 0 {
		return errors.New("CLUBSYNC_SLOW_REQUEST_MS must be positive")
	}
	if c.IsProduction() && c.CSRFKey == "" {
		return errors.New("CLUBSYNC_CSRF_KEY is required in production")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// IsProduction reports whether CLUBSYNC_ENV is production.
func (c Web) IsProduction() bool { return c.Env == EnvProduction }

// SlowRequest is the duration at which a request logs at WARN.
func (c Web) SlowRequest() time.Duration { return millis(c.SlowRequestMs) }

// Location resolves the calendar time zone.
func (c Web) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("CLUBSYNC_TZ: %w", err)
	}
	return loc, nil
}

// LoadAPI parses the API server configuration.
func LoadAPI() (API, error) {
	var cfg API
	if err := ParseEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// Validate checks the API server configuration.
func (c API) Validate() error {
	if c.DBPath == "" {
		return errors.New("CLUBSYNC_DB_PATH is required")
	}
	if c.SlowRequestMs <= 0 {
		return errors.New("CLUBSYNC_SLOW_REQUEST_MS must be positive")
	}
	if c.SlowQueryMs <= 0 {
		return errors.New("CLUBSYNC_SLOW_QUERY_MS must be positive")
	}
	return nil
}

// IsProduction reports whether CLUBSYNC_ENV is production.
func (c API) IsProduction() bool { return c.Env == EnvProduction }

// SlowRequest is the duration at which a request logs at WARN.
func (c API) SlowRequest() time.Duration { return millis(c.SlowRequestMs) }

// SlowQuery is the duration at which a SQL statement logs at WARN.
func (c API) SlowQuery() time.Duration { return millis(c.SlowQueryMs) }

func millis(n int) time.Duration { return time.Duration(n) * time.Millisecond }
