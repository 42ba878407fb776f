package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"clubsync/internal/adapters/clubapi"
	"clubsync/internal/adapters/http/middleware"
	"clubsync/internal/adapters/http/perf"
)

// ClubAPI is every REST API call the web client makes. *clubapi.Client implements it.
type ClubAPI interface {
	ListEvents(ctx context.Context) ([]clubapi.Event, error)
	CreateEvent(ctx context.Context, p clubapi.EventPayload) (clubapi.Event, error)
	UpdateEvent(ctx context.Context, id int64, p clubapi.EventPayload) (clubapi.Event, error)
	DeleteEvent(ctx context.Context, id int64) error
	ListFacilities(ctx context.Context) ([]clubapi.Facility, error)
	ListTeams(ctx context.Context) ([]clubapi.Team, error)
	CreateTeam(ctx context.Context, p clubapi.TeamPayload) (clubapi.Team, error)
	ListBookingRequests(ctx context.Context) ([]clubapi.BookingRequest, error)
	CreateBookingRequest(ctx context.Context, p clubapi.BookingRequestPayload) (clubapi.BookingRequest, error)
	DeleteBookingRequest(ctx context.Context, id int64) error
	RunSolverCheck(ctx context.Context) (string, error)
}

var _ ClubAPI = (*clubapi.Client)(nil)

// Options configures the web client.
type Options struct {
	ClubName       string
	Location       *time.Location // wall-clock zone of the calendar and forms
	CSRFKeyHex     string         // 64 hex characters; required in production
	Production     bool
	TrustedOrigins []string
	RateLimit      int           // requests per second per client IP; 0 means DefaultRateLimit
	SlowRequest    time.Duration // WARN threshold; 0 means middleware.DefaultSlowRequest
}

// DefaultRateLimit is the per-client request rate when Options leaves it unset.
const DefaultRateLimit = 10

// Global API client (set by NewMux)
var api ClubAPI

// Global session store instance
var sessions *middleware.SessionStore

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

var clubName = "ClubSync"

var location = time.UTC

// timeNow is replaced in tests.
var timeNow = time.Now

// ErrBadCSRFKey is returned when the configured CSRF key is not 32 hex-encoded bytes.
var ErrBadCSRFKey = errors.New("CSRF key must be 64 hex characters (32 bytes)")

// loadCSRFKey decodes the configured CSRF secret. In production the key is
// required; in development a random key is generated per startup.
func loadCSRFKey(keyHex string, production bool) ([]byte, error) {
	if keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			return nil, ErrBadCSRFKey
		}
		return key, nil
	}
	if production {
		return nil, errors.New("CSRF key is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	slog.Warn("csrf_key_generated", "reason", "no key configured; sessions won't survive restart")
	return key, nil
}

// NewMux wires HTTP handlers for the web client.
// PRE: client is non-nil
// POST: Returns the routed handler with the middleware chain applied
func NewMux(client ClubAPI, opts Options, collector *perf.Collector) (http.Handler, error) {
	api = client
	perfCollector = collector
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = opts.Production
	if opts.ClubName != "" {
		clubName = opts.ClubName
	}
	if opts.Location != nil {
		location = opts.Location
	}

	csrfKey, err := loadCSRFKey(opts.CSRFKeyHex, opts.Production)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	staticFS, err := fs.Sub(assets, "static")
	if err != nil {
		return nil, err
	}
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	registerRoutes(mux)

	rate := opts.RateLimit
	if rate <= 0 {
		rate = DefaultRateLimit
	}
	// A calendar action is a POST plus its redirected GET.
	limiter := middleware.NewRateLimiter(rate, 2*rate)

	// Timing -> Tracing -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey, opts.Production, opts.TrustedOrigins),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Tracing("clubsync-web"),
		middleware.Timing(collector, opts.SlowRequest),
	), nil
}

// registerRoutes maps every page and form action. Everything except login,
// health and static assets requires a session.
func registerRoutes(mux *http.ServeMux) {
	protected := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(h)
	}

	mux.HandleFunc("GET /{$}", handleLoginPage)
	mux.HandleFunc("POST /{$}", handleLogin)
	mux.HandleFunc("POST /logout", handleLogout)
	mux.HandleFunc("GET /healthz", handleHealthz)

	mux.Handle("GET /calendar", protected(handleCalendar))
	mux.Handle("POST /calendar/events", protected(handleSaveEvent))
	mux.Handle("POST /calendar/events/{id}", protected(handleSaveEvent))
	mux.Handle("POST /calendar/events/{id}/delete", protected(handleDeleteEvent))
	mux.Handle("POST /calendar/solve", protected(handleSolve))

	mux.Handle("GET /bookings", protected(handleBookings))

	mux.Handle("GET /requests", protected(handleRequests))
	mux.Handle("POST /requests", protected(handleCreateRequest))
	mux.Handle("POST /requests/{id}/delete", protected(handleDeleteRequest))

	mux.Handle("GET /teams", protected(handleTeams))
	mux.Handle("POST /teams", protected(handleCreateTeam))

	mux.Handle("GET /admin/perf", protected(handlePerf))
}
