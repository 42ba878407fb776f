// Package restapi serves the ClubSync REST API: events, facilities, teams,
// booking requests and the schedule constraint check, backed by the SQLite stores.
//
// Responses follow Django REST framework conventions so any DRF-speaking client
// (including clubapi) can use it: trailing slashes, 201 on create, 204 on delete,
// {"detail": ...} for 404s and {"field": [...]} / {"non_field_errors": [...]} for 400s.
package restapi

import (
	"net/http"
	"time"

	"clubsync/internal/adapters/email"
	"clubsync/internal/adapters/http/middleware"
	"clubsync/internal/adapters/http/perf"
	bookingRequestStore "clubsync/internal/adapters/storage/bookingrequest"
	eventStore "clubsync/internal/adapters/storage/event"
	facilityStore "clubsync/internal/adapters/storage/facility"
	teamStore "clubsync/internal/adapters/storage/team"
)

// Stores holds all storage dependencies.
type Stores struct {
	FacilityStore       facilityStore.Store
	EventStore          eventStore.Store
	TeamStore           teamStore.Store
	BookingRequestStore bookingRequestStore.Store
}

// Notifier configures booking request notifications. A nil Sender disables them.
type Notifier struct {
	Sender   email.Sender
	To       []string
	ClubName string
}

// Server is the REST API.
type Server struct {
	stores    Stores
	notifier  Notifier
	collector   *perf.Collector
	perfReport  bool
	slowRequest time.Duration
	now         func() time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithNotifier enables booking request notification emails.
func WithNotifier(n Notifier) Option {
	return func(s *Server) { s.notifier = n }
}

// WithCollector records request timings.
func WithCollector(c *perf.Collector) Option {
	return func(s *Server) { s.collector = c }
}

// WithPerfReport serves the collector's report at GET /admin/perf. The API has
// no authentication, so leave it off wherever the port is reachable by
// anything other than the web server.
func WithPerfReport(enabled bool) Option {
	return func(s *Server) { s.perfReport = enabled }
}

// WithSlowRequest sets the duration at which requests log at WARN.
func WithSlowRequest(d time.Duration) Option {
	return func(s *Server) { s.slowRequest = d }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates the API server.
// PRE: every store in stores is non-nil
// POST: Returns a server ready for Handler
func New(stores Stores, opts ...Option) *Server {
	s := &Server{stores: stores, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed API with timing and tracing applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/events/{$}", s.handleListEvents)
	mux.HandleFunc("POST /api/events/{$}", s.handleCreateEvent)
	mux.HandleFunc("GET /api/events/{id}/", s.handleGetEvent)
	mux.HandleFunc("PUT /api/events/{id}/", s.handleUpdateEvent)
	mux.HandleFunc("PATCH /api/events/{id}/", s.handleUpdateEvent)
	mux.HandleFunc("DELETE /api/events/{id}/", s.handleDeleteEvent)

	mux.HandleFunc("GET /api/facilities/{$}", s.handleListFacilities)
	mux.HandleFunc("GET /api/facilities/{id}/", s.handleGetFacility)

	mux.HandleFunc("GET /api/teams/{$}", s.handleListTeams)
	mux.HandleFunc("POST /api/teams/{$}", s.handleCreateTeam)
	mux.HandleFunc("GET /api/teams/{id}/", s.handleGetTeam)
	mux.HandleFunc("PUT /api/teams/{id}/", s.handleUpdateTeam)
	mux.HandleFunc("PATCH /api/teams/{id}/", s.handleUpdateTeam)
	mux.HandleFunc("DELETE /api/teams/{id}/", s.handleDeleteTeam)

	mux.HandleFunc("GET /api/requests/{$}", s.handleListRequests)
	mux.HandleFunc("POST /api/requests/{$}", s.handleCreateRequest)
	mux.HandleFunc("GET /api/requests/{id}/", s.handleGetRequest)
	mux.HandleFunc("PUT /api/requests/{id}/", s.handleUpdateRequest)
	mux.HandleFunc("PATCH /api/requests/{id}/", s.handleUpdateRequest)
	mux.HandleFunc("DELETE /api/requests/{id}/", s.handleDeleteRequest)

	mux.HandleFunc("POST /api/schedule/solve/{$}", s.handleSolve)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	if s.collector != nil && s.perfReport {
		mux.Handle("GET /admin/perf", s.collector.Handler())
	}

	return middleware.Chain(mux,
		middleware.Tracing("clubsync-api"),
		middleware.Timing(s.collector, s.slowRequest),
	)
}
