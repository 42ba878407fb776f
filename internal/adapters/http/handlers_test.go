package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"clubsync/internal/adapters/clubapi"
	"clubsync/internal/adapters/http/middleware"
	"clubsync/internal/platform/requestid"
)

// fakeAPI is an in-memory ClubAPI. Calls are recorded so tests can assert on
// what the handlers sent.
type fakeAPI struct {
	events     []clubapi.Event
	facilities []clubapi.Facility
	teams      []clubapi.Team
	requests   []clubapi.BookingRequest

	listErr   error
	saveErr   error
	deleteErr error
	solverMsg string
	solverErr error

	created        []clubapi.EventPayload
	updatedIDs     []int64
	deletedIDs     []int64
	createdTeams   []clubapi.TeamPayload
	createdReqs    []clubapi.BookingRequestPayload
	deletedReqIDs  []int64
	solverRequests int
	listRequestID  string
}

func (f *fakeAPI) ListEvents(ctx context.Context) ([]clubapi.Event, error) {
	f.listRequestID = requestid.From(ctx)
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.events, nil
}

func (f *fakeAPI) CreateEvent(ctx context.Context, p clubapi.EventPayload) (clubapi.Event, error) {
	if f.saveErr != nil {
		return clubapi.Event{}, f.saveErr
	}
	f.created = append(f.created, p)
	return clubapi.Event{ID: int64(len(f.events) + len(f.created)), Title: p.Title}, nil
}

func (f *fakeAPI) UpdateEvent(ctx context.Context, id int64, p clubapi.EventPayload) (clubapi.Event, error) {
	if f.saveErr != nil {
		return clubapi.Event{}, f.saveErr
	}
	f.updatedIDs = append(f.updatedIDs, id)
	return clubapi.Event{ID: id, Title: p.Title}, nil
}

func (f *fakeAPI) DeleteEvent(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

func (f *fakeAPI) ListFacilities(ctx context.Context) ([]clubapi.Facility, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.facilities, nil
}

func (f *fakeAPI) ListTeams(ctx context.Context) ([]clubapi.Team, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.teams, nil
}

func (f *fakeAPI) CreateTeam(ctx context.Context, p clubapi.TeamPayload) (clubapi.Team, error) {
	if f.saveErr != nil {
		return clubapi.Team{}, f.saveErr
	}
	f.createdTeams = append(f.createdTeams, p)
	return clubapi.Team{ID: 1, Name: p.Name}, nil
}

func (f *fakeAPI) ListBookingRequests(ctx context.Context) ([]clubapi.BookingRequest, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.requests, nil
}

func (f *fakeAPI) CreateBookingRequest(ctx context.Context, p clubapi.BookingRequestPayload) (clubapi.BookingRequest, error) {
	if f.saveErr != nil {
		return clubapi.BookingRequest{}, f.saveErr
	}
	f.createdReqs = append(f.createdReqs, p)
	return clubapi.BookingRequest{ID: 1, Team: p.Team}, nil
}

func (f *fakeAPI) DeleteBookingRequest(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedReqIDs = append(f.deletedReqIDs, id)
	return nil
}

func (f *fakeAPI) RunSolverCheck(ctx context.Context) (string, error) {
	f.solverRequests++
	return f.solverMsg, f.solverErr
}

var testNow = time.Date(2026, 2, 5, 9, 30, 0, 0, time.UTC)

// newFakeAPI returns the default facilities and two events on Thursday 5 Feb 2026.
func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		facilities: []clubapi.Facility{
			{ID: 1, Name: "Main Pitch", Type: "pitch"},
			{ID: 2, Name: "Training Pitch", Type: "pitch"},
			{ID: 3, Name: "Hall", Type: "hall"},
			{ID: 4, Name: "Gym", Type: "gym"},
		},
		events: []clubapi.Event{
			{
				ID: 1, Title: "Senior Match",
				StartTime: time.Date(2026, 2, 5, 18, 0, 0, 0, time.UTC),
				EndTime:   time.Date(2026, 2, 5, 20, 0, 0, 0, time.UTC),
				Facility:  clubapi.FacilityRef{ID: 1, Name: "Main Pitch", Type: "pitch"},
				IsFixed:   true, EventType: "match", Status: "published",
			},
			{
				ID: 2, Title: "U12 Training",
				StartTime: time.Date(2026, 2, 5, 17, 0, 0, 0, time.UTC),
				EndTime:   time.Date(2026, 2, 5, 18, 0, 0, 0, time.UTC),
				Facility:  clubapi.FacilityRef{Name: "Hall"},
				EventType: "juvenile_training", Status: "draft",
			},
		},
		solverMsg: "Schedule is feasible: 2 events, 0 pending requests.",
	}
}

// setupWeb points the package globals at fake and a fixed clock.
func setupWeb(t *testing.T, fake *fakeAPI) {
	t.Helper()
	api = fake
	sessions = middleware.NewSessionStore()
	perfCollector = nil
	clubName = "Kilcoole GAA"
	location = time.UTC
	timeNow = func() time.Time { return testNow }
	t.Cleanup(func() { timeNow = time.Now })
}

// authed attaches a logged-in session to req.
func authed(req *http.Request) *http.Request {
	ctx := middleware.ContextWithSession(req.Context(), middleware.Session{Username: "fixtures", CreatedAt: testNow})
	return req.WithContext(ctx)
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestHandleLogin(t *testing.T) {
	tests := []struct {
		name       string
		username   string
		password   string
		wantStatus int
		wantBody   string
	}{
		{"valid credentials", "fixtures", "secret", http.StatusSeeOther, ""},
		{"missing password", "fixtures", "", http.StatusOK, "Please enter both username and password."},
		{"missing username", "", "secret", http.StatusOK, "Please enter both username and password."},
		{"whitespace only", "   ", "   ", http.StatusOK, "Please enter both username and password."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupWeb(t, newFakeAPI())
			req := postForm("/", url.Values{"username": {tt.username}, "password": {tt.password}})
			rec := httptest.NewRecorder()
			handleLogin(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusSeeOther {
				if loc := rec.Header().Get("Location"); loc != "/calendar" {
					t.Errorf("Location = %q, want /calendar", loc)
				}
				cookies := rec.Result().Cookies()
				if len(cookies) != 1 || cookies[0].Value == "" {
					t.Fatalf("expected one session cookie, got %v", cookies)
				}
				if sess, ok := sessions.Get(cookies[0].Value); !ok || sess.Username != tt.username {
					t.Errorf("session = %+v, %v", sess, ok)
				}
				return
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body missing %q", tt.wantBody)
			}
		})
	}
}

func TestHandleLoginPage(t *testing.T) {
	setupWeb(t, newFakeAPI())

	rec := httptest.NewRecorder()
	handleLoginPage(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `name="password"`) {
		t.Error("login form not rendered")
	}

	rec = httptest.NewRecorder()
	handleLoginPage(rec, authed(httptest.NewRequest(http.MethodGet, "/", nil)))
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/calendar" {
		t.Errorf("logged-in user: status %d, Location %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestHandleLogout(t *testing.T) {
	setupWeb(t, newFakeAPI())
	token, err := sessions.Create("fixtures")
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "clubsync_session", Value: token})
	rec := httptest.NewRecorder()
	handleLogout(rec, req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Errorf("status %d, Location %q", rec.Code, rec.Header().Get("Location"))
	}
	if _, ok := sessions.Get(token); ok {
		t.Error("session survived logout")
	}
}

func TestLayout_ShowsClubAndUser(t *testing.T) {
	setupWeb(t, newFakeAPI())
	rec := httptest.NewRecorder()
	handleTeams(rec, authed(httptest.NewRequest(http.MethodGet, "/teams", nil)))

	body := rec.Body.String()
	for _, want := range []string{"ClubSync — Kilcoole GAA", "fixtures", "Logout", `href="/bookings"`, "Requests <small>(admin)</small>"} {
		if !strings.Contains(body, want) {
			t.Errorf("layout missing %q", want)
		}
	}
}

func TestHandlePerf_Disabled(t *testing.T) {
	setupWeb(t, newFakeAPI())
	rec := httptest.NewRecorder()
	handlePerf(rec, authed(httptest.NewRequest(http.MethodGet, "/admin/perf", nil)))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestLocalRedirect(t *testing.T) {
	tests := []struct {
		target string
		want   string
	}{
		{"/bookings", "/bookings"},
		{"/calendar?view=day", "/calendar?view=day"},
		{"", "/calendar"},
		{"https://evil.example", "/calendar"},
		{"//evil.example", "/calendar"},
		{`/\evil.example`, "/calendar"},
	}
	for _, tt := range tests {
		if got := localRedirect(tt.target, "/calendar"); got != tt.want {
			t.Errorf("localRedirect(%q) = %q, want %q", tt.target, got, tt.want)
		}
	}
}

func TestFormError(t *testing.T) {
	if got := formError(errors.New("boom")); got != "" {
		t.Errorf("plain error = %q, want empty", got)
	}
}
