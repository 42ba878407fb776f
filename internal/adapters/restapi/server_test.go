package restapi

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"clubsync/internal/adapters/email"
	"clubsync/internal/adapters/http/perf"
	"clubsync/internal/adapters/storage"
	bookingRequestStore "clubsync/internal/adapters/storage/bookingrequest"
	eventStore "clubsync/internal/adapters/storage/event"
	facilityStore "clubsync/internal/adapters/storage/facility"
	teamStore "clubsync/internal/adapters/storage/team"

	_ "modernc.org/sqlite"
)

var testNow = time.Date(2026, 2, 5, 9, 30, 0, 0, time.UTC)

type testEnv struct {
	srv    *httptest.Server
	sender *email.NoopSender
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := storage.MigrateDB(db, ":memory:"); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	fs := facilityStore.NewSQLiteStore(db)
	if _, err := fs.EnsureDefaults(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	sender := email.NewNoopSender()
	opts = append([]Option{
		WithNotifier(Notifier{Sender: sender, To: []string{"fixtures@example.org"}, ClubName: "Kilcoole GAA"}),
		WithClock(func() time.Time { return testNow }),
	}, opts...)
	s := New(Stores{
		FacilityStore:       fs,
		EventStore:          eventStore.NewSQLiteStore(db),
		TeamStore:           teamStore.NewSQLiteStore(db),
		BookingRequestStore: bookingRequestStore.NewSQLiteStore(db),
	}, opts...)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return &testEnv{srv: srv, sender: sender}
}

// call sends a JSON request and decodes the JSON response into out (if non-nil).
func (e *testEnv) call(t *testing.T, method, path string, body any, out any) int {
	t.Helper()
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rd = bytes.NewReader(buf)
	}
	req, err := http.NewRequest(method, e.srv.URL+path, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decode: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func TestHealthzAndUnknownRoute(t *testing.T) {
	env := newTestEnv(t)
	if code := env.call(t, "GET", "/healthz", nil, nil); code != http.StatusOK {
		t.Errorf("healthz = %d", code)
	}
	if code := env.call(t, "DELETE", "/api/facilities/", nil, nil); code != http.StatusMethodNotAllowed {
		t.Errorf("DELETE /api/facilities/ = %d, want 405", code)
	}
}

func TestAdminPerf(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want int
	}{
		{"no collector", nil, http.StatusNotFound},
		{"report not enabled", []Option{WithCollector(perf.NewCollector(10))}, http.StatusNotFound},
		{"report enabled", []Option{WithCollector(perf.NewCollector(10)), WithPerfReport(true)}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, tt.opts...)
			if code := env.call(t, "GET", "/admin/perf", nil, nil); code != tt.want {
				t.Errorf("GET /admin/perf = %d, want %d", code, tt.want)
			}
		})
	}
}

// TestRequestIDEchoed verifies the API adopts the caller's id.
func TestRequestIDEchoed(t *testing.T) {
	collector := perf.NewCollector(10)
	env := newTestEnv(t, WithCollector(collector))

	req, _ := http.NewRequest("GET", env.srv.URL+"/api/facilities/", nil)
	req.Header.Set("X-Request-ID", "web-req-9")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	if got := resp.Header.Get("X-Request-ID"); got != "web-req-9" {
		t.Errorf("X-Request-ID = %q, want web-req-9", got)
	}
	snap := collector.Snapshot(time.Now().Add(-time.Minute), 10)
	if len(snap.SlowestPaths) != 1 || snap.SlowestPaths[0].SlowestRequestID != "web-req-9" {
		t.Errorf("SlowestPaths = %+v", snap.SlowestPaths)
	}
}

func TestFacilities(t *testing.T) {
	env := newTestEnv(t)

	var list []map[string]any
	if code := env.call(t, "GET", "/api/facilities/", nil, &list); code != http.StatusOK {
		t.Fatalf("list = %d", code)
	}
	if len(list) != 4 {
		t.Fatalf("facilities = %d, want 4 defaults", len(list))
	}

	id := int64(list[0]["id"].(float64))
	var one map[string]any
	if code := env.call(t, "GET", "/api/facilities/"+strconv.FormatInt(id, 10)+"/", nil, &one); code != http.StatusOK {
		t.Fatalf("get = %d", code)
	}
	if one["name"] != list[0]["name"] {
		t.Errorf("name = %v, want %v", one["name"], list[0]["name"])
	}

	var detail map[string]string
	if code := env.call(t, "GET", "/api/facilities/999/", nil, &detail); code != http.StatusNotFound {
		t.Errorf("missing = %d, want 404", code)
	}
	if detail["detail"] != "Not found." {
		t.Errorf("detail = %q", detail["detail"])
	}
}
