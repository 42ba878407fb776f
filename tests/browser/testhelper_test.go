//go:build browser

package browser_test

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	_ "modernc.org/sqlite"

	"clubsync/internal/adapters/clubapi"
	"clubsync/internal/adapters/email"
	web "clubsync/internal/adapters/http"
	"clubsync/internal/adapters/http/perf"
	"clubsync/internal/adapters/restapi"
	"clubsync/internal/adapters/storage"
	bookingRequestStore "clubsync/internal/adapters/storage/bookingrequest"
	eventStore "clubsync/internal/adapters/storage/event"
	facilityStore "clubsync/internal/adapters/storage/facility"
	teamStore "clubsync/internal/adapters/storage/team"
	"clubsync/internal/application/orchestrators"
)

// testApp holds the running API server, web client and Playwright handles.
type testApp struct {
	BaseURL string
	API     *httptest.Server
	Stores  restapi.Stores
	Server  *http.Server
	PW      *playwright.Playwright
	Browser playwright.Browser
}

// newTestApp starts the reference API on a temp SQLite DB, points a web
// client at it and launches a headless Chromium.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	if err := storage.MigrateDB(db, dbPath); err != nil {
		t.Fatalf("failed to migrate test DB: %v", err)
	}

	stores := restapi.Stores{
		FacilityStore:       facilityStore.NewSQLiteStore(db),
		EventStore:          eventStore.NewSQLiteStore(db),
		TeamStore:           teamStore.NewSQLiteStore(db),
		BookingRequestStore: bookingRequestStore.NewSQLiteStore(db),
	}
	if err := orchestrators.ExecuteSeedFacilities(context.Background(), stores.FacilityStore); err != nil {
		t.Fatalf("failed to seed facilities: %v", err)
	}
	apiSrv := httptest.NewServer(restapi.New(stores,
		restapi.WithNotifier(restapi.Notifier{Sender: email.NewNoopSender(), To: []string{"fixtures@example.org"}}),
	).Handler())

	client, err := clubapi.New(apiSrv.URL)
	if err != nil {
		t.Fatalf("failed to create API client: %v", err)
	}

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	mux, err := web.NewMux(client, web.Options{
		ClubName:  "Test Club",
		Location:  time.UTC,
		RateLimit: 1000,
		TrustedOrigins: []string{
			fmt.Sprintf("127.0.0.1:%d", port),
			fmt.Sprintf("localhost:%d", port),
		},
	}, perf.NewCollector(100))
	if err != nil {
		t.Fatalf("failed to build web handlers: %v", err)
	}
	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", port),
		Handler: mux,
	}
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("test server error: %v", err)
		}
	}()

	// Wait for server to be ready
	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	for i := 0; i < 50; i++ {
		resp, err := http.Get(baseURL + "/healthz")
		if err == nil {
			resp.Body.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("failed to start Playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("failed to launch browser: %v", err)
	}

	app := &testApp{
		BaseURL: baseURL,
		API:     apiSrv,
		Stores:  stores,
		Server:  srv,
		PW:      pw,
		Browser: browser,
	}
	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
		srv.Close()
		apiSrv.Close()
		db.Close()
	})
	return app
}

// newPage creates a new browser page (tab).
func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := a.Browser.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	t.Cleanup(func() { page.Close() })
	return page
}

// login fills the placeholder login form and waits for the calendar.
func (a *testApp) login(t *testing.T, page playwright.Page) {
	t.Helper()
	if _, err := page.Goto(a.BaseURL + "/"); err != nil {
		t.Fatalf("failed to navigate to login: %v", err)
	}
	if err := page.Locator("input[name=username]").Fill("secretary"); err != nil {
		t.Fatalf("failed to fill username: %v", err)
	}
	if err := page.Locator("input[name=password]").Fill("anything"); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to click login: %v", err)
	}
	if err := page.WaitForURL(a.BaseURL+"/calendar", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("login did not redirect to calendar: %v", err)
	}
}

// text returns the inner text of the first element matching selector.
func text(t *testing.T, page playwright.Page, selector string) string {
	t.Helper()
	s, err := page.Locator(selector).First().InnerText()
	if err != nil {
		t.Fatalf("failed to read %s: %v", selector, err)
	}
	return s
}
