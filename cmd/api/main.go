package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	emailPkg "clubsync/internal/adapters/email"
	"clubsync/internal/adapters/http/perf"
	"clubsync/internal/adapters/restapi"
	"clubsync/internal/adapters/storage"
	bookingRequestStore "clubsync/internal/adapters/storage/bookingrequest"
	eventStore "clubsync/internal/adapters/storage/event"
	facilityStore "clubsync/internal/adapters/storage/facility"
	teamStore "clubsync/internal/adapters/storage/team"
	"clubsync/internal/application/orchestrators"
	"clubsync/internal/config"
	"clubsync/internal/platform/otel"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadAPI()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	shutdownTracing, err := otel.Setup(ctx, "clubsync-api")
	if err != nil {
		log.Printf("WARNING: tracing disabled: %v", err)
	}
	defer shutdownTracing(context.Background())

	// WAL mode, foreign keys and a busy timeout
	dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}
	if err := storage.MigrateDB(db, cfg.DBPath); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector, storage.WithSlowQuery(cfg.SlowQuery()))

	stores := restapi.Stores{
		FacilityStore:       facilityStore.NewSQLiteStore(timedDB),
		EventStore:          eventStore.NewSQLiteStore(timedDB),
		TeamStore:           teamStore.NewSQLiteStore(timedDB),
		BookingRequestStore: bookingRequestStore.NewSQLiteStore(timedDB),
	}

	if err := orchestrators.ExecuteSeedFacilities(ctx, stores.FacilityStore); err != nil {
		log.Fatalf("failed to seed facilities: %v", err)
	}
	if cfg.SampleData {
		res, err := orchestrators.ExecuteLoadSampleData(ctx, orchestrators.SaveEventDeps{
			EventStore:     stores.EventStore,
			FacilityLookup: stores.FacilityStore,
		})
		if err != nil {
			log.Fatalf("failed to load sample data: %v", err)
		}
		log.Printf("Sample data loaded: %d events (%d rejected by the facility constraint)", res.Created, len(res.Rejected))
	}

	// Configure notification email sender
	var sender emailPkg.Sender
	if cfg.ResendKey != "" {
		sender = emailPkg.NewResendSender(cfg.ResendKey, cfg.ResendFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		sender = emailPkg.NewNoopSender()
		if cfg.IsProduction() {
			log.Println("WARNING: CLUBSYNC_RESEND_KEY is not set; booking request notifications are DISABLED in production")
		} else {
			log.Println("Email sender configured (noop, set CLUBSYNC_RESEND_KEY for real delivery)")
		}
	}
	var notifyTo []string
	for _, addr := range cfg.NotifyTo {
		if addr = strings.TrimSpace(addr); addr != "" {
			notifyTo = append(notifyTo, addr)
		}
	}

	server := restapi.New(stores,
		restapi.WithNotifier(restapi.Notifier{Sender: sender, To: notifyTo, ClubName: cfg.ClubName}),
		restapi.WithCollector(collector),
		restapi.WithSlowRequest(cfg.SlowRequest()),
		restapi.WithPerfReport(cfg.PerfReport),
	)
	if cfg.PerfReport {
		log.Printf("GET /admin/perf enabled on %s (unauthenticated)", cfg.Addr)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("ClubSync API %s starting on %s (env=%s, db=%s, schema=%d)", version, cfg.Addr, cfg.Env, cfg.DBPath, storage.LatestSchemaVersion())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
}
