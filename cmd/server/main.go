package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clubsync/internal/adapters/clubapi"
	web "clubsync/internal/adapters/http"
	"clubsync/internal/adapters/http/perf"
	"clubsync/internal/config"
	"clubsync/internal/platform/otel"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadWeb()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	shutdownTracing, err := otel.Setup(ctx, "clubsync-web")
	if err != nil {
		log.Printf("WARNING: tracing disabled: %v", err)
	}
	defer shutdownTracing(context.Background())

	client, err := clubapi.New(cfg.APIURL, clubapi.WithTimeout(cfg.APITimeout))
	if err != nil {
		log.Fatalf("invalid API URL: %v", err)
	}

	// Performance instrumentation: request timings behind /admin/perf
	collector := perf.NewCollector(perf.DefaultRingSize)

	mux, err := web.NewMux(client, web.Options{
		ClubName:       cfg.ClubName,
		Location:       loc,
		CSRFKeyHex:     cfg.CSRFKey,
		Production:     cfg.IsProduction(),
		TrustedOrigins: cfg.TrustedOrigins,
		RateLimit:      cfg.RateLimit,
		SlowRequest:    cfg.SlowRequest(),
	}, collector)
	if err != nil {
		log.Fatalf("failed to build handlers: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("ClubSync web %s starting on %s (env=%s, api=%s, tz=%s)", version, cfg.Addr, cfg.Env, client.BaseURL(), loc)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
}
