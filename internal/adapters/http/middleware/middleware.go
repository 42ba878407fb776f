package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/csrf"

	"clubsync/internal/platform/requestid"
)

// RateLimiter is a per-client token bucket. Buckets refill continuously at
// perSecond tokens a second up to burst, and buckets idle past staleAfter are
// pruned while serving so no background goroutine is needed.
type RateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*bucket
	perSecond float64
	burst     float64
	lastPrune time.Time
	now       func() time.Time
}

type bucket struct {
	tokens float64
	seen   time.Time
}

const staleAfter = 5 * time.Minute

// NewRateLimiter allows each client perSecond requests a second, with bursts of
// up to burst requests. Non-positive values fall back to 1.
func NewRateLimiter(perSecond, burst int) *RateLimiter {
	return &RateLimiter{
		buckets:   make(map[string]*bucket),
		perSecond: float64(max(perSecond, 1)),
		burst:     float64(max(burst, 1)),
		now:       time.Now,
	}
}

// Allow takes a token from client's bucket.
// POST: Returns false, and takes nothing, when the bucket is empty
func (rl *RateLimiter) Allow(client string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastPrune) > staleAfter {
		for c, b := range rl.buckets {
			if now.Sub(b.seen) > staleAfter {
				delete(rl.buckets, c)
			}
		}
		rl.lastPrune = now
	}

	b, ok := rl.buckets[client]
	if !ok {
		b = &bucket{tokens: rl.burst}
		rl.buckets[client] = b
	} else {
		b.tokens = min(rl.burst, b.tokens+now.Sub(b.seen).Seconds()*rl.perSecond)
	}
	b.seen = now
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// clientIP is the peer address without its port; every browser tab of one
// club member shares a bucket.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit rejects clients that exceed limiter with 429 and a Retry-After.
// Static assets and the health check are never limited.
func RateLimit(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if Unmetered(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			ip := clientIP(r)
			if !limiter.Allow(ip) {
				slog.Warn("rate_limited", "client", ip, "path", r.URL.Path, "request_id", requestid.From(r.Context()))
				w.Header().Set("Retry-After", "1")
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeaders adds OWASP recommended headers.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; script-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// CSRF returns a handler that protects form submissions against CSRF attacks.
// It assumes a 32-byte key. JSON requests (Content-Type: application/json) are exempt.
// trustedOrigins lists host:port values allowed as Origin/Referer besides the request host.
func CSRF(authKey []byte, secure bool, trustedOrigins []string) func(http.Handler) http.Handler {
	csrfProtect := csrf.Protect(
		authKey,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.TrustedOrigins(trustedOrigins),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			slog.Warn("csrf_rejected", "path", r.URL.Path, "reason", csrf.FailureReason(r))
			http.Error(w, "Forbidden - invalid CSRF token", http.StatusForbidden)
		})),
	)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Exempt JSON API requests from CSRF protection
			if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
				next.ServeHTTP(w, r)
				return
			}
			if !secure {
				r = csrf.PlaintextHTTPRequest(r)
			}
			csrfProtect(next).ServeHTTP(w, r)
		})
	}
}

// Chain wraps h with middlewares; the first is innermost, the last outermost.
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
