// Package perf keeps recent request and query timings in memory for the
// /admin/perf report of the ClubSync servers.
package perf

import (
	"encoding/json"
	"math"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultRingSize is the default capacity of the ring buffer.
const DefaultRingSize = 10000

// DefaultWindow is how far back the report looks when no window is given.
const DefaultWindow = 15 * time.Minute

// EntryKind distinguishes request vs query entries.
type EntryKind uint8

const (
	KindRequest EntryKind = iota
	KindQuery
)

// Entry is a single timing record stored in the ring buffer.
type Entry struct {
	Kind       EntryKind
	Path       string // "GET /api/events/" or "SELECT event"
	StatusCode int    // 0 for queries
	RequestID  string // request that caused it, when known
	DurationMs float64
	Timestamp  time.Time
}

// Collector is a fixed-size ring buffer for timing entries.
// When full, the oldest entries are overwritten. Aggregation happens on read.
type Collector struct {
	mu      sync.Mutex
	entries []Entry
	pos     int
	count   int64
}

// NewCollector creates a collector with the given ring buffer capacity.
// PRE: size > 0 (non-positive sizes fall back to DefaultRingSize)
// POST: Returns a ready-to-use collector
func NewCollector(size int) *Collector {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &Collector{entries: make([]Entry, size)}
}

// Record appends an entry to the ring buffer.
// POST: Entry stored; if buffer full, oldest entry overwritten
func (c *Collector) Record(e Entry) {
	c.mu.Lock()
	c.entries[c.pos] = e
	c.pos = (c.pos + 1) % len(c.entries)
	c.mu.Unlock()
	atomic.AddInt64(&c.count, 1)
}

// TotalRecorded returns the total number of entries ever recorded.
func (c *Collector) TotalRecorded() int64 {
	return atomic.LoadInt64(&c.count)
}

// Snapshot holds aggregated performance data computed on read.
type Snapshot struct {
	TotalRequests  int64      `json:"total_recorded"`
	WindowRequests int        `json:"window_requests"`
	ServerErrors   int        `json:"server_errors"`
	RequestP50Ms   float64    `json:"p50_ms"`
	RequestP95Ms   float64    `json:"p95_ms"`
	RequestP99Ms   float64    `json:"p99_ms"`
	SlowestPaths   []PathStat `json:"slowest_paths"`
	SlowestQueries []PathStat `json:"slowest_queries"`
}

// PathStat aggregates timing for a single route or query label.
// SlowestRequestID locates the MaxMs occurrence in the logs.
type PathStat struct {
	Path             string  `json:"path"`
	AvgMs            float64 `json:"avg_ms"`
	MaxMs            float64 `json:"max_ms"`
	Count            int     `json:"count"`
	Errors           int     `json:"errors,omitempty"`
	SlowestRequestID string  `json:"slowest_request_id,omitempty"`
	TotalMs          float64 `json:"-"`
}

func (s *PathStat) add(e Entry) {
	s.Count++
	s.TotalMs += e.DurationMs
	if e.DurationMs > s.MaxMs || s.Count == 1 {
		s.MaxMs = e.DurationMs
		s.SlowestRequestID = e.RequestID
	}
	if e.StatusCode >= http.StatusInternalServerError {
		s.Errors++
	}
}

// Snapshot computes aggregated stats for entries newer than since.
// It sorts, so it belongs on the report path only.
// POST: Returns percentiles over requests and the topN slowest paths and queries
func (c *Collector) Snapshot(since time.Time, topN int) Snapshot {
	c.mu.Lock()
	buf := make([]Entry, len(c.entries))
	copy(buf, c.entries)
	c.mu.Unlock()

	var durations []float64
	requests := make(map[string]*PathStat)
	queries := make(map[string]*PathStat)
	serverErrors := 0

	for _, e := range buf {
		if e.Timestamp.IsZero() || e.Timestamp.Before(since) {
			continue
		}
		stats := queries
		if e.Kind == KindRequest {
			stats = requests
			durations = append(durations, e.DurationMs)
			if e.StatusCode >= http.StatusInternalServerError {
				serverErrors++
			}
		}
		s, ok := stats[e.Path]
		if !ok {
			s = &PathStat{Path: e.Path}
			stats[e.Path] = s
		}
		s.add(e)
	}

	snap := Snapshot{
		TotalRequests:  c.TotalRecorded(),
		WindowRequests: len(durations),
		ServerErrors:   serverErrors,
		SlowestPaths:   topByAvg(requests, topN),
		SlowestQueries: topByAvg(queries, topN),
	}
	if len(durations) > 0 {
		sort.Float64s(durations)
		snap.RequestP50Ms = percentile(durations, 50)
		snap.RequestP95Ms = percentile(durations, 95)
		snap.RequestP99Ms = percentile(durations, 99)
	}
	return snap
}

// Handler serves the snapshot as JSON. Query parameters: minutes (window, default 15)
// and top (list length, default 10).
func (c *Collector) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		window := DefaultWindow
		if v, err := strconv.Atoi(r.URL.Query().Get("minutes")); err == nil && v > 0 {
			window = time.Duration(v) * time.Minute
		}
		top := 10
		if v, err := strconv.Atoi(r.URL.Query().Get("top")); err == nil && v > 0 {
			top = v
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(c.Snapshot(time.Now().Add(-window), top))
	})
}

// percentile returns the p-th percentile from a sorted slice, interpolating
// between neighbours.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (p / 100) * float64(len(sorted)-1)
	lower := int(math.Floor(idx))
	upper := int(math.Ceil(idx))
	if lower == upper || upper >= len(sorted) {
		return sorted[lower]
	}
	frac := idx - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

// topByAvg returns the n entries with the highest average duration.
func topByAvg(stats map[string]*PathStat, n int) []PathStat {
	list := make([]PathStat, 0, len(stats))
	for _, s := range stats {
		s.AvgMs = s.TotalMs / float64(s.Count)
		list = append(list, *s)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].AvgMs != list[j].AvgMs {
			return list[i].AvgMs > list[j].AvgMs
		}
		return list[i].Path < list[j].Path
	})
	if len(list) > n {
		list = list[:n]
	}
	return list
}
