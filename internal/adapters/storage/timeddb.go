package storage

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"
	"time"

	"clubsync/internal/adapters/http/perf"
	"clubsync/internal/platform/requestid"
)

// SQLDB is the database interface used by all stores.
// Both *sql.DB and *TimedDB satisfy this interface.
type SQLDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

var (
	_ SQLDB = (*sql.DB)(nil)
	_ SQLDB = (*TimedDB)(nil)
)

// DefaultSlowQuery is used when no slow-query threshold is configured.
const DefaultSlowQuery = 50 * time.Millisecond

// TimedDB times the statements the API stores issue. Each statement is logged
// with the X-Request-ID of the API call that caused it and recorded under a
// "VERB table" label, so a slow calendar page can be traced from the web log
// to the overlap check that held it up.
// Statements run inside a transaction are covered by the BEGIN entry only.
type TimedDB struct {
	db        *sql.DB
	collector *perf.Collector
	slow      time.Duration
}

// TimedOption configures a TimedDB.
type TimedOption func(*TimedDB)

// WithSlowQuery sets the duration at which statements log at WARN.
// Non-positive values keep DefaultSlowQuery.
func WithSlowQuery(d time.Duration) TimedOption {
	return func(t *TimedDB) {
		if d > 0 {
			t.slow = d
		}
	}
}

// NewTimedDB wraps db. A nil collector only logs.
// PRE: db is a valid database connection
func NewTimedDB(db *sql.DB, collector *perf.Collector, opts ...TimedOption) *TimedDB {
	t := &TimedDB{db: db, collector: collector, slow: DefaultSlowQuery}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// queryLabel reduces a SQL statement to "VERB table", e.g. "SELECT event".
// Subqueries are ignored: the event insert with its overlap check is "INSERT event".
func queryLabel(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "EMPTY"
	}
	verb := strings.ToUpper(fields[0])
	var marker string
	switch verb {
	case "SELECT", "DELETE":
		marker = "FROM"
	case "INSERT":
		marker = "INTO"
	case "UPDATE":
		if len(fields) > 1 {
			return verb + " " + fields[1]
		}
		return verb
	default:
		return verb
	}
	for i, f := range fields {
		if strings.EqualFold(f, marker) && i+1 < len(fields) {
			return verb + " " + strings.Trim(fields[i+1], "(")
		}
	}
	return verb
}

func (t *TimedDB) observe(ctx context.Context, label string, start time.Time, err error) {
	elapsed := time.Since(start)
	durationMs := float64(elapsed.Microseconds()) / 1000.0
	reqID := requestid.From(ctx)

	switch {
	case err != nil:
		slog.Warn("query_failed", "request_id", reqID, "query", label, "duration_ms", durationMs, "error", err)
	case elapsed >= t.slow:
		slog.Warn("slow_query", "request_id", reqID, "query", label, "duration_ms", durationMs)
	default:
		slog.Debug("query", "request_id", reqID, "query", label, "duration_ms", durationMs)
	}

	if t.collector != nil {
		t.collector.Record(perf.Entry{
			Kind:       perf.KindQuery,
			Path:       label,
			RequestID:  reqID,
			DurationMs: durationMs,
			Timestamp:  start,
		})
	}
}

func (t *TimedDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	result, err := t.db.ExecContext(ctx, query, args...)
	t.observe(ctx, queryLabel(query), start, err)
	return result, err
}

func (t *TimedDB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.db.QueryContext(ctx, query, args...)
	t.observe(ctx, queryLabel(query), start, err)
	return rows, err
}

// QueryRowContext times the query only; Scan happens after it returns.
func (t *TimedDB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	start := time.Now()
	row := t.db.QueryRowContext(ctx, query, args...)
	t.observe(ctx, queryLabel(query), start, row.Err())
	return row
}

func (t *TimedDB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	start := time.Now()
	tx, err := t.db.BeginTx(ctx, opts)
	t.observe(ctx, "BEGIN", start, err)
	return tx, err
}
