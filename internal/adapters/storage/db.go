package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Errors shared by all stores.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// migration is one forward-only schema step.
type migration struct {
	version     int
	description string
	stmts       string
}

// migrations lists every schema step in order. Never edit an applied step; append a new one.
var migrations = []migration{
	{
		version:     1,
		description: "baseline: facility, team, event, booking_request",
		stmts: `
	CREATE TABLE IF NOT EXISTS facility (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		type TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS team (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		age_group TEXT NOT NULL DEFAULT '',
		usual_day TEXT NOT NULL DEFAULT '',
		usual_time TEXT NOT NULL DEFAULT '',
		usual_facility_id INTEGER,
		is_flexible INTEGER NOT NULL DEFAULT 1,
		FOREIGN KEY (usual_facility_id) REFERENCES facility(id) ON DELETE SET NULL
	);

	CREATE TABLE IF NOT EXISTS event (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		facility_id INTEGER NOT NULL,
		is_fixed INTEGER NOT NULL DEFAULT 0,
		team_name TEXT NOT NULL DEFAULT '',
		event_type TEXT NOT NULL DEFAULT 'other',
		team_id INTEGER,
		status TEXT NOT NULL DEFAULT 'draft',
		FOREIGN KEY (facility_id) REFERENCES facility(id) ON DELETE CASCADE,
		FOREIGN KEY (team_id) REFERENCES team(id) ON DELETE SET NULL
	);

	CREATE INDEX IF NOT EXISTS idx_event_facility_time ON event (facility_id, start_time, end_time);

	CREATE TABLE IF NOT EXISTS booking_request (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		team TEXT NOT NULL,
		facility TEXT NOT NULL DEFAULT '',
		event_type TEXT NOT NULL DEFAULT 'other',
		recurrence TEXT NOT NULL,
		day_of_week TEXT NOT NULL DEFAULT '',
		date TEXT NOT NULL DEFAULT '',
		start_time TEXT NOT NULL,
		end_time TEXT NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending',
		created_at TEXT NOT NULL
	);
	`,
	},
}

// LatestSchemaVersion returns the version MigrateDB brings a database to.
func LatestSchemaVersion() int {
	return migrations[len(migrations)-1].version
}

// SchemaVersion returns the applied schema version, 0 for an untracked database.
// PRE: db is a valid database connection
// POST: returns version >= 0
func SchemaVersion(db *sql.DB) (int, error) {
	var exists int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'`).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("check schema_version table: %w", err)
	}
	if exists == 0 {
		return 0, nil
	}
	var v sql.NullInt64
	if err := db.QueryRow(`SELECT MAX(version) FROM schema_version`).Scan(&v); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return int(v.Int64), nil
}

// MigrateDB applies every pending migration, each in its own transaction.
// PRE: db is a valid database connection; dbPath is used for logging only
// POST: schema is at LatestSchemaVersion()
func MigrateDB(db *sql.DB, dbPath string) error {
	if _, err := db.Exec(`PRAGMA foreign_keys=ON`); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		description TEXT NOT NULL,
		applied_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	)`); err != nil {
		return fmt.Errorf("failed to create schema_version: %w", err)
	}

	current, err := SchemaVersion(db)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("migration %d: begin: %w", m.version, err)
		}
		if _, err := tx.Exec(m.stmts); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.version, m.description, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_version (version, description) VALUES (?, ?)`, m.version, m.description); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d: record version: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d: commit: %w", m.version, err)
		}
		slog.Info("schema_migrated", "db", dbPath, "version", m.version, "description", m.description)
	}
	return nil
}

// IsUniqueViolation reports whether err is a SQLite UNIQUE constraint failure.
func IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// NotFound maps sql.ErrNoRows to ErrNotFound and passes other errors through.
func NotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
