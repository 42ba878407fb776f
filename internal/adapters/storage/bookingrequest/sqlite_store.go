package bookingrequest

import (
	"context"
	"fmt"
	"time"

	"clubsync/internal/adapters/storage"
	domain "clubsync/internal/domain/bookingrequest"
)

const selectRequest = `
	SELECT id, team, facility, event_type, recurrence, day_of_week, date, start_time, end_time, notes, status, created_at
	FROM booking_request`

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new booking request store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// List returns requests, newest first.
// PRE: none
// POST: Returns a non-nil slice
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Request, error) {
	query := selectRequest
	var args []any
	if filter.Status != "" {
		query += " WHERE status = ?"
		args = append(args, filter.Status)
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Request{}
	for rows.Next() {
		r, err := scanRequest(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetByID retrieves a request by ID.
// PRE: id > 0
// POST: Returns the request or storage.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Request, error) {
	r, err := scanRequest(s.db.QueryRowContext(ctx, selectRequest+" WHERE id = ?", id).Scan)
	if err != nil {
		return domain.Request{}, storage.NotFound(err)
	}
	return r, nil
}

// Create inserts a request, stamping CreatedAt when unset.
// PRE: r has been validated
// POST: Returns the stored request with its ID
func (s *SQLiteStore) Create(ctx context.Context, r domain.Request) (domain.Request, error) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO booking_request (team, facility, event_type, recurrence, day_of_week, date, start_time, end_time, notes, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Team, r.Facility, r.EventType, r.Recurrence, r.DayOfWeek, r.Date, r.StartTime, r.EndTime, r.Notes, r.Status,
		r.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return domain.Request{}, fmt.Errorf("insert booking request: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Request{}, err
	}
	return s.GetByID(ctx, id)
}

// Update replaces a request's fields. CreatedAt is never changed.
// PRE: r.ID > 0; r has been validated
// POST: Returns the stored request or storage.ErrNotFound
func (s *SQLiteStore) Update(ctx context.Context, r domain.Request) (domain.Request, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE booking_request SET team = ?, facility = ?, event_type = ?, recurrence = ?, day_of_week = ?,
			date = ?, start_time = ?, end_time = ?, notes = ?, status = ?
		WHERE id = ?`,
		r.Team, r.Facility, r.EventType, r.Recurrence, r.DayOfWeek, r.Date, r.StartTime, r.EndTime, r.Notes, r.Status, r.ID,
	)
	if err != nil {
		return domain.Request{}, fmt.Errorf("update booking request %d: %w", r.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Request{}, storage.ErrNotFound
	}
	return s.GetByID(ctx, r.ID)
}

// Delete removes a request.
// PRE: id > 0
// POST: Returns storage.ErrNotFound when no request had the id
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM booking_request WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// CountByStatus returns how many requests have the given status.
func (s *SQLiteStore) CountByStatus(ctx context.Context, status string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM booking_request WHERE status = ?", status).Scan(&n)
	return n, err
}

func scanRequest(scan func(dest ...any) error) (domain.Request, error) {
	var (
		r       domain.Request
		created string
	)
	err := scan(&r.ID, &r.Team, &r.Facility, &r.EventType, &r.Recurrence, &r.DayOfWeek, &r.Date,
		&r.StartTime, &r.EndTime, &r.Notes, &r.Status, &created)
	if err != nil {
		return domain.Request{}, err
	}
	if r.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return domain.Request{}, fmt.Errorf("booking request %d created_at: %w", r.ID, err)
	}
	return r, nil
}
