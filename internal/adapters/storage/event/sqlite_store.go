package event

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"clubsync/internal/adapters/storage"
	domain "clubsync/internal/domain/event"
)

// timeLayout keeps stored times lexically ordered so overlap checks can compare text.
const timeLayout = "2006-01-02T15:04:05Z"

const selectEvent = `
	SELECT e.id, e.title, e.start_time, e.end_time, e.is_fixed, e.team_name, e.event_type, e.team_id, e.status,
		f.id, f.name, f.type
	FROM event e
	JOIN facility f ON f.id = e.facility_id`

// overlapClause matches live events on the same facility whose interval intersects [start, end).
// Args: facility_id, exclude id, end, start.
const overlapClause = `
	SELECT 1 FROM event o
	WHERE o.facility_id = ? AND o.status != 'cancelled' AND o.id != ?
		AND o.start_time < ? AND o.end_time > ?`

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new Event store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// List retrieves events ordered by start time.
// PRE: none
// POST: Returns a non-nil slice of matching events
// INVARIANT: Store state is not mutated
func (s *SQLiteStore) List(ctx context.Context, filter ListFilter) ([]domain.Event, error) {
	var qb strings.Builder
	var args []any
	var where []string

	qb.WriteString(selectEvent)
	if filter.FacilityID != 0 {
		where = append(where, "e.facility_id = ?")
		args = append(args, filter.FacilityID)
	}
	if filter.ExcludeStatus != "" {
		where = append(where, "e.status != ?")
		args = append(args, filter.ExcludeStatus)
	}
	if len(where) > 0 {
		qb.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	qb.WriteString(" ORDER BY e.start_time, e.id")

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Event{}
	for rows.Next() {
		e, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetByID retrieves an event with its facility.
// PRE: id > 0
// POST: Returns the event or storage.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Event, error) {
	row := s.db.QueryRowContext(ctx, selectEvent+" WHERE e.id = ?", id)
	e, err := scanEvent(row.Scan)
	if err != nil {
		return domain.Event{}, storage.NotFound(err)
	}
	return e, nil
}

// Create inserts an event unless it would overlap a live event on the same facility.
// PRE: e has been validated; e.Facility.ID refers to an existing facility
// POST: Returns the stored event with its ID, or domain.ErrFacilityBooked
func (s *SQLiteStore) Create(ctx context.Context, e domain.Event) (domain.Event, error) {
	start, end := formatTime(e.StartTime), formatTime(e.EndTime)
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO event (title, start_time, end_time, facility_id, is_fixed, team_name, event_type, team_id, status)
		SELECT ?, ?, ?, ?, ?, ?, ?, ?, ?
		WHERE ? = 'cancelled' OR NOT EXISTS (`+overlapClause+`)`,
		e.Title, start, end, e.Facility.ID, e.IsFixed, e.TeamName, e.EventType, nullableID(e.TeamID), e.Status,
		e.Status, e.Facility.ID, 0, end, start,
	)
	if err != nil {
		return domain.Event{}, fmt.Errorf("insert event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.Event{}, err
	}
	if n == 0 {
		return domain.Event{}, domain.ErrFacilityBooked
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Event{}, err
	}
	return s.GetByID(ctx, id)
}

// Update replaces an event unless the new slot would overlap another live event.
// PRE: e.ID > 0; e has been validated
// POST: Returns the stored event, storage.ErrNotFound or domain.ErrFacilityBooked
// INVARIANT: A rejected update leaves the stored event unchanged
func (s *SQLiteStore) Update(ctx context.Context, e domain.Event) (domain.Event, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Event{}, err
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM event WHERE id = ?", e.ID).Scan(&exists); err != nil {
		return domain.Event{}, err
	}
	if exists == 0 {
		return domain.Event{}, storage.ErrNotFound
	}

	start, end := formatTime(e.StartTime), formatTime(e.EndTime)
	res, err := tx.ExecContext(ctx, `
		UPDATE event SET title = ?, start_time = ?, end_time = ?, facility_id = ?, is_fixed = ?,
			team_name = ?, event_type = ?, team_id = ?, status = ?
		WHERE id = ? AND (? = 'cancelled' OR NOT EXISTS (`+overlapClause+`))`,
		e.Title, start, end, e.Facility.ID, e.IsFixed, e.TeamName, e.EventType, nullableID(e.TeamID), e.Status,
		e.ID, e.Status, e.Facility.ID, e.ID, end, start,
	)
	if err != nil {
		return domain.Event{}, fmt.Errorf("update event %d: %w", e.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.Event{}, err
	}
	if n == 0 {
		return domain.Event{}, domain.ErrFacilityBooked
	}
	if err := tx.Commit(); err != nil {
		return domain.Event{}, err
	}
	return s.GetByID(ctx, e.ID)
}

// Delete removes an event.
// PRE: id > 0
// POST: Returns storage.ErrNotFound when no event had the id
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM event WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanEvent(scan func(dest ...any) error) (domain.Event, error) {
	var (
		e          domain.Event
		start, end string
		teamID     sql.NullInt64
	)
	err := scan(&e.ID, &e.Title, &start, &end, &e.IsFixed, &e.TeamName, &e.EventType, &teamID, &e.Status,
		&e.Facility.ID, &e.Facility.Name, &e.Facility.Type)
	if err != nil {
		return domain.Event{}, err
	}
	if e.StartTime, err = time.Parse(timeLayout, start); err != nil {
		return domain.Event{}, fmt.Errorf("event %d start_time: %w", e.ID, err)
	}
	if e.EndTime, err = time.Parse(timeLayout, end); err != nil {
		return domain.Event{}, fmt.Errorf("event %d end_time: %w", e.ID, err)
	}
	if teamID.Valid {
		id := teamID.Int64
		e.TeamID = &id
	}
	return e, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(timeLayout)
}

func nullableID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
