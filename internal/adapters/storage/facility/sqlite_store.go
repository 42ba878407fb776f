package facility

import (
	"context"
	"fmt"

	"clubsync/internal/adapters/storage"
	domain "clubsync/internal/domain/facility"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new Facility store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// List returns every facility ordered by name.
// PRE: none
// POST: Returns a non-nil slice
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Facility, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, type FROM facility ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Facility{}
	for rows.Next() {
		var f domain.Facility
		if err := rows.Scan(&f.ID, &f.Name, &f.Type); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// GetByID retrieves a facility by its ID.
// PRE: id > 0
// POST: Returns the facility or storage.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Facility, error) {
	var f domain.Facility
	err := s.db.QueryRowContext(ctx, "SELECT id, name, type FROM facility WHERE id = ?", id).
		Scan(&f.ID, &f.Name, &f.Type)
	if err != nil {
		return domain.Facility{}, storage.NotFound(err)
	}
	return f, nil
}

// GetByName retrieves a facility by its unique name.
// PRE: name is non-empty
// POST: Returns the facility or storage.ErrNotFound
func (s *SQLiteStore) GetByName(ctx context.Context, name string) (domain.Facility, error) {
	var f domain.Facility
	err := s.db.QueryRowContext(ctx, "SELECT id, name, type FROM facility WHERE name = ?", name).
		Scan(&f.ID, &f.Name, &f.Type)
	if err != nil {
		return domain.Facility{}, storage.NotFound(err)
	}
	return f, nil
}

// Create inserts a facility and returns it with its assigned ID.
// PRE: f has been validated
// POST: Returns storage.ErrDuplicate when the name is taken
func (s *SQLiteStore) Create(ctx context.Context, f domain.Facility) (domain.Facility, error) {
	res, err := s.db.ExecContext(ctx, "INSERT INTO facility (name, type) VALUES (?, ?)", f.Name, f.Type)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			return domain.Facility{}, fmt.Errorf("facility %q: %w", f.Name, storage.ErrDuplicate)
		}
		return domain.Facility{}, err
	}
	f.ID, err = res.LastInsertId()
	return f, err
}

// EnsureDefaults inserts the default club facilities that are missing.
// PRE: none
// POST: Every domain.Defaults name exists; returns how many were inserted
// INVARIANT: Existing facilities are not modified
func (s *SQLiteStore) EnsureDefaults(ctx context.Context) (int, error) {
	inserted := 0
	for _, f := range domain.Defaults {
		res, err := s.db.ExecContext(ctx,
			"INSERT INTO facility (name, type) VALUES (?, ?) ON CONFLICT(name) DO NOTHING", f.Name, f.Type)
		if err != nil {
			return inserted, fmt.Errorf("seed facility %q: %w", f.Name, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}
	return inserted, nil
}
