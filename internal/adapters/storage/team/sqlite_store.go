package team

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"clubsync/internal/adapters/storage"
	domain "clubsync/internal/domain/team"
)

// ErrUnknownFacility is returned when UsualFacility names no facility.
var ErrUnknownFacility = errors.New("usual facility does not exist")

const selectTeam = `
	SELECT t.id, t.name, t.age_group, t.usual_day, t.usual_time, COALESCE(f.name, ''), t.is_flexible
	FROM team t
	LEFT JOIN facility f ON f.id = t.usual_facility_id`

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new Team store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// List returns all teams ordered by name.
// PRE: none
// POST: Returns a non-nil slice
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Team, error) {
	rows, err := s.db.QueryContext(ctx, selectTeam+" ORDER BY t.name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Team{}
	for rows.Next() {
		t, err := scanTeam(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetByID retrieves a team by ID.
// PRE: id > 0
// POST: Returns the team or storage.ErrNotFound
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (domain.Team, error) {
	t, err := scanTeam(s.db.QueryRowContext(ctx, selectTeam+" WHERE t.id = ?", id).Scan)
	if err != nil {
		return domain.Team{}, storage.NotFound(err)
	}
	return t, nil
}

// GetByName retrieves a team by its unique name.
// PRE: name is non-empty
// POST: Returns the team or storage.ErrNotFound
func (s *SQLiteStore) GetByName(ctx context.Context, name string) (domain.Team, error) {
	t, err := scanTeam(s.db.QueryRowContext(ctx, selectTeam+" WHERE t.name = ?", name).Scan)
	if err != nil {
		return domain.Team{}, storage.NotFound(err)
	}
	return t, nil
}

// Create inserts a team.
// PRE: t has been validated
// POST: Returns the stored team, storage.ErrDuplicate or ErrUnknownFacility
func (s *SQLiteStore) Create(ctx context.Context, t domain.Team) (domain.Team, error) {
	facilityID, err := s.resolveFacility(ctx, t.UsualFacility)
	if err != nil {
		return domain.Team{}, err
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO team (name, age_group, usual_day, usual_time, usual_facility_id, is_flexible)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.Name, t.AgeGroup, t.UsualDay, t.UsualTime, facilityID, t.IsFlexible,
	)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			return domain.Team{}, fmt.Errorf("team %q: %w", t.Name, storage.ErrDuplicate)
		}
		return domain.Team{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Team{}, err
	}
	return s.GetByID(ctx, id)
}

// Update replaces a team's fields.
// PRE: t.ID > 0; t has been validated
// POST: Returns the stored team, storage.ErrNotFound, storage.ErrDuplicate or ErrUnknownFacility
func (s *SQLiteStore) Update(ctx context.Context, t domain.Team) (domain.Team, error) {
	facilityID, err := s.resolveFacility(ctx, t.UsualFacility)
	if err != nil {
		return domain.Team{}, err
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE team SET name = ?, age_group = ?, usual_day = ?, usual_time = ?, usual_facility_id = ?, is_flexible = ?
		WHERE id = ?`,
		t.Name, t.AgeGroup, t.UsualDay, t.UsualTime, facilityID, t.IsFlexible, t.ID,
	)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			return domain.Team{}, fmt.Errorf("team %q: %w", t.Name, storage.ErrDuplicate)
		}
		return domain.Team{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Team{}, storage.ErrNotFound
	}
	return s.GetByID(ctx, t.ID)
}

// Delete removes a team. Events keep their free-text team name.
// PRE: id > 0
// POST: Returns storage.ErrNotFound when no team had the id
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM team WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) resolveFacility(ctx context.Context, name string) (any, error) {
	if name == "" {
		return nil, nil
	}
	var id int64
	err := s.db.QueryRowContext(ctx, "SELECT id FROM facility WHERE name = ?", name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownFacility)
	}
	if err != nil {
		return nil, err
	}
	return id, nil
}

func scanTeam(scan func(dest ...any) error) (domain.Team, error) {
	var t domain.Team
	err := scan(&t.ID, &t.Name, &t.AgeGroup, &t.UsualDay, &t.UsualTime, &t.UsualFacility, &t.IsFlexible)
	return t, err
}
