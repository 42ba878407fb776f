package orchestrators

import (
	"context"
	"log/slog"
	"strings"

	"clubsync/internal/domain/team"
)

// TeamStore defines the team persistence needed by team orchestrators.
type TeamStore interface {
	Create(ctx context.Context, t team.Team) (team.Team, error)
	Update(ctx context.Context, t team.Team) (team.Team, error)
	Delete(ctx context.Context, id int64) error
}

// SaveTeamInput carries the fields of a team create or update.
type SaveTeamInput struct {
	ID            int64 // zero for create
	Name          string
	AgeGroup      string
	UsualDay      string
	UsualTime     string
	UsualFacility string
	IsFlexible    *bool // nil keeps the default (true)
}

// TeamDeps holds dependencies for team orchestrators.
type TeamDeps struct {
	TeamStore TeamStore
}

// ExecuteSaveTeam creates a team when input.ID is zero, otherwise replaces it.
// PRE: none
// POST: Team stored; storage.ErrDuplicate when the name is taken
func ExecuteSaveTeam(ctx context.Context, input SaveTeamInput, deps TeamDeps) (team.Team, error) {
	t := team.New(strings.TrimSpace(input.Name))
	t.ID = input.ID
	t.AgeGroup = strings.TrimSpace(input.AgeGroup)
	t.UsualDay = strings.ToLower(strings.TrimSpace(input.UsualDay))
	t.UsualFacility = strings.TrimSpace(input.UsualFacility)
	if input.IsFlexible != nil {
		t.IsFlexible = *input.IsFlexible
	}
	if input.UsualTime != "" {
		clock, err := team.NormalizeClock(input.UsualTime)
		if err != nil {
			return team.Team{}, err
		}
		t.UsualTime = clock
	}
	if err := t.Validate(); err != nil {
		return team.Team{}, err
	}

	var (
		saved team.Team
		err   error
	)
	if t.ID == 0 {
		saved, err = deps.TeamStore.Create(ctx, t)
	} else {
		saved, err = deps.TeamStore.Update(ctx, t)
	}
	if err != nil {
		return team.Team{}, err
	}
	slog.Info("team_event", "event", "team_saved", "team_id", saved.ID, "name", saved.Name, "created", input.ID == 0)
	return saved, nil
}

// ExecuteDeleteTeam removes a team.
// PRE: id > 0
// POST: Team removed or storage.ErrNotFound
func ExecuteDeleteTeam(ctx context.Context, id int64, deps TeamDeps) error {
	if err := deps.TeamStore.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("team_event", "event", "team_deleted", "team_id", id)
	return nil
}
