package team

import (
	"context"

	domain "clubsync/internal/domain/team"
)

// Store persists Team state.
type Store interface {
	List(ctx context.Context) ([]domain.Team, error)
	GetByID(ctx context.Context, id int64) (domain.Team, error)
	GetByName(ctx context.Context, name string) (domain.Team, error)
	Create(ctx context.Context, t domain.Team) (domain.Team, error)
	Update(ctx context.Context, t domain.Team) (domain.Team, error)
	Delete(ctx context.Context, id int64) error
}
