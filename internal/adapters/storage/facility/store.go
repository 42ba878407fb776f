package facility

import (
	"context"

	domain "clubsync/internal/domain/facility"
)

// Store persists Facility state.
type Store interface {
	List(ctx context.Context) ([]domain.Facility, error)
	GetByID(ctx context.Context, id int64) (domain.Facility, error)
	GetByName(ctx context.Context, name string) (domain.Facility, error)
	Create(ctx context.Context, f domain.Facility) (domain.Facility, error)
	EnsureDefaults(ctx context.Context) (int, error)
}
