package event

import (
	"context"

	domain "clubsync/internal/domain/event"
)

// Store persists Event state.
// Create and Update enforce the facility overlap constraint atomically and
// return domain.ErrFacilityBooked when it would be violated.
type Store interface {
	List(ctx context.Context, filter ListFilter) ([]domain.Event, error)
	GetByID(ctx context.Context, id int64) (domain.Event, error)
	Create(ctx context.Context, e domain.Event) (domain.Event, error)
	Update(ctx context.Context, e domain.Event) (domain.Event, error)
	Delete(ctx context.Context, id int64) error
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	FacilityID    int64 // 0 means all facilities
	ExcludeStatus string
}
