package bookingrequest

import (
	"context"

	domain "clubsync/internal/domain/bookingrequest"
)

// Store persists booking Request state.
type Store interface {
	List(ctx context.Context, filter ListFilter) ([]domain.Request, error)
	GetByID(ctx context.Context, id int64) (domain.Request, error)
	Create(ctx context.Context, r domain.Request) (domain.Request, error)
	Update(ctx context.Context, r domain.Request) (domain.Request, error)
	Delete(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context, status string) (int, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Status string
}
