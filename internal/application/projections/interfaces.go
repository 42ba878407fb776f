package projections

import (
	"context"

	"clubsync/internal/adapters/clubapi"
)

// EventSource lists events from the club API.
type EventSource interface {
	ListEvents(ctx context.Context) ([]clubapi.Event, error)
}

// FacilitySource lists facilities from the club API.
type FacilitySource interface {
	ListFacilities(ctx context.Context) ([]clubapi.Facility, error)
}

// TeamSource lists teams from the club API.
type TeamSource interface {
	ListTeams(ctx context.Context) ([]clubapi.Team, error)
}

// BookingRequestSource lists booking requests from the club API.
type BookingRequestSource interface {
	ListBookingRequests(ctx context.Context) ([]clubapi.BookingRequest, error)
}
