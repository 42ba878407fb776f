package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"clubsync/internal/adapters/storage"
	eventstore "clubsync/internal/adapters/storage/event"
	"clubsync/internal/domain/event"
	"clubsync/internal/domain/facility"
)

// UnknownFacilityError is returned when an event names a facility that does not exist.
type UnknownFacilityError struct {
	Name string
}

func (e *UnknownFacilityError) Error() string {
	return fmt.Sprintf("Object with name=%s does not exist.", e.Name)
}

// EventStore defines the event persistence needed by event orchestrators.
type EventStore interface {
	List(ctx context.Context, filter eventstore.ListFilter) ([]event.Event, error)
	GetByID(ctx context.Context, id int64) (event.Event, error)
	Create(ctx context.Context, e event.Event) (event.Event, error)
	Update(ctx context.Context, e event.Event) (event.Event, error)
	Delete(ctx context.Context, id int64) error
}

// FacilityLookup resolves facilities referenced by name.
type FacilityLookup interface {
	GetByName(ctx context.Context, name string) (facility.Facility, error)
}

// SaveEventInput carries the fields of an event create or full update.
type SaveEventInput struct {
	ID        int64 // zero for create
	Title     string
	StartTime time.Time
	EndTime   time.Time
	Facility  string // facility name
	IsFixed   bool
	TeamName  string
	EventType string
	TeamID    *int64
	Status    string
}

// SaveEventDeps holds dependencies for event create and update.
type SaveEventDeps struct {
	EventStore     EventStore
	FacilityLookup FacilityLookup
}

// ExecuteCreateEvent validates and stores a new event.
// PRE: input.ID is zero
// POST: Event stored; returns event.ErrFacilityBooked when the facility is taken,
// *UnknownFacilityError when the facility name does not resolve
func ExecuteCreateEvent(ctx context.Context, input SaveEventInput, deps SaveEventDeps) (event.Event, error) {
	e, err := buildEvent(ctx, input, deps.FacilityLookup)
	if err != nil {
		return event.Event{}, err
	}
	saved, err := deps.EventStore.Create(ctx, e)
	if err != nil {
		if errors.Is(err, event.ErrFacilityBooked) {
			slog.Info("event_event", "event", "event_rejected", "facility", e.Facility.Name, "start", e.StartTime, "reason", "overlap")
		}
		return event.Event{}, err
	}
	slog.Info("event_event", "event", "event_created", "event_id", saved.ID, "facility", saved.Facility.Name, "fixed", saved.IsFixed)
	return saved, nil
}

// ExecuteUpdateEvent replaces every field of an existing event.
// PRE: input.ID > 0
// POST: Event updated, or storage.ErrNotFound / event.ErrFacilityBooked / *UnknownFacilityError
func ExecuteUpdateEvent(ctx context.Context, input SaveEventInput, deps SaveEventDeps) (event.Event, error) {
	if input.ID <= 0 {
		return event.Event{}, storage.ErrNotFound
	}
	e, err := buildEvent(ctx, input, deps.FacilityLookup)
	if err != nil {
		return event.Event{}, err
	}
	saved, err := deps.EventStore.Update(ctx, e)
	if err != nil {
		return event.Event{}, err
	}
	slog.Info("event_event", "event", "event_updated", "event_id", saved.ID, "facility", saved.Facility.Name, "status", saved.Status)
	return saved, nil
}

// DeleteEventDeps holds dependencies for DeleteEvent.
type DeleteEventDeps struct {
	EventStore EventStore
}

// ExecuteDeleteEvent removes an event.
// PRE: id > 0
// POST: Event removed or storage.ErrNotFound
func ExecuteDeleteEvent(ctx context.Context, id int64, deps DeleteEventDeps) error {
	if err := deps.EventStore.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("event_event", "event", "event_deleted", "event_id", id)
	return nil
}

// EventInputFrom converts a stored event back into a save input, for partial updates.
func EventInputFrom(e event.Event) SaveEventInput {
	return SaveEventInput{
		ID:        e.ID,
		Title:     e.Title,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		Facility:  e.Facility.Name,
		IsFixed:   e.IsFixed,
		TeamName:  e.TeamName,
		EventType: e.EventType,
		TeamID:    e.TeamID,
		Status:    e.Status,
	}
}

func buildEvent(ctx context.Context, input SaveEventInput, facilities FacilityLookup) (event.Event, error) {
	e := event.Event{
		ID:        input.ID,
		Title:     strings.TrimSpace(input.Title),
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Facility:  facility.Facility{Name: strings.TrimSpace(input.Facility)},
		IsFixed:   input.IsFixed,
		TeamName:  strings.TrimSpace(input.TeamName),
		EventType: input.EventType,
		TeamID:    input.TeamID,
		Status:    input.Status,
	}
	e.ApplyDefaults()
	if err := e.Validate(); err != nil {
		return event.Event{}, err
	}
	f, err := facilities.GetByName(ctx, e.Facility.Name)
	if errors.Is(err, storage.ErrNotFound) {
		return event.Event{}, &UnknownFacilityError{Name: e.Facility.Name}
	}
	if err != nil {
		return event.Event{}, fmt.Errorf("resolve facility %q: %w", e.Facility.Name, err)
	}
	e.Facility = f
	return e, nil
}
