package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"clubsync/internal/adapters/clubapi"
	"clubsync/internal/domain/event"
)

// Event form messages shown in the create/edit modal.
const (
	MsgTitleRequired    = "Title is required"
	MsgFacilityRequired = "Please select a facility"
	MsgEndAfterStart    = "End time must be after start time"
	MsgInvalidDateTime  = "Please enter a valid start and end date and time"
	MsgSaveFailed       = "Failed to save event. Please try again."
)

// Form defaults for a new event.
const (
	DefaultFormStart = "18:00"
	DefaultFormEnd   = "19:30"
)

const (
	formDateLayout  = "2006-01-02"
	formClockLayout = "15:04"
)

// FormError is a user-facing validation or save failure. The form stays open
// with the entered values.
type FormError struct {
	Message string
	Err     error // underlying cause, if any
}

func (e *FormError) Error() string { return e.Message }

func (e *FormError) Unwrap() error { return e.Err }

// EventForm holds the raw values of the create/edit event modal.
type EventForm struct {
	ID        int64 // zero for create
	EventType string
	Title     string
	Facility  string // facility name
	StartDate string // YYYY-MM-DD
	StartTime string // HH:MM
	EndDate   string
	EndTime   string
	TeamName  string
	IsFixed   bool
	Status    string // carried through unchanged on edit
}

// NewEventForm returns the defaults for a new event: type other, today, 18:00-19:30.
func NewEventForm(today time.Time) EventForm {
	d := today.Format(formDateLayout)
	return EventForm{
		EventType: event.TypeOther,
		StartDate: d,
		StartTime: DefaultFormStart,
		EndDate:   d,
		EndTime:   DefaultFormEnd,
	}
}

// EventFormFrom populates the edit modal from a stored event, in loc's wall time.
func EventFormFrom(e event.Event, loc *time.Location) EventForm {
	start, end := e.StartTime.In(loc), e.EndTime.In(loc)
	eventType := e.EventType
	if eventType == "" {
		eventType = event.TypeOther
	}
	return EventForm{
		ID:        e.ID,
		EventType: eventType,
		Title:     e.Title,
		Facility:  e.Facility.Name,
		StartDate: start.Format(formDateLayout),
		StartTime: start.Format(formClockLayout),
		EndDate:   end.Format(formDateLayout),
		EndTime:   end.Format(formClockLayout),
		TeamName:  e.TeamName,
		IsFixed:   e.IsFixed,
		Status:    e.Status,
	}
}

// IsEdit reports whether the form edits an existing event.
func (f EventForm) IsEdit() bool { return f.ID != 0 }

// ApplyTypeDuration sets the end to start plus the event type's default
// duration, wrapping past midnight on the clock. The end date becomes the start date.
// POST: returns false and leaves the form unchanged when the type has no default
func (f *EventForm) ApplyTypeDuration() bool {
	minutes, ok := event.DefaultDuration(f.EventType)
	if !ok {
		return false
	}
	end, err := event.AddMinutesToClock(f.StartTime, minutes)
	if err != nil {
		return false
	}
	f.EndTime = end
	f.EndDate = f.StartDate
	return true
}

// Check validates the form in display order: title, facility, then times.
// POST: returns a *FormError or nil
func (f EventForm) Check(loc *time.Location) error {
	if strings.TrimSpace(f.Title) == "" {
		return &FormError{Message: MsgTitleRequired}
	}
	if strings.TrimSpace(f.Facility) == "" {
		return &FormError{Message: MsgFacilityRequired}
	}
	start, end, err := f.times(loc)
	if err != nil {
		return &FormError{Message: MsgInvalidDateTime, Err: err}
	}
	if !end.After(start) {
		return &FormError{Message: MsgEndAfterStart}
	}
	return nil
}

// Payload builds the API payload. The facility is sent by name and an empty
// team name is omitted.
// PRE: Check returned nil
func (f EventForm) Payload(loc *time.Location) (clubapi.EventPayload, error) {
	start, end, err := f.times(loc)
	if err != nil {
		return clubapi.EventPayload{}, err
	}
	eventType := f.EventType
	if eventType == "" {
		eventType = event.TypeOther
	}
	return clubapi.EventPayload{
		Title:     strings.TrimSpace(f.Title),
		StartTime: start.UTC().Format(clubapi.WireTimeLayout),
		EndTime:   end.UTC().Format(clubapi.WireTimeLayout),
		Facility:  strings.TrimSpace(f.Facility),
		IsFixed:   f.IsFixed,
		TeamName:  strings.TrimSpace(f.TeamName),
		EventType: eventType,
		Status:    f.Status,
	}, nil
}

func (f EventForm) times(loc *time.Location) (start, end time.Time, err error) {
	layout := formDateLayout + " " + formClockLayout
	start, err = time.ParseInLocation(layout, f.StartDate+" "+f.StartTime, loc)
	if err != nil {
		return start, end, err
	}
	end, err = time.ParseInLocation(layout, f.EndDate+" "+f.EndTime, loc)
	return start, end, err
}

// EventWriter is the slice of the API client the event form needs.
type EventWriter interface {
	CreateEvent(ctx context.Context, p clubapi.EventPayload) (clubapi.Event, error)
	UpdateEvent(ctx context.Context, id int64, p clubapi.EventPayload) (clubapi.Event, error)
}

// SubmitEventFormDeps holds dependencies for SubmitEventForm.
type SubmitEventFormDeps struct {
	Client   EventWriter
	Location *time.Location
}

// ExecuteSubmitEventForm validates the form and creates or updates the event.
// PRE: none
// POST: On success returns the stored event; on failure returns a *FormError
// whose message is the validation text, the API's first non-field error or
// detail, or MsgSaveFailed
func ExecuteSubmitEventForm(ctx context.Context, form EventForm, deps SubmitEventFormDeps) (clubapi.Event, error) {
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	if err := form.Check(loc); err != nil {
		return clubapi.Event{}, err
	}
	payload, err := form.Payload(loc)
	if err != nil {
		return clubapi.Event{}, &FormError{Message: MsgInvalidDateTime, Err: err}
	}

	var saved clubapi.Event
	if form.IsEdit() {
		saved, err = deps.Client.UpdateEvent(ctx, form.ID, payload)
	} else {
		saved, err = deps.Client.CreateEvent(ctx, payload)
	}
	if err != nil {
		slog.Warn("event_event", "event", "event_save_failed", "event_id", form.ID, "error", err)
		return clubapi.Event{}, &FormError{Message: SaveErrorMessage(err), Err: err}
	}
	slog.Info("event_event", "event", "event_saved", "event_id", saved.ID, "edit", form.IsEdit())
	return saved, nil
}

// SaveErrorMessage picks the text shown when the API rejects a save:
// the first non-field error, then detail, then MsgSaveFailed.
func SaveErrorMessage(err error) string {
	var apiErr *clubapi.APIError
	if errors.As(err, &apiErr) {
		if len(apiErr.NonFieldErrors) > 0 && apiErr.NonFieldErrors[0] != "" {
			return apiErr.NonFieldErrors[0]
		}
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
	}
	return MsgSaveFailed
}
