package orchestrators

import (
	"context"
	"log/slog"
	"strings"

	"clubsync/internal/adapters/clubapi"
	"clubsync/internal/domain/bookingrequest"
	"clubsync/internal/domain/team"
)

// BookingRequestWriter is the slice of the API client used by the requests page.
type BookingRequestWriter interface {
	CreateBookingRequest(ctx context.Context, p clubapi.BookingRequestPayload) (clubapi.BookingRequest, error)
	DeleteBookingRequest(ctx context.Context, id int64) error
}

// ExecuteSubmitBookingRequest checks a request locally, then submits it to the API.
// PRE: none
// POST: Returns the stored request or a *FormError
func ExecuteSubmitBookingRequest(ctx context.Context, r bookingrequest.Request, client BookingRequestWriter) (clubapi.BookingRequest, error) {
	normalizeRequest(&r)
	if err := r.Validate(); err != nil {
		return clubapi.BookingRequest{}, &FormError{Message: capitalize(err.Error()), Err: err}
	}
	saved, err := client.CreateBookingRequest(ctx, clubapi.BookingRequestPayload{
		Team:       r.Team,
		Facility:   r.Facility,
		EventType:  r.EventType,
		Recurrence: r.Recurrence,
		DayOfWeek:  r.DayOfWeek,
		Date:       r.Date,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		Notes:      r.Notes,
	})
	if err != nil {
		slog.Warn("request_event", "event", "request_submit_failed", "team", r.Team, "error", err)
		return clubapi.BookingRequest{}, &FormError{Message: apiMessageOr(err, "Failed to submit request. Please try again."), Err: err}
	}
	return saved, nil
}

// TeamCreator is the slice of the API client used by the teams page.
type TeamCreator interface {
	CreateTeam(ctx context.Context, p clubapi.TeamPayload) (clubapi.Team, error)
}

// ExecuteSubmitTeam checks a team locally, then creates it through the API.
// PRE: none
// POST: Returns the stored team or a *FormError
func ExecuteSubmitTeam(ctx context.Context, t team.Team, client TeamCreator) (clubapi.Team, error) {
	t.Name = strings.TrimSpace(t.Name)
	t.UsualDay = strings.ToLower(strings.TrimSpace(t.UsualDay))
	if err := t.Validate(); err != nil {
		return clubapi.Team{}, &FormError{Message: capitalize(err.Error()), Err: err}
	}
	flexible := t.IsFlexible
	saved, err := client.CreateTeam(ctx, clubapi.TeamPayload{
		Name:          t.Name,
		AgeGroup:      strings.TrimSpace(t.AgeGroup),
		UsualDay:      t.UsualDay,
		UsualTime:     t.UsualTime,
		UsualFacility: t.UsualFacility,
		IsFlexible:    &flexible,
	})
	if err != nil {
		slog.Warn("team_event", "event", "team_submit_failed", "name", t.Name, "error", err)
		return clubapi.Team{}, &FormError{Message: apiMessageOr(err, "Failed to save team. Please try again."), Err: err}
	}
	return saved, nil
}

func apiMessageOr(err error, fallback string) string {
	if msg := clubapi.ErrorMessage(err); msg != "" {
		return msg
	}
	return fallback
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// EventDeleter is the slice of the API client that deletes events.
type EventDeleter interface {
	DeleteEvent(ctx context.Context, id int64) error
}

// ExecuteDeleteRemoteEvent deletes an event through the API.
// PRE: id > 0
// POST: The API no longer lists the event, or the API error is returned
func ExecuteDeleteRemoteEvent(ctx context.Context, id int64, client EventDeleter) error {
	if err := client.DeleteEvent(ctx, id); err != nil {
		slog.Warn("event_event", "event", "event_delete_failed", "event_id", id, "error", err)
		return err
	}
	slog.Info("event_event", "event", "event_deleted", "event_id", id)
	return nil
}

// ExecuteWithdrawBookingRequest deletes a booking request through the API.
// PRE: id > 0
// POST: The request is gone, or the API error is returned
func ExecuteWithdrawBookingRequest(ctx context.Context, id int64, client BookingRequestWriter) error {
	if err := client.DeleteBookingRequest(ctx, id); err != nil {
		slog.Warn("request_event", "event", "request_withdraw_failed", "request_id", id, "error", err)
		return err
	}
	slog.Info("request_event", "event", "request_withdrawn", "request_id", id)
	return nil
}
