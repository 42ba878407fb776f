package orchestrators

import (
	"context"
	"log/slog"
	"strings"
	"time"

	emailAdapter "clubsync/internal/adapters/email"
	"clubsync/internal/domain/bookingrequest"
)

// BookingRequestStore defines the persistence needed by booking request orchestrators.
type BookingRequestStore interface {
	Create(ctx context.Context, r bookingrequest.Request) (bookingrequest.Request, error)
	Update(ctx context.Context, r bookingrequest.Request) (bookingrequest.Request, error)
	Delete(ctx context.Context, id int64) error
}

// BookingRequestDeps holds dependencies for booking request orchestrators.
type BookingRequestDeps struct {
	Store    BookingRequestStore
	Sender   emailAdapter.Sender // optional: nil disables notifications
	NotifyTo []string
	ClubName string
	Now      func() time.Time
}

// ExecuteCreateBookingRequest stores a team's request and notifies the fixtures secretary.
// PRE: none
// POST: Request stored as pending unless a status was given; a notification failure
// is logged and does not fail the request
func ExecuteCreateBookingRequest(ctx context.Context, r bookingrequest.Request, deps BookingRequestDeps) (bookingrequest.Request, error) {
	r.ID = 0
	normalizeRequest(&r)
	if err := r.Validate(); err != nil {
		return bookingrequest.Request{}, err
	}
	r.CreatedAt = time.Time{}
	if deps.Now != nil {
		r.CreatedAt = deps.Now()
	}

	saved, err := deps.Store.Create(ctx, r)
	if err != nil {
		return bookingrequest.Request{}, err
	}
	slog.Info("request_event", "event", "request_created", "request_id", saved.ID, "team", saved.Team, "slot", saved.Slot())

	if deps.Sender != nil && len(deps.NotifyTo) > 0 {
		msg, err := emailAdapter.BookingRequestNotification(deps.ClubName, deps.NotifyTo, saved)
		if err == nil {
			_, err = deps.Sender.Send(ctx, msg)
		}
		if err != nil {
			slog.Warn("request_event", "event", "request_notify_failed", "request_id", saved.ID, "error", err)
		}
	}
	return saved, nil
}

// ExecuteUpdateBookingRequest replaces a stored request.
// PRE: r.ID > 0
// POST: Request updated or storage.ErrNotFound
func ExecuteUpdateBookingRequest(ctx context.Context, r bookingrequest.Request, deps BookingRequestDeps) (bookingrequest.Request, error) {
	normalizeRequest(&r)
	if err := r.Validate(); err != nil {
		return bookingrequest.Request{}, err
	}
	saved, err := deps.Store.Update(ctx, r)
	if err != nil {
		return bookingrequest.Request{}, err
	}
	slog.Info("request_event", "event", "request_updated", "request_id", saved.ID, "status", saved.Status)
	return saved, nil
}

// ExecuteDeleteBookingRequest removes a request.
// PRE: id > 0
// POST: Request removed or storage.ErrNotFound
func ExecuteDeleteBookingRequest(ctx context.Context, id int64, deps BookingRequestDeps) error {
	if err := deps.Store.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("request_event", "event", "request_deleted", "request_id", id)
	return nil
}

func normalizeRequest(r *bookingrequest.Request) {
	r.Team = strings.TrimSpace(r.Team)
	r.Facility = strings.TrimSpace(r.Facility)
	r.Date = strings.TrimSpace(r.Date)
	r.ApplyDefaults()
	if r.Recurrence == bookingrequest.RecurrenceWeekly {
		r.Date = ""
	} else {
		r.DayOfWeek = ""
	}
}
