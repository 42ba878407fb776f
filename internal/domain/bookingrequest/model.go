package bookingrequest

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"clubsync/internal/domain/event"
)

// Recurrence values
const (
	RecurrenceWeekly = "weekly"
	RecurrenceOnce   = "once"
)

// Request statuses
const (
	StatusPending   = "pending"
	StatusScheduled = "scheduled"
	StatusRejected  = "rejected"
)

// ValidStatuses contains all valid request statuses.
var ValidStatuses = []string{StatusPending, StatusScheduled, StatusRejected}

// ValidDays contains the weekdays a weekly request may name.
var ValidDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// MaxNotesLength is the maximum length of request notes.
const MaxNotesLength = 2000

// Domain errors
var (
	ErrEmptyTeam         = errors.New("team is required")
	ErrInvalidRecurrence = errors.New("recurrence must be one of: weekly, once")
	ErrInvalidDay        = errors.New("day of week must be a valid day")
	ErrMissingDate       = errors.New("date is required for one-off requests")
	ErrInvalidDate       = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidTime       = errors.New("start and end times must be in HH:MM format")
	ErrEndBeforeStart    = errors.New("end time must be after start time")
	ErrInvalidStatus     = errors.New("status must be one of: pending, scheduled, rejected")
	ErrNotesTooLong      = errors.New("notes cannot exceed 2000 characters")
)

// Request is a team's preference for recurring or one-off facility time.
// Requests are resolved by the external solver, never locally.
type Request struct {
	ID         int64
	Team       string // team name
	Facility   string // preferred facility name, optional
	EventType  string
	Recurrence string // weekly, once
	DayOfWeek  string // weekly requests only
	Date       string // YYYY-MM-DD, one-off requests only
	StartTime  string // HH:MM
	EndTime    string // HH:MM
	Notes      string // Markdown
	Status     string
	CreatedAt  time.Time
}

// ApplyDefaults fills unset recurrence, type and status.
func (r *Request) ApplyDefaults() {
	if r.Recurrence == "" {
		r.Recurrence = RecurrenceWeekly
	}
	if r.EventType == "" {
		r.EventType = event.TypeOther
	}
	if r.Status == "" {
		r.Status = StatusPending
	}
	r.DayOfWeek = strings.ToLower(strings.TrimSpace(r.DayOfWeek))
}

// Validate checks if the Request has valid data.
// PRE: ApplyDefaults has been called
// POST: Returns nil if valid, error otherwise
func (r *Request) Validate() error {
	if strings.TrimSpace(r.Team) == "" {
		return ErrEmptyTeam
	}
	switch r.Recurrence {
	case RecurrenceWeekly:
		if !IsValidDay(r.DayOfWeek) {
			return ErrInvalidDay
		}
	case RecurrenceOnce:
		if r.Date == "" {
			return ErrMissingDate
		}
		if _, err := time.Parse("2006-01-02", r.Date); err != nil {
			return ErrInvalidDate
		}
	default:
		return ErrInvalidRecurrence
	}
	if _, ok := event.TypeLabels[r.EventType]; !ok {
		return event.ErrInvalidType
	}
	sh, sm, err := event.ParseClock(r.StartTime)
	if err != nil {
		return ErrInvalidTime
	}
	eh, em, err := event.ParseClock(r.EndTime)
	if err != nil {
		return ErrInvalidTime
	}
	if eh*60+em <= sh*60+sm {
		return ErrEndBeforeStart
	}
	if !isValidStatus(r.Status) {
		return ErrInvalidStatus
	}
	if utf8.RuneCountInString(r.Notes) > MaxNotesLength {
		return ErrNotesTooLong
	}
	return nil
}

// IsPending reports whether the solver has not yet resolved the request.
func (r Request) IsPending() bool {
	return r.Status == StatusPending
}

// Slot describes when the request wants the facility, e.g. "monday 18:30–20:00".
func (r Request) Slot() string {
	when := r.DayOfWeek
	if r.Recurrence == RecurrenceOnce {
		when = r.Date
	}
	return when + " " + r.StartTime + "–" + r.EndTime
}

// IsValidDay reports whether d names a weekday, ignoring case.
func IsValidDay(d string) bool {
	d = strings.ToLower(d)
	for _, v := range ValidDays {
		if d == v {
			return true
		}
	}
	return false
}

func isValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}
