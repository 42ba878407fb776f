package event

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"clubsync/internal/domain/facility"
)

// Event types
const (
	TypeJuvenileTraining = "juvenile_training"
	TypeAdultTraining    = "adult_training"
	TypeGymSession       = "gym_session"
	TypeMatch            = "match"
	TypeChampionship     = "championship"
	TypeMeeting          = "meeting"
	TypeOther            = "other"
)

// ValidTypes lists event types in display order.
var ValidTypes = []string{
	TypeJuvenileTraining,
	TypeAdultTraining,
	TypeGymSession,
	TypeMatch,
	TypeChampionship,
	TypeMeeting,
	TypeOther,
}

// TypeLabels maps event types to display names.
var TypeLabels = map[string]string{
	TypeJuvenileTraining: "Juvenile Training",
	TypeAdultTraining:    "Adult Training",
	TypeGymSession:       "Gym Session",
	TypeMatch:            "Match",
	TypeChampionship:     "Championship Match",
	TypeMeeting:          "Meeting",
	TypeOther:            "Other",
}

// TypeDurations holds the default length in minutes of each event type.
// TypeOther has no default and is absent.
var TypeDurations = map[string]int{
	TypeJuvenileTraining: 60,
	TypeAdultTraining:    90,
	TypeGymSession:       60,
	TypeMatch:            120,
	TypeChampionship:     150,
	TypeMeeting:          60,
}

// Event statuses
const (
	StatusDraft     = "draft"
	StatusProposed  = "proposed"
	StatusPublished = "published"
	StatusCancelled = "cancelled"
)

// ValidStatuses contains all valid event statuses.
var ValidStatuses = []string{StatusDraft, StatusProposed, StatusPublished, StatusCancelled}

// Max length constants.
const (
	MaxTitleLength    = 200
	MaxTeamNameLength = 100
)

// Domain errors
var (
	ErrEmptyTitle       = errors.New("event title cannot be empty")
	ErrTitleTooLong     = errors.New("event title cannot exceed 200 characters")
	ErrMissingFacility  = errors.New("event facility is required")
	ErrMissingTimes     = errors.New("event start and end times are required")
	ErrEndBeforeStart   = errors.New("End time must be after start time")
	ErrInvalidType      = errors.New("event type is not recognised")
	ErrInvalidStatus    = errors.New("event status must be one of: draft, proposed, published, cancelled")
	ErrTeamNameTooLong  = errors.New("team name cannot exceed 100 characters")
	ErrFacilityBooked   = errors.New("This facility is already booked at that time.")
	ErrInvalidClockTime = errors.New("time must be in HH:MM format")
)

// Event is a scheduled occupation of a facility by a team or activity.
// INVARIANT: EndTime is strictly after StartTime.
type Event struct {
	ID        int64
	Title     string
	StartTime time.Time
	EndTime   time.Time
	Facility  facility.Facility
	IsFixed   bool   // county fixtures, cannot be moved by the solver
	TeamName  string // free text, optional
	EventType string
	TeamID    *int64
	Status    string
}

// Validate checks the event's invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(e.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}
	if e.Facility.ID == 0 && strings.TrimSpace(e.Facility.Name) == "" {
		return ErrMissingFacility
	}
	if e.StartTime.IsZero() || e.EndTime.IsZero() {
		return ErrMissingTimes
	}
	if !e.EndTime.After(e.StartTime) {
		return ErrEndBeforeStart
	}
	if _, ok := TypeLabels[e.EventType]; !ok {
		return ErrInvalidType
	}
	if !isValidStatus(e.Status) {
		return ErrInvalidStatus
	}
	if utf8.RuneCountInString(e.TeamName) > MaxTeamNameLength {
		return ErrTeamNameTooLong
	}
	return nil
}

// ApplyDefaults fills in the event type and status when they are unset.
// PRE: none
// POST: EventType and Status are non-empty
func (e *Event) ApplyDefaults() {
	if e.EventType == "" {
		e.EventType = TypeOther
	}
	if e.Status == "" {
		e.Status = StatusDraft
	}
}

// IsCancelled reports whether the event has been cancelled.
func (e Event) IsCancelled() bool {
	return e.Status == StatusCancelled
}

// Overlaps reports whether both events occupy the same facility at the same time.
// Cancelled events never occupy a facility. An event never overlaps itself.
// PRE: both events have valid times
// POST: returns true iff facilities match and [start, end) intervals intersect
func (e Event) Overlaps(other Event) bool {
	if e.IsCancelled() || other.IsCancelled() {
		return false
	}
	if e.ID != 0 && e.ID == other.ID {
		return false
	}
	if !sameFacility(e.Facility, other.Facility) {
		return false
	}
	return e.StartTime.Before(other.EndTime) && e.EndTime.After(other.StartTime)
}

// Duration returns the length of the event.
func (e Event) Duration() time.Duration {
	return e.EndTime.Sub(e.StartTime)
}

// String renders the event the way the admin lists show it.
func (e Event) String() string {
	return fmt.Sprintf("%s – %s", e.Title, e.Facility.Label())
}

// DefaultDuration returns the default length of an event type in minutes.
// POST: ok is false for unknown types and for TypeOther
func DefaultDuration(eventType string) (minutes int, ok bool) {
	minutes, ok = TypeDurations[eventType]
	return minutes, ok
}

// AddMinutesToClock adds minutes to an "HH:MM" wall-clock time, wrapping at midnight.
// PRE: clock is "HH:MM" with 0 <= HH < 24, 0 <= MM < 60
// POST: returns the resulting "HH:MM"
func AddMinutesToClock(clock string, minutes int) (string, error) {
	h, m, err := ParseClock(clock)
	if err != nil {
		return "", err
	}
	total := h*60 + m + minutes
	total = ((total % (24 * 60)) + 24*60) % (24 * 60)
	return fmt.Sprintf("%02d:%02d", total/60, total%60), nil
}

// ParseClock splits an "HH:MM" (or "HH:MM:SS") time into hours and minutes.
func ParseClock(clock string) (hours, minutes int, err error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		t, err = time.Parse("15:04:05", clock)
		if err != nil {
			return 0, 0, ErrInvalidClockTime
		}
	}
	return t.Hour(), t.Minute(), nil
}

func sameFacility(a, b facility.Facility) bool {
	if a.ID != 0 && b.ID != 0 {
		return a.ID == b.ID
	}
	return a.Name != "" && a.Name == b.Name
}

func isValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}
