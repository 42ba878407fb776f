package team

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"clubsync/internal/domain/bookingrequest"
)

// Max length constants.
const (
	MaxNameLength     = 100
	MaxAgeGroupLength = 50
	MaxUsualDayLength = 20
)

// Domain errors
var (
	ErrEmptyName        = errors.New("team name cannot be empty")
	ErrNameTooLong      = errors.New("team name cannot exceed 100 characters")
	ErrAgeGroupTooLong  = errors.New("age group cannot exceed 50 characters")
	ErrUsualDayTooLong  = errors.New("usual day cannot exceed 20 characters")
	ErrInvalidUsualDay  = errors.New("usual day must be a day of the week")
	ErrInvalidUsualTime = errors.New("usual time must be in HH:MM format")
)

// Team is a club side that trains and plays at club facilities.
type Team struct {
	ID            int64
	Name          string // unique
	AgeGroup      string // e.g. "U14"
	UsualDay      string // e.g. "monday", optional
	UsualTime     string // HH:MM, optional
	UsualFacility string // facility name, optional
	IsFlexible    bool   // flexible teams can be moved more easily by the solver
}

// New returns a team with the default flexibility.
func New(name string) Team {
	return Team{Name: name, IsFlexible: true}
}

// Validate checks if the Team has valid data.
// PRE: Team struct is populated
// POST: Returns nil if valid, error otherwise
func (t *Team) Validate() error {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ErrNameTooLong
	}
	if utf8.RuneCountInString(t.AgeGroup) > MaxAgeGroupLength {
		return ErrAgeGroupTooLong
	}
	if utf8.RuneCountInString(t.UsualDay) > MaxUsualDayLength {
		return ErrUsualDayTooLong
	}
	if t.UsualDay != "" && !bookingrequest.IsValidDay(t.UsualDay) {
		return ErrInvalidUsualDay
	}
	if t.UsualTime != "" {
		if _, err := NormalizeClock(t.UsualTime); err != nil {
			return ErrInvalidUsualTime
		}
	}
	return nil
}

// NormalizeClock accepts "HH:MM" or "HH:MM:SS" and returns "HH:MM".
func NormalizeClock(s string) (string, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04"), nil
		}
	}
	return "", ErrInvalidUsualTime
}
