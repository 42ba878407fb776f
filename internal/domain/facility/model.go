package facility

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Facility types
const (
	TypePitch = "pitch"
	TypeHall  = "hall"
	TypeGym   = "gym"
)

// MaxNameLength is the maximum length of a facility name.
const MaxNameLength = 100

// ValidTypes contains all valid facility types.
var ValidTypes = []string{TypePitch, TypeHall, TypeGym}

// TypeLabels maps facility types to their display names.
var TypeLabels = map[string]string{
	TypePitch: "Pitch",
	TypeHall:  "Hall",
	TypeGym:   "Gym",
}

// Domain errors
var (
	ErrEmptyName   = errors.New("facility name cannot be empty")
	ErrNameTooLong = errors.New("facility name cannot exceed 100 characters")
	ErrInvalidType = errors.New("facility type must be one of: pitch, hall, gym")
)

// Facility is a bookable physical resource of the club.
type Facility struct {
	ID   int64
	Name string // unique
	Type string // pitch, hall, gym
}

// Defaults are the facilities every club starts with.
var Defaults = []Facility{
	{Name: "Main Pitch", Type: TypePitch},
	{Name: "Training Pitch", Type: TypePitch},
	{Name: "Hall", Type: TypeHall},
	{Name: "Gym", Type: TypeGym},
}

// Validate checks if the Facility has valid data.
// PRE: Facility struct is populated
// POST: Returns nil if valid, error otherwise
func (f *Facility) Validate() error {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ErrNameTooLong
	}
	if _, ok := TypeLabels[f.Type]; !ok {
		return ErrInvalidType
	}
	return nil
}

// Label returns the facility name with its type, e.g. "Main Pitch (Pitch)".
func (f Facility) Label() string {
	label, ok := TypeLabels[f.Type]
	if !ok {
		return f.Name
	}
	return f.Name + " (" + label + ")"
}
