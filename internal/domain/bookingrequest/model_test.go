package bookingrequest

import (
	"errors"
	"strings"
	"testing"

	"clubsync/internal/domain/event"
)

// TestRequest_Validate tests booking request validation rules.
func TestRequest_Validate(t *testing.T) {
	weekly := Request{Team: "U12 Girls", Facility: "Training Pitch", DayOfWeek: "Monday", StartTime: "18:30", EndTime: "19:30"}
	weekly.ApplyDefaults()
	if err := weekly.Validate(); err != nil {
		t.Fatalf("expected valid weekly request, got: %v", err)
	}
	if weekly.DayOfWeek != "monday" {
		t.Errorf("expected day to be lower-cased, got %q", weekly.DayOfWeek)
	}

	tests := []struct {
		name    string
		modify  func(r *Request)
		wantErr error
	}{
		{"no team", func(r *Request) { r.Team = "" }, ErrEmptyTeam},
		{"bad recurrence", func(r *Request) { r.Recurrence = "fortnightly" }, ErrInvalidRecurrence},
		{"weekly without day", func(r *Request) { r.DayOfWeek = "" }, ErrInvalidDay},
		{"once without date", func(r *Request) { r.Recurrence = RecurrenceOnce }, ErrMissingDate},
		{"once bad date", func(r *Request) { r.Recurrence = RecurrenceOnce; r.Date = "20/01/2025" }, ErrInvalidDate},
		{"bad type", func(r *Request) { r.EventType = "picnic" }, event.ErrInvalidType},
		{"bad start", func(r *Request) { r.StartTime = "six" }, ErrInvalidTime},
		{"end before start", func(r *Request) { r.EndTime = "18:00" }, ErrEndBeforeStart},
		{"end equals start", func(r *Request) { r.EndTime = r.StartTime }, ErrEndBeforeStart},
		{"bad status", func(r *Request) { r.Status = "maybe" }, ErrInvalidStatus},
		{"long notes", func(r *Request) { r.Notes = strings.Repeat("n", MaxNotesLength+1) }, ErrNotesTooLong},
		{"multibyte notes at limit", func(r *Request) { r.Notes = strings.Repeat("é", MaxNotesLength) }, nil},
		{"multibyte notes too long", func(r *Request) { r.Notes = strings.Repeat("é", MaxNotesLength+1) }, ErrNotesTooLong},
		{"day in any case", func(r *Request) { r.DayOfWeek = "FRIDAY" }, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := weekly
			tc.modify(&r)
			if err := r.Validate(); !errors.Is(err, tc.wantErr) {
				t.Fatalf("Validate() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

// TestRequest_OneOff tests a valid one-off request and its slot label.
func TestRequest_OneOff(t *testing.T) {
	r := Request{Team: "Senior Men", Recurrence: RecurrenceOnce, Date: "2025-04-05", StartTime: "14:30", EndTime: "16:30"}
	r.ApplyDefaults()
	if err := r.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.IsPending() {
		t.Error("new requests should be pending")
	}
	if got := r.Slot(); got != "2025-04-05 14:30–16:30" {
		t.Errorf("Slot() = %q", got)
	}
}
