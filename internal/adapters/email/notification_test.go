package email

import (
	"context"
	"strings"
	"testing"

	"clubsync/internal/domain/bookingrequest"
	"clubsync/internal/domain/event"
)

func TestBookingRequestNotification(t *testing.T) {
	r := bookingrequest.Request{
		Team:       "U12 Girls",
		Facility:   "Hall",
		EventType:  event.TypeJuvenileTraining,
		Recurrence: bookingrequest.RecurrenceWeekly,
		DayOfWeek:  "wednesday",
		StartTime:  "17:00",
		EndTime:    "18:00",
		Notes:      "Need the **whole** hall <script>alert(1)</script>",
	}

	req, err := BookingRequestNotification("Riverside FC", []string{"fixtures@example.org"}, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Subject != "Booking request: U12 Girls (every wednesday 17:00–18:00)" {
		t.Errorf("Subject = %q", req.Subject)
	}
	if len(req.To) != 1 || req.To[0] != "fixtures@example.org" {
		t.Errorf("To = %v", req.To)
	}
	for _, want := range []string{"Riverside FC", "Juvenile Training", "Hall", "<strong>whole</strong>"} {
		if !strings.Contains(req.HTML, want) {
			t.Errorf("HTML missing %q:\n%s", want, req.HTML)
		}
	}
	if strings.Contains(req.HTML, "<script>") {
		t.Error("raw HTML in notes must not be rendered")
	}
}

func TestBookingRequestNotification_OneOff(t *testing.T) {
	r := bookingrequest.Request{
		Team:       "Seniors",
		EventType:  "other",
		Recurrence: bookingrequest.RecurrenceOnce,
		Date:       "2026-03-01",
		StartTime:  "10:00",
		EndTime:    "12:00",
	}
	req, err := BookingRequestNotification("Riverside FC", []string{"a@example.org"}, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if req.Subject != "Booking request: Seniors (2026-03-01 10:00–12:00)" {
		t.Errorf("Subject = %q", req.Subject)
	}
	if strings.Contains(req.HTML, "<h3>Notes</h3>") {
		t.Error("empty notes should not render a notes section")
	}
}

func TestNoopSender_RecordsSends(t *testing.T) {
	s := NewNoopSender()
	res, err := s.Send(context.Background(), SendRequest{To: []string{"x@example.org"}, Subject: "hi"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !strings.HasPrefix(res.MessageID, "noop-") {
		t.Errorf("MessageID = %q", res.MessageID)
	}
	if sent := s.Sent(); len(sent) != 1 || sent[0].Subject != "hi" {
		t.Errorf("Sent = %+v", sent)
	}
}
