package orchestrators

import (
	"context"
	"testing"
	"time"

	"clubsync/internal/domain/bookingrequest"
	"clubsync/internal/domain/event"
	"clubsync/internal/domain/facility"
)

func auditEvent(id int64, title, fac string, startHour, endHour int, status string) event.Event {
	return event.Event{
		ID:        id,
		Title:     title,
		Facility:  facility.Facility{Name: fac},
		StartTime: time.Date(2026, 2, 5, startHour, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 2, 5, endHour, 0, 0, 0, time.UTC),
		Status:    status,
	}
}

// TestFindConflicts tests the pairwise overlap audit.
func TestFindConflicts(t *testing.T) {
	tests := []struct {
		name   string
		events []event.Event
		want   int
	}{
		{"empty", nil, 0},
		{"back to back", []event.Event{
			auditEvent(1, "A", "Hall", 18, 19, "draft"),
			auditEvent(2, "B", "Hall", 19, 20, "draft"),
		}, 0},
		{"different facilities", []event.Event{
			auditEvent(1, "A", "Hall", 18, 20, "draft"),
			auditEvent(2, "B", "Gym", 18, 20, "draft"),
		}, 0},
		{"cancelled ignored", []event.Event{
			auditEvent(1, "A", "Hall", 18, 20, "draft"),
			auditEvent(2, "B", "Hall", 18, 20, event.StatusCancelled),
		}, 0},
		{"one clash", []event.Event{
			auditEvent(2, "B", "Hall", 19, 21, "draft"),
			auditEvent(1, "A", "Hall", 18, 20, "draft"),
		}, 1},
		{"long event spans two", []event.Event{
			auditEvent(1, "Blitz", "Hall", 10, 14, "draft"),
			auditEvent(2, "B", "Hall", 10, 11, "draft"),
			auditEvent(3, "C", "Hall", 12, 13, "draft"),
		}, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := FindConflicts(tc.events); len(got) != tc.want {
				t.Errorf("expected %d conflicts, got %d: %+v", tc.want, len(got), got)
			}
		})
	}
}

// TestExecuteConstraintCheck tests the feasible and infeasible messages.
func TestExecuteConstraintCheck(t *testing.T) {
	ctx := context.Background()
	events := newMockEventStore()
	requests := newMockRequestStore()
	events.events[1] = auditEvent(1, "A", "Hall", 18, 19, "draft")
	events.events[2] = auditEvent(2, "B", "Hall", 20, 21, "published")
	events.events[3] = auditEvent(3, "C", "Hall", 18, 19, event.StatusCancelled)
	requests.requests[1] = bookingrequest.Request{ID: 1, Status: bookingrequest.StatusPending}
	requests.requests[2] = bookingrequest.Request{ID: 2, Status: bookingrequest.StatusScheduled}

	deps := ConstraintCheckDeps{Events: events, Requests: requests}
	res, err := ExecuteConstraintCheck(ctx, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "Schedule is feasible: 2 events, 1 pending requests."; res.Message != want {
		t.Errorf("message = %q, want %q", res.Message, want)
	}
	if !SolverSucceeded(res.Message) {
		t.Error("feasible message should count as success")
	}

	events.events[4] = auditEvent(4, "D", "Hall", 18, 20, "draft")
	res, err = ExecuteConstraintCheck(ctx, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "Schedule is infeasible: 1 conflict (A vs D on Hall)"; res.Message != want {
		t.Errorf("message = %q, want %q", res.Message, want)
	}
	if res.Feasible || SolverSucceeded(res.Message) {
		t.Error("infeasible message should not count as success")
	}
}
