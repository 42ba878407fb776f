package projections

import (
	"context"
	"testing"

	"clubsync/internal/adapters/clubapi"
)

// TestQueryGetRequests tests request rows and the pending count.
func TestQueryGetRequests(t *testing.T) {
	api := &fakeAPI{
		requests: []clubapi.BookingRequest{
			{ID: 1, Team: "U12 Girls", EventType: "juvenile_training", Recurrence: "weekly", DayOfWeek: "monday", StartTime: "18:00", EndTime: "19:00", Status: "pending"},
			{ID: 2, Team: "Seniors", EventType: "match", Recurrence: "once", Date: "2026-03-01", StartTime: "14:00", EndTime: "16:00", Status: "scheduled"},
		},
		teams:      []clubapi.Team{{ID: 1, Name: "U12 Girls"}},
		facilities: []clubapi.Facility{{ID: 1, Name: "Hall", Type: "hall"}},
	}
	res := QueryGetRequests(context.Background(), GetRequestsDeps{Requests: api, Facilities: api, Teams: api})
	if len(res.Rows) != 2 || res.Pending != 1 {
		t.Fatalf("unexpected rows: %+v", res)
	}
	if res.Rows[0].TypeLabel != "Juvenile Training" || res.Rows[0].Slot != "monday 18:00–19:00" {
		t.Errorf("unexpected first row: %+v", res.Rows[0])
	}
	if res.Rows[1].Slot != "2026-03-01 14:00–16:00" {
		t.Errorf("unexpected one-off slot: %s", res.Rows[1].Slot)
	}
	if len(res.Teams) != 1 || len(res.Facilities) != 1 || res.LoadError {
		t.Errorf("unexpected choice lists: %+v", res)
	}
}

// TestQueryGetBookings tests the bookings table filter.
func TestQueryGetBookings(t *testing.T) {
	api := sampleAPI()
	res := QueryGetBookings(context.Background(), "Gym", GetCalendarDeps{Events: api, Facilities: api})
	if len(res.Events) != 1 || res.Events[0].Title != "Committee Meeting" {
		t.Errorf("unexpected events: %+v", res.Events)
	}
	res = QueryGetBookings(context.Background(), "", GetCalendarDeps{Events: api, Facilities: api})
	if res.Filter != AllFacilities || len(res.Events) != 4 || res.Events[3].Title != "U13 Blitz" {
		t.Errorf("unexpected unfiltered result: %+v", res)
	}
}

// TestQueryGetTeams tests the teams page lists.
func TestQueryGetTeams(t *testing.T) {
	api := &fakeAPI{teams: []clubapi.Team{{ID: 1, Name: "U14 Boys", IsFlexible: true}}}
	res := QueryGetTeams(context.Background(), api, api)
	if len(res.Teams) != 1 || !res.Teams[0].IsFlexible {
		t.Errorf("unexpected teams: %+v", res.Teams)
	}
}
