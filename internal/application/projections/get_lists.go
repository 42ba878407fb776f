package projections

import (
	"context"
	"log/slog"

	"clubsync/internal/domain/bookingrequest"
	"clubsync/internal/domain/event"
	"clubsync/internal/domain/facility"
	"clubsync/internal/domain/team"
)

// GetBookingsResult carries the events table of the bookings page.
type GetBookingsResult struct {
	Events     []event.Event
	Facilities []facility.Facility
	Filter     string
	LoadError  bool
}

// QueryGetBookings lists events, optionally for one facility.
// PRE: none
// POST: Events are ordered by start time; load failures leave the lists empty
func QueryGetBookings(ctx context.Context, facilityName string, deps GetCalendarDeps) GetBookingsResult {
	res := GetBookingsResult{Filter: facilityName, Events: []event.Event{}}
	if res.Filter == "" {
		res.Filter = AllFacilities
	}
	if wire, err := deps.Facilities.ListFacilities(ctx); err != nil {
		slog.Warn("bookings_event", "event", "facilities_load_failed", "error", err)
		res.LoadError = true
	} else {
		for _, f := range wire {
			res.Facilities = append(res.Facilities, f.ToDomain())
		}
	}
	wire, err := deps.Events.ListEvents(ctx)
	if err != nil {
		slog.Warn("bookings_event", "event", "events_load_failed", "error", err)
		res.LoadError = true
		return res
	}
	var all []event.Event
	for _, e := range wire {
		all = append(all, e.ToDomain())
	}
	SortByStart(all)
	res.Events = FilterByFacility(all, res.Filter)
	return res
}

// RequestRow is one booking request on the requests page.
type RequestRow struct {
	Request   bookingrequest.Request
	TypeLabel string
	Slot      string
}

// GetRequestsResult carries the requests page data.
type GetRequestsResult struct {
	Rows       []RequestRow
	Pending    int
	Facilities []facility.Facility
	Teams      []team.Team
	LoadError  bool
}

// GetRequestsDeps holds dependencies for the requests projection.
type GetRequestsDeps struct {
	Requests   BookingRequestSource
	Facilities FacilitySource
	Teams      TeamSource
}

// QueryGetRequests lists booking requests with the form's choice lists.
// PRE: none
// POST: Pending counts the rows still awaiting the solver
func QueryGetRequests(ctx context.Context, deps GetRequestsDeps) GetRequestsResult {
	var res GetRequestsResult
	if wire, err := deps.Requests.ListBookingRequests(ctx); err != nil {
		slog.Warn("requests_event", "event", "requests_load_failed", "error", err)
		res.LoadError = true
	} else {
		for _, w := range wire {
			r := w.ToDomain()
			label := event.TypeLabels[r.EventType]
			if label == "" {
				label = r.EventType
			}
			res.Rows = append(res.Rows, RequestRow{Request: r, TypeLabel: label, Slot: r.Slot()})
			if r.IsPending() {
				res.Pending++
			}
		}
	}
	if wire, err := deps.Facilities.ListFacilities(ctx); err != nil {
		slog.Warn("requests_event", "event", "facilities_load_failed", "error", err)
		res.LoadError = true
	} else {
		for _, f := range wire {
			res.Facilities = append(res.Facilities, f.ToDomain())
		}
	}
	if wire, err := deps.Teams.ListTeams(ctx); err != nil {
		slog.Warn("requests_event", "event", "teams_load_failed", "error", err)
		res.LoadError = true
	} else {
		for _, t := range wire {
			res.Teams = append(res.Teams, t.ToDomain())
		}
	}
	return res
}

// GetTeamsResult carries the teams page data.
type GetTeamsResult struct {
	Teams      []team.Team
	Facilities []facility.Facility
	LoadError  bool
}

// QueryGetTeams lists teams and the facilities a team may usually use.
// PRE: none
// POST: Load failures leave the lists empty
func QueryGetTeams(ctx context.Context, teams TeamSource, facilities FacilitySource) GetTeamsResult {
	var res GetTeamsResult
	if wire, err := teams.ListTeams(ctx); err != nil {
		slog.Warn("teams_event", "event", "teams_load_failed", "error", err)
		res.LoadError = true
	} else {
		for _, t := range wire {
			res.Teams = append(res.Teams, t.ToDomain())
		}
	}
	if wire, err := facilities.ListFacilities(ctx); err != nil {
		slog.Warn("teams_event", "event", "facilities_load_failed", "error", err)
		res.LoadError = true
	} else {
		for _, f := range wire {
			res.Facilities = append(res.Facilities, f.ToDomain())
		}
	}
	return res
}
