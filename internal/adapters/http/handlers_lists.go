package web

import (
	"net/http"
	"net/url"

	"clubsync/internal/application/orchestrators"
	"clubsync/internal/application/projections"
	"clubsync/internal/domain/bookingrequest"
	"clubsync/internal/domain/event"
	"clubsync/internal/domain/team"
)

type bookingsPage struct {
	projections.GetBookingsResult
	Flash string
}

// ReturnTo is the bookings URL the delete buttons come back to.
func (p bookingsPage) ReturnTo() string {
	q := url.Values{}
	if p.Filter != "" && p.Filter != projections.AllFacilities {
		q.Set("facility", p.Filter)
	}
	return withQuery("/bookings", q)
}

// handleBookings handles GET /bookings: every event in a table with edit and delete.
func handleBookings(w http.ResponseWriter, r *http.Request) {
	res := projections.QueryGetBookings(r.Context(), r.URL.Query().Get("facility"),
		projections.GetCalendarDeps{Events: api, Facilities: api})
	renderTemplate(w, r, "bookings.html", http.StatusOK, layoutData{
		Title:  "Bookings",
		Active: "bookings",
		Page:   bookingsPage{GetBookingsResult: res, Flash: r.URL.Query().Get("error")},
	})
}

type requestsPage struct {
	projections.GetRequestsResult
	Form       bookingrequest.Request
	Error      string
	Flash      string
	EventTypes []string
	Days       []string
}

func renderRequests(w http.ResponseWriter, r *http.Request, form bookingrequest.Request, formErr string) {
	res := projections.QueryGetRequests(r.Context(), projections.GetRequestsDeps{
		Requests:   api,
		Facilities: api,
		Teams:      api,
	})
	renderTemplate(w, r, "requests.html", http.StatusOK, layoutData{
		Title:  "Booking requests",
		Active: "requests",
		Page: requestsPage{
			GetRequestsResult: res,
			Form:              form,
			Error:             formErr,
			Flash:             r.URL.Query().Get("error"),
			EventTypes:        event.ValidTypes,
			Days:              bookingrequest.ValidDays,
		},
	})
}

// handleRequests handles GET /requests
func handleRequests(w http.ResponseWriter, r *http.Request) {
	renderRequests(w, r, bookingrequest.Request{
		Recurrence: bookingrequest.RecurrenceWeekly,
		EventType:  event.TypeOther,
		StartTime:  orchestrators.DefaultFormStart,
		EndTime:    orchestrators.DefaultFormEnd,
	}, "")
}

// handleCreateRequest handles POST /requests
func handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	form := bookingrequest.Request{
		Team:       r.FormValue("team"),
		Facility:   r.FormValue("facility"),
		EventType:  r.FormValue("event_type"),
		Recurrence: r.FormValue("recurrence"),
		DayOfWeek:  r.FormValue("day_of_week"),
		Date:       r.FormValue("date"),
		StartTime:  r.FormValue("start_time"),
		EndTime:    r.FormValue("end_time"),
		Notes:      r.FormValue("notes"),
	}
	if _, err := orchestrators.ExecuteSubmitBookingRequest(r.Context(), form, api); err != nil {
		msg := formError(err)
		if msg == "" {
			msg = "Failed to submit request. Please try again."
		}
		renderRequests(w, r, form, msg)
		return
	}
	http.Redirect(w, r, "/requests", http.StatusSeeOther)
}

// handleDeleteRequest handles POST /requests/{id}/delete
func handleDeleteRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	back := "/requests"
	if err := orchestrators.ExecuteWithdrawBookingRequest(r.Context(), id, api); err != nil {
		back = appendQuery(back, "error", "Failed to delete request. Please try again.")
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

type teamsPage struct {
	projections.GetTeamsResult
	Form  team.Team
	Error string
	Days  []string
}

func renderTeams(w http.ResponseWriter, r *http.Request, form team.Team, formErr string) {
	res := projections.QueryGetTeams(r.Context(), api, api)
	renderTemplate(w, r, "teams.html", http.StatusOK, layoutData{
		Title:  "Teams",
		Active: "teams",
		Page:   teamsPage{GetTeamsResult: res, Form: form, Error: formErr, Days: bookingrequest.ValidDays},
	})
}

// handleTeams handles GET /teams
func handleTeams(w http.ResponseWriter, r *http.Request) {
	renderTeams(w, r, team.New(""), "")
}

// handleCreateTeam handles POST /teams
func handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	form := team.Team{
		Name:          r.FormValue("name"),
		AgeGroup:      r.FormValue("age_group"),
		UsualDay:      r.FormValue("usual_day"),
		UsualTime:     r.FormValue("usual_time"),
		UsualFacility: r.FormValue("usual_facility"),
		IsFlexible:    r.FormValue("is_flexible") != "",
	}
	if _, err := orchestrators.ExecuteSubmitTeam(r.Context(), form, api); err != nil {
		msg := formError(err)
		if msg == "" {
			msg = "Failed to save team. Please try again."
		}
		renderTeams(w, r, form, msg)
		return
	}
	http.Redirect(w, r, "/teams", http.StatusSeeOther)
}
