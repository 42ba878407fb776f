package web

import (
	"net/http"
	"net/url"
	"strconv"

	"clubsync/internal/application/orchestrators"
	"clubsync/internal/application/projections"
	"clubsync/internal/domain/event"
)

// calendarState is the view, anchor date and facility filter the calendar
// returns to after every action.
type calendarState struct {
	View     string
	Date     string
	Facility string
}

func calendarStateFrom(values url.Values) calendarState {
	return calendarState{
		View:     values.Get("view"),
		Date:     values.Get("date"),
		Facility: values.Get("facility"),
	}
}

// URL builds a calendar link that keeps the current state, overridden by kv pairs.
func (s calendarState) URL(kv ...string) string {
	q := url.Values{}
	if s.View != "" {
		q.Set("view", s.View)
	}
	if s.Date != "" {
		q.Set("date", s.Date)
	}
	if s.Facility != "" && s.Facility != projections.AllFacilities {
		q.Set("facility", s.Facility)
	}
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] == "" {
			q.Del(kv[i])
			continue
		}
		q.Set(kv[i], kv[i+1])
	}
	return withQuery("/calendar", q)
}

// eventModal is the create/edit dialog.
type eventModal struct {
	Form  orchestrators.EventForm
	Error string
}

// Action is the form's POST target.
func (m eventModal) Action() string {
	if m.Form.IsEdit() {
		return "/calendar/events/" + strconv.FormatInt(m.Form.ID, 10)
	}
	return "/calendar/events"
}

type calendarPage struct {
	projections.GetCalendarResult
	State      calendarState
	Modal      *eventModal
	Solver     *orchestrators.SolverStatus
	Flash      string
	EventTypes []string
}

func loadCalendar(r *http.Request, state calendarState) calendarPage {
	res := projections.QueryGetCalendar(r.Context(), projections.GetCalendarQuery{
		View:     state.View,
		Date:     state.Date,
		Facility: state.Facility,
		Now:      timeNow(),
		Location: location,
	}, projections.GetCalendarDeps{Events: api, Facilities: api})

	state.View = res.View
	state.Date = res.Anchor
	state.Facility = res.Filter
	return calendarPage{
		GetCalendarResult: res,
		State:             state,
		EventTypes:        event.ValidTypes,
	}
}

func renderCalendar(w http.ResponseWriter, r *http.Request, page calendarPage) {
	renderTemplate(w, r, "calendar.html", http.StatusOK, layoutData{Title: "Calendar", Active: "calendar", Page: page})
}

// handleCalendar handles GET /calendar. Query parameters: view, date, facility,
// new=1 (open the create modal), edit=<id> (open the edit modal), solver=<message>.
func handleCalendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := loadCalendar(r, calendarStateFrom(q))

	if q.Get("new") == "1" {
		page.Modal = &eventModal{Form: orchestrators.NewEventForm(timeNow().In(location))}
	} else if id, err := strconv.ParseInt(q.Get("edit"), 10, 64); err == nil {
		for _, e := range page.Events {
			if e.ID == id {
				page.Modal = &eventModal{Form: orchestrators.EventFormFrom(e, location)}
				break
			}
		}
		if page.Modal == nil {
			page.Flash = "That event no longer exists."
		}
	}
	if msg := q.Get("solver"); msg != "" {
		page.Solver = &orchestrators.SolverStatus{Message: msg, Success: orchestrators.SolverSucceeded(msg)}
	}
	if msg := q.Get("error"); msg != "" {
		page.Flash = msg
	}
	renderCalendar(w, r, page)
}

func eventFormFrom(r *http.Request) orchestrators.EventForm {
	return orchestrators.EventForm{
		EventType: r.FormValue("event_type"),
		Title:     r.FormValue("title"),
		Facility:  r.FormValue("facility"),
		StartDate: r.FormValue("start_date"),
		StartTime: r.FormValue("start_time"),
		EndDate:   r.FormValue("end_date"),
		EndTime:   r.FormValue("end_time"),
		TeamName:  r.FormValue("team_name"),
		IsFixed:   r.FormValue("is_fixed") != "",
		Status:    r.FormValue("status"),
	}
}

// handleSaveEvent handles POST /calendar/events and POST /calendar/events/{id}.
// The "apply_duration" action only recomputes the end time from the event type
// and re-opens the form; "save" submits it to the API.
func handleSaveEvent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	// The form's own facility field names the event's facility; the sidebar
	// filter rides along as facility_filter.
	state := calendarStateFrom(r.PostForm)
	state.Facility = r.PostForm.Get("facility_filter")
	form := eventFormFrom(r)
	if r.PathValue("id") != "" {
		id, ok := pathID(r)
		if !ok {
			http.NotFound(w, r)
			return
		}
		form.ID = id
	}

	if r.FormValue("action") == "apply_duration" {
		form.ApplyTypeDuration()
		page := loadCalendar(r, state)
		page.Modal = &eventModal{Form: form}
		renderCalendar(w, r, page)
		return
	}

	_, err := orchestrators.ExecuteSubmitEventForm(r.Context(), form, orchestrators.SubmitEventFormDeps{
		Client:   api,
		Location: location,
	})
	if err != nil {
		msg := formError(err)
		if msg == "" {
			msg = orchestrators.MsgSaveFailed
		}
		page := loadCalendar(r, state)
		page.Modal = &eventModal{Form: form, Error: msg}
		renderCalendar(w, r, page)
		return
	}
	http.Redirect(w, r, state.URL(), http.StatusSeeOther)
}

// handleDeleteEvent handles POST /calendar/events/{id}/delete. It returns to
// the page named by return_to (the calendar or the bookings table).
func handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	state := calendarStateFrom(r.PostForm)
	back := localRedirect(r.FormValue("return_to"), state.URL())

	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := orchestrators.ExecuteDeleteRemoteEvent(r.Context(), id, api); err != nil {
		back = appendQuery(back, "error", "Failed to delete event. Please try again.")
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

// handleSolve handles POST /calendar/solve and shows the solver's message in a banner.
func handleSolve(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	status := orchestrators.ExecuteRunSolverCheck(r.Context(), api)
	state := calendarStateFrom(r.PostForm)
	http.Redirect(w, r, state.URL("solver", status.Message), http.StatusSeeOther)
}

func appendQuery(target, key, value string) string {
	u, err := url.Parse(target)
	if err != nil {
		return target
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}
