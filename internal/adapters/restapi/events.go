package restapi

import (
	"net/http"
	"strings"
	"time"

	"clubsync/internal/adapters/clubapi"
	eventStore "clubsync/internal/adapters/storage/event"
	"clubsync/internal/application/orchestrators"
	"clubsync/internal/domain/event"
)

const msgDatetimeFormat = "Datetime has wrong format. Use one of these formats instead: YYYY-MM-DDThh:mm[:ss[.uuuuuu]][+HH:MM|-HH:MM|Z]."

// eventBody is the JSON accepted on create and update. Pointer fields tell
// an absent key from an empty one, which PATCH needs.
type eventBody struct {
	Title     *string `json:"title"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	Facility  *string `json:"facility"`
	IsFixed   *bool   `json:"is_fixed"`
	TeamName  *string `json:"team_name"`
	EventType *string `json:"event_type"`
	Team      *int64  `json:"team"`
	Status    *string `json:"status"`
}

// apply copies the body onto in. With partial false every required field must
// be present.
func (b eventBody) apply(in *orchestrators.SaveEventInput, partial bool) fieldErrors {
	fe := fieldErrors{}
	required := func(field string, present bool) bool {
		if !present && !partial {
			fe.add(field, msgRequired)
		}
		return present
	}

	if required("title", b.Title != nil) {
		in.Title = *b.Title
	}
	if required("start_time", b.StartTime != nil) {
		if t, ok := parseDateTime(*b.StartTime); ok {
			in.StartTime = t
		} else {
			fe.add("start_time", msgDatetimeFormat)
		}
	}
	if required("end_time", b.EndTime != nil) {
		if t, ok := parseDateTime(*b.EndTime); ok {
			in.EndTime = t
		} else {
			fe.add("end_time", msgDatetimeFormat)
		}
	}
	if required("facility", b.Facility != nil) {
		in.Facility = *b.Facility
	}
	if b.IsFixed != nil {
		in.IsFixed = *b.IsFixed
	}
	if b.TeamName != nil {
		in.TeamName = *b.TeamName
	}
	if b.EventType != nil {
		if _, ok := event.TypeLabels[*b.EventType]; ok {
			in.EventType = *b.EventType
		} else {
			fe.add("event_type", invalidChoice(*b.EventType))
		}
	}
	if b.Team != nil {
		id := *b.Team
		in.TeamID = &id
	}
	if b.Status != nil {
		in.Status = *b.Status
		if !isEventStatus(*b.Status) {
			fe.add("status", invalidChoice(*b.Status))
		}
	}
	return fe
}

// parseDateTime accepts RFC 3339 and the zone-less "2006-01-02T15:04[:05]"
// forms; zone-less values are taken as UTC.
func parseDateTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), true
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02 15:04:05", "2006-01-02 15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func isEventStatus(s string) bool {
	for _, v := range event.ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s *Server) eventDeps() orchestrators.SaveEventDeps {
	return orchestrators.SaveEventDeps{
		EventStore:     s.stores.EventStore,
		FacilityLookup: s.stores.FacilityStore,
	}
}

// handleListEvents handles GET /api/events/. Optional ?facility=<name> filter.
func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var filter eventStore.ListFilter
	if name := r.URL.Query().Get("facility"); name != "" {
		f, err := s.stores.FacilityStore.GetByName(ctx, name)
		if err != nil {
			// An unknown facility filters everything out.
			writeList[clubapi.Event](w, nil)
			return
		}
		filter.FacilityID = f.ID
	}
	events, err := s.stores.EventStore.List(ctx, filter)
	if err != nil {
		internalError(w, err)
		return
	}
	out := make([]clubapi.Event, 0, len(events))
	for _, e := range events {
		out = append(out, clubapi.EventFromDomain(e))
	}
	writeList(w, out)
}

// handleGetEvent handles GET /api/events/{id}/.
func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	e, err := s.stores.EventStore.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clubapi.EventFromDomain(e))
}

// handleCreateEvent handles POST /api/events/.
func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var body eventBody
	if !decodeBody(w, r, &body) {
		return
	}
	var input orchestrators.SaveEventInput
	if fe := body.apply(&input, false); len(fe) > 0 {
		writeJSON(w, http.StatusBadRequest, fe)
		return
	}
	e, err := orchestrators.ExecuteCreateEvent(r.Context(), input, s.eventDeps())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, clubapi.EventFromDomain(e))
}

// handleUpdateEvent handles PUT and PATCH /api/events/{id}/. PATCH starts from
// the stored event and changes only the keys present in the body.
func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	current, err := s.stores.EventStore.GetByID(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}
	var body eventBody
	if !decodeBody(w, r, &body) {
		return
	}
	input := orchestrators.EventInputFrom(current)
	if fe := body.apply(&input, r.Method == http.MethodPatch); len(fe) > 0 {
		writeJSON(w, http.StatusBadRequest, fe)
		return
	}
	e, err := orchestrators.ExecuteUpdateEvent(ctx, input, s.eventDeps())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clubapi.EventFromDomain(e))
}

// handleDeleteEvent handles DELETE /api/events/{id}/.
func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	err := orchestrators.ExecuteDeleteEvent(r.Context(), id, orchestrators.DeleteEventDeps{EventStore: s.stores.EventStore})
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
