package restapi

import (
	"net/http"

	"clubsync/internal/adapters/clubapi"
	bookingRequestStore "clubsync/internal/adapters/storage/bookingrequest"
	"clubsync/internal/application/orchestrators"
	"clubsync/internal/domain/bookingrequest"
)

type requestBody struct {
	Team       *string `json:"team"`
	Facility   *string `json:"facility"`
	EventType  *string `json:"event_type"`
	Recurrence *string `json:"recurrence"`
	DayOfWeek  *string `json:"day_of_week"`
	Date       *string `json:"date"`
	StartTime  *string `json:"start_time"`
	EndTime    *string `json:"end_time"`
	Notes      *string `json:"notes"`
	Status     *string `json:"status"`
}

func (b requestBody) apply(req *bookingrequest.Request, partial bool) fieldErrors {
	fe := fieldErrors{}
	set := func(dst *string, src *string, field string, required bool) {
		switch {
		case src != nil:
			*dst = *src
		case required && !partial:
			fe.add(field, msgRequired)
		}
	}
	set(&req.Team, b.Team, "team", true)
	set(&req.Facility, b.Facility, "facility", false)
	set(&req.EventType, b.EventType, "event_type", false)
	set(&req.Recurrence, b.Recurrence, "recurrence", false)
	set(&req.DayOfWeek, b.DayOfWeek, "day_of_week", false)
	set(&req.Date, b.Date, "date", false)
	set(&req.StartTime, b.StartTime, "start_time", true)
	set(&req.EndTime, b.EndTime, "end_time", true)
	set(&req.Notes, b.Notes, "notes", false)
	set(&req.Status, b.Status, "status", false)
	return fe
}

func (s *Server) requestDeps() orchestrators.BookingRequestDeps {
	return orchestrators.BookingRequestDeps{
		Store:    s.stores.BookingRequestStore,
		Sender:   s.notifier.Sender,
		NotifyTo: s.notifier.To,
		ClubName: s.notifier.ClubName,
		Now:      s.now,
	}
}

// handleListRequests handles GET /api/requests/. Optional ?status= filter.
func (s *Server) handleListRequests(w http.ResponseWriter, r *http.Request) {
	filter := bookingRequestStore.ListFilter{Status: r.URL.Query().Get("status")}
	requests, err := s.stores.BookingRequestStore.List(r.Context(), filter)
	if err != nil {
		internalError(w, err)
		return
	}
	out := make([]clubapi.BookingRequest, 0, len(requests))
	for _, req := range requests {
		out = append(out, clubapi.BookingRequestFromDomain(req))
	}
	writeList(w, out)
}

// handleGetRequest handles GET /api/requests/{id}/.
func (s *Server) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, err := s.stores.BookingRequestStore.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clubapi.BookingRequestFromDomain(req))
}

// handleCreateRequest handles POST /api/requests/ and notifies the fixtures secretary.
func (s *Server) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	var body requestBody
	if !decodeBody(w, r, &body) {
		return
	}
	var req bookingrequest.Request
	if fe := body.apply(&req, false); len(fe) > 0 {
		writeJSON(w, http.StatusBadRequest, fe)
		return
	}
	saved, err := orchestrators.ExecuteCreateBookingRequest(r.Context(), req, s.requestDeps())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, clubapi.BookingRequestFromDomain(saved))
}

// handleUpdateRequest handles PUT and PATCH /api/requests/{id}/.
func (s *Server) handleUpdateRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	req, err := s.stores.BookingRequestStore.GetByID(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}
	var body requestBody
	if !decodeBody(w, r, &body) {
		return
	}
	if fe := body.apply(&req, r.Method == http.MethodPatch); len(fe) > 0 {
		writeJSON(w, http.StatusBadRequest, fe)
		return
	}
	saved, err := orchestrators.ExecuteUpdateBookingRequest(ctx, req, s.requestDeps())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clubapi.BookingRequestFromDomain(saved))
}

// handleDeleteRequest handles DELETE /api/requests/{id}/.
func (s *Server) handleDeleteRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := orchestrators.ExecuteDeleteBookingRequest(r.Context(), id, s.requestDeps()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
