package restapi

import (
	"net/http"

	"clubsync/internal/adapters/clubapi"
)

// handleListFacilities handles GET /api/facilities/.
func (s *Server) handleListFacilities(w http.ResponseWriter, r *http.Request) {
	facilities, err := s.stores.FacilityStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	out := make([]clubapi.Facility, 0, len(facilities))
	for _, f := range facilities {
		out = append(out, clubapi.FacilityFromDomain(f))
	}
	writeList(w, out)
}

// handleGetFacility handles GET /api/facilities/{id}/.
func (s *Server) handleGetFacility(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	f, err := s.stores.FacilityStore.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clubapi.FacilityFromDomain(f))
}
