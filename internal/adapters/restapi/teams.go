package restapi

import (
	"net/http"

	"clubsync/internal/adapters/clubapi"
	"clubsync/internal/application/orchestrators"
	"clubsync/internal/domain/team"
)

type teamBody struct {
	Name          *string `json:"name"`
	AgeGroup      *string `json:"age_group"`
	UsualDay      *string `json:"usual_day"`
	UsualTime     *string `json:"usual_time"`
	UsualFacility *string `json:"usual_facility"`
	IsFlexible    *bool   `json:"is_flexible"`
}

func (b teamBody) apply(in *orchestrators.SaveTeamInput, partial bool) fieldErrors {
	fe := fieldErrors{}
	if b.Name != nil {
		in.Name = *b.Name
	} else if !partial {
		fe.add("name", msgRequired)
	}
	if b.AgeGroup != nil {
		in.AgeGroup = *b.AgeGroup
	}
	if b.UsualDay != nil {
		in.UsualDay = *b.UsualDay
	}
	if b.UsualTime != nil {
		in.UsualTime = *b.UsualTime
	}
	if b.UsualFacility != nil {
		in.UsualFacility = *b.UsualFacility
	}
	if b.IsFlexible != nil {
		in.IsFlexible = b.IsFlexible
	}
	return fe
}

func teamInputFrom(t team.Team) orchestrators.SaveTeamInput {
	flexible := t.IsFlexible
	return orchestrators.SaveTeamInput{
		ID:            t.ID,
		Name:          t.Name,
		AgeGroup:      t.AgeGroup,
		UsualDay:      t.UsualDay,
		UsualTime:     t.UsualTime,
		UsualFacility: t.UsualFacility,
		IsFlexible:    &flexible,
	}
}

// handleListTeams handles GET /api/teams/.
func (s *Server) handleListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := s.stores.TeamStore.List(r.Context())
	if err != nil {
		internalError(w, err)
		return
	}
	out := make([]clubapi.Team, 0, len(teams))
	for _, t := range teams {
		out = append(out, clubapi.TeamFromDomain(t))
	}
	writeList(w, out)
}

// handleGetTeam handles GET /api/teams/{id}/.
func (s *Server) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	t, err := s.stores.TeamStore.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clubapi.TeamFromDomain(t))
}

// handleCreateTeam handles POST /api/teams/.
func (s *Server) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	var body teamBody
	if !decodeBody(w, r, &body) {
		return
	}
	var input orchestrators.SaveTeamInput
	if fe := body.apply(&input, false); len(fe) > 0 {
		writeJSON(w, http.StatusBadRequest, fe)
		return
	}
	t, err := orchestrators.ExecuteSaveTeam(r.Context(), input, orchestrators.TeamDeps{TeamStore: s.stores.TeamStore})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, clubapi.TeamFromDomain(t))
}

// handleUpdateTeam handles PUT and PATCH /api/teams/{id}/.
func (s *Server) handleUpdateTeam(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	current, err := s.stores.TeamStore.GetByID(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}
	var body teamBody
	if !decodeBody(w, r, &body) {
		return
	}
	input := teamInputFrom(current)
	if fe := body.apply(&input, r.Method == http.MethodPatch); len(fe) > 0 {
		writeJSON(w, http.StatusBadRequest, fe)
		return
	}
	t, err := orchestrators.ExecuteSaveTeam(ctx, input, orchestrators.TeamDeps{TeamStore: s.stores.TeamStore})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clubapi.TeamFromDomain(t))
}

// handleDeleteTeam handles DELETE /api/teams/{id}/.
func (s *Server) handleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := orchestrators.ExecuteDeleteTeam(r.Context(), id, orchestrators.TeamDeps{TeamStore: s.stores.TeamStore}); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
