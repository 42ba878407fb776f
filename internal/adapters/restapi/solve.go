package restapi

import (
	"net/http"

	"clubsync/internal/application/orchestrators"
)

type conflictBody struct {
	Facility string `json:"facility"`
	First    string `json:"first"`
	Second   string `json:"second"`
}

type solveBody struct {
	Message   string         `json:"message"`
	Feasible  bool           `json:"feasible"`
	Events    int            `json:"events"`
	Pending   int            `json:"pending_requests"`
	Conflicts []conflictBody `json:"conflicts"`
}

// handleSolve handles POST /api/schedule/solve/. It audits the stored schedule
// and reports the result; nothing is rescheduled.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	res, err := orchestrators.ExecuteConstraintCheck(r.Context(), orchestrators.ConstraintCheckDeps{
		Events:   s.stores.EventStore,
		Requests: s.stores.BookingRequestStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	body := solveBody{
		Message:   res.Message,
		Feasible:  res.Feasible,
		Events:    res.Events,
		Pending:   res.Pending,
		Conflicts: make([]conflictBody, 0, len(res.Conflicts)),
	}
	for _, c := range res.Conflicts {
		body.Conflicts = append(body.Conflicts, conflictBody{
			Facility: c.First.Facility.Name,
			First:    c.First.Title,
			Second:   c.Second.Title,
		})
	}
	writeJSON(w, http.StatusOK, body)
}
