package orchestrators

import (
	"context"
	"log/slog"
	"strings"
)

// MsgSolverError is shown when the solver endpoint cannot be reached or fails.
const MsgSolverError = "Solver error"

// SolverRunner is the slice of the API client that runs the solver check.
type SolverRunner interface {
	RunSolverCheck(ctx context.Context) (string, error)
}

// SolverStatus is the banner shown after a solver check.
type SolverStatus struct {
	Message string
	Success bool
}

// ExecuteRunSolverCheck asks the remote solver to check the schedule.
// PRE: none
// POST: Message is the solver's text or MsgSolverError; never returns an error
func ExecuteRunSolverCheck(ctx context.Context, solver SolverRunner) SolverStatus {
	msg, err := solver.RunSolverCheck(ctx)
	if err != nil {
		slog.Warn("solver_event", "event", "solver_failed", "error", err)
		return SolverStatus{Message: MsgSolverError}
	}
	slog.Info("solver_event", "event", "solver_checked", "message", msg)
	return SolverStatus{Message: msg, Success: SolverSucceeded(msg)}
}

// SolverSucceeded reports whether a solver message describes a feasible schedule.
func SolverSucceeded(msg string) bool {
	m := strings.ToLower(msg)
	return strings.Contains(m, "feasible") && !strings.Contains(m, "infeasible")
}
