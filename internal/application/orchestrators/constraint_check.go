package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	eventstore "clubsync/internal/adapters/storage/event"
	"clubsync/internal/domain/bookingrequest"
	"clubsync/internal/domain/event"
)

// PendingCounter counts booking requests by status.
type PendingCounter interface {
	CountByStatus(ctx context.Context, status string) (int, error)
}

// EventLister lists stored events.
type EventLister interface {
	List(ctx context.Context, filter eventstore.ListFilter) ([]event.Event, error)
}

// ConstraintCheckDeps holds dependencies for ConstraintCheck.
type ConstraintCheckDeps struct {
	Events   EventLister
	Requests PendingCounter
}

// Conflict is a pair of live events that occupy the same facility at the same time.
type Conflict struct {
	First  event.Event
	Second event.Event
}

// ConstraintCheckResult summarises a constraint audit.
type ConstraintCheckResult struct {
	Feasible  bool
	Events    int
	Pending   int
	Conflicts []Conflict
	Message   string
}

// ExecuteConstraintCheck audits the stored schedule for facility overlaps.
// It never moves or creates events.
// PRE: none
// POST: Message starts with "Schedule is feasible" iff no conflicts were found
// INVARIANT: Store state is not mutated
func ExecuteConstraintCheck(ctx context.Context, deps ConstraintCheckDeps) (ConstraintCheckResult, error) {
	events, err := deps.Events.List(ctx, eventstore.ListFilter{ExcludeStatus: event.StatusCancelled})
	if err != nil {
		return ConstraintCheckResult{}, fmt.Errorf("list events: %w", err)
	}
	pending, err := deps.Requests.CountByStatus(ctx, bookingrequest.StatusPending)
	if err != nil {
		return ConstraintCheckResult{}, fmt.Errorf("count pending requests: %w", err)
	}

	res := ConstraintCheckResult{
		Events:    len(events),
		Pending:   pending,
		Conflicts: FindConflicts(events),
	}
	res.Feasible = len(res.Conflicts) == 0
	if res.Feasible {
		res.Message = fmt.Sprintf("Schedule is feasible: %d events, %d pending requests.", res.Events, res.Pending)
	} else {
		c := res.Conflicts[0]
		noun := "conflicts"
		if len(res.Conflicts) == 1 {
			noun = "conflict"
		}
		res.Message = fmt.Sprintf("Schedule is infeasible: %d %s (%s vs %s on %s)",
			len(res.Conflicts), noun, c.First.Title, c.Second.Title, c.First.Facility.Name)
	}

	slog.Info("solver_event", "event", "constraint_check", "feasible", res.Feasible,
		"events", res.Events, "pending", res.Pending, "conflicts", len(res.Conflicts))
	return res, nil
}

// FindConflicts returns every overlapping pair, ordered by the first event's start time.
// POST: Cancelled events never appear in a conflict
func FindConflicts(events []event.Event) []Conflict {
	sorted := append([]event.Event(nil), events...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime.Before(sorted[j].StartTime)
	})

	var out []Conflict
	for i := range sorted {
		for j := i + 1; j < len(sorted); j++ {
			if !sorted[j].StartTime.Before(sorted[i].EndTime) {
				break
			}
			if sorted[i].Overlaps(sorted[j]) {
				out = append(out, Conflict{First: sorted[i], Second: sorted[j]})
			}
		}
	}
	return out
}
