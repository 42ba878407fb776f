package cli

import (
	"fmt"
	"strconv"

	"clubsync/internal/application/orchestrators"
	"clubsync/internal/application/projections"
	"clubsync/internal/domain/event"

	"github.com/spf13/cobra"
)

func eventsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List, create, update and delete events",
	}
	cmd.AddCommand(eventsListCmd(a), eventsCreateCmd(a), eventsUpdateCmd(a), eventsDeleteCmd(a))
	return cmd
}

func eventsListCmd(a *app) *cobra.Command {
	var facilityName string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events in start order; fixed events are red, movable green",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wire, err := a.client.ListEvents(cmd.Context())
			if err != nil {
				return err
			}
			events := make([]event.Event, 0, len(wire))
			for _, e := range wire {
				events = append(events, e.ToDomain())
			}
			projections.SortByStart(events)
			events = projections.FilterByFacility(events, facilityName)

			rows := make([][]string, 0, len(events))
			for _, e := range events {
				style := movableStyle
				if e.IsFixed {
					style = fixedStyle
				}
				rows = append(rows, []string{
					strconv.FormatInt(e.ID, 10),
					style.Render(e.Title),
					e.Facility.Name,
					e.StartTime.In(a.loc).Format("Mon 02 Jan 2006 15:04"),
					e.EndTime.In(a.loc).Format("15:04"),
					typeLabel(e.EventType),
					e.TeamName,
					e.Status,
				})
			}
			printTable(cmd.OutOrStdout(), []string{"ID", "TITLE", "FACILITY", "START", "END", "TYPE", "TEAM", "STATUS"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&facilityName, "facility", projections.AllFacilities, "only events on this facility")
	return cmd
}

// eventFlags are shared by create and update.
type eventFlags struct {
	title, facility, eventType, team string
	date, start, end, endDate        string
	fixed                            bool
}

func (f *eventFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.title, "title", "", "event title")
	fl.StringVar(&f.facility, "facility", "", "facility name, e.g. \"Main Pitch\"")
	fl.StringVar(&f.eventType, "type", event.TypeOther, "event type: juvenile_training, adult_training, gym_session, match, championship, meeting, other")
	fl.StringVar(&f.team, "team", "", "team name")
	fl.StringVar(&f.date, "date", "", "start date YYYY-MM-DD (default today)")
	fl.StringVar(&f.start, "start", orchestrators.DefaultFormStart, "start time HH:MM")
	fl.StringVar(&f.end, "end", "", "end time HH:MM (default start plus the type's duration)")
	fl.StringVar(&f.endDate, "end-date", "", "end date YYYY-MM-DD (default the start date)")
	fl.BoolVar(&f.fixed, "fixed", false, "the solver may not move this event")
}

// apply copies the flags the user set onto form. On create every flag counts
// as set so the defaults apply.
func (f *eventFlags) apply(cmd *cobra.Command, form *orchestrators.EventForm, create bool) {
	set := func(name string) bool { return create || cmd.Flags().Changed(name) }
	if set("title") {
		form.Title = f.title
	}
	if set("facility") {
		form.Facility = f.facility
	}
	if set("type") {
		form.EventType = f.eventType
	}
	if set("team") {
		form.TeamName = f.team
	}
	if set("fixed") {
		form.IsFixed = f.fixed
	}
	if set("date") && f.date != "" {
		form.StartDate = f.date
		form.EndDate = f.date
	}
	if set("start") {
		form.StartTime = f.start
	}
	switch {
	case f.end != "":
		form.EndTime = f.end
	case cmd.Flags().Changed("type") || create:
		form.ApplyTypeDuration()
	}
	if f.endDate != "" {
		form.EndDate = f.endDate
	}
}

func eventsCreateCmd(a *app) *cobra.Command {
	var f eventFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := orchestrators.NewEventForm(timeNow().In(a.loc))
			f.apply(cmd, &form, true)
			saved, err := orchestrators.ExecuteSubmitEventForm(cmd.Context(), form, orchestrators.SubmitEventFormDeps{
				Client:   a.client,
				Location: a.loc,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created event %d: %s\n", saved.ID, saved.Title)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func eventsUpdateCmd(a *app) *cobra.Command {
	var f eventFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the given fields of an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, err := a.client.GetEvent(cmd.Context(), id)
			if err != nil {
				return err
			}
			form := orchestrators.EventFormFrom(current.ToDomain(), a.loc)
			f.apply(cmd, &form, false)
			saved, err := orchestrators.ExecuteSubmitEventForm(cmd.Context(), form, orchestrators.SubmitEventFormDeps{
				Client:   a.client,
				Location: a.loc,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated event %d: %s\n", saved.ID, saved.Title)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func eventsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := orchestrators.ExecuteDeleteRemoteEvent(cmd.Context(), id, a.client); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted event %d\n", id)
			return nil
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func typeLabel(t string) string {
	if label, ok := event.TypeLabels[t]; ok {
		return label
	}
	return t
}
