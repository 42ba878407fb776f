package cli

import (
	"fmt"
	"strconv"

	"clubsync/internal/application/orchestrators"
	"clubsync/internal/domain/bookingrequest"
	"clubsync/internal/domain/event"
	"clubsync/internal/domain/team"

	"github.com/spf13/cobra"
)

func facilitiesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "facilities",
		Short: "Show the club's bookable facilities",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List facilities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wire, err := a.client.ListFacilities(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(wire))
			for _, f := range wire {
				d := f.ToDomain()
				rows = append(rows, []string{strconv.FormatInt(d.ID, 10), d.Name, d.Type})
			}
			printTable(cmd.OutOrStdout(), []string{"ID", "NAME", "TYPE"}, rows)
			return nil
		},
	})
	return cmd
}

func teamsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teams",
		Short: "List and create teams",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List teams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wire, err := a.client.ListTeams(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(wire))
			for _, t := range wire {
				flexible := "no"
				if t.IsFlexible {
					flexible = "yes"
				}
				rows = append(rows, []string{strconv.FormatInt(t.ID, 10), t.Name, t.AgeGroup, t.UsualDay, t.UsualTime, t.UsualFacility, flexible})
			}
			printTable(cmd.OutOrStdout(), []string{"ID", "NAME", "AGE GROUP", "DAY", "TIME", "FACILITY", "FLEXIBLE"}, rows)
			return nil
		},
	}, teamsCreateCmd(a))
	return cmd
}

func teamsCreateCmd(a *app) *cobra.Command {
	var t team.Team
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a team",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			saved, err := orchestrators.ExecuteSubmitTeam(cmd.Context(), t, a.client)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created team %d: %s\n", saved.ID, saved.Name)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&t.Name, "name", "", "team name (required)")
	fl.StringVar(&t.AgeGroup, "age-group", "", "age group, e.g. U14")
	fl.StringVar(&t.UsualDay, "day", "", "usual training day")
	fl.StringVar(&t.UsualTime, "time", "", "usual training time HH:MM")
	fl.StringVar(&t.UsualFacility, "facility", "", "usual facility name")
	fl.BoolVar(&t.IsFlexible, "flexible", true, "the solver may move this team's sessions")
	return cmd
}

func requestsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "requests",
		Short: "List, submit and withdraw booking requests",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List booking requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			wire, err := a.client.ListBookingRequests(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(wire))
			for _, w := range wire {
				r := w.ToDomain()
				rows = append(rows, []string{strconv.FormatInt(r.ID, 10), r.Team, typeLabel(r.EventType), r.Slot(), r.Facility, r.Status})
			}
			printTable(cmd.OutOrStdout(), []string{"ID", "TEAM", "TYPE", "WHEN", "FACILITY", "STATUS"}, rows)
			return nil
		},
	}, requestsCreateCmd(a), requestsDeleteCmd(a))
	return cmd
}

func requestsCreateCmd(a *app) *cobra.Command {
	var r bookingrequest.Request
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Submit a booking request for the solver",
		Long: `Submit a booking request. Weekly requests name a --day; one-off
requests set --once and a --date.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if once, _ := cmd.Flags().GetBool("once"); once {
				r.Recurrence = bookingrequest.RecurrenceOnce
			} else {
				r.Recurrence = bookingrequest.RecurrenceWeekly
			}
			saved, err := orchestrators.ExecuteSubmitBookingRequest(cmd.Context(), r, a.client)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Submitted request %d for %s\n", saved.ID, saved.Team)
			return nil
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&r.Team, "team", "", "team name (required)")
	fl.StringVar(&r.Facility, "facility", "", "preferred facility name")
	fl.StringVar(&r.EventType, "type", event.TypeOther, "event type")
	fl.Bool("once", false, "one-off request instead of weekly")
	fl.StringVar(&r.DayOfWeek, "day", "", "weekday for weekly requests")
	fl.StringVar(&r.Date, "date", "", "date YYYY-MM-DD for one-off requests")
	fl.StringVar(&r.StartTime, "start", orchestrators.DefaultFormStart, "start time HH:MM")
	fl.StringVar(&r.EndTime, "end", orchestrators.DefaultFormEnd, "end time HH:MM")
	fl.StringVar(&r.Notes, "notes", "", "notes for the fixtures secretary (Markdown)")
	return cmd
}

func requestsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Withdraw a booking request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := orchestrators.ExecuteWithdrawBookingRequest(cmd.Context(), id, a.client); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Withdrew request %d\n", id)
			return nil
		},
	}
}

func solveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "solve",
		Short: "Ask the solver to check the current schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status := orchestrators.ExecuteRunSolverCheck(cmd.Context(), a.client)
			if status.Message == orchestrators.MsgSolverError {
				return fmt.Errorf("%s", status.Message)
			}
			style := failStyle
			if status.Success {
				style = okStyle
			}
			fmt.Fprintln(cmd.OutOrStdout(), style.Render(status.Message))
			return nil
		},
	}
}
