// Package cli implements the clubsync command-line client. Every command is a
// thin wrapper over one or two REST API calls.
package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clubsync/internal/adapters/clubapi"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// DefaultAPIURL is used when neither flag, environment nor config file name an API.
const DefaultAPIURL = "http://localhost:8000"

// API is the slice of the REST client the commands use. *clubapi.Client implements it.
type API interface {
	ListEvents(ctx context.Context) ([]clubapi.Event, error)
	GetEvent(ctx context.Context, id int64) (clubapi.Event, error)
	CreateEvent(ctx context.Context, p clubapi.EventPayload) (clubapi.Event, error)
	UpdateEvent(ctx context.Context, id int64, p clubapi.EventPayload) (clubapi.Event, error)
	DeleteEvent(ctx context.Context, id int64) error
	ListFacilities(ctx context.Context) ([]clubapi.Facility, error)
	ListTeams(ctx context.Context) ([]clubapi.Team, error)
	CreateTeam(ctx context.Context, p clubapi.TeamPayload) (clubapi.Team, error)
	ListBookingRequests(ctx context.Context) ([]clubapi.BookingRequest, error)
	CreateBookingRequest(ctx context.Context, p clubapi.BookingRequestPayload) (clubapi.BookingRequest, error)
	DeleteBookingRequest(ctx context.Context, id int64) error
	RunSolverCheck(ctx context.Context) (string, error)
}

var _ API = (*clubapi.Client)(nil)

// timeNow is replaced in tests.
var timeNow = time.Now

// app is the state shared by every subcommand, filled in by the root
// command's PersistentPreRunE.
type app struct {
	v      *viper.Viper
	client API
	loc    *time.Location
}

// NewRootCommand builds the clubsync command tree.
//
// The API base URL comes from --api-url, then CLUBSYNC_API_URL, then api_url
// in ~/.config/clubsync/config.yaml.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "clubsync",
		Short:         "Manage club facility bookings from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.config/clubsync/config.yaml)")
	flags.String("api-url", "", "API base URL (default "+DefaultAPIURL+")")
	flags.Duration("timeout", clubapi.DefaultTimeout, "per-request timeout")
	flags.String("tz", "", "time zone for dates and times (default local)")
	_ = a.v.BindPFlag("config", flags.Lookup("config"))
	_ = a.v.BindPFlag("api_url", flags.Lookup("api-url"))
	_ = a.v.BindPFlag("timeout", flags.Lookup("timeout"))
	_ = a.v.BindPFlag("tz", flags.Lookup("tz"))

	root.AddCommand(
		eventsCmd(a),
		facilitiesCmd(a),
		teamsCmd(a),
		requestsCmd(a),
		solveCmd(a),
	)
	return root
}

// Execute runs the command tree with args.
func Execute(ctx context.Context, args []string) error {
	root := NewRootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (a *app) init(cmd *cobra.Command) error {
	v := a.v
	v.SetDefault("api_url", DefaultAPIURL)

	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.config/clubsync")
	}
	v.SetEnvPrefix("CLUBSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || v.GetString("config") != "" {
			return fmt.Errorf("read config: %w", err)
		}
	}

	a.loc = time.Local
	if tz := v.GetString("tz"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return fmt.Errorf("--tz: %w", err)
		}
		a.loc = loc
	}

	client, err := clubapi.New(v.GetString("api_url"), clubapi.WithTimeout(v.GetDuration("timeout")))
	if err != nil {
		return err
	}
	a.client = client
	return nil
}
