package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"clubsync/internal/domain/event"
)

// FacilitySeeder inserts the default club facilities.
type FacilitySeeder interface {
	EnsureDefaults(ctx context.Context) (int, error)
}

// ExecuteSeedFacilities makes sure the default facilities exist.
// PRE: none
// POST: Main Pitch, Training Pitch, Hall and Gym exist
func ExecuteSeedFacilities(ctx context.Context, seeder FacilitySeeder) error {
	n, err := seeder.EnsureDefaults(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		slog.Info("seed_event", "event", "facilities_seeded", "count", n)
	}
	return nil
}

type sampleFixture struct {
	title    string
	date     string
	start    string
	end      string
	facility string
	fixed    bool
}

// sampleFixtures includes one deliberate overlap (U12 Girls Training) that the
// facility constraint must reject.
var sampleFixtures = []sampleFixture{
	{"Senior Men vs Bray Emmets", "2025-04-05", "14:30", "16:30", "Main Pitch", true},
	{"U14 Boys Training", "2025-01-20", "18:30", "20:00", "Training Pitch", false},
	{"U12 Girls Training", "2025-01-20", "18:30", "19:30", "Training Pitch", false},
	{"Senior Ladies Training", "2025-01-21", "19:00", "20:30", "Gym", false},
	{"U16 Boys vs Roundwood", "2025-03-15", "11:00", "12:30", "Main Pitch", true},
	{"U17 Strength & Conditioning", "2025-01-22", "19:30", "20:30", "Gym", false},
	{"U10 Football Skills", "2025-01-25", "10:00", "11:00", "Training Pitch", false},
	{"Senior Men Training", "2025-01-23", "19:00", "20:30", "Main Pitch", false},
	{"Committee Meeting", "2025-02-03", "20:00", "21:30", "Gym", true},
	{"U13 Football Blitz", "2025-05-10", "10:00", "14:00", "Main Pitch", true},
}

// SampleDataResult reports how many sample fixtures were stored.
type SampleDataResult struct {
	Created  int
	Rejected []string
}

// ExecuteLoadSampleData stores the sample fixtures, skipping those the
// facility constraint rejects.
// PRE: default facilities have been seeded
// POST: Created + len(Rejected) == number of sample fixtures
func ExecuteLoadSampleData(ctx context.Context, deps SaveEventDeps) (SampleDataResult, error) {
	var res SampleDataResult
	for _, fx := range sampleFixtures {
		start, err := time.Parse("2006-01-02 15:04", fx.date+" "+fx.start)
		if err != nil {
			return res, fmt.Errorf("sample %q: %w", fx.title, err)
		}
		end, err := time.Parse("2006-01-02 15:04", fx.date+" "+fx.end)
		if err != nil {
			return res, fmt.Errorf("sample %q: %w", fx.title, err)
		}
		input := SaveEventInput{
			Title:     fx.title,
			StartTime: start,
			EndTime:   end,
			Facility:  fx.facility,
			IsFixed:   fx.fixed,
		}
		if strings.Contains(fx.title, "Training") {
			input.TeamName = strings.Fields(fx.title)[0]
		}

		_, err = ExecuteCreateEvent(ctx, input, deps)
		if errors.Is(err, event.ErrFacilityBooked) {
			res.Rejected = append(res.Rejected, fx.title)
			continue
		}
		if err != nil {
			return res, fmt.Errorf("sample %q: %w", fx.title, err)
		}
		res.Created++
	}
	slog.Info("seed_event", "event", "sample_data_loaded", "created", res.Created, "rejected", len(res.Rejected))
	return res, nil
}
