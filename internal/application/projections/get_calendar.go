package projections

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"clubsync/internal/domain/event"
	"clubsync/internal/domain/facility"
)

// Calendar views.
const (
	ViewWeek  = "week"
	ViewMonth = "month"
	ViewDay   = "day"
)

// AllFacilities is the sidebar filter value that keeps every event.
const AllFacilities = "All"

// Time grid bounds for the week and day views.
const (
	GridStartHour = 6
	GridEndHour   = 23
)

// Entry colours.
const (
	ColorFixed   = "#dc3545"
	ColorMovable = "#28a745"
)

const dateLayout = "2006-01-02"

// GetCalendarQuery carries input for the calendar projection.
type GetCalendarQuery struct {
	View     string    // week (default), month or day
	Date     string    // YYYY-MM-DD anchor; empty or invalid means today
	Facility string    // facility name or AllFacilities
	Now      time.Time // optional: if zero, time.Now() is used
	Location *time.Location
}

// CalendarEntry is one event placed on the calendar.
type CalendarEntry struct {
	Event      event.Event
	Title      string // "<title> – <facility>"
	Color      string
	Start, End time.Time // in the calendar's location
	TopPct     float64   // offset within the time grid
	HeightPct  float64
}

// CalendarDay is one column (week/day) or cell (month) of the calendar.
type CalendarDay struct {
	Date    time.Time
	Key     string // YYYY-MM-DD
	InRange bool   // false for leading/trailing days of the month grid
	IsToday bool
	Entries []CalendarEntry
}

// GetCalendarResult carries the output of the calendar projection.
type GetCalendarResult struct {
	View       string
	Anchor     string
	Heading    string
	PrevDate   string
	NextDate   string
	Today      string
	Days       []CalendarDay   // week and day views
	Weeks      [][]CalendarDay // month view
	Hours      []int
	Facilities []facility.Facility
	Filter     string
	Sidebar    []event.Event // filtered events, start time ascending
	Events     []event.Event // every loaded event, for edit lookups
	LoadError  bool
}

// GetCalendarDeps holds dependencies for the calendar projection.
type GetCalendarDeps struct {
	Events     EventSource
	Facilities FacilitySource
}

// QueryGetCalendar loads events and facilities from the API and lays them out.
// Load failures are logged and leave the corresponding list empty.
// PRE: none
// POST: Days (or Weeks) cover the requested range; the facility filter applies to
// both the sidebar list and the calendar entries
func QueryGetCalendar(ctx context.Context, query GetCalendarQuery, deps GetCalendarDeps) GetCalendarResult {
	loc := query.Location
	if loc == nil {
		loc = time.UTC
	}
	now := query.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.In(loc)
	today := dayStart(now)

	anchor := today
	if query.Date != "" {
		if d, err := time.ParseInLocation(dateLayout, query.Date, loc); err == nil {
			anchor = d
		}
	}
	view := query.View
	if view != ViewMonth && view != ViewDay {
		view = ViewWeek
	}
	filter := query.Facility
	if filter == "" {
		filter = AllFacilities
	}

	res := GetCalendarResult{
		View:   view,
		Anchor: anchor.Format(dateLayout),
		Today:  today.Format(dateLayout),
		Filter: filter,
		Events: []event.Event{},
	}

	if wire, err := deps.Facilities.ListFacilities(ctx); err != nil {
		slog.Warn("calendar_event", "event", "facilities_load_failed", "error", err)
		res.LoadError = true
	} else {
		for _, f := range wire {
			res.Facilities = append(res.Facilities, f.ToDomain())
		}
	}
	if wire, err := deps.Events.ListEvents(ctx); err != nil {
		slog.Warn("calendar_event", "event", "events_load_failed", "error", err)
		res.LoadError = true
	} else {
		for _, e := range wire {
			res.Events = append(res.Events, e.ToDomain())
		}
	}
	SortByStart(res.Events)
	res.Sidebar = FilterByFacility(res.Events, filter)

	var first, last time.Time
	switch view {
	case ViewDay:
		first, last = anchor, anchor
		res.PrevDate = anchor.AddDate(0, 0, -1).Format(dateLayout)
		res.NextDate = anchor.AddDate(0, 0, 1).Format(dateLayout)
		res.Heading = anchor.Format("Monday 2 January 2006")
	case ViewMonth:
		monthStart := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, loc)
		monthEnd := monthStart.AddDate(0, 1, -1)
		first, last = weekStart(monthStart), weekStart(monthEnd).AddDate(0, 0, 6)
		res.PrevDate = monthStart.AddDate(0, -1, 0).Format(dateLayout)
		res.NextDate = monthStart.AddDate(0, 1, 0).Format(dateLayout)
		res.Heading = monthStart.Format("January 2006")
	default:
		first = weekStart(anchor)
		last = first.AddDate(0, 0, 6)
		res.PrevDate = first.AddDate(0, 0, -7).Format(dateLayout)
		res.NextDate = first.AddDate(0, 0, 7).Format(dateLayout)
		res.Heading = weekHeading(first, last)
	}

	byDay := entriesByDay(res.Sidebar, loc)
	var days []CalendarDay
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		days = append(days, CalendarDay{
			Date:    d,
			Key:     key,
			InRange: view != ViewMonth || d.Month() == anchor.Month(),
			IsToday: key == res.Today,
			Entries: byDay[key],
		})
	}
	if view == ViewMonth {
		for i := 0; i < len(days); i += 7 {
			res.Weeks = append(res.Weeks, days[i:i+7])
		}
	} else {
		res.Days = days
		for h := GridStartHour; h < GridEndHour; h++ {
			res.Hours = append(res.Hours, h)
		}
	}
	return res
}

// FilterByFacility keeps the events booked on the named facility.
// AllFacilities or an empty name keeps every event.
// POST: Returns a new slice; order is preserved
func FilterByFacility(events []event.Event, name string) []event.Event {
	out := []event.Event{}
	for _, e := range events {
		if name == "" || name == AllFacilities || e.Facility.Name == name {
			out = append(out, e)
		}
	}
	return out
}

// EntryTitle is the label of a calendar entry.
func EntryTitle(e event.Event) string {
	return fmt.Sprintf("%s – %s", e.Title, e.Facility.Name)
}

// EntryColor is red for fixed events and green for movable ones.
func EntryColor(e event.Event) string {
	if e.IsFixed {
		return ColorFixed
	}
	return ColorMovable
}

func entriesByDay(events []event.Event, loc *time.Location) map[string][]CalendarEntry {
	out := map[string][]CalendarEntry{}
	gridMinutes := float64((GridEndHour - GridStartHour) * 60)
	for _, e := range events {
		start, end := e.StartTime.In(loc), e.EndTime.In(loc)
		key := start.Format(dateLayout)

		from := minutesIntoGrid(start)
		to := minutesIntoGrid(end)
		if end.Format(dateLayout) != key {
			to = gridMinutes
		}
		if to <= from {
			to = from + 15
		}
		out[key] = append(out[key], CalendarEntry{
			Event:     e,
			Title:     EntryTitle(e),
			Color:     EntryColor(e),
			Start:     start,
			End:       end,
			TopPct:    from / gridMinutes * 100,
			HeightPct: (to - from) / gridMinutes * 100,
		})
	}
	return out
}

// minutesIntoGrid clamps a time of day into the grid, in minutes from GridStartHour.
func minutesIntoGrid(t time.Time) float64 {
	m := float64((t.Hour()-GridStartHour)*60 + t.Minute())
	limit := float64((GridEndHour - GridStartHour) * 60)
	if m < 0 {
		return 0
	}
	if m > limit {
		return limit
	}
	return m
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// weekStart returns the Monday on or before d.
func weekStart(d time.Time) time.Time {
	offset := (int(d.Weekday()) + 6) % 7
	return dayStart(d).AddDate(0, 0, -offset)
}

func weekHeading(first, last time.Time) string {
	if first.Month() == last.Month() {
		return fmt.Sprintf("%d – %d %s", first.Day(), last.Day(), last.Format("January 2006"))
	}
	if first.Year() == last.Year() {
		return fmt.Sprintf("%s – %s", first.Format("2 Jan"), last.Format("2 Jan 2006"))
	}
	return fmt.Sprintf("%s – %s", first.Format("2 Jan 2006"), last.Format("2 Jan 2006"))
}

// SortByStart orders events by start time, keeping the order of equal starts.
func SortByStart(events []event.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartTime.Before(events[j].StartTime)
	})
}
