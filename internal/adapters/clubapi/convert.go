package clubapi

import (
	"time"

	"clubsync/internal/domain/bookingrequest"
	"clubsync/internal/domain/event"
	"clubsync/internal/domain/facility"
	"clubsync/internal/domain/team"
)

// WireTimeLayout is the timestamp format sent in event payloads.
const WireTimeLayout = time.RFC3339

// FacilityFromDomain converts a domain facility to its wire shape.
func FacilityFromDomain(f facility.Facility) Facility {
	return Facility{ID: f.ID, Name: f.Name, Type: f.Type}
}

// ToDomain converts a wire facility to the domain type.
func (f Facility) ToDomain() facility.Facility {
	return facility.Facility{ID: f.ID, Name: f.Name, Type: f.Type}
}

// EventFromDomain converts a domain event to its wire shape.
func EventFromDomain(e event.Event) Event {
	return Event{
		ID:        e.ID,
		Title:     e.Title,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		Facility:  FacilityRef(FacilityFromDomain(e.Facility)),
		IsFixed:   e.IsFixed,
		TeamName:  e.TeamName,
		EventType: e.EventType,
		Team:      e.TeamID,
		Status:    e.Status,
	}
}

// ToDomain converts a wire event to the domain type.
func (e Event) ToDomain() event.Event {
	return event.Event{
		ID:        e.ID,
		Title:     e.Title,
		StartTime: e.StartTime,
		EndTime:   e.EndTime,
		Facility:  Facility(e.Facility).ToDomain(),
		IsFixed:   e.IsFixed,
		TeamName:  e.TeamName,
		EventType: e.EventType,
		TeamID:    e.Team,
		Status:    e.Status,
	}
}

// PayloadFromDomain builds the create/update payload for an event.
func PayloadFromDomain(e event.Event) EventPayload {
	return EventPayload{
		Title:     e.Title,
		StartTime: e.StartTime.Format(WireTimeLayout),
		EndTime:   e.EndTime.Format(WireTimeLayout),
		Facility:  e.Facility.Name,
		IsFixed:   e.IsFixed,
		TeamName:  e.TeamName,
		EventType: e.EventType,
		Team:      e.TeamID,
		Status:    e.Status,
	}
}

// Times parses the start and end timestamps of a payload.
func (p EventPayload) Times() (start, end time.Time, err error) {
	start, err = time.Parse(time.RFC3339, p.StartTime)
	if err != nil {
		return start, end, err
	}
	end, err = time.Parse(time.RFC3339, p.EndTime)
	return start, end, err
}

// TeamFromDomain converts a domain team to its wire shape.
func TeamFromDomain(t team.Team) Team {
	return Team{
		ID:            t.ID,
		Name:          t.Name,
		AgeGroup:      t.AgeGroup,
		UsualDay:      t.UsualDay,
		UsualTime:     t.UsualTime,
		UsualFacility: t.UsualFacility,
		IsFlexible:    t.IsFlexible,
	}
}

// ToDomain converts a wire team to the domain type.
func (t Team) ToDomain() team.Team {
	return team.Team{
		ID:            t.ID,
		Name:          t.Name,
		AgeGroup:      t.AgeGroup,
		UsualDay:      t.UsualDay,
		UsualTime:     t.UsualTime,
		UsualFacility: t.UsualFacility,
		IsFlexible:    t.IsFlexible,
	}
}

// BookingRequestFromDomain converts a domain booking request to its wire shape.
func BookingRequestFromDomain(r bookingrequest.Request) BookingRequest {
	return BookingRequest{
		ID:         r.ID,
		Team:       r.Team,
		Facility:   r.Facility,
		EventType:  r.EventType,
		Recurrence: r.Recurrence,
		DayOfWeek:  r.DayOfWeek,
		Date:       r.Date,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		Notes:      r.Notes,
		Status:     r.Status,
		CreatedAt:  r.CreatedAt,
	}
}

// ToDomain converts a wire booking request to the domain type.
func (r BookingRequest) ToDomain() bookingrequest.Request {
	return bookingrequest.Request{
		ID:         r.ID,
		Team:       r.Team,
		Facility:   r.Facility,
		EventType:  r.EventType,
		Recurrence: r.Recurrence,
		DayOfWeek:  r.DayOfWeek,
		Date:       r.Date,
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		Notes:      r.Notes,
		Status:     r.Status,
		CreatedAt:  r.CreatedAt,
	}
}
