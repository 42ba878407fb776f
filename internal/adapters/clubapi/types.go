package clubapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Facility is the wire shape of a facility record.
type Facility struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// FacilityRef is a facility as embedded in an event. The API may send either
// the nested object or only the facility name.
type FacilityRef Facility

// UnmarshalJSON accepts `{"id":1,"name":"Main Pitch","type":"pitch"}` or `"Main Pitch"`.
func (f *FacilityRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = FacilityRef{}
		return nil
	}
	if data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*f = FacilityRef{Name: name}
		return nil
	}
	var full Facility
	if err := json.Unmarshal(data, &full); err != nil {
		return fmt.Errorf("facility: %w", err)
	}
	*f = FacilityRef(full)
	return nil
}

// Event is the wire shape of an event record.
type Event struct {
	ID        int64       `json:"id"`
	Title     string      `json:"title"`
	StartTime time.Time   `json:"start_time"`
	EndTime   time.Time   `json:"end_time"`
	Facility  FacilityRef `json:"facility"`
	IsFixed   bool        `json:"is_fixed"`
	TeamName  string      `json:"team_name,omitempty"`
	EventType string      `json:"event_type,omitempty"`
	Team      *int64      `json:"team,omitempty"`
	Status    string      `json:"status,omitempty"`
}

// EventPayload is what the client sends to create or update an event.
// Facility is the facility NAME, not its ID.
type EventPayload struct {
	Title     string `json:"title"`
	StartTime string `json:"start_time"` // e.g. "2026-02-05T18:00:00Z"
	EndTime   string `json:"end_time"`
	Facility  string `json:"facility"`
	IsFixed   bool   `json:"is_fixed"`
	TeamName  string `json:"team_name,omitempty"`
	EventType string `json:"event_type,omitempty"`
	Team      *int64 `json:"team,omitempty"`
	Status    string `json:"status,omitempty"`
}

// Team is the wire shape of a team record.
type Team struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	AgeGroup      string `json:"age_group"`
	UsualDay      string `json:"usual_day"`
	UsualTime     string `json:"usual_time,omitempty"`
	UsualFacility string `json:"usual_facility,omitempty"`
	IsFlexible    bool   `json:"is_flexible"`
}

// TeamPayload is what the client sends to create a team.
type TeamPayload struct {
	Name          string `json:"name"`
	AgeGroup      string `json:"age_group,omitempty"`
	UsualDay      string `json:"usual_day,omitempty"`
	UsualTime     string `json:"usual_time,omitempty"`
	UsualFacility string `json:"usual_facility,omitempty"`
	IsFlexible    *bool  `json:"is_flexible,omitempty"`
}

// BookingRequest is the wire shape of a booking request.
type BookingRequest struct {
	ID         int64     `json:"id"`
	Team       string    `json:"team"`
	Facility   string    `json:"facility,omitempty"`
	EventType  string    `json:"event_type"`
	Recurrence string    `json:"recurrence"`
	DayOfWeek  string    `json:"day_of_week,omitempty"`
	Date       string    `json:"date,omitempty"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	Notes      string    `json:"notes,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// BookingRequestPayload creates or updates a booking request. Unset fields are
// omitted so the same shape serves partial updates.
type BookingRequestPayload struct {
	Team       string `json:"team,omitempty"`
	Facility   string `json:"facility,omitempty"`
	EventType  string `json:"event_type,omitempty"`
	Recurrence string `json:"recurrence,omitempty"`
	DayOfWeek  string `json:"day_of_week,omitempty"`
	Date       string `json:"date,omitempty"`
	StartTime  string `json:"start_time,omitempty"`
	EndTime    string `json:"end_time,omitempty"`
	Notes      string `json:"notes,omitempty"`
	Status     string `json:"status,omitempty"`
}

// SolveResult is the response of the solver endpoint.
type SolveResult struct {
	Message string `json:"message"`
}

// APIError is a non-2xx response from the API, decoded from the usual
// `{"detail": ...}`, `{"non_field_errors": [...]}` or `{"field": [...]}` bodies.
type APIError struct {
	StatusCode     int
	Detail         string
	NonFieldErrors []string
	FieldErrors    map[string][]string
}

// Error implements error.
func (e *APIError) Error() string {
	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// Message returns the most specific human-readable message in the response:
// the first non-field error, then detail, then the first field error.
func (e *APIError) Message() string {
	if len(e.NonFieldErrors) > 0 {
		return e.NonFieldErrors[0]
	}
	if e.Detail != "" {
		return e.Detail
	}
	if len(e.FieldErrors) > 0 {
		fields := make([]string, 0, len(e.FieldErrors))
		for f := range e.FieldErrors {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			if msgs := e.FieldErrors[f]; len(msgs) > 0 {
				return f + ": " + msgs[0]
			}
		}
	}
	return ""
}

// parseAPIError decodes an error body. Bodies that are not JSON objects leave
// only the status code set.
func parseAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return apiErr
	}
	for key, val := range raw {
		switch key {
		case "detail":
			_ = json.Unmarshal(val, &apiErr.Detail)
		case "non_field_errors":
			apiErr.NonFieldErrors = decodeMessages(val)
		default:
			if msgs := decodeMessages(val); len(msgs) > 0 {
				if apiErr.FieldErrors == nil {
					apiErr.FieldErrors = make(map[string][]string)
				}
				apiErr.FieldErrors[key] = msgs
			}
		}
	}
	return apiErr
}

func decodeMessages(val json.RawMessage) []string {
	var list []string
	if err := json.Unmarshal(val, &list); err == nil {
		return list
	}
	var single string
	if err := json.Unmarshal(val, &single); err == nil && strings.TrimSpace(single) != "" {
		return []string{single}
	}
	return nil
}
