package restapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"clubsync/internal/adapters/storage"
	teamStore "clubsync/internal/adapters/storage/team"
	"clubsync/internal/application/orchestrators"
	"clubsync/internal/domain/bookingrequest"
	"clubsync/internal/domain/event"
	"clubsync/internal/domain/team"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

const (
	msgRequired = "This field is required."
	msgBlank    = "This field may not be blank."
	msgNotFound = "Not found."
)

type detailBody struct {
	Detail string `json:"detail"`
}

// fieldErrors is a DRF validation error body: field name (or "non_field_errors")
// to messages.
type fieldErrors map[string][]string

func (fe fieldErrors) add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("api_event", "event", "encode_failed", "error", err)
	}
}

// writeList encodes a list, writing [] rather than null for empty results.
func writeList[T any](w http.ResponseWriter, items []T) {
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, items)
}

func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	writeJSON(w, http.StatusInternalServerError, detailBody{Detail: "A server error occurred."})
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, detailBody{Detail: msgNotFound})
}

// decodeBody decodes a JSON object into v. Unknown fields are ignored, as DRF does.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, detailBody{Detail: fmt.Sprintf("JSON parse error - %s", err.Error())})
		return false
	}
	return true
}

// pathID parses the {id} wildcard. Anything but a positive integer is a 404,
// matching DRF's \d+ routes.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		notFound(w)
		return 0, false
	}
	return id, true
}

func maxLength(n int) string {
	return fmt.Sprintf("Ensure this field has no more than %d characters.", n)
}

func invalidChoice(v string) string {
	return fmt.Sprintf("%q is not a valid choice.", v)
}

// validationErrors maps domain errors to the field they concern.
var validationErrors = []struct {
	err   error
	field string
	msg   string
}{
	{event.ErrEmptyTitle, "title", msgBlank},
	{event.ErrTitleTooLong, "title", maxLength(event.MaxTitleLength)},
	{event.ErrMissingFacility, "facility", msgRequired},
	{event.ErrMissingTimes, "start_time", msgRequired},
	{event.ErrEndBeforeStart, "non_field_errors", event.ErrEndBeforeStart.Error()},
	{event.ErrInvalidType, "event_type", "Select a valid event type."},
	{event.ErrInvalidStatus, "status", "Select a valid status."},
	{event.ErrTeamNameTooLong, "team_name", maxLength(event.MaxTeamNameLength)},
	{event.ErrFacilityBooked, "non_field_errors", event.ErrFacilityBooked.Error()},

	{team.ErrEmptyName, "name", msgBlank},
	{team.ErrNameTooLong, "name", maxLength(team.MaxNameLength)},
	{team.ErrAgeGroupTooLong, "age_group", maxLength(team.MaxAgeGroupLength)},
	{team.ErrUsualDayTooLong, "usual_day", maxLength(team.MaxUsualDayLength)},
	{team.ErrInvalidUsualDay, "usual_day", "Select a valid day of the week."},
	{team.ErrInvalidUsualTime, "usual_time", "Time has wrong format. Use one of these formats instead: hh:mm[:ss[.uuuuuu]]."},

	{bookingrequest.ErrEmptyTeam, "team", msgBlank},
	{bookingrequest.ErrInvalidRecurrence, "recurrence", "Select a valid recurrence."},
	{bookingrequest.ErrInvalidDay, "day_of_week", "Select a valid day of the week."},
	{bookingrequest.ErrMissingDate, "date", msgRequired},
	{bookingrequest.ErrInvalidDate, "date", "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."},
	{bookingrequest.ErrInvalidTime, "start_time", "Time has wrong format. Use one of these formats instead: hh:mm[:ss[.uuuuuu]]."},
	{bookingrequest.ErrEndBeforeStart, "non_field_errors", "End time must be after start time."},
	{bookingrequest.ErrInvalidStatus, "status", "Select a valid status."},
	{bookingrequest.ErrNotesTooLong, "notes", maxLength(bookingrequest.MaxNotesLength)},
}

// writeError turns an orchestrator or store error into the matching API response.
// Errors with no API meaning are logged and reported as 500.
func writeError(w http.ResponseWriter, err error) {
	var unknown *orchestrators.UnknownFacilityError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		notFound(w)
		return
	case errors.As(err, &unknown):
		writeJSON(w, http.StatusBadRequest, fieldErrors{"facility": {unknown.Error()}})
		return
	case errors.Is(err, teamStore.ErrUnknownFacility):
		writeJSON(w, http.StatusBadRequest, fieldErrors{"usual_facility": {"Object with that name does not exist."}})
		return
	case errors.Is(err, storage.ErrDuplicate):
		writeJSON(w, http.StatusBadRequest, fieldErrors{"name": {"team with this name already exists."}})
		return
	}
	for _, v := range validationErrors {
		if errors.Is(err, v.err) {
			writeJSON(w, http.StatusBadRequest, fieldErrors{v.field: {v.msg}})
			return
		}
	}
	internalError(w, err)
}
