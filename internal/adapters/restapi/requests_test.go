package restapi

import (
	"net/http"
	"strconv"
	"strings"
	"testing"

	"clubsync/internal/adapters/clubapi"
)

func TestRequests_CreateNotifiesSecretary(t *testing.T) {
	env := newTestEnv(t)

	var created clubapi.BookingRequest
	code := env.call(t, "POST", "/api/requests/", map[string]any{
		"team": "U10 Girls", "facility": "Hall", "event_type": "juvenile_training",
		"recurrence": "weekly", "day_of_week": "Wednesday",
		"start_time": "17:00", "end_time": "18:00", "notes": "Prefer **indoors** in winter",
		"created_at": "1999-01-01T00:00:00Z",
	}, &created)
	if code != http.StatusCreated {
		t.Fatalf("create = %d", code)
	}
	if created.Status != "pending" || created.DayOfWeek != "wednesday" || !created.CreatedAt.Equal(testNow) {
		t.Errorf("created = %+v", created)
	}

	sent := env.sender.Sent()
	if len(sent) != 1 {
		t.Fatalf("sent = %d, want 1", len(sent))
	}
	if sent[0].To[0] != "fixtures@example.org" || !strings.Contains(sent[0].Subject, "U10 Girls") {
		t.Errorf("email = %+v", sent[0])
	}
	if !strings.Contains(sent[0].HTML, "<strong>indoors</strong>") {
		t.Error("notes should be rendered as markdown")
	}
}

func TestRequests_ValidationAndLifecycle(t *testing.T) {
	env := newTestEnv(t)

	var bad map[string][]string
	code := env.call(t, "POST", "/api/requests/", map[string]any{
		"team": "Seniors", "recurrence": "once", "start_time": "19:00", "end_time": "20:00",
	}, &bad)
	if code != http.StatusBadRequest || bad["date"][0] != "This field is required." {
		t.Fatalf("missing date = %d %v", code, bad)
	}

	var missing map[string][]string
	env.call(t, "POST", "/api/requests/", map[string]any{"team": "Seniors"}, &missing)
	if len(missing["start_time"]) == 0 || len(missing["end_time"]) == 0 {
		t.Errorf("missing times = %v", missing)
	}

	var created clubapi.BookingRequest
	env.call(t, "POST", "/api/requests/", map[string]any{
		"team": "Seniors", "recurrence": "once", "date": "2026-03-14",
		"start_time": "19:00", "end_time": "20:00",
	}, &created)
	path := "/api/requests/" + strconv.FormatInt(created.ID, 10) + "/"

	var patched clubapi.BookingRequest
	if code := env.call(t, "PATCH", path, map[string]any{"status": "scheduled"}, &patched); code != http.StatusOK {
		t.Fatalf("patch = %d", code)
	}
	if patched.Status != "scheduled" || patched.Date != "2026-03-14" {
		t.Errorf("patched = %+v", patched)
	}

	var pending []clubapi.BookingRequest
	env.call(t, "GET", "/api/requests/?status=pending", nil, &pending)
	if len(pending) != 0 {
		t.Errorf("pending = %+v, want none", pending)
	}

	var got clubapi.BookingRequest
	if code := env.call(t, "GET", path, nil, &got); code != http.StatusOK || got.Team != "Seniors" {
		t.Errorf("get = %d %+v", code, got)
	}
	if code := env.call(t, "DELETE", path, nil, nil); code != http.StatusNoContent {
		t.Errorf("delete = %d", code)
	}
	if code := env.call(t, "GET", path, nil, nil); code != http.StatusNotFound {
		t.Errorf("get deleted = %d", code)
	}
}
