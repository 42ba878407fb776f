package restapi

import (
	"net/http"
	"strconv"
	"testing"

	"clubsync/internal/adapters/clubapi"
)

func TestTeams_Lifecycle(t *testing.T) {
	env := newTestEnv(t)

	var created clubapi.Team
	code := env.call(t, "POST", "/api/teams/", map[string]any{
		"name": "U14 Boys", "age_group": "U14", "usual_day": "Monday",
		"usual_time": "18:30:00", "usual_facility": "Training Pitch",
	}, &created)
	if code != http.StatusCreated {
		t.Fatalf("create = %d", code)
	}
	if !created.IsFlexible || created.UsualDay != "monday" || created.UsualTime != "18:30" || created.UsualFacility != "Training Pitch" {
		t.Errorf("created = %+v", created)
	}

	var dup map[string][]string
	if code := env.call(t, "POST", "/api/teams/", map[string]any{"name": "U14 Boys"}, &dup); code != http.StatusBadRequest {
		t.Fatalf("duplicate = %d, want 400", code)
	}
	if dup["name"][0] != "team with this name already exists." {
		t.Errorf("duplicate body = %v", dup)
	}

	path := "/api/teams/" + strconv.FormatInt(created.ID, 10) + "/"
	var patched clubapi.Team
	if code := env.call(t, "PATCH", path, map[string]any{"is_flexible": false}, &patched); code != http.StatusOK {
		t.Fatalf("patch = %d", code)
	}
	if patched.IsFlexible || patched.AgeGroup != "U14" {
		t.Errorf("patched = %+v", patched)
	}

	var badFacility map[string][]string
	if code := env.call(t, "PUT", path, map[string]any{"name": "U14 Boys", "usual_facility": "Astro"}, &badFacility); code != http.StatusBadRequest {
		t.Errorf("unknown facility = %d, want 400", code)
	}
	if len(badFacility["usual_facility"]) == 0 {
		t.Errorf("body = %v", badFacility)
	}

	var list []clubapi.Team
	env.call(t, "GET", "/api/teams/", nil, &list)
	if len(list) != 1 {
		t.Errorf("list = %+v", list)
	}

	if code := env.call(t, "DELETE", path, nil, nil); code != http.StatusNoContent {
		t.Errorf("delete = %d", code)
	}
	if code := env.call(t, "GET", path, nil, nil); code != http.StatusNotFound {
		t.Errorf("get deleted = %d, want 404", code)
	}
}

func TestTeams_RequiresName(t *testing.T) {
	env := newTestEnv(t)
	var got map[string][]string
	if code := env.call(t, "POST", "/api/teams/", map[string]any{"age_group": "U10"}, &got); code != http.StatusBadRequest {
		t.Fatalf("code = %d, want 400", code)
	}
	if got["name"][0] != "This field is required." {
		t.Errorf("body = %v", got)
	}
}

func TestTeams_RejectsUnknownUsualDay(t *testing.T) {
	env := newTestEnv(t)

	var body map[string][]string
	code := env.call(t, "POST", "/api/teams/", map[string]any{"name": "Minors", "usual_day": "Caturday"}, &body)
	if code != http.StatusBadRequest {
		t.Fatalf("create = %d, want 400", code)
	}
	if got := body["usual_day"]; len(got) != 1 || got[0] != "Select a valid day of the week." {
		t.Errorf("body = %v", body)
	}

	var created clubapi.Team
	code = env.call(t, "POST", "/api/teams/", map[string]any{"name": "Cumann Peile Óg", "usual_day": "Wednesday"}, &created)
	if code != http.StatusCreated || created.UsualDay != "wednesday" {
		t.Fatalf("create = %d, %+v", code, created)
	}
}
