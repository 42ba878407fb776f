package orchestrators

import (
	"context"
	"errors"
	"testing"

	"clubsync/internal/adapters/clubapi"
	"clubsync/internal/domain/bookingrequest"
	"clubsync/internal/domain/team"
)

type fakeRequestClient struct {
	got clubapi.BookingRequestPayload
	err error
}

func (f *fakeRequestClient) CreateBookingRequest(_ context.Context, p clubapi.BookingRequestPayload) (clubapi.BookingRequest, error) {
	f.got = p
	return clubapi.BookingRequest{ID: 1, Team: p.Team}, f.err
}

func (f *fakeRequestClient) DeleteBookingRequest(context.Context, int64) error { return f.err }

type fakeTeamClient struct {
	got clubapi.TeamPayload
	err error
}

func (f *fakeTeamClient) CreateTeam(_ context.Context, p clubapi.TeamPayload) (clubapi.Team, error) {
	f.got = p
	return clubapi.Team{ID: 1, Name: p.Name}, f.err
}

// TestExecuteSubmitBookingRequest tests local validation and the API payload.
func TestExecuteSubmitBookingRequest(t *testing.T) {
	c := &fakeRequestClient{}
	_, err := ExecuteSubmitBookingRequest(context.Background(), bookingrequest.Request{
		Team: "U10", DayOfWeek: "Saturday", StartTime: "10:00", EndTime: "11:00", Notes: "grass please",
	}, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.got.DayOfWeek != "saturday" || c.got.Recurrence != "weekly" || c.got.Notes != "grass please" {
		t.Errorf("unexpected payload: %+v", c.got)
	}

	_, err = ExecuteSubmitBookingRequest(context.Background(), bookingrequest.Request{DayOfWeek: "monday", StartTime: "10:00", EndTime: "11:00"}, c)
	var fe *FormError
	if !errors.As(err, &fe) || fe.Message != "Team is required" {
		t.Errorf("expected 'Team is required', got %v", err)
	}

	c.err = &clubapi.APIError{StatusCode: 400, FieldErrors: map[string][]string{"team": {"too long"}}}
	_, err = ExecuteSubmitBookingRequest(context.Background(), bookingrequest.Request{Team: "A", DayOfWeek: "monday", StartTime: "10:00", EndTime: "11:00"}, c)
	if !errors.As(err, &fe) || fe.Message != "team: too long" {
		t.Errorf("expected API field error, got %v", err)
	}
}

// TestExecuteSubmitTeam tests team validation and flexibility pass-through.
func TestExecuteSubmitTeam(t *testing.T) {
	c := &fakeTeamClient{}
	tm := team.New("U16 Boys")
	tm.IsFlexible = false
	if _, err := ExecuteSubmitTeam(context.Background(), tm, c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.got.IsFlexible == nil || *c.got.IsFlexible {
		t.Errorf("expected is_flexible=false to be sent, got %+v", c.got.IsFlexible)
	}

	_, err := ExecuteSubmitTeam(context.Background(), team.New(" "), c)
	var fe *FormError
	if !errors.As(err, &fe) || fe.Message != "Team name cannot be empty" {
		t.Errorf("expected empty name error, got %v", err)
	}
}

type fakeEventDeleter struct {
	deleted []int64
	err     error
}

func (f *fakeEventDeleter) DeleteEvent(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func TestExecuteDeleteRemoteEvent(t *testing.T) {
	ok := &fakeEventDeleter{}
	if err := ExecuteDeleteRemoteEvent(context.Background(), 7, ok); err != nil || len(ok.deleted) != 1 || ok.deleted[0] != 7 {
		t.Errorf("delete = %v, deleted %v", err, ok.deleted)
	}

	failing := &fakeEventDeleter{err: &clubapi.APIError{StatusCode: 404, Detail: "Not found."}}
	if err := ExecuteDeleteRemoteEvent(context.Background(), 7, failing); err == nil {
		t.Error("API failure should be returned")
	}
}

func TestExecuteWithdrawBookingRequest(t *testing.T) {
	if err := ExecuteWithdrawBookingRequest(context.Background(), 3, &fakeRequestClient{}); err != nil {
		t.Errorf("withdraw = %v", err)
	}
	if err := ExecuteWithdrawBookingRequest(context.Background(), 3, &fakeRequestClient{err: errors.New("down")}); err == nil {
		t.Error("API failure should be returned")
	}
}
