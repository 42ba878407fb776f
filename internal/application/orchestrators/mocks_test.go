package orchestrators

import (
	"context"
	"sort"
	"sync"

	"clubsync/internal/adapters/storage"
	eventstore "clubsync/internal/adapters/storage/event"
	"clubsync/internal/domain/bookingrequest"
	"clubsync/internal/domain/event"
	"clubsync/internal/domain/facility"
	"clubsync/internal/domain/team"
)

// mockFacilityStore implements FacilityLookup and FacilitySeeder.
type mockFacilityStore struct {
	byName map[string]facility.Facility
}

func newMockFacilityStore() *mockFacilityStore {
	m := &mockFacilityStore{byName: map[string]facility.Facility{}}
	for i, f := range facility.Defaults {
		f.ID = int64(i + 1)
		m.byName[f.Name] = f
	}
	return m
}

func (m *mockFacilityStore) GetByName(_ context.Context, name string) (facility.Facility, error) {
	f, ok := m.byName[name]
	if !ok {
		return facility.Facility{}, storage.ErrNotFound
	}
	return f, nil
}

func (m *mockFacilityStore) EnsureDefaults(_ context.Context) (int, error) {
	return 0, nil
}

// mockEventStore implements EventStore, enforcing the overlap constraint in memory.
type mockEventStore struct {
	mu     sync.Mutex
	events map[int64]event.Event
	nextID int64
}

func newMockEventStore() *mockEventStore {
	return &mockEventStore{events: map[int64]event.Event{}}
}

func (m *mockEventStore) List(_ context.Context, filter eventstore.ListFilter) ([]event.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []event.Event{}
	for _, e := range m.events {
		if filter.ExcludeStatus != "" && e.Status == filter.ExcludeStatus {
			continue
		}
		if filter.FacilityID != 0 && e.Facility.ID != filter.FacilityID {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].StartTime.Before(out[j].StartTime)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *mockEventStore) GetByID(_ context.Context, id int64) (event.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return event.Event{}, storage.ErrNotFound
	}
	return e, nil
}

func (m *mockEventStore) conflicts(e event.Event) bool {
	for _, other := range m.events {
		if e.Overlaps(other) {
			return true
		}
	}
	return false
}

func (m *mockEventStore) Create(_ context.Context, e event.Event) (event.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conflicts(e) {
		return event.Event{}, event.ErrFacilityBooked
	}
	m.nextID++
	e.ID = m.nextID
	m.events[e.ID] = e
	return e, nil
}

func (m *mockEventStore) Update(_ context.Context, e event.Event) (event.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[e.ID]; !ok {
		return event.Event{}, storage.ErrNotFound
	}
	if m.conflicts(e) {
		return event.Event{}, event.ErrFacilityBooked
	}
	m.events[e.ID] = e
	return e, nil
}

func (m *mockEventStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.events, id)
	return nil
}

// mockRequestStore implements BookingRequestStore and PendingCounter.
type mockRequestStore struct {
	requests map[int64]bookingrequest.Request
	nextID   int64
}

func newMockRequestStore() *mockRequestStore {
	return &mockRequestStore{requests: map[int64]bookingrequest.Request{}}
}

func (m *mockRequestStore) Create(_ context.Context, r bookingrequest.Request) (bookingrequest.Request, error) {
	m.nextID++
	r.ID = m.nextID
	m.requests[r.ID] = r
	return r, nil
}

func (m *mockRequestStore) Update(_ context.Context, r bookingrequest.Request) (bookingrequest.Request, error) {
	if _, ok := m.requests[r.ID]; !ok {
		return bookingrequest.Request{}, storage.ErrNotFound
	}
	m.requests[r.ID] = r
	return r, nil
}

func (m *mockRequestStore) Delete(_ context.Context, id int64) error {
	if _, ok := m.requests[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.requests, id)
	return nil
}

func (m *mockRequestStore) CountByStatus(_ context.Context, status string) (int, error) {
	n := 0
	for _, r := range m.requests {
		if r.Status == status {
			n++
		}
	}
	return n, nil
}

// mockTeamStore implements TeamStore.
type mockTeamStore struct {
	teams  map[int64]team.Team
	nextID int64
}

func (m *mockTeamStore) Create(_ context.Context, t team.Team) (team.Team, error) {
	for _, existing := range m.teams {
		if existing.Name == t.Name {
			return team.Team{}, storage.ErrDuplicate
		}
	}
	m.nextID++
	t.ID = m.nextID
	m.teams[t.ID] = t
	return t, nil
}

func (m *mockTeamStore) Update(_ context.Context, t team.Team) (team.Team, error) {
	if _, ok := m.teams[t.ID]; !ok {
		return team.Team{}, storage.ErrNotFound
	}
	m.teams[t.ID] = t
	return t, nil
}

func (m *mockTeamStore) Delete(_ context.Context, id int64) error {
	if _, ok := m.teams[id]; !ok {
		return storage.ErrNotFound
	}
	delete(m.teams, id)
	return nil
}
