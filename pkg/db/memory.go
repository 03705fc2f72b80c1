package db

import (
	"context"
	"sort"
	"sync"

	"github.com/oakfieldclinic/staff-scheduler/pkg/core/model"
)

// MemoryStore is an in-memory Store implementation. It backs the CLI
// when no database is configured and the service tests. A mutex
// serializes access so concurrent read-then-write callers still need
// their own coordination per (date, providerId), matching the
// single-writer assumption of the scheduling core.
type MemoryStore struct {
	mu        sync.Mutex
	days      map[string]model.ScheduleDay
	providers []model.Provider
	staff     []model.Staff
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		days: make(map[string]model.ScheduleDay),
	}
}

// GetScheduleDay returns the stored day for a date, or nil if absent
func (m *MemoryStore) GetScheduleDay(ctx context.Context, date string) (*model.ScheduleDay, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	day, ok := m.days[date]
	if !ok {
		return nil, nil
	}
	return &day, nil
}

// GetScheduleRange returns all stored days with from <= date <= to,
// ordered by date
func (m *MemoryStore) GetScheduleRange(ctx context.Context, from, to string) ([]model.ScheduleDay, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var days []model.ScheduleDay
	for date, day := range m.days {
		if date >= from && date <= to {
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days, nil
}

// UpsertScheduleDay stores a day, replacing any existing day for the date
func (m *MemoryStore) UpsertScheduleDay(ctx context.Context, day model.ScheduleDay) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.days[day.Date] = day
	return nil
}

// DeleteScheduleDay removes the stored day for a date, if any
func (m *MemoryStore) DeleteScheduleDay(ctx context.Context, date string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.days, date)
	return nil
}

// GetProviders returns all stored providers in insertion order
func (m *MemoryStore) GetProviders(ctx context.Context) ([]model.Provider, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	providers := make([]model.Provider, len(m.providers))
	copy(providers, m.providers)
	return providers, nil
}

// InsertProvider stores a new provider
func (m *MemoryStore) InsertProvider(ctx context.Context, provider model.Provider) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.providers = append(m.providers, provider)
	return nil
}

// GetStaff returns all stored staff members in insertion order
func (m *MemoryStore) GetStaff(ctx context.Context) ([]model.Staff, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	staff := make([]model.Staff, len(m.staff))
	copy(staff, m.staff)
	return staff, nil
}

// InsertStaff stores a new staff member
func (m *MemoryStore) InsertStaff(ctx context.Context, staff model.Staff) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.staff = append(m.staff, staff)
	return nil
}
