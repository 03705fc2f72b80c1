package db

import (
	"context"

	"github.com/oakfieldclinic/staff-scheduler/pkg/core/model"
)

// ScheduleStore defines the schedule-day persistence operations.
// Days are keyed by date ("2006-01-02"); GetScheduleDay returns nil
// (no error) when the date has no stored day.
type ScheduleStore interface {
	GetScheduleDay(ctx context.Context, date string) (*model.ScheduleDay, error)
	GetScheduleRange(ctx context.Context, from, to string) ([]model.ScheduleDay, error)
	UpsertScheduleDay(ctx context.Context, day model.ScheduleDay) error
	DeleteScheduleDay(ctx context.Context, date string) error
}

// ProviderStore defines the provider persistence operations
type ProviderStore interface {
	GetProviders(ctx context.Context) ([]model.Provider, error)
	InsertProvider(ctx context.Context, provider model.Provider) error
}

// StaffStore defines the staff persistence operations
type StaffStore interface {
	GetStaff(ctx context.Context) ([]model.Staff, error)
	InsertStaff(ctx context.Context, staff model.Staff) error
}

// Store combines all persistence operations. Both the Postgres-backed
// store and the in-memory store implement this interface.
type Store interface {
	ScheduleStore
	ProviderStore
	StaffStore
}
