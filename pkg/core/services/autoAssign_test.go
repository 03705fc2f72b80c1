package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oakfieldclinic/staff-scheduler/pkg/core/model"
	"github.com/oakfieldclinic/staff-scheduler/pkg/db"
)

func availableAllWeek() model.WeekAvailability {
	var week model.WeekAvailability
	for _, day := range model.WeekDays {
		week.Set(day, model.DayAvailability{Available: true})
	}
	return week
}

func mondayOnly() model.WeekAvailability {
	var week model.WeekAvailability
	week.Set(model.Monday, model.DayAvailability{Available: true})
	return week
}

// seedAutoAssignFixture stores one provider needing a technician on
// 2025-01-06 plus a two-person pool where only one is available.
func seedAutoAssignFixture(t *testing.T, ctx context.Context, store db.Store) {
	t.Helper()

	require.NoError(t, store.InsertProvider(ctx, model.Provider{
		ID:           "p1",
		Name:         "Dr. Okafor",
		Requirements: model.Requirements{Technician: 1},
	}))

	require.NoError(t, store.InsertStaff(ctx, model.Staff{
		ID: "s-available", Roles: []model.Role{model.RoleTechnician}, Availability: availableAllWeek(),
	}))
	var tuesdayOnly model.WeekAvailability
	tuesdayOnly.Set(model.Tuesday, model.DayAvailability{Available: true})
	require.NoError(t, store.InsertStaff(ctx, model.Staff{
		ID: "s-unavailable", Roles: []model.Role{model.RoleTechnician}, Availability: tuesdayOnly,
	}))

	require.NoError(t, store.UpsertScheduleDay(ctx, model.ScheduleDay{
		Date: "2025-01-06", // Monday
		Providers: []model.ProviderSchedule{
			{ProviderID: "p1", Location: "north",
				TimeSlot:      model.TimeSlot{StartTime: "09:00", EndTime: "17:00"},
				AssignedStaff: []model.StaffAssignment{}},
		},
	}))
}

func TestAutoAssignProvider_FillsAndStoresAssignments(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemoryStore()
	seedAutoAssignFixture(t, ctx, store)

	result, err := AutoAssignProvider(ctx, store, zap.NewNop(), "2025-01-06", "p1")
	require.NoError(t, err)

	require.Len(t, result.Assignments, 1)
	require.Len(t, result.Assignments[0], 1)
	assert.Equal(t, "s-available", result.Assignments[0][0].StaffID)
	assert.Equal(t, model.RoleTechnician, result.Assignments[0][0].AssignedRole)
	assert.Equal(t, 0, result.Unfilled)

	day, err := store.GetScheduleDay(ctx, "2025-01-06")
	require.NoError(t, err)
	require.Len(t, day.Providers[0].AssignedStaff, 1)
	assert.Equal(t, "s-available", day.Providers[0].AssignedStaff[0].StaffID)
}

func TestAutoAssignProvider_ReplacesExistingAssignments(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemoryStore()
	seedAutoAssignFixture(t, ctx, store)

	day, err := store.GetScheduleDay(ctx, "2025-01-06")
	require.NoError(t, err)
	day.Providers[0].AssignedStaff = []model.StaffAssignment{
		{StaffID: "stale", AssignedRole: model.RoleTechnician},
	}
	require.NoError(t, store.UpsertScheduleDay(ctx, *day))

	_, err = AutoAssignProvider(ctx, store, zap.NewNop(), "2025-01-06", "p1")
	require.NoError(t, err)

	day, err = store.GetScheduleDay(ctx, "2025-01-06")
	require.NoError(t, err)
	require.Len(t, day.Providers[0].AssignedStaff, 1)
	assert.Equal(t, "s-available", day.Providers[0].AssignedStaff[0].StaffID,
		"stale assignment replaced, not topped up")
}

func TestAutoAssignProvider_ReportsUnfilledSlots(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemoryStore()

	require.NoError(t, store.InsertProvider(ctx, model.Provider{
		ID:           "p1",
		Requirements: model.Requirements{Technician: 2, Scribe: 1},
	}))
	require.NoError(t, store.InsertStaff(ctx, model.Staff{
		ID: "s1", Roles: []model.Role{model.RoleTechnician}, Availability: mondayOnly(),
	}))
	require.NoError(t, store.UpsertScheduleDay(ctx, model.ScheduleDay{
		Date: "2025-01-06",
		Providers: []model.ProviderSchedule{
			{ProviderID: "p1", TimeSlot: model.TimeSlot{StartTime: "09:00", EndTime: "17:00"}},
		},
	}))

	result, err := AutoAssignProvider(ctx, store, zap.NewNop(), "2025-01-06", "p1")
	require.NoError(t, err)

	require.Len(t, result.Assignments[0], 1)
	assert.Equal(t, 2, result.Unfilled)
}

func TestAutoAssignProvider_SplitLocationDayAssignsEachAppearance(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemoryStore()

	require.NoError(t, store.InsertProvider(ctx, model.Provider{
		ID:           "p1",
		Requirements: model.Requirements{Technician: 1},
	}))
	require.NoError(t, store.InsertStaff(ctx, model.Staff{
		ID: "s1", Roles: []model.Role{model.RoleTechnician}, Availability: mondayOnly(),
	}))
	require.NoError(t, store.UpsertScheduleDay(ctx, model.ScheduleDay{
		Date: "2025-01-06",
		Providers: []model.ProviderSchedule{
			{ProviderID: "p1", Location: "north", TimeSlot: model.TimeSlot{StartTime: "08:00", EndTime: "12:00"}},
			{ProviderID: "p1", Location: "south", TimeSlot: model.TimeSlot{StartTime: "13:00", EndTime: "17:00"}},
		},
	}))

	result, err := AutoAssignProvider(ctx, store, zap.NewNop(), "2025-01-06", "p1")
	require.NoError(t, err)

	require.Len(t, result.Assignments, 2)
	assert.Equal(t, "s1", result.Assignments[0][0].StaffID)
	assert.Equal(t, "s1", result.Assignments[1][0].StaffID)
}

func TestAutoAssignProvider_ErrorWhenDayMissing(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemoryStore()

	_, err := AutoAssignProvider(ctx, store, zap.NewNop(), "2025-01-06", "p1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no schedule exists")
}

func TestAutoAssignProvider_ErrorWhenProviderUnknown(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemoryStore()
	seedAutoAssignFixture(t, ctx, store)

	_, err := AutoAssignProvider(ctx, store, zap.NewNop(), "2025-01-06", "ghost")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestAutoAssignProvider_ErrorWhenProviderNotScheduled(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemoryStore()
	seedAutoAssignFixture(t, ctx, store)

	require.NoError(t, store.InsertProvider(ctx, model.Provider{ID: "p2", Name: "Dr. Banerjee"}))

	_, err := AutoAssignProvider(ctx, store, zap.NewNop(), "2025-01-06", "p2")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not scheduled")
}

func TestAutoAssignProvider_ErrorOnBadDate(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemoryStore()

	_, err := AutoAssignProvider(ctx, store, zap.NewNop(), "06/01/2025", "p1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid date")
}
