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

func TestSeedDemoData_PopulatesEmptyStore(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemoryStore()

	result, err := SeedDemoData(ctx, store, zap.NewNop(), []string{"north", "south"})
	require.NoError(t, err)

	assert.Len(t, result.ProviderIDs, 3)
	assert.Len(t, result.StaffIDs, 10)

	providers, err := store.GetProviders(ctx)
	require.NoError(t, err)
	require.Len(t, providers, 3)
	for _, p := range providers {
		assert.NotEmpty(t, p.RecurringSchedule)
		assert.Positive(t, p.Requirements.Total())
	}

	pool, err := store.GetStaff(ctx)
	require.NoError(t, err)
	require.Len(t, pool, 10)

	covered := map[model.Role]bool{}
	for _, s := range pool {
		assert.NotEmpty(t, s.Roles)
		for _, r := range s.Roles {
			covered[r] = true
		}
		for _, day := range model.WeekDays {
			assert.True(t, s.Availability.On(day).Available)
		}
	}
	for _, r := range model.Roles {
		assert.True(t, covered[r], "seed pool covers role %s", r)
	}
}

func TestSeedDemoData_RefusesPopulatedStore(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemoryStore()
	require.NoError(t, store.InsertProvider(ctx, model.Provider{ID: "p1"}))

	_, err := SeedDemoData(ctx, store, zap.NewNop(), []string{"north", "south"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing to seed")
}

func TestSeedDemoData_RequiresTwoLocations(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemoryStore()

	_, err := SeedDemoData(ctx, store, zap.NewNop(), []string{"north"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least two locations")
}
