package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/oakfieldclinic/staff-scheduler/pkg/core/assigner"
	"github.com/oakfieldclinic/staff-scheduler/pkg/core/model"
	"github.com/oakfieldclinic/staff-scheduler/pkg/db"
)

// AutoAssignResult reports the assignments produced for one provider on one day
type AutoAssignResult struct {
	Date       string
	ProviderID string

	// Assignments holds the new assignment list per ProviderSchedule
	// entry, in day order. Split-location days yield one entry per
	// appearance.
	Assignments [][]model.StaffAssignment

	// Unfilled is the total headcount still missing after assignment
	Unfilled int
}

// AutoAssignProvider runs the assignment heuristic for every appearance
// of the provider on the given date and replaces each appearance's
// assignment list with the result. The previous assignments serve as
// the prior-batch context for scoring, matching the replace-all calling
// convention of the scheduling screen.
func AutoAssignProvider(
	ctx context.Context,
	store db.Store,
	logger *zap.Logger,
	date string,
	providerID string,
) (*AutoAssignResult, error) {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	logger.Debug("Auto-assigning staff",
		zap.String("date", date),
		zap.String("provider_id", providerID))

	day, err := store.GetScheduleDay(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule for %s: %w", date, err)
	}
	if day == nil {
		return nil, fmt.Errorf("no schedule exists for %s - materialize it first", date)
	}

	providers, err := store.GetProviders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch providers: %w", err)
	}
	provider := findProvider(providers, providerID)
	if provider == nil {
		return nil, fmt.Errorf("provider %s not found", providerID)
	}

	pool, err := store.GetStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff: %w", err)
	}

	weekDay := model.WeekDayOf(parsed)
	result := &AutoAssignResult{
		Date:        date,
		ProviderID:  providerID,
		Assignments: [][]model.StaffAssignment{},
	}

	found := false
	for i, ps := range day.Providers {
		if ps.ProviderID != providerID {
			continue
		}
		found = true

		assignments := assigner.AutoAssign(*provider, pool, weekDay, ps.TimeSlot, ps.AssignedStaff)
		day.Providers[i].AssignedStaff = assignments
		result.Assignments = append(result.Assignments, assignments)
		result.Unfilled += provider.Requirements.Total() - len(assignments)

		logger.Debug("Appearance assigned",
			zap.String("location", ps.Location),
			zap.Int("assigned", len(assignments)),
			zap.Int("required", provider.Requirements.Total()))
	}

	if !found {
		return nil, fmt.Errorf("provider %s is not scheduled on %s", providerID, date)
	}

	if err := store.UpsertScheduleDay(ctx, *day); err != nil {
		return nil, fmt.Errorf("failed to store schedule for %s: %w", date, err)
	}

	logger.Info("Auto-assignment complete",
		zap.String("date", date),
		zap.String("provider_id", providerID),
		zap.Int("unfilled", result.Unfilled))

	return result, nil
}

func findProvider(providers []model.Provider, id string) *model.Provider {
	for i := range providers {
		if providers[i].ID == id {
			return &providers[i]
		}
	}
	return nil
}

func findStaff(members []model.Staff, id string) *model.Staff {
	for i := range members {
		if members[i].ID == id {
			return &members[i]
		}
	}
	return nil
}
