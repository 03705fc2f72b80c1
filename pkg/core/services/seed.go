package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/oakfieldclinic/staff-scheduler/pkg/core/model"
	"github.com/oakfieldclinic/staff-scheduler/pkg/db"
)

// SeedResult reports what the seed run created
type SeedResult struct {
	ProviderIDs []string
	StaffIDs    []string
}

// SeedDemoData inserts a small demo clinic: three providers with mixed
// recurrence patterns across two locations and a staff pool covering
// all four roles, available all week. Intended for trying out the CLI
// against an empty store.
func SeedDemoData(ctx context.Context, store db.Store, logger *zap.Logger, locations []string) (*SeedResult, error) {
	if len(locations) < 2 {
		return nil, fmt.Errorf("seeding needs at least two locations, got %d", len(locations))
	}

	existing, err := store.GetProviders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing providers: %w", err)
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("store already holds %d providers - refusing to seed", len(existing))
	}

	clinicHours := model.TimeSlot{StartTime: "09:00", EndTime: "17:00"}
	earlyHours := model.TimeSlot{StartTime: "08:00", EndTime: "16:00"}
	today := time.Now().Format("2006-01-02")

	providers := []model.Provider{
		{
			ID:   uuid.New().String(),
			Name: "Dr. Okafor",
			Requirements: model.Requirements{
				Technician: 3,
				Tester:     2,
				Scribe:     1,
				FrontDesk:  3,
			},
			RecurringSchedule: []model.RecurringSchedule{
				{WeekDay: model.Monday, Location: locations[0], TimeSlot: clinicHours, Frequency: model.Weekly},
				{WeekDay: model.Wednesday, Location: locations[1], TimeSlot: clinicHours, Frequency: model.Biweekly,
					Pattern: &model.CustomPattern{StartDate: today}},
				{WeekDay: model.Friday, Location: locations[0], TimeSlot: clinicHours, Frequency: model.Monthly,
					Pattern: &model.CustomPattern{MonthlyWeek: model.ThirdWeek}},
			},
		},
		{
			ID:   uuid.New().String(),
			Name: "Dr. Banerjee",
			Requirements: model.Requirements{
				Technician: 1,
				Tester:     1,
				FrontDesk:  1,
			},
			RecurringSchedule: []model.RecurringSchedule{
				{WeekDay: model.Monday, Location: locations[0], TimeSlot: earlyHours, Frequency: model.Weekly},
				{WeekDay: model.Tuesday, Location: locations[1], TimeSlot: earlyHours, Frequency: model.Weekly},
			},
		},
		{
			ID:   uuid.New().String(),
			Name: "Dr. Calloway",
			Requirements: model.Requirements{
				Technician: 2,
				Tester:     1,
				Scribe:     1,
				FrontDesk:  2,
			},
			RecurringSchedule: []model.RecurringSchedule{
				{WeekDay: model.Monday, Location: locations[1], TimeSlot: clinicHours, Frequency: model.Weekly},
				{WeekDay: model.Wednesday, Location: locations[1], TimeSlot: clinicHours, Frequency: model.Weekly},
				{WeekDay: model.Friday, Location: locations[0], TimeSlot: clinicHours, Frequency: model.Weekly},
			},
		},
	}

	staffMembers := []struct {
		name  string
		roles []model.Role
	}{
		{"Alex Kim", []model.Role{model.RoleTechnician, model.RoleTester}},
		{"Jamie Rivera", []model.Role{model.RoleTechnician}},
		{"Sam Taylor", []model.Role{model.RoleTester, model.RoleScribe}},
		{"Jordan Lee", []model.Role{model.RoleFrontDesk}},
		{"Casey Morgan", []model.Role{model.RoleFrontDesk, model.RoleTechnician}},
		{"Taylor Johnson", []model.Role{model.RoleTechnician, model.RoleTester}},
		{"Riley Adams", []model.Role{model.RoleScribe}},
		{"Quinn White", []model.Role{model.RoleFrontDesk}},
		{"Morgan Chen", []model.Role{model.RoleTechnician}},
		{"Parker Williams", []model.Role{model.RoleTester}},
	}

	result := &SeedResult{}

	for _, p := range providers {
		if err := store.InsertProvider(ctx, p); err != nil {
			return nil, fmt.Errorf("failed to insert provider %s: %w", p.Name, err)
		}
		result.ProviderIDs = append(result.ProviderIDs, p.ID)
	}

	var allWeek model.WeekAvailability
	for _, day := range model.WeekDays {
		allWeek.Set(day, model.DayAvailability{Available: true})
	}

	for _, sm := range staffMembers {
		member := model.Staff{
			ID:           uuid.New().String(),
			Name:         sm.name,
			Roles:        sm.roles,
			Availability: allWeek,
		}
		if err := store.InsertStaff(ctx, member); err != nil {
			return nil, fmt.Errorf("failed to insert staff %s: %w", sm.name, err)
		}
		result.StaffIDs = append(result.StaffIDs, member.ID)
	}

	logger.Info("Demo data seeded",
		zap.Int("providers", len(result.ProviderIDs)),
		zap.Int("staff", len(result.StaffIDs)))

	return result, nil
}
