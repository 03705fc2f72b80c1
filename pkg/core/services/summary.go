package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/oakfieldclinic/staff-scheduler/pkg/core/model"
	"github.com/oakfieldclinic/staff-scheduler/pkg/db"
)

// RoleCount pairs required and assigned headcounts for one role
type RoleCount struct {
	Role     model.Role
	Required int
	Assigned int
}

// Unfilled returns the open headcount for the role, never negative
func (r RoleCount) Unfilled() int {
	return max(r.Required-r.Assigned, 0)
}

// ProviderSummary is the staffing picture for one provider appearance
type ProviderSummary struct {
	ProviderID   string
	ProviderName string
	Location     string
	TimeSlot     model.TimeSlot

	// Roles holds one entry per role in canonical order
	Roles []RoleCount

	// AssignedStaff is the appearance's assignment list
	AssignedStaff []model.StaffAssignment
}

// FullyStaffed reports whether every role requirement is met
func (p ProviderSummary) FullyStaffed() bool {
	for _, rc := range p.Roles {
		if rc.Unfilled() > 0 {
			return false
		}
	}
	return true
}

// DaySummary aggregates staffing coverage for one date
type DaySummary struct {
	Date      string
	Providers []ProviderSummary

	// TotalRequired and TotalAssigned are headcounts summed across all
	// provider appearances and roles
	TotalRequired int
	TotalAssigned int
}

// DayStaffingSummary builds the per-role required-versus-assigned
// report for a date, the backing data for the staffing dashboard
func DayStaffingSummary(ctx context.Context, store db.Store, logger *zap.Logger, date string) (*DaySummary, error) {
	day, err := store.GetScheduleDay(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedule for %s: %w", date, err)
	}
	if day == nil {
		return nil, fmt.Errorf("no schedule exists for %s", date)
	}

	providers, err := store.GetProviders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch providers: %w", err)
	}

	summary := &DaySummary{Date: date, Providers: []ProviderSummary{}}

	for _, ps := range day.Providers {
		provider := findProvider(providers, ps.ProviderID)
		if provider == nil {
			logger.Warn("Scheduled provider missing from provider list - skipping",
				zap.String("date", date),
				zap.String("provider_id", ps.ProviderID))
			continue
		}

		entry := ProviderSummary{
			ProviderID:    ps.ProviderID,
			ProviderName:  provider.Name,
			Location:      ps.Location,
			TimeSlot:      ps.TimeSlot,
			AssignedStaff: ps.AssignedStaff,
		}

		for _, role := range model.Roles {
			rc := RoleCount{Role: role, Required: provider.Requirements.Get(role)}
			for _, a := range ps.AssignedStaff {
				if a.AssignedRole == role {
					rc.Assigned++
				}
			}
			entry.Roles = append(entry.Roles, rc)
			summary.TotalRequired += rc.Required
			summary.TotalAssigned += rc.Assigned
		}

		summary.Providers = append(summary.Providers, entry)
	}

	return summary, nil
}
