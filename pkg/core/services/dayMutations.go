package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/oakfieldclinic/staff-scheduler/pkg/core/model"
	"github.com/oakfieldclinic/staff-scheduler/pkg/db"
)

// AddProviderToDay places a provider on a date at the given location.
// If the provider already appears on the day, its location is updated;
// otherwise a new appearance is added, taking its time slot from the
// provider's recurring entry matching the weekday and location, falling
// back to the provider default and then to defaultSlot. Days that were
// never materialized are created on the spot.
func AddProviderToDay(
	ctx context.Context,
	store db.Store,
	logger *zap.Logger,
	date string,
	providerID string,
	location string,
	defaultSlot model.TimeSlot,
) error {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", date, err)
	}

	providers, err := store.GetProviders(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch providers: %w", err)
	}
	provider := findProvider(providers, providerID)
	if provider == nil {
		return fmt.Errorf("provider %s not found", providerID)
	}

	day, err := store.GetScheduleDay(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to fetch schedule for %s: %w", date, err)
	}
	if day == nil {
		day = &model.ScheduleDay{Date: date, Providers: []model.ProviderSchedule{}}
		logger.Debug("Creating schedule day on demand", zap.String("date", date))
	}

	updated := addProvider(*day, *provider, location, model.WeekDayOf(parsed), defaultSlot)

	if err := store.UpsertScheduleDay(ctx, updated); err != nil {
		return fmt.Errorf("failed to store schedule for %s: %w", date, err)
	}

	logger.Info("Provider added to day",
		zap.String("date", date),
		zap.String("provider_id", providerID),
		zap.String("location", location))
	return nil
}

// RemoveProviderFromDay removes every appearance of a provider from a date
func RemoveProviderFromDay(ctx context.Context, store db.Store, logger *zap.Logger, date, providerID string) error {
	day, err := store.GetScheduleDay(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to fetch schedule for %s: %w", date, err)
	}
	if day == nil {
		return fmt.Errorf("no schedule exists for %s", date)
	}

	updated := removeProvider(*day, providerID)

	if err := store.UpsertScheduleDay(ctx, updated); err != nil {
		return fmt.Errorf("failed to store schedule for %s: %w", date, err)
	}

	logger.Info("Provider removed from day",
		zap.String("date", date),
		zap.String("provider_id", providerID))
	return nil
}

// AssignStaffToProvider assigns a staff member to a role under a
// provider on a date. If the staff member is already assigned to that
// provider, the existing assignment's role is updated instead of adding
// a duplicate.
func AssignStaffToProvider(
	ctx context.Context,
	store db.Store,
	logger *zap.Logger,
	date string,
	providerID string,
	staffID string,
	role model.Role,
) error {
	if !role.IsValid() {
		return fmt.Errorf("invalid role %q", role)
	}

	members, err := store.GetStaff(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch staff: %w", err)
	}
	if findStaff(members, staffID) == nil {
		return fmt.Errorf("staff %s not found", staffID)
	}

	day, err := store.GetScheduleDay(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to fetch schedule for %s: %w", date, err)
	}
	if day == nil {
		return fmt.Errorf("no schedule exists for %s", date)
	}

	updated := assignStaff(*day, providerID, staffID, role)

	if err := store.UpsertScheduleDay(ctx, updated); err != nil {
		return fmt.Errorf("failed to store schedule for %s: %w", date, err)
	}

	logger.Info("Staff assigned",
		zap.String("date", date),
		zap.String("provider_id", providerID),
		zap.String("staff_id", staffID),
		zap.String("role", string(role)))
	return nil
}

// RemoveStaffFromProvider removes a staff member's assignment under a provider on a date
func RemoveStaffFromProvider(ctx context.Context, store db.Store, logger *zap.Logger, date, providerID, staffID string) error {
	day, err := store.GetScheduleDay(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to fetch schedule for %s: %w", date, err)
	}
	if day == nil {
		return fmt.Errorf("no schedule exists for %s", date)
	}

	updated := removeStaff(*day, providerID, staffID)

	if err := store.UpsertScheduleDay(ctx, updated); err != nil {
		return fmt.Errorf("failed to store schedule for %s: %w", date, err)
	}

	logger.Info("Staff removed",
		zap.String("date", date),
		zap.String("provider_id", providerID),
		zap.String("staff_id", staffID))
	return nil
}

// The helpers below return new day snapshots and never mutate their input.

func addProvider(day model.ScheduleDay, provider model.Provider, location string, weekDay model.WeekDay, defaultSlot model.TimeSlot) model.ScheduleDay {
	out := cloneDay(day)

	for i, ps := range out.Providers {
		if ps.ProviderID == provider.ID {
			out.Providers[i].Location = location
			return out
		}
	}

	slot := defaultSlot
	if provider.DefaultTimeSlot != nil {
		slot = *provider.DefaultTimeSlot
	}
	for _, entry := range provider.RecurringSchedule {
		if entry.WeekDay == weekDay && entry.Location == location {
			slot = entry.TimeSlot
			break
		}
	}

	out.Providers = append(out.Providers, model.ProviderSchedule{
		ProviderID:    provider.ID,
		Location:      location,
		TimeSlot:      slot,
		AssignedStaff: []model.StaffAssignment{},
	})
	return out
}

func removeProvider(day model.ScheduleDay, providerID string) model.ScheduleDay {
	out := model.ScheduleDay{Date: day.Date, Providers: []model.ProviderSchedule{}}
	for _, ps := range day.Providers {
		if ps.ProviderID != providerID {
			out.Providers = append(out.Providers, cloneProviderSchedule(ps))
		}
	}
	return out
}

func assignStaff(day model.ScheduleDay, providerID, staffID string, role model.Role) model.ScheduleDay {
	out := cloneDay(day)

	for i, ps := range out.Providers {
		if ps.ProviderID != providerID {
			continue
		}

		replaced := false
		for j, a := range ps.AssignedStaff {
			if a.StaffID == staffID {
				out.Providers[i].AssignedStaff[j].AssignedRole = role
				replaced = true
				break
			}
		}
		if !replaced {
			out.Providers[i].AssignedStaff = append(out.Providers[i].AssignedStaff, model.StaffAssignment{
				StaffID:      staffID,
				AssignedRole: role,
			})
		}
	}
	return out
}

func removeStaff(day model.ScheduleDay, providerID, staffID string) model.ScheduleDay {
	out := cloneDay(day)

	for i, ps := range out.Providers {
		if ps.ProviderID != providerID {
			continue
		}
		kept := []model.StaffAssignment{}
		for _, a := range ps.AssignedStaff {
			if a.StaffID != staffID {
				kept = append(kept, a)
			}
		}
		out.Providers[i].AssignedStaff = kept
	}
	return out
}

func cloneDay(day model.ScheduleDay) model.ScheduleDay {
	out := model.ScheduleDay{Date: day.Date, Providers: make([]model.ProviderSchedule, 0, len(day.Providers))}
	for _, ps := range day.Providers {
		out.Providers = append(out.Providers, cloneProviderSchedule(ps))
	}
	return out
}

func cloneProviderSchedule(ps model.ProviderSchedule) model.ProviderSchedule {
	assigned := make([]model.StaffAssignment, len(ps.AssignedStaff))
	copy(assigned, ps.AssignedStaff)
	ps.AssignedStaff = assigned
	return ps
}
