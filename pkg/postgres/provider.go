package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/oakfieldclinic/staff-scheduler/pkg/core/model"
)

// GetProviders retrieves all providers ordered by name
func (d *DB) GetProviders(ctx context.Context) ([]model.Provider, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, requirements, recurring_schedule, staff_preferences,
		       default_location, default_time_slot
		FROM provider
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query providers: %w", err)
	}
	defer rows.Close()

	var providers []model.Provider
	for rows.Next() {
		var p model.Provider
		var requirements, recurring, preferences []byte
		var defaultSlot []byte
		if err := rows.Scan(&p.ID, &p.Name, &requirements, &recurring, &preferences,
			&p.DefaultLocation, &defaultSlot); err != nil {
			return nil, fmt.Errorf("failed to scan provider: %w", err)
		}
		if err := json.Unmarshal(requirements, &p.Requirements); err != nil {
			return nil, fmt.Errorf("failed to decode requirements for provider %s: %w", p.ID, err)
		}
		if err := json.Unmarshal(recurring, &p.RecurringSchedule); err != nil {
			return nil, fmt.Errorf("failed to decode recurring schedule for provider %s: %w", p.ID, err)
		}
		if err := json.Unmarshal(preferences, &p.StaffPreferences); err != nil {
			return nil, fmt.Errorf("failed to decode staff preferences for provider %s: %w", p.ID, err)
		}
		if defaultSlot != nil {
			if err := json.Unmarshal(defaultSlot, &p.DefaultTimeSlot); err != nil {
				return nil, fmt.Errorf("failed to decode default time slot for provider %s: %w", p.ID, err)
			}
		}
		providers = append(providers, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating providers: %w", err)
	}

	return providers, nil
}

// InsertProvider inserts a new provider record
func (d *DB) InsertProvider(ctx context.Context, provider model.Provider) error {
	requirements, err := json.Marshal(provider.Requirements)
	if err != nil {
		return fmt.Errorf("failed to encode requirements: %w", err)
	}
	recurring, err := json.Marshal(provider.RecurringSchedule)
	if err != nil {
		return fmt.Errorf("failed to encode recurring schedule: %w", err)
	}
	preferences, err := json.Marshal(provider.StaffPreferences)
	if err != nil {
		return fmt.Errorf("failed to encode staff preferences: %w", err)
	}
	var defaultSlot []byte
	if provider.DefaultTimeSlot != nil {
		defaultSlot, err = json.Marshal(provider.DefaultTimeSlot)
		if err != nil {
			return fmt.Errorf("failed to encode default time slot: %w", err)
		}
	}

	_, err = d.pool.Exec(ctx, `
		INSERT INTO provider (id, name, requirements, recurring_schedule,
		                      staff_preferences, default_location, default_time_slot)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, provider.ID, provider.Name, requirements, recurring, preferences,
		provider.DefaultLocation, defaultSlot)
	if err != nil {
		return fmt.Errorf("failed to insert provider: %w", err)
	}
	return nil
}
