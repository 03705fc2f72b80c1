package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/oakfieldclinic/staff-scheduler/pkg/core/model"
)

// GetStaff retrieves all staff members ordered by name
func (d *DB) GetStaff(ctx context.Context) ([]model.Staff, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, name, roles, preferred_location, availability,
		       preferred_providers, min_hours_per_week, max_hours_per_week
		FROM staff
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff: %w", err)
	}
	defer rows.Close()

	var members []model.Staff
	for rows.Next() {
		var s model.Staff
		var roles, availability, preferences []byte
		if err := rows.Scan(&s.ID, &s.Name, &roles, &s.PreferredLocation,
			&availability, &preferences, &s.MinHoursPerWeek, &s.MaxHoursPerWeek); err != nil {
			return nil, fmt.Errorf("failed to scan staff: %w", err)
		}
		if err := json.Unmarshal(roles, &s.Roles); err != nil {
			return nil, fmt.Errorf("failed to decode roles for staff %s: %w", s.ID, err)
		}
		if err := json.Unmarshal(availability, &s.Availability); err != nil {
			return nil, fmt.Errorf("failed to decode availability for staff %s: %w", s.ID, err)
		}
		if err := json.Unmarshal(preferences, &s.PreferredProviders); err != nil {
			return nil, fmt.Errorf("failed to decode preferred providers for staff %s: %w", s.ID, err)
		}
		members = append(members, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staff: %w", err)
	}

	return members, nil
}

// InsertStaff inserts a new staff record
func (d *DB) InsertStaff(ctx context.Context, staff model.Staff) error {
	roles, err := json.Marshal(staff.Roles)
	if err != nil {
		return fmt.Errorf("failed to encode roles: %w", err)
	}
	availability, err := json.Marshal(staff.Availability)
	if err != nil {
		return fmt.Errorf("failed to encode availability: %w", err)
	}
	preferences, err := json.Marshal(staff.PreferredProviders)
	if err != nil {
		return fmt.Errorf("failed to encode preferred providers: %w", err)
	}

	_, err = d.pool.Exec(ctx, `
		INSERT INTO staff (id, name, roles, preferred_location, availability,
		                   preferred_providers, min_hours_per_week, max_hours_per_week)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, staff.ID, staff.Name, roles, staff.PreferredLocation, availability,
		preferences, staff.MinHoursPerWeek, staff.MaxHoursPerWeek)
	if err != nil {
		return fmt.Errorf("failed to insert staff: %w", err)
	}
	return nil
}
