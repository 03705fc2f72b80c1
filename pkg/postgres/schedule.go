package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/oakfieldclinic/staff-scheduler/pkg/core/model"
)

// GetScheduleDay retrieves the schedule for a date, or nil if none is stored
func (d *DB) GetScheduleDay(ctx context.Context, date string) (*model.ScheduleDay, error) {
	var stored time.Time
	var providers []byte
	err := d.pool.QueryRow(ctx, `
		SELECT date, providers FROM schedule_day WHERE date = $1
	`, date).Scan(&stored, &providers)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule day: %w", err)
	}

	day := model.ScheduleDay{Date: stored.Format("2006-01-02")}
	if err := json.Unmarshal(providers, &day.Providers); err != nil {
		return nil, fmt.Errorf("failed to decode providers for %s: %w", day.Date, err)
	}
	return &day, nil
}

// GetScheduleRange retrieves all stored days with from <= date <= to, ordered by date
func (d *DB) GetScheduleRange(ctx context.Context, from, to string) ([]model.ScheduleDay, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT date, providers FROM schedule_day
		WHERE date >= $1 AND date <= $2
		ORDER BY date
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query schedule range: %w", err)
	}
	defer rows.Close()

	var days []model.ScheduleDay
	for rows.Next() {
		var stored time.Time
		var providers []byte
		if err := rows.Scan(&stored, &providers); err != nil {
			return nil, fmt.Errorf("failed to scan schedule day: %w", err)
		}
		day := model.ScheduleDay{Date: stored.Format("2006-01-02")}
		if err := json.Unmarshal(providers, &day.Providers); err != nil {
			return nil, fmt.Errorf("failed to decode providers for %s: %w", day.Date, err)
		}
		days = append(days, day)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating schedule days: %w", err)
	}

	return days, nil
}

// UpsertScheduleDay stores a day, replacing any existing schedule for the date
func (d *DB) UpsertScheduleDay(ctx context.Context, day model.ScheduleDay) error {
	providers, err := json.Marshal(day.Providers)
	if err != nil {
		return fmt.Errorf("failed to encode providers: %w", err)
	}

	_, err = d.pool.Exec(ctx, `
		INSERT INTO schedule_day (date, providers)
		VALUES ($1, $2)
		ON CONFLICT (date) DO UPDATE SET providers = EXCLUDED.providers
	`, day.Date, providers)
	if err != nil {
		return fmt.Errorf("failed to upsert schedule day: %w", err)
	}
	return nil
}

// DeleteScheduleDay removes the stored schedule for a date
func (d *DB) DeleteScheduleDay(ctx context.Context, date string) error {
	_, err := d.pool.Exec(ctx, `DELETE FROM schedule_day WHERE date = $1`, date)
	if err != nil {
		return fmt.Errorf("failed to delete schedule day: %w", err)
	}
	return nil
}
