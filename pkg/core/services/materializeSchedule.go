package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/oakfieldclinic/staff-scheduler/internal/config"
	"github.com/oakfieldclinic/staff-scheduler/pkg/core/recurrence"
	"github.com/oakfieldclinic/staff-scheduler/pkg/db"
)

// MaterializeResult summarizes a schedule materialization run
type MaterializeResult struct {
	// Dates covered by the run, in order
	Dates []string

	// CreatedDates are dates for which a new ScheduleDay was stored
	CreatedDates []string

	// SkippedDates already had a stored day and were left untouched,
	// so manual edits survive re-materialization
	SkippedDates []string

	// ClosedDates were excluded by the configured closure rules
	ClosedDates []string
}

// MaterializeSchedule expands every provider's recurring schedule over
// a date range and stores the resulting days. Dates produced by the
// clinic closure rules are skipped entirely; dates that already have a
// stored schedule are left untouched.
func MaterializeSchedule(
	ctx context.Context,
	store db.Store,
	cfg *config.Config,
	logger *zap.Logger,
	start time.Time,
	days int,
) (*MaterializeResult, error) {
	if days <= 0 {
		return nil, fmt.Errorf("day count must be positive, got %d", days)
	}

	logger.Debug("Materializing schedule",
		zap.String("start", start.Format("2006-01-02")),
		zap.Int("days", days))

	providers, err := store.GetProviders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch providers: %w", err)
	}
	logger.Debug("Fetched providers", zap.Int("count", len(providers)))

	end := start.AddDate(0, 0, days-1)
	closed, err := cfg.ClosureDates(start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to expand closure rules: %w", err)
	}

	result := &MaterializeResult{
		Dates:        recurrence.DateRange(start, days),
		CreatedDates: []string{},
		SkippedDates: []string{},
		ClosedDates:  []string{},
	}

	// Expand recurring patterns only for the open dates
	var openDates []string
	for _, date := range result.Dates {
		if closed[date] {
			result.ClosedDates = append(result.ClosedDates, date)
			continue
		}
		openDates = append(openDates, date)
	}

	for _, day := range recurrence.Materialize(openDates, providers) {
		existing, err := store.GetScheduleDay(ctx, day.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to check schedule for %s: %w", day.Date, err)
		}
		if existing != nil {
			result.SkippedDates = append(result.SkippedDates, day.Date)
			continue
		}

		if err := store.UpsertScheduleDay(ctx, day); err != nil {
			return nil, fmt.Errorf("failed to store schedule for %s: %w", day.Date, err)
		}
		result.CreatedDates = append(result.CreatedDates, day.Date)
	}

	logger.Info("Schedule materialized",
		zap.Int("created", len(result.CreatedDates)),
		zap.Int("skipped", len(result.SkippedDates)),
		zap.Int("closed", len(result.ClosedDates)))

	return result, nil
}
