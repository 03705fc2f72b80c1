package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakfieldclinic/staff-scheduler/pkg/core/model"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}

func TestMatches_WeeklyMatchesEveryConfiguredWeekday(t *testing.T) {
	schedule := model.RecurringSchedule{
		WeekDay:   model.Monday,
		Frequency: model.Weekly,
	}

	// 2025-01-06 is a Monday
	assert.True(t, Matches(date(t, "2025-01-06"), schedule))
	assert.True(t, Matches(date(t, "2025-01-13"), schedule))
	assert.True(t, Matches(date(t, "2025-06-09"), schedule))

	// Tuesday never matches
	assert.False(t, Matches(date(t, "2025-01-07"), schedule))
}

func TestMatches_BiweeklyAlternates(t *testing.T) {
	schedule := model.RecurringSchedule{
		WeekDay:   model.Monday,
		Frequency: model.Biweekly,
		Pattern:   &model.CustomPattern{StartDate: "2025-01-06"},
	}

	assert.True(t, Matches(date(t, "2025-01-06"), schedule))
	assert.False(t, Matches(date(t, "2025-01-13"), schedule))
	assert.True(t, Matches(date(t, "2025-01-20"), schedule))
	assert.False(t, Matches(date(t, "2025-01-27"), schedule))
}

func TestMatches_BiweeklyWithoutStartDateNeverMatches(t *testing.T) {
	schedule := model.RecurringSchedule{
		WeekDay:   model.Monday,
		Frequency: model.Biweekly,
	}

	assert.False(t, Matches(date(t, "2025-01-06"), schedule))

	schedule.Pattern = &model.CustomPattern{}
	assert.False(t, Matches(date(t, "2025-01-06"), schedule))
}

func TestMatches_StartAndEndDateBounds(t *testing.T) {
	schedule := model.RecurringSchedule{
		WeekDay:   model.Monday,
		Frequency: model.Weekly,
		Pattern: &model.CustomPattern{
			StartDate: "2025-01-13",
			EndDate:   "2025-01-20",
		},
	}

	assert.False(t, Matches(date(t, "2025-01-06"), schedule), "before start date")
	assert.True(t, Matches(date(t, "2025-01-13"), schedule), "on start date")
	assert.True(t, Matches(date(t, "2025-01-20"), schedule), "on end date")
	assert.False(t, Matches(date(t, "2025-01-27"), schedule), "after end date")
}

func TestMatches_ExceptionDatesAlwaysLose(t *testing.T) {
	schedule := model.RecurringSchedule{
		WeekDay:    model.Monday,
		Frequency:  model.Weekly,
		Exceptions: []string{"2025-01-13"},
	}

	assert.True(t, Matches(date(t, "2025-01-06"), schedule))
	assert.False(t, Matches(date(t, "2025-01-13"), schedule))
	assert.True(t, Matches(date(t, "2025-01-20"), schedule))
}

func TestMatches_MonthlyByDayOfMonth(t *testing.T) {
	// 2025-01-15 is a Wednesday
	schedule := model.RecurringSchedule{
		WeekDay:   model.Wednesday,
		Frequency: model.Monthly,
		Pattern:   &model.CustomPattern{MonthlyDay: 15},
	}

	assert.True(t, Matches(date(t, "2025-01-15"), schedule))
	assert.False(t, Matches(date(t, "2025-01-08"), schedule), "Wednesday but not the 15th")
}

func TestMatches_MonthlyDayStillRequiresWeekday(t *testing.T) {
	// The weekday gate runs before the day-of-month check: the 15th on
	// the wrong weekday does not activate the pattern.
	schedule := model.RecurringSchedule{
		WeekDay:   model.Wednesday,
		Frequency: model.Monthly,
		Pattern:   &model.CustomPattern{MonthlyDay: 15},
	}

	// 2025-09-15 is a Monday
	assert.False(t, Matches(date(t, "2025-09-15"), schedule))
}

func TestMatches_MonthlyByWeekOfMonth(t *testing.T) {
	schedule := model.RecurringSchedule{
		WeekDay:   model.Friday,
		Frequency: model.Monthly,
		Pattern:   &model.CustomPattern{MonthlyWeek: model.ThirdWeek},
	}

	// January 2025 Fridays: 3, 10, 17, 24, 31
	assert.False(t, Matches(date(t, "2025-01-03"), schedule))
	assert.False(t, Matches(date(t, "2025-01-10"), schedule))
	assert.True(t, Matches(date(t, "2025-01-17"), schedule))
	assert.False(t, Matches(date(t, "2025-01-24"), schedule))
}

func TestMatches_MonthlyLastWeekApproximation(t *testing.T) {
	// "last" means day-of-month > 21, so in a month with five Fridays
	// both the fourth and fifth qualify.
	schedule := model.RecurringSchedule{
		WeekDay:   model.Friday,
		Frequency: model.Monthly,
		Pattern:   &model.CustomPattern{MonthlyWeek: model.LastWeek},
	}

	assert.False(t, Matches(date(t, "2025-01-17"), schedule))
	assert.True(t, Matches(date(t, "2025-01-24"), schedule))
	assert.True(t, Matches(date(t, "2025-01-31"), schedule))
}

func TestMatches_MonthlyWithoutPatternNeverMatches(t *testing.T) {
	schedule := model.RecurringSchedule{
		WeekDay:   model.Friday,
		Frequency: model.Monthly,
	}
	assert.False(t, Matches(date(t, "2025-01-17"), schedule))

	schedule.Pattern = &model.CustomPattern{}
	assert.False(t, Matches(date(t, "2025-01-17"), schedule))
}

func TestMatches_CustomWeekInterval(t *testing.T) {
	schedule := model.RecurringSchedule{
		WeekDay:   model.Monday,
		Frequency: model.Custom,
		Pattern: &model.CustomPattern{
			WeekInterval: 3,
			StartDate:    "2025-01-06",
		},
	}

	assert.True(t, Matches(date(t, "2025-01-06"), schedule))
	assert.False(t, Matches(date(t, "2025-01-13"), schedule))
	assert.False(t, Matches(date(t, "2025-01-20"), schedule))
	assert.True(t, Matches(date(t, "2025-01-27"), schedule))
}

func TestMatches_CustomMissingFieldsNeverMatches(t *testing.T) {
	schedule := model.RecurringSchedule{
		WeekDay:   model.Monday,
		Frequency: model.Custom,
		Pattern:   &model.CustomPattern{WeekInterval: 3},
	}
	assert.False(t, Matches(date(t, "2025-01-06"), schedule), "missing start date")

	schedule.Pattern = &model.CustomPattern{StartDate: "2025-01-06"}
	assert.False(t, Matches(date(t, "2025-01-06"), schedule), "missing week interval")
}

func TestMatches_UnknownFrequencyNeverMatches(t *testing.T) {
	schedule := model.RecurringSchedule{
		WeekDay:   model.Monday,
		Frequency: model.Frequency("daily"),
	}
	assert.False(t, Matches(date(t, "2025-01-06"), schedule))
}
