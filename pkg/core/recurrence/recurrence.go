package recurrence

import (
	"slices"
	"time"

	"github.com/oakfieldclinic/staff-scheduler/pkg/core/model"
)

const dateLayout = "2006-01-02"

// Matches reports whether a recurring schedule is active on the given date.
//
// The weekday gate runs before everything else: a pattern only ever
// activates on its configured weekday, even for monthly day-of-month
// rules. Incomplete configuration (e.g. biweekly with no start date)
// evaluates to false rather than erroring, so callers cannot tell
// "not scheduled today" apart from "misconfigured".
func Matches(date time.Time, schedule model.RecurringSchedule) bool {
	if model.WeekDayOf(date) != schedule.WeekDay {
		return false
	}

	p := schedule.Pattern

	if p != nil && p.StartDate != "" {
		if start, err := time.Parse(dateLayout, p.StartDate); err == nil && date.Before(start) {
			return false
		}
	}
	if p != nil && p.EndDate != "" {
		if end, err := time.Parse(dateLayout, p.EndDate); err == nil && date.After(end) {
			return false
		}
	}

	if slices.Contains(schedule.Exceptions, date.Format(dateLayout)) {
		return false
	}

	switch schedule.Frequency {
	case model.Weekly:
		return true

	case model.Biweekly:
		if p == nil || p.StartDate == "" {
			return false
		}
		start, err := time.Parse(dateLayout, p.StartDate)
		if err != nil {
			return false
		}
		return wholeWeeksBetween(start, date)%2 == 0

	case model.Monthly:
		if p == nil {
			return false
		}
		if p.MonthlyDay != 0 {
			return date.Day() == p.MonthlyDay
		}
		if p.MonthlyWeek != "" {
			return matchesMonthlyWeek(date, p.MonthlyWeek)
		}
		return false

	case model.Custom:
		if p == nil || p.WeekInterval == 0 || p.StartDate == "" {
			return false
		}
		start, err := time.Parse(dateLayout, p.StartDate)
		if err != nil {
			return false
		}
		return wholeWeeksBetween(start, date)%p.WeekInterval == 0

	default:
		return false
	}
}

// wholeWeeksBetween returns the number of complete 7-day periods from
// start to date. Dates before start never reach here because the
// start-date bound is checked first.
func wholeWeeksBetween(start, date time.Time) int {
	return int(date.Sub(start) / (7 * 24 * time.Hour))
}

// matchesMonthlyWeek tests the week-of-month rule. The week number is
// ceil(dayOfMonth/7); "last" is approximated as day-of-month > 21,
// which is not a true last-occurrence-of-weekday check but matches the
// established scheduling behavior.
func matchesMonthlyWeek(date time.Time, week model.MonthlyWeek) bool {
	weekNum := (date.Day() + 6) / 7

	switch week {
	case model.FirstWeek:
		return weekNum == 1
	case model.SecondWeek:
		return weekNum == 2
	case model.ThirdWeek:
		return weekNum == 3
	case model.FourthWeek:
		return weekNum == 4
	case model.LastWeek:
		return date.Day() > 21
	}
	return false
}
