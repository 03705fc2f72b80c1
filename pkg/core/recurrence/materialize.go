package recurrence

import (
	"time"

	"github.com/oakfieldclinic/staff-scheduler/pkg/core/model"
)

// DateRange returns count consecutive dates starting at start,
// formatted "2006-01-02".
func DateRange(start time.Time, count int) []string {
	dates := make([]string, 0, count)
	for i := 0; i < count; i++ {
		dates = append(dates, start.AddDate(0, 0, i).Format(dateLayout))
	}
	return dates
}

// Materialize expands the providers' recurring schedules over the given
// dates into one ScheduleDay per date. Every matching recurring entry
// yields its own ProviderSchedule with an empty assignment list, so a
// provider splitting the day between locations appears once per entry.
// Dates that fail to parse produce an empty day.
func Materialize(dates []string, providers []model.Provider) []model.ScheduleDay {
	days := make([]model.ScheduleDay, 0, len(dates))

	for _, date := range dates {
		day := model.ScheduleDay{
			Date:      date,
			Providers: []model.ProviderSchedule{},
		}

		parsed, err := time.Parse(dateLayout, date)
		if err != nil {
			days = append(days, day)
			continue
		}

		for _, provider := range providers {
			for _, entry := range provider.RecurringSchedule {
				if !Matches(parsed, entry) {
					continue
				}
				day.Providers = append(day.Providers, model.ProviderSchedule{
					ProviderID:    provider.ID,
					Location:      entry.Location,
					TimeSlot:      entry.TimeSlot,
					AssignedStaff: []model.StaffAssignment{},
				})
			}
		}

		days = append(days, day)
	}

	return days
}
