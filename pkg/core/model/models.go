package model

import (
	"strconv"
	"strings"
	"time"
)

// Role is a support staff role within the clinic
type Role string

const (
	RoleTechnician Role = "technician"
	RoleTester     Role = "tester"
	RoleScribe     Role = "scribe"
	RoleFrontDesk  Role = "frontDesk"
)

// Roles is the closed set of staff roles in canonical order.
// The allocator iterates this slice so allocation results are reproducible.
var Roles = []Role{RoleTechnician, RoleTester, RoleScribe, RoleFrontDesk}

func (r Role) IsValid() bool {
	switch r {
	case RoleTechnician, RoleTester, RoleScribe, RoleFrontDesk:
		return true
	}
	return false
}

// WeekDay is a lowercase weekday name ("monday" through "sunday")
type WeekDay string

const (
	Monday    WeekDay = "monday"
	Tuesday   WeekDay = "tuesday"
	Wednesday WeekDay = "wednesday"
	Thursday  WeekDay = "thursday"
	Friday    WeekDay = "friday"
	Saturday  WeekDay = "saturday"
	Sunday    WeekDay = "sunday"
)

// WeekDays lists the week days in order, Monday first
var WeekDays = []WeekDay{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// WeekDayOf returns the WeekDay for a calendar date
func WeekDayOf(date time.Time) WeekDay {
	// time.Weekday has Sunday = 0
	return WeekDays[(int(date.Weekday())+6)%7]
}

// Index returns the position of the day in WeekDays (Monday = 0).
// Returns -1 for an unrecognized value.
func (d WeekDay) Index() int {
	for i, wd := range WeekDays {
		if wd == d {
			return i
		}
	}
	return -1
}

func (d WeekDay) IsValid() bool {
	return d.Index() >= 0
}

// TimeSlot is a wall-clock working window with no timezone.
// Times use the "HH:mm" 24-hour format.
type TimeSlot struct {
	StartTime string
	EndTime   string
}

// Contains reports whether the slot fully covers the other slot:
// it must start at or before other's start and end at or after other's end.
func (s TimeSlot) Contains(other TimeSlot) bool {
	return clockValue(s.StartTime) <= clockValue(other.StartTime) &&
		clockValue(s.EndTime) >= clockValue(other.EndTime)
}

// clockValue converts "HH:mm" to a comparable integer ("09:30" -> 930).
// Malformed values compare as 0.
func clockValue(t string) int {
	v, err := strconv.Atoi(strings.ReplaceAll(t, ":", ""))
	if err != nil {
		return 0
	}
	return v
}

// Frequency describes how often a recurring schedule repeats
type Frequency string

const (
	Weekly   Frequency = "weekly"
	Biweekly Frequency = "biweekly"
	Monthly  Frequency = "monthly"
	Custom   Frequency = "custom"
)

// MonthlyWeek names which week of the month a monthly pattern targets
type MonthlyWeek string

const (
	FirstWeek  MonthlyWeek = "first"
	SecondWeek MonthlyWeek = "second"
	ThirdWeek  MonthlyWeek = "third"
	FourthWeek MonthlyWeek = "fourth"
	LastWeek   MonthlyWeek = "last"
)

// CustomPattern carries the optional parameters of a recurring schedule.
// Zero values mean "not set".
type CustomPattern struct {
	// WeekInterval is the repeat interval in weeks for custom patterns
	WeekInterval int

	// MonthlyDay is the target day of month (1-31) for monthly patterns
	MonthlyDay int

	// MonthlyWeek is the target week of month for monthly patterns
	MonthlyWeek MonthlyWeek

	// StartDate and EndDate bound the pattern (inclusive), format "2006-01-02"
	StartDate string
	EndDate   string
}

// RecurringSchedule describes one repeating appearance of a provider:
// a weekday, a location, and a working window, repeated per Frequency.
type RecurringSchedule struct {
	WeekDay   WeekDay
	Location  string
	TimeSlot  TimeSlot
	Frequency Frequency

	// Pattern holds frequency parameters; nil when the frequency needs none
	Pattern *CustomPattern

	// Exceptions are dates ("2006-01-02") the provider is away despite the pattern
	Exceptions []string
}

// Requirements is the per-role headcount a provider needs.
// Every role always has a defined count; zero means the role is not needed.
type Requirements struct {
	Technician int
	Tester     int
	Scribe     int
	FrontDesk  int
}

// Get returns the required headcount for a role
func (r Requirements) Get(role Role) int {
	switch role {
	case RoleTechnician:
		return r.Technician
	case RoleTester:
		return r.Tester
	case RoleScribe:
		return r.Scribe
	case RoleFrontDesk:
		return r.FrontDesk
	}
	return 0
}

// Set updates the required headcount for a role
func (r *Requirements) Set(role Role, count int) {
	switch role {
	case RoleTechnician:
		r.Technician = count
	case RoleTester:
		r.Tester = count
	case RoleScribe:
		r.Scribe = count
	case RoleFrontDesk:
		r.FrontDesk = count
	}
}

// Total returns the combined headcount across all roles
func (r Requirements) Total() int {
	return r.Technician + r.Tester + r.Scribe + r.FrontDesk
}

// Provider is a clinician whose visits need support staff
type Provider struct {
	ID           string
	Name         string
	Requirements Requirements

	// RecurringSchedule lists the provider's repeating appearances
	RecurringSchedule []RecurringSchedule

	// StaffPreferences is an ordered list of preferred staff IDs, most preferred first
	StaffPreferences []string

	// DefaultLocation and DefaultTimeSlot apply when a day has no matching recurring entry
	DefaultLocation string
	DefaultTimeSlot *TimeSlot
}

// DayAvailability is one weekday's availability for a staff member.
// The zero value means unavailable.
type DayAvailability struct {
	Available bool

	// Window restricts the available hours; nil means the whole day
	Window *TimeSlot
}

// WeekAvailability holds an entry for every weekday, indexed Monday = 0.
// Days without an explicit entry stay at the zero value (unavailable).
type WeekAvailability [7]DayAvailability

// On returns the availability entry for a weekday
func (w WeekAvailability) On(day WeekDay) DayAvailability {
	idx := day.Index()
	if idx < 0 {
		return DayAvailability{}
	}
	return w[idx]
}

// Set assigns the availability entry for a weekday
func (w *WeekAvailability) Set(day WeekDay, a DayAvailability) {
	if idx := day.Index(); idx >= 0 {
		w[idx] = a
	}
}

// Staff is a support staff member who can be assigned to providers
type Staff struct {
	ID    string
	Name  string
	Roles []Role

	PreferredLocation string
	Availability      WeekAvailability

	// PreferredProviders is an ordered list of preferred provider IDs, most preferred first
	PreferredProviders []string

	// MinHoursPerWeek and MaxHoursPerWeek are advisory only; allocation ignores them
	MinHoursPerWeek int
	MaxHoursPerWeek int
}

// CanPerform reports whether the staff member can work the given role
func (s Staff) CanPerform(role Role) bool {
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsAvailable reports whether the staff member can cover the given
// time slot on the given weekday. A day marked available with no
// window covers any slot; a restricted window must fully contain the slot.
func (s Staff) IsAvailable(day WeekDay, slot TimeSlot) bool {
	entry := s.Availability.On(day)
	if !entry.Available {
		return false
	}
	if entry.Window == nil {
		return true
	}
	return entry.Window.Contains(slot)
}

// StaffAssignment places one staff member in one role.
// Within a ProviderSchedule a staff ID appears at most once.
type StaffAssignment struct {
	StaffID      string
	AssignedRole Role
}

// ProviderSchedule is one provider's appearance on a specific day
type ProviderSchedule struct {
	ProviderID    string
	Location      string
	TimeSlot      TimeSlot
	AssignedStaff []StaffAssignment
}

// ScheduleDay is the full schedule for one calendar date.
// At most one ScheduleDay exists per date; a provider may appear more
// than once on split-location days.
type ScheduleDay struct {
	Date      string // format "2006-01-02"
	Providers []ProviderSchedule
}
