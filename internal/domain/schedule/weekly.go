package schedule

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/agenda-marketplace/internal/httperr"
	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
)

// ===============================
// Weekly Schedule
// ===============================

const (
	Monday    = "monday"
	Tuesday   = "tuesday"
	Wednesday = "wednesday"
	Thursday  = "thursday"
	Friday    = "friday"
	Saturday  = "saturday"
	Sunday    = "sunday"
)

// DayKeys lists the schedule keys in display order.
var DayKeys = []string{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var keyByWeekday = map[time.Weekday]string{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
	time.Sunday:    Sunday,
}

type DaySchedule struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// WeeklySchedule maps a day key to its interval. Missing days are closed.
type WeeklySchedule map[string]DaySchedule

func DayKey(wd time.Weekday) string {
	return keyByWeekday[wd]
}

func (s WeeklySchedule) IsEmpty() bool {
	return len(s) == 0
}

// Day returns the schedule of t's weekday, evaluated in t's location.
func (s WeeklySchedule) Day(t time.Time) DaySchedule {
	return s[DayKey(t.Weekday())]
}

// ===============================
// Validation (edit time only)
// ===============================

func Validate(s WeeklySchedule) error {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if _, known := dayIndex(k); !known {
			return httperr.ErrBusinessDetail("invalid_day", k)
		}

		d := s[k]
		if !d.Enabled {
			continue
		}

		start, err := minuteOfDay(d.Start)
		if err != nil {
			return httperr.ErrBusinessDetail("invalid_time_format", k)
		}
		end, err := minuteOfDay(d.End)
		if err != nil {
			return httperr.ErrBusinessDetail("invalid_time_format", k)
		}
		if start >= end {
			return httperr.ErrBusinessDetail("invalid_interval", k)
		}
	}

	return nil
}

// Resolve picks the employee's own schedule, falling back to the business one.
func Resolve(employee, business WeeklySchedule) WeeklySchedule {
	if !employee.IsEmpty() {
		return employee
	}
	return business
}

// ===============================
// Storage mapping
// ===============================

func FromDays(days []models.ScheduleDay) WeeklySchedule {
	s := make(WeeklySchedule, len(days))
	for _, d := range days {
		s[d.Day] = DaySchedule{
			Enabled: d.Enabled,
			Start:   d.Start,
			End:     d.End,
		}
	}
	return s
}

// ToDays always returns seven rows so the stored schedule is complete.
func ToDays(s WeeklySchedule, businessID uint, employeeID *uint) []models.ScheduleDay {
	out := make([]models.ScheduleDay, 0, len(DayKeys))
	for _, k := range DayKeys {
		d := s[k]
		out = append(out, models.ScheduleDay{
			BusinessID: businessID,
			EmployeeID: employeeID,
			Day:        k,
			Enabled:    d.Enabled,
			Start:      d.Start,
			End:        d.End,
		})
	}
	return out
}

func dayIndex(key string) (int, bool) {
	for i, k := range DayKeys {
		if k == key {
			return i, true
		}
	}
	return 0, false
}

// minuteOfDay parses a zero-padded HH:mm.
func minuteOfDay(hm string) (int, error) {
	if len(hm) != 5 {
		return 0, httperr.ErrBusiness("invalid_time_format")
	}
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
