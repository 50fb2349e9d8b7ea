package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/agenda-marketplace/internal/httperr"
)

func officeHours() WeeklySchedule {
	return WeeklySchedule{
		Monday:   {Enabled: true, Start: "09:00", End: "18:00"},
		Tuesday:  {Enabled: true, Start: "09:00", End: "18:00"},
		Saturday: {Enabled: true, Start: "08:30", End: "12:00"},
		Sunday:   {Enabled: false},
	}
}

// 2026-03-02 is a Monday.
func at(day, hour, minute int) time.Time {
	return time.Date(2026, 3, day, hour, minute, 0, 0, time.UTC)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		in   WeeklySchedule
		code string
	}{
		{"valid", officeHours(), ""},
		{"empty", WeeklySchedule{}, ""},
		{"disabled day ignores times", WeeklySchedule{Friday: {Enabled: false, Start: "zz", End: ""}}, ""},
		{"unknown day", WeeklySchedule{"funday": {Enabled: true, Start: "09:00", End: "10:00"}}, "invalid_day"},
		{"start equals end", WeeklySchedule{Monday: {Enabled: true, Start: "09:00", End: "09:00"}}, "invalid_interval"},
		{"start after end", WeeklySchedule{Monday: {Enabled: true, Start: "18:00", End: "09:00"}}, "invalid_interval"},
		{"not zero padded", WeeklySchedule{Monday: {Enabled: true, Start: "9:00", End: "18:00"}}, "invalid_time_format"},
		{"out of range", WeeklySchedule{Monday: {Enabled: true, Start: "09:00", End: "24:00"}}, "invalid_time_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.in)
			if tt.code == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.code, httperr.CodeOf(err))
		})
	}
}

func TestIsOpenAt_Boundaries(t *testing.T) {
	s := officeHours()

	tests := []struct {
		name string
		at   time.Time
		open bool
	}{
		{"one minute before opening", at(2, 8, 59), false},
		{"exactly at opening", at(2, 9, 0), true},
		{"midday", at(2, 12, 30), true},
		{"last open minute", at(2, 17, 59), true},
		{"exactly at closing", at(2, 18, 0), false},
		{"after closing", at(2, 22, 0), false},
		{"missing day (wednesday)", at(4, 10, 0), false},
		{"disabled day (sunday)", at(8, 10, 0), false},
		{"half hour start (saturday)", at(7, 8, 30), true},
		{"before half hour start", at(7, 8, 29), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.open, IsOpenAt(s, tt.at))
		})
	}
}

func TestIsOpenAt_UsesLocationOfInstant(t *testing.T) {
	s := WeeklySchedule{Monday: {Enabled: true, Start: "09:00", End: "18:00"}}

	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	// 11:30 UTC on Monday is 08:30 in Sao Paulo.
	utc := at(2, 11, 30)
	assert.True(t, IsOpenAt(s, utc))
	assert.False(t, IsOpenAt(s, utc.In(saoPaulo)))
}

func TestIsOpenAt_MalformedStoredTimes(t *testing.T) {
	s := WeeklySchedule{Monday: {Enabled: true, Start: "nine", End: "18:00"}}
	assert.False(t, IsOpenAt(s, at(2, 10, 0)))
}

func TestStatus(t *testing.T) {
	st := Status(officeHours(), at(2, 10, 0))
	assert.Equal(t, OpenStatus{Open: true, Day: Monday, Opens: "09:00", Closes: "18:00"}, st)

	st = Status(officeHours(), at(8, 10, 0))
	assert.Equal(t, OpenStatus{Open: false, Day: Sunday}, st)
}

func TestNextOpening(t *testing.T) {
	s := officeHours()

	next, ok := NextOpening(s, at(2, 7, 0))
	require.True(t, ok)
	assert.Equal(t, at(2, 9, 0), next)

	next, ok = NextOpening(s, at(3, 19, 0))
	require.True(t, ok)
	assert.Equal(t, at(7, 8, 30), next)

	_, ok = NextOpening(WeeklySchedule{}, at(2, 7, 0))
	assert.False(t, ok)
}

func TestResolve(t *testing.T) {
	business := officeHours()
	own := WeeklySchedule{Friday: {Enabled: true, Start: "10:00", End: "14:00"}}

	assert.Equal(t, business, Resolve(nil, business))
	assert.Equal(t, own, Resolve(own, business))
}

func TestToDaysFromDays_RoundTrip(t *testing.T) {
	employeeID := uint(7)
	days := ToDays(officeHours(), 3, &employeeID)

	require.Len(t, days, 7)
	assert.Equal(t, Monday, days[0].Day)
	assert.Equal(t, uint(3), days[0].BusinessID)
	assert.Equal(t, &employeeID, days[0].EmployeeID)
	assert.False(t, days[2].Enabled)

	back := FromDays(days)
	assert.True(t, IsOpenAt(back, at(2, 9, 0)))
	assert.False(t, IsOpenAt(back, at(4, 10, 0)))
}
