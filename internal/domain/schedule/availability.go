package schedule

import "time"

type OpenStatus struct {
	Open   bool   `json:"open"`
	Day    string `json:"day"`
	Opens  string `json:"opens,omitempty"`
	Closes string `json:"closes,omitempty"`
}

// IsOpenAt reports whether t falls inside the enabled interval of its weekday.
// The start minute is open, the end minute is already closed.
func IsOpenAt(s WeeklySchedule, t time.Time) bool {
	d := s.Day(t)
	if !d.Enabled {
		return false
	}

	start, err := minuteOfDay(d.Start)
	if err != nil {
		return false
	}
	end, err := minuteOfDay(d.End)
	if err != nil {
		return false
	}

	now := t.Hour()*60 + t.Minute()
	return start <= now && now < end
}

func Status(s WeeklySchedule, t time.Time) OpenStatus {
	d := s.Day(t)
	st := OpenStatus{
		Open: IsOpenAt(s, t),
		Day:  DayKey(t.Weekday()),
	}
	if d.Enabled {
		st.Opens = d.Start
		st.Closes = d.End
	}
	return st
}

// NextOpening returns the next instant at or after t when the schedule opens,
// looking at most one week ahead.
func NextOpening(s WeeklySchedule, t time.Time) (time.Time, bool) {
	if IsOpenAt(s, t) {
		return t, true
	}

	for i := 0; i <= 7; i++ {
		day := t.AddDate(0, 0, i)
		w, ok := Window(s, day)
		if !ok {
			continue
		}
		if w.Start.After(t) || w.Start.Equal(t) {
			return w.Start, true
		}
	}

	return time.Time{}, false
}
