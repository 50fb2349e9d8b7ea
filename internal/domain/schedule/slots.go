package schedule

import "time"

type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps uses half-open intervals: touching intervals do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

// Contains reports whether o lies entirely inside i.
func (i Interval) Contains(o Interval) bool {
	return !o.Start.Before(i.Start) && !o.End.After(i.End)
}

// Window returns the enabled interval of date's weekday as instants on that date.
func Window(s WeeklySchedule, date time.Time) (Interval, bool) {
	d := s.Day(date)
	if !d.Enabled {
		return Interval{}, false
	}

	start, err := minuteOfDay(d.Start)
	if err != nil {
		return Interval{}, false
	}
	end, err := minuteOfDay(d.End)
	if err != nil || end <= start {
		return Interval{}, false
	}

	return Interval{
		Start: wallClock(date, start),
		End:   wallClock(date, end),
	}, true
}

// wallClock places a minute of day on date's calendar day in date's location,
// so daylight-saving days keep the HH:mm the schedule names.
func wallClock(date time.Time, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), minute/60, minute%60, 0, 0, date.Location())
}

// Fits reports whether the whole interval is inside the schedule window of its start day.
func Fits(s WeeklySchedule, iv Interval) bool {
	w, ok := Window(s, iv.Start)
	return ok && w.Contains(iv)
}

// AvailableSlots walks the window in step increments and keeps every slot of the
// given duration that fits, does not overlap busy, and does not start before now.
func AvailableSlots(
	window Interval,
	duration time.Duration,
	step time.Duration,
	busy []Interval,
	now time.Time,
) []Interval {
	if duration <= 0 {
		return nil
	}
	if step <= 0 {
		step = duration
	}

	slots := []Interval{}
	for cur := window.Start; !cur.Add(duration).After(window.End); cur = cur.Add(step) {
		slot := Interval{Start: cur, End: cur.Add(duration)}

		if slot.Start.Before(now) {
			continue
		}

		free := true
		for _, b := range busy {
			if slot.Overlaps(b) {
				free = false
				break
			}
		}
		if free {
			slots = append(slots, slot)
		}
	}

	return slots
}
