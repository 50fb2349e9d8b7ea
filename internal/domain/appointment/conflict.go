package appointment

import (
	"github.com/BruksfildServices01/agenda-marketplace/internal/domain/schedule"
	"github.com/BruksfildServices01/agenda-marketplace/internal/httperr"
	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
)

// FindConflicts returns the active appointments of the candidate's employee
// overlapping it. The candidate itself (same non-zero ID) is ignored.
func FindConflicts(candidate *models.Appointment, existing []models.Appointment) []models.Appointment {
	want := IntervalOf(candidate)

	var out []models.Appointment
	for i := range existing {
		ap := &existing[i]
		if ap.EmployeeID != candidate.EmployeeID {
			continue
		}
		if candidate.ID != 0 && ap.ID == candidate.ID {
			continue
		}
		if !Status(ap.Status).IsActive() {
			continue
		}
		if want.Overlaps(IntervalOf(ap)) {
			out = append(out, *ap)
		}
	}
	return out
}

func AssertNoConflict(candidate *models.Appointment, existing []models.Appointment) error {
	if len(FindConflicts(candidate, existing)) > 0 {
		return httperr.ErrBusiness("time_conflict")
	}
	return nil
}

// BusyIntervals converts the active appointments of one employee into busy
// intervals for slot computation.
func BusyIntervals(employeeID uint, apps []models.Appointment) []schedule.Interval {
	busy := make([]schedule.Interval, 0, len(apps))
	for i := range apps {
		ap := &apps[i]
		if ap.EmployeeID != employeeID || !Status(ap.Status).IsActive() {
			continue
		}
		busy = append(busy, IntervalOf(ap))
	}
	return busy
}
