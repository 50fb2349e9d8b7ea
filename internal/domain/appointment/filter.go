package appointment

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
)

// Filter narrows a broad fetch in memory. Zero values disable a criterion.
// From is inclusive, To exclusive.
type Filter struct {
	From       time.Time
	To         time.Time
	EmployeeID uint
	CustomerID uint
	Status     Status
}

func (f Filter) Match(ap *models.Appointment) bool {
	if !f.From.IsZero() && ap.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !ap.Date.Before(f.To) {
		return false
	}
	if f.EmployeeID != 0 && ap.EmployeeID != f.EmployeeID {
		return false
	}
	if f.CustomerID != 0 && (ap.CustomerID == nil || *ap.CustomerID != f.CustomerID) {
		return false
	}
	if f.Status != "" && Status(ap.Status) != f.Status {
		return false
	}
	return true
}

// Apply returns the matching appointments sorted by date.
func (f Filter) Apply(apps []models.Appointment) []models.Appointment {
	out := make([]models.Appointment, 0, len(apps))
	for i := range apps {
		if f.Match(&apps[i]) {
			out = append(out, apps[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
