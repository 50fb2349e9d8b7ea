package report

import (
	"context"
	"time"

	"github.com/BruksfildServices01/agenda-marketplace/internal/httperr"
	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
	"github.com/BruksfildServices01/agenda-marketplace/internal/timezone"
)

type BusinessSource interface {
	GetBusinessByID(ctx context.Context, id uint) (*models.Business, error)
}

type AppointmentSource interface {
	BusinessSource
	ListForBusiness(ctx context.Context, businessID uint) ([]models.Appointment, error)
}

// monthRange resolves "YYYY-MM" to [first day, first day of next month) in tz.
// An empty month means the current one.
func monthRange(tz, month string, now time.Time) (time.Time, time.Time, error) {
	loc := timezone.Location(tz)

	var start time.Time
	if month == "" {
		local := now.In(loc)
		start = time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	} else {
		t, err := time.ParseInLocation("2006-01", month, loc)
		if err != nil {
			return time.Time{}, time.Time{}, httperr.ErrBusinessDetail("invalid_date_or_time", month)
		}
		start = t
	}

	return start, start.AddDate(0, 1, 0), nil
}
