package appointment

import (
	"context"
	"log/slog"
	"time"

	"github.com/BruksfildServices01/agenda-marketplace/internal/audit"
	domain "github.com/BruksfildServices01/agenda-marketplace/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-marketplace/internal/domain/schedule"
	"github.com/BruksfildServices01/agenda-marketplace/internal/metrics"
	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
	"github.com/BruksfildServices01/agenda-marketplace/internal/notification"
)

type Notifier interface {
	Notify(ctx context.Context, ev notification.Event) error
}

// Events fans an appointment change out to the notifier, the audit log and metrics.
// A failed notification write is logged; the change itself already happened.
type Events struct {
	notifier Notifier
	audit    *audit.Dispatcher
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

func NewEvents(
	notifier Notifier,
	audit *audit.Dispatcher,
	metrics *metrics.Metrics,
	logger *slog.Logger,
) *Events {
	return &Events{
		notifier: notifier,
		audit:    audit,
		metrics:  metrics,
		logger:   logger,
	}
}

func (e *Events) emit(
	ctx context.Context,
	kind string,
	biz *models.Business,
	ap *models.Appointment,
	from string,
	userID *uint,
	extra map[string]any,
) {
	if e == nil {
		return
	}

	if e.notifier != nil {
		if err := e.notifier.Notify(ctx, notification.Event{
			Kind:        kind,
			Business:    *biz,
			Appointment: *ap,
			From:        from,
			To:          ap.Status,
		}); err != nil {
			e.logger.Error("notification write failed", "kind", kind, "reference", ap.Reference, "err", err)
		}
	}

	if e.audit != nil {
		meta := map[string]any{"reference": ap.Reference, "to": ap.Status}
		if from != "" {
			meta["from"] = from
		}
		for k, v := range extra {
			meta[k] = v
		}
		e.audit.Dispatch(audit.Event{
			BusinessID: ap.BusinessID,
			UserID:     userID,
			Action:     kind,
			Entity:     "appointment",
			EntityID:   &ap.ID,
			Metadata:   meta,
		})
	}

	e.metrics.AppointmentEvent(kind)
}

// resolveSchedule returns the employee's own schedule or the business one.
func resolveSchedule(
	ctx context.Context,
	repo domain.Repository,
	businessID uint,
	employeeID uint,
) (schedule.WeeklySchedule, error) {

	own, err := repo.GetSchedule(ctx, businessID, &employeeID)
	if err != nil {
		return nil, err
	}
	business, err := repo.GetSchedule(ctx, businessID, nil)
	if err != nil {
		return nil, err
	}
	return schedule.Resolve(schedule.FromDays(own), schedule.FromDays(business)), nil
}

func interval(start time.Time, minutes int) schedule.Interval {
	return schedule.Interval{Start: start, End: start.Add(time.Duration(minutes) * time.Minute)}
}

func minAdvance(biz *models.Business) time.Duration {
	if biz.MinAdvanceMinutes <= 0 {
		return 0
	}
	return time.Duration(biz.MinAdvanceMinutes) * time.Minute
}
