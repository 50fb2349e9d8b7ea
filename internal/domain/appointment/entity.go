package appointment

import (
	"time"

	"github.com/BruksfildServices01/agenda-marketplace/internal/domain/schedule"
	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition moves ap to the given status and stamps the matching timestamp.
// It returns the previous status.
func Transition(ap *models.Appointment, to Status, now time.Time) (Status, error) {
	from, err := ParseStatus(ap.Status)
	if err != nil {
		return "", err
	}
	if err := CanTransition(from, to); err != nil {
		return "", err
	}

	ap.Status = string(to)
	switch to {
	case StatusConfirmed:
		ap.ConfirmedAt = &now
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	case StatusNoShow:
		ap.NoShowAt = &now
	}

	return from, nil
}

func Confirm(ap *models.Appointment, now time.Time) (Status, error) {
	return Transition(ap, StatusConfirmed, now)
}

func Cancel(ap *models.Appointment, now time.Time) (Status, error) {
	return Transition(ap, StatusCancelled, now)
}

func Complete(ap *models.Appointment, now time.Time) (Status, error) {
	return Transition(ap, StatusCompleted, now)
}

func MarkNoShow(ap *models.Appointment, now time.Time) (Status, error) {
	return Transition(ap, StatusNoShow, now)
}

func IntervalOf(ap *models.Appointment) schedule.Interval {
	return schedule.Interval{Start: ap.Date, End: ap.End()}
}
