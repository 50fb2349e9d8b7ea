package appointment

import "github.com/BruksfildServices01/agenda-marketplace/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no_show"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusNoShow, StatusCancelled},
}

// ===============================
// Validations
// ===============================

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return st, nil
	default:
		return "", httperr.ErrBusinessDetail("invalid_status", s)
	}
}

// IsActive reports whether the appointment still holds its time slot.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) IsTerminal() bool {
	_, hasNext := transitions[s]
	return !hasNext
}

// CanTransition validates a single status change.
func CanTransition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrBusinessDetail("invalid_transition", string(from)+" -> "+string(to))
}

func InitialStatus() Status {
	return StatusPending
}
