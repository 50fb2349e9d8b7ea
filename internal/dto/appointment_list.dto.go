package dto

import (
	"time"

	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
)

type AppointmentListDTO struct {
	ID           uint      `json:"id"`
	Reference    string    `json:"reference"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	Status       string    `json:"status"`
	EmployeeID   uint      `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
	ServiceName  string    `json:"service_name"`
	CustomerName string    `json:"customer_name,omitempty"`
}

// FromAppointment renders an appointment in the business location.
func FromAppointment(ap *models.Appointment, loc *time.Location) AppointmentListDTO {
	start := ap.Date.In(loc)

	out := AppointmentListDTO{
		ID:           ap.ID,
		Reference:    ap.Reference,
		Date:         start.Format("2006-01-02"),
		Time:         start.Format("15:04"),
		Start:        start,
		End:          ap.End().In(loc),
		Status:       ap.Status,
		EmployeeID:   ap.EmployeeID,
		EmployeeName: ap.Employee.Name,
		ServiceName:  ap.Service.Name,
	}
	if ap.Customer != nil {
		out.CustomerName = ap.Customer.Name
	}
	return out
}

type TimeSlotDTO struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
