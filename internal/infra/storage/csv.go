package storage

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
)

var appointmentHeader = []string{
	"reference", "date", "time", "duration_minutes", "status",
	"employee", "service", "price", "customer", "customer_phone", "customer_email",
}

// WriteAppointmentsCSV renders appointments in the business timezone.
func WriteAppointmentsCSV(w io.Writer, apps []models.Appointment, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(appointmentHeader); err != nil {
		return err
	}

	for _, ap := range apps {
		local := ap.Date.In(loc)

		var customer, phone, email string
		if ap.Customer != nil {
			customer = ap.Customer.Name
			phone = ap.Customer.Phone
			email = ap.Customer.Email
		}

		row := []string{
			ap.Reference,
			local.Format("2006-01-02"),
			local.Format("15:04"),
			strconv.Itoa(ap.DurationMinutes),
			ap.Status,
			ap.Employee.Name,
			ap.Service.Name,
			strconv.FormatFloat(ap.Service.Price, 'f', 2, 64),
			customer,
			phone,
			email,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
