package appointment

import (
	"context"
	"sort"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/agenda-marketplace/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-marketplace/internal/domain/schedule"
	"github.com/BruksfildServices01/agenda-marketplace/internal/httperr"
	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
	"github.com/BruksfildServices01/agenda-marketplace/internal/notification"
	customeruc "github.com/BruksfildServices01/agenda-marketplace/internal/usecase/customer"
)

// memRepo is an in-memory domain.Repository.
type memRepo struct {
	business  models.Business
	employees map[uint]models.Employee
	services  map[uint]models.Service
	customers map[uint]models.Customer
	days      []models.ScheduleDay
	apps      []models.Appointment

	// beforeStatusWrite runs once inside the next UpdateStatus, standing in
	// for a request that commits between the read and the write.
	beforeStatusWrite func()
}

func newMemRepo() *memRepo {
	r := &memRepo{
		business: models.Business{
			ID:                1,
			Name:              "Studio",
			Timezone:          "America/Sao_Paulo",
			MinAdvanceMinutes: 60,
			SlotStepMinutes:   15,
			Plan:              "free",
		},
		employees: map[uint]models.Employee{
			10: {ID: 10, BusinessID: 1, Name: "Ana", Active: true},
			11: {ID: 11, BusinessID: 1, Name: "Bia", Active: true},
		},
		services: map[uint]models.Service{
			20: {ID: 20, BusinessID: 1, Name: "Corte", DurationMin: 30, Active: true},
		},
		customers: map[uint]models.Customer{
			30: {ID: 30, BusinessID: 1, Name: "Carla", Email: "carla@example.com"},
		},
	}

	weekdays := schedule.WeeklySchedule{}
	for _, d := range []string{schedule.Monday, schedule.Tuesday, schedule.Wednesday, schedule.Thursday, schedule.Friday} {
		weekdays[d] = schedule.DaySchedule{Enabled: true, Start: "09:00", End: "18:00"}
	}
	r.days = schedule.ToDays(weekdays, 1, nil)
	return r
}

func (r *memRepo) setEmployeeSchedule(employeeID uint, s schedule.WeeklySchedule) {
	r.days = append(r.days, schedule.ToDays(s, 1, &employeeID)...)
}

func (r *memRepo) GetBusinessByID(_ context.Context, id uint) (*models.Business, error) {
	if id != r.business.ID {
		return nil, httperr.ErrBusiness("business_not_found")
	}
	b := r.business
	return &b, nil
}

func (r *memRepo) GetEmployee(_ context.Context, businessID, id uint) (*models.Employee, error) {
	e, ok := r.employees[id]
	if !ok || e.BusinessID != businessID || !e.Active {
		return nil, httperr.ErrBusiness("employee_not_found")
	}
	return &e, nil
}

func (r *memRepo) GetService(_ context.Context, businessID, id uint) (*models.Service, error) {
	s, ok := r.services[id]
	if !ok || s.BusinessID != businessID || !s.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	return &s, nil
}

func (r *memRepo) GetSchedule(_ context.Context, businessID uint, employeeID *uint) ([]models.ScheduleDay, error) {
	var out []models.ScheduleDay
	for _, d := range r.days {
		if d.BusinessID != businessID {
			continue
		}
		switch {
		case employeeID == nil && d.EmployeeID == nil:
			out = append(out, d)
		case employeeID != nil && d.EmployeeID != nil && *d.EmployeeID == *employeeID:
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *memRepo) overlapping(ap *models.Appointment) []models.Appointment {
	iv := domain.IntervalOf(ap)
	var out []models.Appointment
	for _, ex := range r.apps {
		if ex.EmployeeID == ap.EmployeeID && domain.Status(ex.Status).IsActive() && iv.Overlaps(domain.IntervalOf(&ex)) {
			out = append(out, ex)
		}
	}
	return out
}

func (r *memRepo) CreateAppointment(_ context.Context, ap *models.Appointment, check domain.ConflictCheck) error {
	if err := check(r.overlapping(ap)); err != nil {
		return err
	}
	ap.ID = uint(len(r.apps) + 1)
	r.apps = append(r.apps, *ap)
	return nil
}

func (r *memRepo) RescheduleAppointment(_ context.Context, ap *models.Appointment, check domain.ConflictCheck) error {
	if err := check(r.overlapping(ap)); err != nil {
		return err
	}
	for i := range r.apps {
		if r.apps[i].ID == ap.ID {
			r.apps[i].EmployeeID = ap.EmployeeID
			r.apps[i].Date = ap.Date
			r.apps[i].DurationMinutes = ap.DurationMinutes
			return nil
		}
	}
	return httperr.ErrBusiness("appointment_not_found")
}

func (r *memRepo) hydrate(ap models.Appointment) models.Appointment {
	ap.Employee = r.employees[ap.EmployeeID]
	ap.Service = r.services[ap.ServiceID]
	if ap.CustomerID != nil {
		c := r.customers[*ap.CustomerID]
		ap.Customer = &c
	}
	return ap
}

func (r *memRepo) GetAppointment(_ context.Context, businessID, id uint) (*models.Appointment, error) {
	for _, ap := range r.apps {
		if ap.ID == id && ap.BusinessID == businessID {
			out := r.hydrate(ap)
			return &out, nil
		}
	}
	return nil, httperr.ErrBusiness("appointment_not_found")
}

func (r *memRepo) UpdateStatus(_ context.Context, ap *models.Appointment, from domain.Status) error {
	if r.beforeStatusWrite != nil {
		hook := r.beforeStatusWrite
		r.beforeStatusWrite = nil
		hook()
	}
	for i := range r.apps {
		if r.apps[i].ID != ap.ID || r.apps[i].BusinessID != ap.BusinessID {
			continue
		}
		if r.apps[i].Status != string(from) {
			return httperr.ErrBusiness("invalid_transition")
		}
		r.apps[i].Status = ap.Status
		r.apps[i].ConfirmedAt = ap.ConfirmedAt
		r.apps[i].CancelledAt = ap.CancelledAt
		r.apps[i].CompletedAt = ap.CompletedAt
		r.apps[i].NoShowAt = ap.NoShowAt
		return nil
	}
	return httperr.ErrBusiness("appointment_not_found")
}

func (r *memRepo) ListForBusiness(_ context.Context, businessID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.apps {
		if ap.BusinessID == businessID {
			out = append(out, r.hydrate(ap))
		}
	}
	// Reverse insertion order so sorting by the filter is observable.
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *memRepo) ListActiveForEmployee(_ context.Context, employeeID uint, start, end time.Time) ([]models.Appointment, error) {
	window := schedule.Interval{Start: start, End: end}
	var out []models.Appointment
	for _, ap := range r.apps {
		if ap.EmployeeID == employeeID && domain.Status(ap.Status).IsActive() && window.Overlaps(domain.IntervalOf(&ap)) {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *memRepo) CountForPeriod(_ context.Context, businessID uint, start, end time.Time) (int64, error) {
	var n int64
	for _, ap := range r.apps {
		if ap.BusinessID == businessID && !ap.Date.Before(start) && ap.Date.Before(end) && ap.Status != string(domain.StatusCancelled) {
			n++
		}
	}
	return n, nil
}

var _ domain.Repository = (*memRepo)(nil)

// ----------------------------------------------------------------------------

type memCustomers struct {
	repo *memRepo
}

func (m memCustomers) Get(_ context.Context, businessID, id uint) (*models.Customer, error) {
	c, ok := m.repo.customers[id]
	if !ok || c.BusinessID != businessID {
		return nil, httperr.ErrBusiness("customer_not_found")
	}
	return &c, nil
}

func (m memCustomers) Execute(_ context.Context, in customeruc.CreateCustomerInput) (*models.Customer, bool, error) {
	if in.Name == "" {
		return nil, false, httperr.ErrBusiness("customer_name_required")
	}
	for _, c := range m.repo.customers {
		if c.BusinessID == in.BusinessID && in.Phone != "" && c.Phone == in.Phone {
			return &c, false, nil
		}
	}
	c := models.Customer{ID: uint(100 + len(m.repo.customers)), BusinessID: in.BusinessID, Name: in.Name, Phone: in.Phone, Email: in.Email}
	m.repo.customers[c.ID] = c
	return &c, true, nil
}

type memNotifier struct {
	mu     sync.Mutex
	events []notification.Event
}

func (n *memNotifier) Notify(_ context.Context, ev notification.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
	return nil
}

func (n *memNotifier) kinds() []string {
	out := make([]string, 0, len(n.events))
	for _, ev := range n.events {
		out = append(out, ev.Kind)
	}
	return out
}
