package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/agenda-marketplace/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-marketplace/internal/domain/schedule"
	"github.com/BruksfildServices01/agenda-marketplace/internal/httperr"
	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
	"github.com/BruksfildServices01/agenda-marketplace/internal/notification"
	"github.com/BruksfildServices01/agenda-marketplace/internal/plans"
	"github.com/BruksfildServices01/agenda-marketplace/internal/timezone"
	customeruc "github.com/BruksfildServices01/agenda-marketplace/internal/usecase/customer"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BusinessID uint
	EmployeeID uint
	ServiceID  uint
	UserID     *uint

	// Either an existing customer or contact data to find-or-create one.
	CustomerID    *uint
	CustomerName  string
	CustomerPhone string
	CustomerEmail string

	Date  string
	Time  string
	Notes string

	// Public bookings always carry a customer.
	Public bool
}

type CustomerCreator interface {
	Execute(ctx context.Context, in customeruc.CreateCustomerInput) (*models.Customer, bool, error)
}

type CustomerGetter interface {
	Get(ctx context.Context, businessID, customerID uint) (*models.Customer, error)
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo      domain.Repository
	customers CustomerGetter
	creator   CustomerCreator
	catalog   *plans.Catalog
	events    *Events
	now       func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	customers CustomerGetter,
	creator CustomerCreator,
	catalog *plans.Catalog,
	events *Events,
) *CreateAppointment {
	return &CreateAppointment{
		repo:      repo,
		customers: customers,
		creator:   creator,
		catalog:   catalog,
		events:    events,
		now:       time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Business and local time
	// --------------------------------------------------
	biz, err := uc.repo.GetBusinessByID(ctx, in.BusinessID)
	if err != nil {
		return nil, err
	}

	start, err := timezone.ParseDateTime(biz.Timezone, in.Date, in.Time)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	now := uc.now().In(start.Location())
	if start.Before(now.Add(minAdvance(biz))) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// Service and employee
	// --------------------------------------------------
	if in.EmployeeID == 0 {
		return nil, httperr.ErrBusiness("employee_required")
	}

	service, err := uc.repo.GetService(ctx, in.BusinessID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	employee, err := uc.repo.GetEmployee(ctx, in.BusinessID, in.EmployeeID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Working hours
	// --------------------------------------------------
	sched, err := resolveSchedule(ctx, uc.repo, in.BusinessID, employee.ID)
	if err != nil {
		return nil, err
	}

	iv := interval(start, service.DurationMin)
	if !schedule.Fits(sched, iv) {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	// --------------------------------------------------
	// Plan quota
	// --------------------------------------------------
	plan := uc.catalog.For(biz.Plan)
	if plan.MonthlyAppointments > 0 {
		monthStart := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
		count, err := uc.repo.CountForPeriod(ctx, in.BusinessID, monthStart, monthStart.AddDate(0, 1, 0))
		if err != nil {
			return nil, err
		}
		if !plan.AllowsAppointments(count) {
			return nil, httperr.ErrBusinessDetail("plan_limit_reached", "monthly_appointments")
		}
	}

	// --------------------------------------------------
	// Customer
	// --------------------------------------------------
	customer, err := uc.customer(ctx, in)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Create with conflict check
	// --------------------------------------------------
	ap := &models.Appointment{
		Reference:       uuid.NewString(),
		BusinessID:      in.BusinessID,
		EmployeeID:      employee.ID,
		ServiceID:       service.ID,
		Date:            iv.Start,
		DurationMinutes: service.DurationMin,
		Status:          string(domain.InitialStatus()),
		Notes:           strings.TrimSpace(in.Notes),
	}
	if customer != nil {
		ap.CustomerID = &customer.ID
	}

	if err := uc.repo.CreateAppointment(ctx, ap, func(existing []models.Appointment) error {
		return domain.AssertNoConflict(ap, existing)
	}); err != nil {
		return nil, err
	}

	ap.Employee = *employee
	ap.Service = *service
	ap.Customer = customer

	uc.events.emit(ctx, notification.KindCreated, biz, ap, "", in.UserID, nil)

	return ap, nil
}

func (uc *CreateAppointment) customer(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Customer, error) {

	if in.CustomerID != nil && !in.Public {
		return uc.customers.Get(ctx, in.BusinessID, *in.CustomerID)
	}

	hasContact := strings.TrimSpace(in.CustomerPhone) != "" || strings.TrimSpace(in.CustomerEmail) != ""
	if !in.Public && !hasContact && strings.TrimSpace(in.CustomerName) == "" {
		// Walk-in without a customer record.
		return nil, nil
	}

	c, _, err := uc.creator.Execute(ctx, customeruc.CreateCustomerInput{
		BusinessID: in.BusinessID,
		UserID:     in.UserID,
		Name:       in.CustomerName,
		Phone:      in.CustomerPhone,
		Email:      in.CustomerEmail,
	})
	return c, err
}
