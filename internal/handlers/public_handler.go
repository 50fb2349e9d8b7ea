package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	domainbiz "github.com/BruksfildServices01/agenda-marketplace/internal/domain/business"
	"github.com/BruksfildServices01/agenda-marketplace/internal/dto"
	"github.com/BruksfildServices01/agenda-marketplace/internal/httperr"
	"github.com/BruksfildServices01/agenda-marketplace/internal/httpresp"
	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
	"github.com/BruksfildServices01/agenda-marketplace/internal/timezone"
	"github.com/BruksfildServices01/agenda-marketplace/internal/usecase/appointment"
	scheduleuc "github.com/BruksfildServices01/agenda-marketplace/internal/usecase/schedule"
)

////////////////////////////////////////////////////////
// DEPENDENCIES
////////////////////////////////////////////////////////

type businessBySlug interface {
	GetBusinessBySlug(ctx context.Context, slug string) (*models.Business, error)
}

type publicStatusGetter interface {
	Execute(ctx context.Context, slug string) (*scheduleuc.PublicStatus, error)
}

type serviceLister interface {
	Execute(ctx context.Context, businessID uint, f domainbiz.ServiceFilter) ([]models.Service, error)
}

type employeeLister interface {
	Execute(ctx context.Context, businessID uint, activeOnly bool) ([]models.Employee, error)
}

type PublicDeps struct {
	Businesses   businessBySlug
	Status       publicStatusGetter
	Services     serviceLister
	Employees    employeeLister
	Availability availabilityGetter
	Create       appointmentCreator
}

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	deps PublicDeps
}

func NewPublicHandler(deps PublicDeps) *PublicHandler {
	return &PublicHandler{deps: deps}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	EmployeeID    uint   `json:"employee_id" binding:"required"`
	ServiceID     uint   `json:"service_id" binding:"required"`
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email"`
	Date          string `json:"date" binding:"required"` // YYYY-MM-DD
	Time          string `json:"time" binding:"required"` // HH:mm
	Notes         string `json:"notes"`
}

type PublicEmployee struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

////////////////////////////////////////////////////////
// BUSINESS PAGE
////////////////////////////////////////////////////////

func (h *PublicHandler) Business(c *gin.Context) {
	st, err := h.deps.Status.Execute(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httperr.FromError(c, err, "failed_to_get_business")
		return
	}

	httpresp.OK(c, st)
}

func (h *PublicHandler) business(c *gin.Context) (*models.Business, bool) {
	biz, err := h.deps.Businesses.GetBusinessBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httperr.FromError(c, err, "failed_to_get_business")
		return nil, false
	}
	return biz, true
}

////////////////////////////////////////////////////////
// CATALOG
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	biz, ok := h.business(c)
	if !ok {
		return
	}

	active := true
	services, err := h.deps.Services.Execute(c.Request.Context(), biz.ID, domainbiz.ServiceFilter{
		Category: c.Query("category"),
		Query:    c.Query("query"),
		Active:   &active,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_services")
		return
	}

	httpresp.List(c, services)
}

func (h *PublicHandler) ListEmployees(c *gin.Context) {
	biz, ok := h.business(c)
	if !ok {
		return
	}

	employees, err := h.deps.Employees.Execute(c.Request.Context(), biz.ID, true)
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_employees")
		return
	}

	out := make([]PublicEmployee, 0, len(employees))
	for _, e := range employees {
		out = append(out, PublicEmployee{ID: e.ID, Name: e.Name})
	}
	httpresp.List(c, out)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	employeeID, ok := queryID(c, "employee_id")
	if !ok {
		return
	}
	serviceID, ok := queryID(c, "service_id")
	if !ok {
		return
	}
	if c.Query("date") == "" || serviceID == 0 || employeeID == 0 {
		httperr.BadRequest(c, "missing_params", "Date, service and employee are required.")
		return
	}

	biz, ok := h.business(c)
	if !ok {
		return
	}

	slots, err := h.deps.Availability.Execute(c.Request.Context(), appointment.AvailabilityInput{
		BusinessID: biz.ID,
		EmployeeID: employeeID,
		ServiceID:  serviceID,
		Date:       c.Query("date"),
	})
	if err != nil {
		httperr.FromError(c, err, "availability_failed")
		return
	}

	httpresp.OK(c, gin.H{
		"date":  c.Query("date"),
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req PublicCreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	biz, ok := h.business(c)
	if !ok {
		return
	}

	ap, err := h.deps.Create.Execute(c.Request.Context(), appointment.CreateAppointmentInput{
		BusinessID:    biz.ID,
		EmployeeID:    req.EmployeeID,
		ServiceID:     req.ServiceID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Date:          req.Date,
		Time:          req.Time,
		Notes:         req.Notes,
		Public:        true,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_create_appointment")
		return
	}

	httpresp.Created(c, dto.FromAppointment(ap, timezone.Location(biz.Timezone)))
}
