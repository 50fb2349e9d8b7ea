package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agenda-marketplace/internal/dto"
	"github.com/BruksfildServices01/agenda-marketplace/internal/httperr"
	"github.com/BruksfildServices01/agenda-marketplace/internal/httpresp"
	"github.com/BruksfildServices01/agenda-marketplace/internal/middleware"
	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
	"github.com/BruksfildServices01/agenda-marketplace/internal/usecase/appointment"
)

// ======================================================
// DEPENDENCIES
// ======================================================

type appointmentCreator interface {
	Execute(ctx context.Context, in appointment.CreateAppointmentInput) (*models.Appointment, error)
}

type appointmentTransitioner interface {
	Execute(ctx context.Context, in appointment.TransitionInput) (*models.Appointment, error)
}

type appointmentRescheduler interface {
	Execute(ctx context.Context, in appointment.RescheduleInput) (*models.Appointment, error)
}

type appointmentLister interface {
	Execute(ctx context.Context, in appointment.ListAppointmentsInput) ([]dto.AppointmentListDTO, error)
}

type appointmentGetter interface {
	Execute(ctx context.Context, businessID, appointmentID uint) (*models.Appointment, error)
}

type availabilityGetter interface {
	Execute(ctx context.Context, in appointment.AvailabilityInput) ([]dto.TimeSlotDTO, error)
}

type notificationLister interface {
	ListForAppointment(ctx context.Context, businessID, appointmentID uint) ([]models.Notification, error)
}

type AppointmentUseCases struct {
	Create        appointmentCreator
	Transition    appointmentTransitioner
	Reschedule    appointmentRescheduler
	List          appointmentLister
	Get           appointmentGetter
	Availability  availabilityGetter
	Notifications notificationLister
}

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	uc AppointmentUseCases
}

func NewAppointmentHandler(uc AppointmentUseCases) *AppointmentHandler {
	return &AppointmentHandler{uc: uc}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	EmployeeID    uint   `json:"employee_id" binding:"required"`
	ServiceID     uint   `json:"service_id" binding:"required"`
	CustomerID    *uint  `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email"`
	Date          string `json:"date" binding:"required"` // YYYY-MM-DD
	Time          string `json:"time" binding:"required"` // HH:mm
	Notes         string `json:"notes"`
}

type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
}

type RescheduleRequest struct {
	Date       string `json:"date" binding:"required"`
	Time       string `json:"time" binding:"required"`
	EmployeeID *uint  `json:"employee_id"`
}

// ======================================================
// HANDLERS
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.uc.Create.Execute(c.Request.Context(), appointment.CreateAppointmentInput{
		BusinessID:    middleware.BusinessID(c),
		EmployeeID:    req.EmployeeID,
		ServiceID:     req.ServiceID,
		UserID:        actor(c),
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Date:          req.Date,
		Time:          req.Time,
		Notes:         req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_create_appointment")
		return
	}

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) List(c *gin.Context) {
	employeeID, ok := queryID(c, "employee_id")
	if !ok {
		return
	}
	customerID, ok := queryID(c, "customer_id")
	if !ok {
		return
	}

	list, err := h.uc.List.Execute(c.Request.Context(), appointment.ListAppointmentsInput{
		BusinessID: middleware.BusinessID(c),
		From:       c.Query("from"),
		To:         c.Query("to"),
		EmployeeID: employeeID,
		CustomerID: customerID,
		Status:     c.Query("status"),
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_appointments")
		return
	}

	httpresp.List(c, list)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.uc.Get.Execute(c.Request.Context(), middleware.BusinessID(c), id)
	if err != nil {
		httperr.FromError(c, err, "failed_to_get_appointment")
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Transition(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req TransitionRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.uc.Transition.Execute(c.Request.Context(), appointment.TransitionInput{
		BusinessID:    middleware.BusinessID(c),
		AppointmentID: id,
		Status:        req.Status,
		UserID:        actor(c),
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_update_appointment")
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req RescheduleRequest
	if !bindJSON(c, &req) {
		return
	}

	ap, err := h.uc.Reschedule.Execute(c.Request.Context(), appointment.RescheduleInput{
		BusinessID:    middleware.BusinessID(c),
		AppointmentID: id,
		Date:          req.Date,
		Time:          req.Time,
		EmployeeID:    req.EmployeeID,
		UserID:        actor(c),
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_reschedule_appointment")
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Availability(c *gin.Context) {
	employeeID, ok := queryID(c, "employee_id")
	if !ok {
		return
	}
	serviceID, ok := queryID(c, "service_id")
	if !ok {
		return
	}
	if c.Query("date") == "" || serviceID == 0 {
		httperr.BadRequest(c, "missing_params", "Date and service are required.")
		return
	}

	slots, err := h.uc.Availability.Execute(c.Request.Context(), appointment.AvailabilityInput{
		BusinessID: middleware.BusinessID(c),
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

func (h *AppointmentHandler) Notifications(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	list, err := h.uc.Notifications.ListForAppointment(c.Request.Context(), middleware.BusinessID(c), id)
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_notifications")
		return
	}

	httpresp.List(c, list)
}
