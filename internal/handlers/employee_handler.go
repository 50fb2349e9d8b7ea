package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agenda-marketplace/internal/httperr"
	"github.com/BruksfildServices01/agenda-marketplace/internal/httpresp"
	"github.com/BruksfildServices01/agenda-marketplace/internal/middleware"
	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
	businessuc "github.com/BruksfildServices01/agenda-marketplace/internal/usecase/business"
)

type employeeSaver interface {
	Execute(ctx context.Context, in businessuc.EmployeeInput) (*models.Employee, error)
}

type EmployeeHandler struct {
	list employeeLister
	save employeeSaver
}

func NewEmployeeHandler(list employeeLister, save employeeSaver) *EmployeeHandler {
	return &EmployeeHandler{list: list, save: save}
}

// --------- Requests ---------

type CreateEmployeeRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	LoginUserID *uint  `json:"user_id"`
}

type UpdateEmployeeRequest struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Active      *bool   `json:"active,omitempty"`
	LoginUserID *uint   `json:"user_id,omitempty"`
}

// --------- Handlers ---------

func (h *EmployeeHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	list, err := h.list.Execute(c.Request.Context(), middleware.BusinessID(c), activeOnly)
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_employees")
		return
	}

	httpresp.List(c, list)
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}

	e, err := h.save.Execute(c.Request.Context(), businessuc.EmployeeInput{
		BusinessID:  middleware.BusinessID(c),
		UserID:      actor(c),
		LoginUserID: req.LoginUserID,
		Name:        &req.Name,
		Email:       &req.Email,
		Phone:       &req.Phone,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_create_employee")
		return
	}

	httpresp.Created(c, e)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req UpdateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}

	e, err := h.save.Execute(c.Request.Context(), businessuc.EmployeeInput{
		BusinessID:  middleware.BusinessID(c),
		EmployeeID:  id,
		UserID:      actor(c),
		LoginUserID: req.LoginUserID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Active:      req.Active,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_update_employee")
		return
	}

	httpresp.OK(c, e)
}
