package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/agenda-marketplace/internal/domain/schedule"
	"github.com/BruksfildServices01/agenda-marketplace/internal/httperr"
	"github.com/BruksfildServices01/agenda-marketplace/internal/httpresp"
	"github.com/BruksfildServices01/agenda-marketplace/internal/middleware"
	scheduleuc "github.com/BruksfildServices01/agenda-marketplace/internal/usecase/schedule"
)

type scheduleGetter interface {
	Execute(ctx context.Context, businessID uint, employeeID *uint) (*scheduleuc.ScheduleView, error)
}

type scheduleUpdater interface {
	Execute(ctx context.Context, in scheduleuc.UpdateScheduleInput) (*scheduleuc.ScheduleView, error)
}

// ScheduleHandler serves the business week and, under /employees/:id, the
// week of one employee.
type ScheduleHandler struct {
	get    scheduleGetter
	update scheduleUpdater
}

func NewScheduleHandler(get scheduleGetter, update scheduleUpdater) *ScheduleHandler {
	return &ScheduleHandler{get: get, update: update}
}

type ScheduleUpdateRequest struct {
	Days domain.WeeklySchedule `json:"days" binding:"required"`
}

func (h *ScheduleHandler) owner(c *gin.Context) (*uint, bool) {
	if c.Param("id") == "" {
		return nil, true
	}
	id, ok := idParam(c, "id")
	if !ok {
		return nil, false
	}
	return &id, true
}

func (h *ScheduleHandler) Get(c *gin.Context) {
	employeeID, ok := h.owner(c)
	if !ok {
		return
	}

	view, err := h.get.Execute(c.Request.Context(), middleware.BusinessID(c), employeeID)
	if err != nil {
		httperr.FromError(c, err, "failed_to_get_schedule")
		return
	}

	httpresp.OK(c, view)
}

func (h *ScheduleHandler) Update(c *gin.Context) {
	employeeID, ok := h.owner(c)
	if !ok {
		return
	}

	var req ScheduleUpdateRequest
	if !bindJSON(c, &req) {
		return
	}

	view, err := h.update.Execute(c.Request.Context(), scheduleuc.UpdateScheduleInput{
		BusinessID: middleware.BusinessID(c),
		EmployeeID: employeeID,
		UserID:     actor(c),
		Days:       req.Days,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_save_schedule")
		return
	}

	httpresp.OK(c, view)
}
