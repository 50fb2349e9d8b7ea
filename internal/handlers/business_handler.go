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

type profileGetter interface {
	Execute(ctx context.Context, businessID uint) (*models.Business, error)
}

type profileUpdater interface {
	Execute(ctx context.Context, in businessuc.UpdateProfileInput) (*models.Business, error)
}

type BusinessHandler struct {
	get    profileGetter
	update profileUpdater
}

func NewBusinessHandler(get profileGetter, update profileUpdater) *BusinessHandler {
	return &BusinessHandler{get: get, update: update}
}

type UpdateBusinessRequest struct {
	Name              *string `json:"name"`
	Category          *string `json:"category"`
	Phone             *string `json:"phone"`
	Email             *string `json:"email"`
	Address           *string `json:"address"`
	Timezone          *string `json:"timezone"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes"`
	SlotStepMinutes   *int    `json:"slot_step_minutes"`
}

func (h *BusinessHandler) Get(c *gin.Context) {
	b, err := h.get.Execute(c.Request.Context(), middleware.BusinessID(c))
	if err != nil {
		httperr.FromError(c, err, "failed_to_get_business")
		return
	}

	httpresp.OK(c, b)
}

func (h *BusinessHandler) Update(c *gin.Context) {
	var req UpdateBusinessRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.update.Execute(c.Request.Context(), businessuc.UpdateProfileInput{
		BusinessID:        middleware.BusinessID(c),
		UserID:            actor(c),
		Name:              req.Name,
		Category:          req.Category,
		Phone:             req.Phone,
		Email:             req.Email,
		Address:           req.Address,
		Timezone:          req.Timezone,
		MinAdvanceMinutes: req.MinAdvanceMinutes,
		SlotStepMinutes:   req.SlotStepMinutes,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_update_business")
		return
	}

	httpresp.OK(c, b)
}
