package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	domainbiz "github.com/BruksfildServices01/agenda-marketplace/internal/domain/business"
	"github.com/BruksfildServices01/agenda-marketplace/internal/httperr"
	"github.com/BruksfildServices01/agenda-marketplace/internal/httpresp"
	"github.com/BruksfildServices01/agenda-marketplace/internal/middleware"
	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
	businessuc "github.com/BruksfildServices01/agenda-marketplace/internal/usecase/business"
)

type serviceSaver interface {
	Execute(ctx context.Context, in businessuc.ServiceInput) (*models.Service, error)
}

type ServiceHandler struct {
	list serviceLister
	save serviceSaver
}

func NewServiceHandler(list serviceLister, save serviceSaver) *ServiceHandler {
	return &ServiceHandler{list: list, save: save}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	DurationMin int     `json:"duration_min" binding:"required,min=1"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	DurationMin *int     `json:"duration_min,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	f := domainbiz.ServiceFilter{
		Category: c.Query("category"),
		Query:    c.Query("query"),
	}
	switch c.Query("active") {
	case "true":
		active := true
		f.Active = &active
	case "false":
		active := false
		f.Active = &active
	}

	list, err := h.list.Execute(c.Request.Context(), middleware.BusinessID(c), f)
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_services")
		return
	}

	httpresp.List(c, list)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.save.Execute(c.Request.Context(), businessuc.ServiceInput{
		BusinessID:  middleware.BusinessID(c),
		UserID:      actor(c),
		Name:        &req.Name,
		Description: &req.Description,
		DurationMin: &req.DurationMin,
		Price:       &req.Price,
		Category:    &req.Category,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_create_service")
		return
	}

	httpresp.Created(c, s)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := h.save.Execute(c.Request.Context(), businessuc.ServiceInput{
		BusinessID:  middleware.BusinessID(c),
		ServiceID:   id,
		UserID:      actor(c),
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		Price:       req.Price,
		Category:    req.Category,
		Active:      req.Active,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_update_service")
		return
	}

	httpresp.OK(c, s)
}
