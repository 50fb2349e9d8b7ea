package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agenda-marketplace/internal/httperr"
	"github.com/BruksfildServices01/agenda-marketplace/internal/httpresp"
	"github.com/BruksfildServices01/agenda-marketplace/internal/middleware"
	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
	customeruc "github.com/BruksfildServices01/agenda-marketplace/internal/usecase/customer"
)

type customerSearcher interface {
	Execute(ctx context.Context, businessID uint, query string) ([]models.Customer, error)
}

type customerGetter interface {
	Execute(ctx context.Context, businessID, customerID uint) (*models.Customer, error)
}

type customerCreator interface {
	Execute(ctx context.Context, in customeruc.CreateCustomerInput) (*models.Customer, bool, error)
}

type CustomerHandler struct {
	search customerSearcher
	get    customerGetter
	create customerCreator
}

func NewCustomerHandler(search customerSearcher, get customerGetter, create customerCreator) *CustomerHandler {
	return &CustomerHandler{search: search, get: get, create: create}
}

type CreateCustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Notes string `json:"notes"`
}

// ======================================================
// LIST / GET
// ======================================================

func (h *CustomerHandler) List(c *gin.Context) {
	list, err := h.search.Execute(c.Request.Context(), middleware.BusinessID(c), c.Query("query"))
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_customers")
		return
	}

	httpresp.List(c, list)
}

func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	cust, err := h.get.Execute(c.Request.Context(), middleware.BusinessID(c), id)
	if err != nil {
		httperr.FromError(c, err, "failed_to_get_customer")
		return
	}

	httpresp.OK(c, cust)
}

// ======================================================
// CREATE (dedupe by phone or email)
// ======================================================

func (h *CustomerHandler) Create(c *gin.Context) {
	var req CreateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	cust, created, err := h.create.Execute(c.Request.Context(), customeruc.CreateCustomerInput{
		BusinessID: middleware.BusinessID(c),
		UserID:     actor(c),
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Notes:      req.Notes,
	})
	if err != nil {
		httperr.FromError(c, err, "failed_to_create_customer")
		return
	}

	if created {
		httpresp.Created(c, cust)
		return
	}
	httpresp.OK(c, cust)
}
