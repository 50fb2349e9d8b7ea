package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agenda-marketplace/internal/httperr"
	"github.com/BruksfildServices01/agenda-marketplace/internal/middleware"
	"github.com/BruksfildServices01/agenda-marketplace/internal/plans"
)

// MeHandler describes the caller: identity from the token, the business it
// belongs to and the limits of its plan.
type MeHandler struct {
	business profileGetter
	catalog  *plans.Catalog
}

func NewMeHandler(business profileGetter, catalog *plans.Catalog) *MeHandler {
	return &MeHandler{business: business, catalog: catalog}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	b, err := h.business.Execute(c.Request.Context(), middleware.BusinessID(c))
	if err != nil {
		httperr.FromError(c, err, "failed_to_get_me")
		return
	}

	c.JSON(200, gin.H{
		"user": gin.H{
			"id":          middleware.UserID(c),
			"role":        middleware.Role(c),
			"business_id": b.ID,
		},
		"business": gin.H{
			"id":       b.ID,
			"name":     b.Name,
			"slug":     b.Slug,
			"timezone": b.Timezone,
		},
		"plan": h.catalog.For(b.Plan),
	})
}
