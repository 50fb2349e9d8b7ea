package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agenda-marketplace/internal/audit"
	"github.com/BruksfildServices01/agenda-marketplace/internal/httperr"
	"github.com/BruksfildServices01/agenda-marketplace/internal/httpresp"
	"github.com/BruksfildServices01/agenda-marketplace/internal/middleware"
	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
)

type auditLister interface {
	List(ctx context.Context, businessID uint, f audit.Filter) ([]models.AuditLog, int64, error)
}

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs auditLister
}

func NewAuditLogsHandler(logs auditLister) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	f := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Page:   page,
		Limit:  limit,
	}

	// --------------------------------------------------
	// Date range (to is inclusive for the caller)
	// --------------------------------------------------

	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_from", "Invalid from date (YYYY-MM-DD).")
			return
		}
		f.From = from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_to", "Invalid to date (YYYY-MM-DD).")
			return
		}
		f.To = to.AddDate(0, 0, 1)
	}

	f = f.Normalize()

	logs, total, err := h.logs.List(c.Request.Context(), middleware.BusinessID(c), f)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Failed to list audit logs.")
		return
	}

	httpresp.Page(c, logs, f.Page, f.Limit, total)
}
