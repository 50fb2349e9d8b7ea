package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agenda-marketplace/internal/httperr"
	"github.com/BruksfildServices01/agenda-marketplace/internal/httpresp"
	"github.com/BruksfildServices01/agenda-marketplace/internal/middleware"
	reportuc "github.com/BruksfildServices01/agenda-marketplace/internal/usecase/report"
)

type statsGetter interface {
	Execute(ctx context.Context, businessID uint, month string) (*reportuc.Stats, error)
}

type appointmentExporter interface {
	Execute(ctx context.Context, businessID uint, userID *uint, month string) (*reportuc.ExportResult, error)
}

type ReportHandler struct {
	stats  statsGetter
	export appointmentExporter
}

func NewReportHandler(stats statsGetter, export appointmentExporter) *ReportHandler {
	return &ReportHandler{stats: stats, export: export}
}

type ExportRequest struct {
	Month string `json:"month"`
}

// Stats answers GET /reports/stats?month=YYYY-MM; no month means the current one.
func (h *ReportHandler) Stats(c *gin.Context) {
	stats, err := h.stats.Execute(c.Request.Context(), middleware.BusinessID(c), c.Query("month"))
	if err != nil {
		httperr.FromError(c, err, "failed_to_get_stats")
		return
	}

	httpresp.OK(c, stats)
}

func (h *ReportHandler) Export(c *gin.Context) {
	var req ExportRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	if req.Month == "" {
		req.Month = c.Query("month")
	}

	res, err := h.export.Execute(c.Request.Context(), middleware.BusinessID(c), actor(c), req.Month)
	if err != nil {
		httperr.FromError(c, err, "failed_to_export")
		return
	}

	httpresp.Created(c, res)
}
