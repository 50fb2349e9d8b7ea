package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/agenda-marketplace/internal/audit"
	domain "github.com/BruksfildServices01/agenda-marketplace/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-marketplace/internal/httperr"
	"github.com/BruksfildServices01/agenda-marketplace/internal/infra/storage"
	"github.com/BruksfildServices01/agenda-marketplace/internal/plans"
	"github.com/BruksfildServices01/agenda-marketplace/internal/timezone"
)

type ExportResult struct {
	Month string `json:"month"`
	Rows  int    `json:"rows"`
	URL   string `json:"url"`
}

type ExportAppointments struct {
	repo    AppointmentSource
	catalog *plans.Catalog
	store   storage.Store
	audit   *audit.Dispatcher
	now     func() time.Time
}

// NewExportAppointments takes a nil store when no bucket is configured.
func NewExportAppointments(
	repo AppointmentSource,
	catalog *plans.Catalog,
	store storage.Store,
	audit *audit.Dispatcher,
) *ExportAppointments {
	return &ExportAppointments{
		repo:    repo,
		catalog: catalog,
		store:   store,
		audit:   audit,
		now:     time.Now,
	}
}

// Execute renders one month of appointments as CSV, uploads it and returns a
// short-lived download link.
func (uc *ExportAppointments) Execute(
	ctx context.Context,
	businessID uint,
	userID *uint,
	month string,
) (*ExportResult, error) {

	biz, err := uc.repo.GetBusinessByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if !uc.catalog.For(biz.Plan).Has(plans.FeatureExport) {
		return nil, httperr.ErrBusinessDetail("feature_not_in_plan", plans.FeatureExport)
	}
	if uc.store == nil {
		return nil, httperr.ErrBusiness("export_unconfigured")
	}

	start, end, err := monthRange(biz.Timezone, month, uc.now())
	if err != nil {
		return nil, err
	}

	all, err := uc.repo.ListForBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	apps := domain.Filter{From: start, To: end}.Apply(all)

	var buf bytes.Buffer
	if err := storage.WriteAppointmentsCSV(&buf, apps, timezone.Location(biz.Timezone)); err != nil {
		return nil, fmt.Errorf("render export: %w", err)
	}

	label := start.Format("2006-01")
	key := fmt.Sprintf("exports/%d/appointments-%s-%s.csv", businessID, label, uuid.NewString())

	url, err := uc.store.Put(ctx, key, "text/csv", buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("upload export: %w", err)
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			BusinessID: businessID,
			UserID:     userID,
			Action:     "report.exported",
			Entity:     "report",
			Metadata:   map[string]any{"month": label, "rows": len(apps)},
		})
	}

	return &ExportResult{Month: label, Rows: len(apps), URL: url}, nil
}
