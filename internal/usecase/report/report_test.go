package report

import (
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/agenda-marketplace/internal/domain/report"
	"github.com/BruksfildServices01/agenda-marketplace/internal/httperr"
	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
	"github.com/BruksfildServices01/agenda-marketplace/internal/plans"
)

type fakeSource struct {
	business models.Business
	apps     []models.Appointment
}

func (f *fakeSource) GetBusinessByID(_ context.Context, id uint) (*models.Business, error) {
	if id != f.business.ID {
		return nil, httperr.ErrBusiness("business_not_found")
	}
	b := f.business
	return &b, nil
}

func (f *fakeSource) ListForBusiness(_ context.Context, _ uint) ([]models.Appointment, error) {
	return f.apps, nil
}

type fakeCounts struct {
	start, end time.Time
	rows       []domain.StatusCount
}

func (f *fakeCounts) StatusCounts(_ context.Context, _ uint, start, end time.Time) ([]domain.StatusCount, error) {
	f.start, f.end = start, end
	return f.rows, nil
}

type memStore struct {
	key  string
	data []byte
	err  error
}

func (s *memStore) Put(_ context.Context, key, _ string, data []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.key, s.data = key, data
	return "https://files.test/" + key, nil
}

func catalog(t *testing.T) *plans.Catalog {
	t.Helper()
	c, err := plans.Default()
	require.NoError(t, err)
	return c
}

var sp, _ = time.LoadLocation("America/Sao_Paulo")

func TestGetStats(t *testing.T) {
	src := &fakeSource{business: models.Business{ID: 1, Timezone: "America/Sao_Paulo"}}
	counts := &fakeCounts{rows: []domain.StatusCount{
		{EmployeeID: 10, Status: "completed", Total: 3},
		{EmployeeID: 10, Status: "cancelled", Total: 1},
	}}
	uc := NewGetStats(src, counts)
	uc.now = func() time.Time { return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC) }

	stats, err := uc.Execute(context.Background(), 1, "")
	require.NoError(t, err)
	assert.Equal(t, "2026-03", stats.Month)
	assert.True(t, counts.start.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, sp)))
	assert.True(t, counts.end.Equal(time.Date(2026, 4, 1, 0, 0, 0, 0, sp)))
	assert.Equal(t, int64(3), stats.Totals["completed"])
	require.Len(t, stats.ByEmployee, 1)
	assert.Equal(t, int64(4), stats.ByEmployee[0].Total)

	stats, err = uc.Execute(context.Background(), 1, "2025-12")
	require.NoError(t, err)
	assert.True(t, counts.end.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, sp)))
	assert.Equal(t, "2025-12", stats.Month)

	_, err = uc.Execute(context.Background(), 1, "march")
	assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))
}

func TestExportAppointments(t *testing.T) {
	customer := &models.Customer{Name: "Joao", Phone: "+551199"}
	src := &fakeSource{
		business: models.Business{ID: 1, Timezone: "America/Sao_Paulo", Plan: "business"},
		apps: []models.Appointment{
			{Reference: "in-march", Date: time.Date(2026, 3, 3, 13, 0, 0, 0, time.UTC), DurationMinutes: 30, Status: "completed",
				Employee: models.Employee{Name: "Ana"}, Service: models.Service{Name: "Corte", Price: 50}, Customer: customer},
			// 2026-04-01 00:30 local, outside March.
			{Reference: "in-april", Date: time.Date(2026, 4, 1, 3, 30, 0, 0, time.UTC), DurationMinutes: 30, Status: "pending"},
		},
	}
	store := &memStore{}
	uc := NewExportAppointments(src, catalog(t), store, nil)

	res, err := uc.Execute(context.Background(), 1, nil, "2026-03")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rows)
	assert.True(t, strings.HasPrefix(store.key, "exports/1/appointments-2026-03-"))
	assert.Equal(t, "https://files.test/"+store.key, res.URL)

	records, err := csv.NewReader(strings.NewReader(string(store.data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "in-march", records[1][0])
	assert.Equal(t, "10:00", records[1][2])
}

func TestExportAppointments_Gated(t *testing.T) {
	src := &fakeSource{business: models.Business{ID: 1, Plan: "pro"}}
	ctx := context.Background()

	_, err := NewExportAppointments(src, catalog(t), &memStore{}, nil).Execute(ctx, 1, nil, "")
	assert.True(t, httperr.IsBusiness(err, "feature_not_in_plan"))

	src.business.Plan = "business"
	_, err = NewExportAppointments(src, catalog(t), nil, nil).Execute(ctx, 1, nil, "")
	assert.True(t, httperr.IsBusiness(err, "export_unconfigured"))

	_, err = NewExportAppointments(src, catalog(t), &memStore{err: errors.New("s3 down")}, nil).Execute(ctx, 1, nil, "")
	require.Error(t, err)
	assert.Equal(t, "", httperr.CodeOf(err))
}
