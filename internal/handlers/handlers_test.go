package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/agenda-marketplace/internal/audit"
	"github.com/BruksfildServices01/agenda-marketplace/internal/dto"
	"github.com/BruksfildServices01/agenda-marketplace/internal/httperr"
	"github.com/BruksfildServices01/agenda-marketplace/internal/middleware"
	"github.com/BruksfildServices01/agenda-marketplace/internal/models"
	"github.com/BruksfildServices01/agenda-marketplace/internal/usecase/appointment"
	billinguc "github.com/BruksfildServices01/agenda-marketplace/internal/usecase/billing"
	customeruc "github.com/BruksfildServices01/agenda-marketplace/internal/usecase/customer"
)

// ======================================================
// HELPERS
// ======================================================

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// asUser stands in for AuthMiddleware.
func asUser(userID, businessID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextBusinessID, businessID)
		c.Set(middleware.ContextUserRole, middleware.RoleOwner)
		c.Next()
	}
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ======================================================
// STUBS
// ======================================================

type stubCreate struct {
	got appointment.CreateAppointmentInput
	err error
}

func (s *stubCreate) Execute(_ context.Context, in appointment.CreateAppointmentInput) (*models.Appointment, error) {
	s.got = in
	if s.err != nil {
		return nil, s.err
	}
	return &models.Appointment{
		ID:              7,
		BusinessID:      in.BusinessID,
		EmployeeID:      in.EmployeeID,
		Date:            time.Date(2026, 3, 3, 13, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
		Status:          "pending",
	}, nil
}

type stubTransition struct{ err error }

func (s *stubTransition) Execute(_ context.Context, in appointment.TransitionInput) (*models.Appointment, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Appointment{ID: in.AppointmentID, Status: in.Status}, nil
}

type stubAvailability struct {
	got appointment.AvailabilityInput
}

func (s *stubAvailability) Execute(_ context.Context, in appointment.AvailabilityInput) ([]dto.TimeSlotDTO, error) {
	s.got = in
	return []dto.TimeSlotDTO{{Start: "09:00", End: "09:30"}}, nil
}

type stubBusinesses struct{}

func (stubBusinesses) GetBusinessBySlug(_ context.Context, slug string) (*models.Business, error) {
	if slug != "studio" {
		return nil, httperr.ErrBusiness("business_not_found")
	}
	return &models.Business{ID: 4, Slug: slug, Timezone: "America/Sao_Paulo"}, nil
}

type stubWebhook struct {
	provider string
	body     string
	err      error
}

func (s *stubWebhook) Execute(_ context.Context, provider string, body []byte, _ http.Header) (*billinguc.WebhookResult, error) {
	s.provider = provider
	s.body = string(body)
	if s.err != nil {
		return nil, s.err
	}
	return &billinguc.WebhookResult{Outcome: billinguc.OutcomeDuplicate, EventID: "evt_1"}, nil
}

type stubCustomerCreate struct{ created bool }

func (s stubCustomerCreate) Execute(_ context.Context, in customeruc.CreateCustomerInput) (*models.Customer, bool, error) {
	return &models.Customer{ID: 30, BusinessID: in.BusinessID, Name: in.Name}, s.created, nil
}

type stubAuditLogs struct{ got audit.Filter }

func (s *stubAuditLogs) List(_ context.Context, _ uint, f audit.Filter) ([]models.AuditLog, int64, error) {
	s.got = f
	return nil, 0, nil
}

// ======================================================
// APPOINTMENTS
// ======================================================

func TestAppointmentHandler_Create(t *testing.T) {
	create := &stubCreate{}
	h := NewAppointmentHandler(AppointmentUseCases{Create: create})

	r := newRouter()
	r.POST("/appointments", asUser(3, 9), h.Create)

	w := do(r, http.MethodPost, "/appointments",
		`{"employee_id":10,"service_id":20,"date":"2026-03-03","time":"10:00"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, uint(9), create.got.BusinessID)
	require.NotNil(t, create.got.UserID)
	assert.Equal(t, uint(3), *create.got.UserID)
	assert.False(t, create.got.Public)
}

func TestAppointmentHandler_CreateErrors(t *testing.T) {
	create := &stubCreate{err: httperr.ErrBusiness("time_conflict")}
	h := NewAppointmentHandler(AppointmentUseCases{Create: create})

	r := newRouter()
	r.POST("/appointments", asUser(3, 9), h.Create)

	t.Run("business error keeps its code", func(t *testing.T) {
		w := do(r, http.MethodPost, "/appointments",
			`{"employee_id":10,"service_id":20,"date":"2026-03-03","time":"10:00"}`)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), `"error_code":"time_conflict"`)
	})

	t.Run("missing fields", func(t *testing.T) {
		w := do(r, http.MethodPost, "/appointments", `{"employee_id":10}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid_request")
	})

	t.Run("unexpected error is a 500", func(t *testing.T) {
		create.err = errors.New("db down")
		w := do(r, http.MethodPost, "/appointments",
			`{"employee_id":10,"service_id":20,"date":"2026-03-03","time":"10:00"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "failed_to_create_appointment")
	})
}

func TestAppointmentHandler_Transition(t *testing.T) {
	tr := &stubTransition{}
	h := NewAppointmentHandler(AppointmentUseCases{Transition: tr})

	r := newRouter()
	r.PATCH("/appointments/:id/status", asUser(3, 9), h.Transition)

	w := do(r, http.MethodPatch, "/appointments/abc/status", `{"status":"completed"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_id")

	w = do(r, http.MethodPatch, "/appointments/5/status", `{"status":"completed"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	tr.err = httperr.ErrBusiness("invalid_transition")
	w = do(r, http.MethodPatch, "/appointments/5/status", `{"status":"pending"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAppointmentHandler_AvailabilityRequiresDateAndService(t *testing.T) {
	av := &stubAvailability{}
	h := NewAppointmentHandler(AppointmentUseCases{Availability: av})

	r := newRouter()
	r.GET("/availability", asUser(3, 9), h.Availability)

	w := do(r, http.MethodGet, "/availability?date=2026-03-03", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/availability?date=2026-03-03&service_id=x", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_service_id")

	w = do(r, http.MethodGet, "/availability?date=2026-03-03&service_id=20", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(0), av.got.EmployeeID)
	assert.Contains(t, w.Body.String(), `"start":"09:00"`)
}

// ======================================================
// PUBLIC
// ======================================================

func publicRouter(create *stubCreate, av *stubAvailability) *gin.Engine {
	h := NewPublicHandler(PublicDeps{
		Businesses:   stubBusinesses{},
		Availability: av,
		Create:       create,
	})
	r := newRouter()
	r.GET("/public/:slug/availability", h.Availability)
	r.POST("/public/:slug/appointments", h.CreateAppointment)
	return r
}

func TestPublicHandler_CreateAppointment(t *testing.T) {
	create := &stubCreate{}
	r := publicRouter(create, &stubAvailability{})

	body := `{"employee_id":10,"service_id":20,"customer_name":"Carla","customer_phone":"11 99999-0000","date":"2026-03-03","time":"10:00"}`

	w := do(r, http.MethodPost, "/public/unknown/appointments", body)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodPost, "/public/studio/appointments", body)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, create.got.Public)
	assert.Equal(t, uint(4), create.got.BusinessID)
	assert.Nil(t, create.got.UserID)
	// 13:00 UTC is 10:00 in Sao Paulo.
	assert.Contains(t, w.Body.String(), `"time":"10:00"`)
}

func TestPublicHandler_CreateAppointmentRequiresCustomerName(t *testing.T) {
	r := publicRouter(&stubCreate{}, &stubAvailability{})

	w := do(r, http.MethodPost, "/public/studio/appointments",
		`{"employee_id":10,"service_id":20,"date":"2026-03-03","time":"10:00"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPublicHandler_AvailabilityNeedsEmployee(t *testing.T) {
	av := &stubAvailability{}
	r := publicRouter(&stubCreate{}, av)

	w := do(r, http.MethodGet, "/public/studio/availability?date=2026-03-03&service_id=20", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodGet, "/public/studio/availability?date=2026-03-03&service_id=20&employee_id=10", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(4), av.got.BusinessID)
	assert.Equal(t, uint(10), av.got.EmployeeID)
}

// ======================================================
// CUSTOMERS
// ======================================================

func TestCustomerHandler_CreateReportsExisting(t *testing.T) {
	for _, tc := range []struct {
		created bool
		status  int
	}{
		{true, http.StatusCreated},
		{false, http.StatusOK},
	} {
		h := NewCustomerHandler(nil, nil, stubCustomerCreate{created: tc.created})
		r := newRouter()
		r.POST("/customers", asUser(3, 9), h.Create)

		w := do(r, http.MethodPost, "/customers", `{"name":"Carla","phone":"11999990000"}`)
		assert.Equal(t, tc.status, w.Code)
	}
}

// ======================================================
// AUDIT LOGS
// ======================================================

func TestAuditLogsHandler_Filter(t *testing.T) {
	logs := &stubAuditLogs{}
	h := NewAuditLogsHandler(logs)
	r := newRouter()
	r.GET("/audit-logs", asUser(3, 9), h.List)

	w := do(r, http.MethodGet, "/audit-logs?action=appointment.created&from=2026-03-01&to=2026-03-02&limit=500", "")
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "appointment.created", logs.got.Action)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), logs.got.From)
	assert.Equal(t, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), logs.got.To)
	assert.Equal(t, 50, logs.got.Limit)
	assert.JSONEq(t, `{"data":[],"page":1,"limit":50,"total":0}`, w.Body.String())

	w = do(r, http.MethodGet, "/audit-logs?from=03/01/2026", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ======================================================
// WEBHOOKS
// ======================================================

func TestWebhookHandler_Receive(t *testing.T) {
	wh := &stubWebhook{}
	h := NewWebhookHandler(wh)
	r := newRouter()
	r.POST("/webhooks/:provider", h.Receive)

	w := do(r, http.MethodPost, "/webhooks/stripe", `{"id":"evt_1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "stripe", wh.provider)
	assert.Equal(t, `{"id":"evt_1"}`, wh.body)
	assert.JSONEq(t, `{"status":"duplicate","event_id":"evt_1"}`, w.Body.String())

	wh.err = httperr.ErrBusiness("invalid_signature")
	w = do(r, http.MethodPost, "/webhooks/stripe", `{}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// ======================================================
// HEALTH
// ======================================================

func TestHealthHandler_Ready(t *testing.T) {
	ok := PingFunc(func(context.Context) error { return nil })
	down := PingFunc(func(context.Context) error { return errors.New("connection refused") })

	r := newRouter()
	r.GET("/ready", NewHealthHandler(map[string]Pinger{"database": ok}).Ready)
	w := do(r, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, w.Code)

	r = newRouter()
	r.GET("/ready", NewHealthHandler(map[string]Pinger{"database": ok, "redis": down}).Ready)
	w = do(r, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}
