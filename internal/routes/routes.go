package routes

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda-marketplace/internal/audit"
	"github.com/BruksfildServices01/agenda-marketplace/internal/config"
	domainschedule "github.com/BruksfildServices01/agenda-marketplace/internal/domain/schedule"
	"github.com/BruksfildServices01/agenda-marketplace/internal/handlers"
	"github.com/BruksfildServices01/agenda-marketplace/internal/infra/cache"
	"github.com/BruksfildServices01/agenda-marketplace/internal/infra/payment"
	infraRepo "github.com/BruksfildServices01/agenda-marketplace/internal/infra/repository"
	"github.com/BruksfildServices01/agenda-marketplace/internal/infra/storage"
	"github.com/BruksfildServices01/agenda-marketplace/internal/metrics"
	"github.com/BruksfildServices01/agenda-marketplace/internal/middleware"
	"github.com/BruksfildServices01/agenda-marketplace/internal/plans"
	ucAppointment "github.com/BruksfildServices01/agenda-marketplace/internal/usecase/appointment"
	ucBilling "github.com/BruksfildServices01/agenda-marketplace/internal/usecase/billing"
	ucBusiness "github.com/BruksfildServices01/agenda-marketplace/internal/usecase/business"
	ucCustomer "github.com/BruksfildServices01/agenda-marketplace/internal/usecase/customer"
	ucReport "github.com/BruksfildServices01/agenda-marketplace/internal/usecase/report"
	ucSchedule "github.com/BruksfildServices01/agenda-marketplace/internal/usecase/schedule"
)

// Deps carries the process-wide singletons built in main. Optional
// collaborators (Redis, Store, Emails, entries of Gateways) are nil when not
// configured.
type Deps struct {
	Config   *config.Config
	Logger   *slog.Logger
	DB       *gorm.DB
	Redis    *redis.Client
	Metrics  *metrics.Metrics
	Catalog  *plans.Catalog
	Audit    *audit.Dispatcher
	Notifier ucAppointment.Notifier
	Emails   ucCustomer.EmailChecker
	Store    storage.Store

	// Gateways is keyed by provider name; Gateway is the one used for checkout.
	Gateways map[string]payment.Gateway
	Gateway  payment.Gateway
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(d.Metrics.Middleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	businessRepo := infraRepo.NewBusinessGormRepository(d.DB)
	customerRepo := infraRepo.NewCustomerGormRepository(d.DB)
	scheduleRepo := infraRepo.NewScheduleGormRepository(d.DB)
	billingRepo := infraRepo.NewBillingGormRepository(d.DB)
	notificationRepo := infraRepo.NewNotificationGormRepository(d.DB)
	reportRepo := infraRepo.NewReportRepository(d.DB)
	auditLogger := audit.New(d.DB)

	var scheduleCache domainschedule.Cache = cache.NoopScheduleCache{}
	var publicLimiter middleware.Limiter
	if d.Redis != nil {
		scheduleCache = cache.NewScheduleCache(d.Redis, cfg.ScheduleCacheTTL, d.Logger)
		publicLimiter = cache.NewFixedWindowLimiter(d.Redis, cfg.PublicRateLimit, cfg.PublicRateWindow, "rl:public")
	}

	urls := ucBilling.URLs{
		Success: cfg.CheckoutSuccessURL,
		Cancel:  cfg.CheckoutCancelURL,
		Return:  cfg.PortalReturnURL,
	}

	// ======================================================
	// USE CASES
	// ======================================================
	createCustomerUC := ucCustomer.NewCreateCustomer(customerRepo, d.Emails, d.Audit)
	events := ucAppointment.NewEvents(d.Notifier, d.Audit, d.Metrics, d.Logger)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		customerRepo,
		createCustomerUC,
		d.Catalog,
		events,
	)
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)

	getProfileUC := ucBusiness.NewGetProfile(businessRepo)
	listEmployeesUC := ucBusiness.NewListEmployees(businessRepo)
	listServicesUC := ucBusiness.NewListServices(businessRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(handlers.AppointmentUseCases{
		Create:        createAppointmentUC,
		Transition:    ucAppointment.NewTransitionAppointment(appointmentRepo, events),
		Reschedule:    ucAppointment.NewRescheduleAppointment(appointmentRepo, events),
		List:          ucAppointment.NewListAppointments(appointmentRepo),
		Get:           ucAppointment.NewGetAppointment(appointmentRepo),
		Availability:  availabilityUC,
		Notifications: notificationRepo,
	})

	publicHandler := handlers.NewPublicHandler(handlers.PublicDeps{
		Businesses:   businessRepo,
		Status:       ucSchedule.NewGetPublicStatus(scheduleRepo, scheduleCache),
		Services:     listServicesUC,
		Employees:    listEmployeesUC,
		Availability: availabilityUC,
		Create:       createAppointmentUC,
	})

	meHandler := handlers.NewMeHandler(getProfileUC, d.Catalog)
	businessHandler := handlers.NewBusinessHandler(
		getProfileUC,
		ucBusiness.NewUpdateProfile(businessRepo, scheduleCache, d.Audit),
	)
	employeeHandler := handlers.NewEmployeeHandler(
		listEmployeesUC,
		ucBusiness.NewSaveEmployee(businessRepo, d.Catalog, d.Audit),
	)
	serviceHandler := handlers.NewServiceHandler(
		listServicesUC,
		ucBusiness.NewSaveService(businessRepo, d.Audit),
	)
	scheduleHandler := handlers.NewScheduleHandler(
		ucSchedule.NewGetSchedule(scheduleRepo),
		ucSchedule.NewUpdateSchedule(scheduleRepo, scheduleCache, d.Audit),
	)
	customerHandler := handlers.NewCustomerHandler(
		ucCustomer.NewListCustomers(customerRepo),
		ucCustomer.NewGetCustomer(customerRepo),
		createCustomerUC,
	)
	billingHandler := handlers.NewBillingHandler(
		ucBilling.NewGetOverview(billingRepo, d.Catalog),
		ucBilling.NewStartCheckout(billingRepo, d.Catalog, d.Gateway, urls, cfg.GatewayTimeout),
		ucBilling.NewOpenPortal(billingRepo, d.Gateways, urls, cfg.GatewayTimeout),
	)
	webhookHandler := handlers.NewWebhookHandler(
		ucBilling.NewHandleWebhook(billingRepo, d.Catalog, d.Gateways, d.Audit, d.Metrics, d.Logger),
	)
	reportHandler := handlers.NewReportHandler(
		ucReport.NewGetStats(businessRepo, reportRepo),
		ucReport.NewExportAppointments(appointmentRepo, d.Catalog, d.Store, d.Audit),
	)
	auditLogsHandler := handlers.NewAuditLogsHandler(auditLogger)
	pushTokenHandler := handlers.NewPushTokenHandler(notificationRepo)

	checks := map[string]handlers.Pinger{
		"database": handlers.PingFunc(func(ctx context.Context) error {
			sqlDB, err := d.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
	}
	if d.Redis != nil {
		checks["redis"] = handlers.PingFunc(func(ctx context.Context) error {
			return d.Redis.Ping(ctx).Err()
		})
	}
	healthHandler := handlers.NewHealthHandler(checks)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", healthHandler.Live)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public/:slug")
		publicAPI.Use(middleware.RateLimit(publicLimiter, d.Logger))
		{
			publicAPI.GET("", publicHandler.Business)
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.GET("/employees", publicHandler.ListEmployees)
			publicAPI.GET("/availability", publicHandler.Availability)
			publicAPI.POST("/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// PROVIDER WEBHOOKS
		// ------------------------------
		api.POST("/webhooks/:provider", webhookHandler.Receive)

		// ------------------------------
		// PRIVATE (owner and employees)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.POST("/me/push-tokens", pushTokenHandler.Register)
			secured.DELETE("/me/push-tokens", pushTokenHandler.Delete)

			secured.GET("/appointments", appointmentHandler.List)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments/availability", appointmentHandler.Availability)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.GET("/appointments/:id/notifications", appointmentHandler.Notifications)
			secured.PATCH("/appointments/:id/status", appointmentHandler.Transition)
			secured.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)

			secured.GET("/customers", customerHandler.List)
			secured.POST("/customers", customerHandler.Create)
			secured.GET("/customers/:id", customerHandler.Get)

			secured.GET("/employees", employeeHandler.List)
			secured.GET("/services", serviceHandler.List)
			secured.GET("/schedule", scheduleHandler.Get)
			secured.GET("/employees/:id/schedule", scheduleHandler.Get)

			// ------------------------------
			// OWNER ONLY
			// ------------------------------
			owner := secured.Group("/")
			owner.Use(middleware.RequireRole(middleware.RoleOwner))
			{
				owner.GET("/business", businessHandler.Get)
				owner.PATCH("/business", businessHandler.Update)

				owner.POST("/employees", employeeHandler.Create)
				owner.PATCH("/employees/:id", employeeHandler.Update)
				owner.PUT("/employees/:id/schedule", scheduleHandler.Update)

				owner.POST("/services", serviceHandler.Create)
				owner.PATCH("/services/:id", serviceHandler.Update)

				owner.PUT("/schedule", scheduleHandler.Update)

				owner.GET("/billing", billingHandler.Overview)
				owner.POST("/billing/checkout", billingHandler.Checkout)
				owner.POST("/billing/portal", billingHandler.Portal)

				owner.GET("/reports/stats", reportHandler.Stats)
				owner.POST("/reports/export", reportHandler.Export)

				owner.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
