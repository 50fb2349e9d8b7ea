package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/BruksfildServices01/agenda-marketplace/internal/audit"
	"github.com/BruksfildServices01/agenda-marketplace/internal/config"
	dbpkg "github.com/BruksfildServices01/agenda-marketplace/internal/db"
	"github.com/BruksfildServices01/agenda-marketplace/internal/infra/cache"
	"github.com/BruksfildServices01/agenda-marketplace/internal/infra/email"
	"github.com/BruksfildServices01/agenda-marketplace/internal/infra/events"
	"github.com/BruksfildServices01/agenda-marketplace/internal/infra/push"
	infraRepo "github.com/BruksfildServices01/agenda-marketplace/internal/infra/repository"
	"github.com/BruksfildServices01/agenda-marketplace/internal/infra/storage"
	"github.com/BruksfildServices01/agenda-marketplace/internal/logging"
	"github.com/BruksfildServices01/agenda-marketplace/internal/metrics"
	"github.com/BruksfildServices01/agenda-marketplace/internal/notification"
	"github.com/BruksfildServices01/agenda-marketplace/internal/plans"
	"github.com/BruksfildServices01/agenda-marketplace/internal/routes"
	"github.com/BruksfildServices01/agenda-marketplace/internal/telemetry"
	"github.com/BruksfildServices01/agenda-marketplace/internal/timezone"
	ucCustomer "github.com/BruksfildServices01/agenda-marketplace/internal/usecase/customer"
	"github.com/BruksfildServices01/agenda-marketplace/internal/validators"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.ServiceName, cfg.LogLevel)
	timezone.SetDefault(cfg.DefaultTimezone)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		logger.Error("tracing setup failed", "err", err)
		os.Exit(1)
	}

	db, err := dbpkg.NewDB(cfg, logger)
	if err != nil {
		logger.Error("database unavailable", "err", err)
		os.Exit(1)
	}

	rdb, err := cache.NewRedis(ctx, cfg)
	if err != nil {
		logger.Warn("redis unavailable, running without cache and rate limit", "err", err)
		rdb = nil
	}

	catalog, err := plans.Default()
	if err != nil {
		logger.Error("plan catalog invalid", "err", err)
		os.Exit(1)
	}

	templates, err := email.DefaultTemplates()
	if err != nil {
		logger.Error("email templates invalid", "err", err)
		os.Exit(1)
	}

	m := metrics.New(cfg.ServiceName)

	// ======================================================
	// BACKGROUND WORKERS
	// ======================================================
	auditDispatcher := audit.NewDispatcher(audit.New(db), logger, cfg.NotificationBuffer)

	var mailer email.Sender = email.NoopSender{}
	if cfg.SMTPHost != "" {
		mailer = email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom)
	}
	var pusher push.Sender = push.NoopSender{}
	if cfg.PushRelayURL != "" {
		pusher = push.NewRelaySender(cfg.PushRelayURL, cfg.PushRelayToken)
	}

	notificationRepo := infraRepo.NewNotificationGormRepository(db)
	notifier := notification.NewNotifier(notification.Options{
		Store:     notificationRepo,
		Catalog:   catalog,
		Templates: templates,
		Mailer:    mailer,
		Pusher:    pusher,
		Logger:    logger,
		Buffer:    cfg.NotificationBuffer,
	})

	publisherDone := make(chan struct{})
	if writer := events.NewKafkaWriter(cfg.KafkaBrokers); writer != nil {
		publisher := events.NewPublisher(notificationRepo, writer, logger, events.PublisherConfig{
			Topic:     cfg.KafkaTopic,
			PollEvery: cfg.EventPollInterval,
			BatchSize: cfg.EventPublishBatch,
		})
		go func() {
			defer close(publisherDone)
			defer writer.Close()
			publisher.Run(ctx)
		}()
	} else {
		logger.Info("kafka not configured, outbox kept in database only")
		close(publisherDone)
	}

	// ======================================================
	// OPTIONAL INTEGRATIONS
	// ======================================================
	gateways, primary := buildGateways(cfg, logger)

	var store storage.Store
	if s3 := storage.NewS3Store(cfg); s3 != nil {
		store = s3
	}

	var emails ucCustomer.EmailChecker
	if cfg.ValidateEmailDomain {
		emails = validators.NewEmailChecker(nil)
	}

	// ======================================================
	// HTTP
	// ======================================================
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Redis:    rdb,
		Metrics:  m,
		Catalog:  catalog,
		Audit:    auditDispatcher,
		Notifier: notifier,
		Emails:   emails,
		Store:    store,
		Gateways: gateways,
		Gateway:  primary,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           otelhttp.NewHandler(r, cfg.ServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server running", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "err", err)
	}
	<-publisherDone
	notifier.Close()
	auditDispatcher.Close()
	if rdb != nil {
		_ = rdb.Close()
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("tracing flush", "err", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
