package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/term-tracker/api/swagger"
	"github.com/noah-isme/term-tracker/internal/handler"
	internalmiddleware "github.com/noah-isme/term-tracker/internal/middleware"
	"github.com/noah-isme/term-tracker/internal/reminder"
	"github.com/noah-isme/term-tracker/internal/repository"
	"github.com/noah-isme/term-tracker/internal/service"
	"github.com/noah-isme/term-tracker/pkg/cache"
	"github.com/noah-isme/term-tracker/pkg/config"
	"github.com/noah-isme/term-tracker/pkg/database"
	"github.com/noah-isme/term-tracker/pkg/export"
	"github.com/noah-isme/term-tracker/pkg/logger"
	corsmiddleware "github.com/noah-isme/term-tracker/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/term-tracker/pkg/middleware/requestid"
)

// @title Term Tracker API
// @version 1.0.0
// @description Academic terms, courses and assessments with date reminders
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewSQLite(cfg.Database)
	if err != nil {
		logr.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	store := repository.NewStore(db, logr.Named("store"))
	if err := store.Initialize(ctx); err != nil {
		logr.Fatal("failed to initialise store", zap.Error(err))
	}
	if cfg.Seed.OnStart {
		inserted, err := store.SeedOnce(ctx)
		if err != nil {
			logr.Fatal("failed to seed store", zap.Error(err))
		}
		logr.Info("seed checked", zap.Bool("inserted", inserted))
	}

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
	}

	readiness := map[string]handler.ReadinessCheck{
		"store": func(ctx context.Context) error { return db.PingContext(ctx) },
	}

	var (
		notifier reminder.Notifier = reminder.NewLogNotifier(logr.Named("reminders"))
		pending  service.PendingLister
	)
	if cfg.Reminders.Backend == config.ReminderBackendRedis {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Fatal("failed to connect redis", zap.Error(err))
		}
		defer client.Close()
		redisNotifier := reminder.NewRedisNotifier(client, cfg.Reminders.KeyPrefix)
		notifier, pending = redisNotifier, redisNotifier
		readiness["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	}

	schedulerOpts := []reminder.Option{}
	if metricsSvc != nil {
		schedulerOpts = append(schedulerOpts, reminder.WithObserver(metricsSvc))
	}
	scheduler := reminder.NewScheduler(notifier, logr.Named("scheduler"), schedulerOpts...)

	validate := validator.New()
	reminderSvc := service.NewReminderService(scheduler, pending, service.ReminderServiceConfig{
		CancelOnDelete: cfg.Reminders.CancelOnDelete,
	}, logr)

	handlers := handler.Handlers{
		Terms:       handler.NewTermHandler(service.NewTermService(store, reminderSvc, validate, logr)),
		Courses:     handler.NewCourseHandler(service.NewCourseService(store, reminderSvc, validate, logr)),
		Assessments: handler.NewAssessmentHandler(service.NewAssessmentService(store, reminderSvc, validate, logr)),
		Reports:     handler.NewReportHandler(service.NewReportService(store, export.NewCSVExporter(), export.NewPDFExporter(), logr)),
		Reminders:   handler.NewReminderHandler(reminderSvc),
	}
	if cfg.Env != config.EnvProduction {
		handlers.Admin = handler.NewAdminHandler(service.NewAdminService(store, reminderSvc, logr))
	}
	metricsHandler := handler.NewMetricsHandler(metricsSvc, readiness)
	if metricsSvc != nil {
		handlers.Metrics = metricsHandler
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	if metricsSvc != nil {
		r.GET("/metrics", metricsHandler.Prometheus)
	}
	if cfg.Docs.Enabled {
		swagger.Info.BasePath = cfg.APIPrefix
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.Register(r.Group(cfg.APIPrefix), handlers)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "reminders", cfg.Reminders.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}
