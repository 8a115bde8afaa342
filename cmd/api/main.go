package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/straye-as/sales-crm-api/docs"
	"github.com/straye-as/sales-crm-api/internal/auth"
	"github.com/straye-as/sales-crm-api/internal/authz"
	"github.com/straye-as/sales-crm-api/internal/config"
	"github.com/straye-as/sales-crm-api/internal/database"
	"github.com/straye-as/sales-crm-api/internal/events"
	"github.com/straye-as/sales-crm-api/internal/hierarchy"
	"github.com/straye-as/sales-crm-api/internal/http/handler"
	"github.com/straye-as/sales-crm-api/internal/http/middleware"
	"github.com/straye-as/sales-crm-api/internal/http/router"
	"github.com/straye-as/sales-crm-api/internal/jobs"
	"github.com/straye-as/sales-crm-api/internal/logger"
	"github.com/straye-as/sales-crm-api/internal/metrics"
	"github.com/straye-as/sales-crm-api/internal/repository"
	"github.com/straye-as/sales-crm-api/internal/service"
	"go.uber.org/zap"
)

// @title Straye Sales CRM API
// @version 1.0
// @description Sales pipeline visibility, activities, targets and reporting scoped by the sales org hierarchy
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@straye.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-api-key
// @description API Key for system operations
// @Security BearerAuth
// @Security ApiKeyAuth

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	switch basicCfg.App.Environment {
	case "staging":
		docs.SwaggerInfo.Host = "sales-crm-staging.straye.no"
	case "production":
		docs.SwaggerInfo.Host = "sales-crm.straye.no"
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// In development secrets come from the environment,
	// in staging/production from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Event fan-out: in-process bus for SSE and cache invalidation,
	// redis for other replicas when enabled
	bus := events.NewBus(cfg.Events.BufferSize, logger.Component(log, "events"))
	defer bus.Close()

	var m *metrics.Metrics
	var busPublisher events.Publisher = bus
	if cfg.Metrics.Enabled {
		m = metrics.New()
		busPublisher = m.CountPublished(bus)
	}

	var redisClient *redis.Client
	var redisPublisher events.Publisher
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() { _ = redisClient.Close() }()

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			// events still reach local subscribers; readiness reports the outage
			log.Warn("Redis not reachable at startup", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		cancel()
		redisPublisher = events.NewRedisPublisher(redisClient)
		log.Info("Redis event publisher enabled", zap.String("addr", cfg.Redis.Addr))
	}
	publisher := events.NewMultiPublisher(logger.Component(log, "events"), busPublisher, redisPublisher)

	// Repositories
	profileRepo := repository.NewProfileRepository(db)
	entityRepo := repository.NewEntityRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	mappingRepo := repository.NewManagerTeamRepository(db)
	opportunityRepo := repository.NewOpportunityRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	pipelineItemRepo := repository.NewPipelineItemRepository(db)
	targetRepo := repository.NewSalesTargetRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// Hierarchy snapshot shared by every request
	directory := service.NewDirectoryCache(profileRepo, cfg.Hierarchy.DirectoryCacheTTLDuration(), logger.Component(log, "directory"))
	stopWatch := directory.Watch(bus)
	defer stopWatch()

	resolver := service.NewScopeResolver(directory, hierarchy.Options{
		ManagerMode: hierarchy.ParseManagerMode(cfg.Hierarchy.ManagerMode),
	})
	authorizer := authz.MustNew()

	// Services
	visibilityService := service.NewVisibilityService(resolver, opportunityRepo, log)
	activityService := service.NewActivityService(resolver, authorizer, activityRepo, log)
	targetService := service.NewTargetService(resolver, authorizer, targetRepo, opportunityRepo, projectRepo, pipelineItemRepo, publisher, log)
	summaryService := service.NewSummaryService(resolver, authorizer, opportunityRepo, projectRepo, pipelineItemRepo, targetRepo, log)
	userService := service.NewUserService(resolver, authorizer, profileRepo, entityRepo, teamRepo, publisher, log)
	orgService := service.NewOrgService(resolver, authorizer, entityRepo, teamRepo, profileRepo, mappingRepo, publisher, log)

	// Middleware
	authMiddleware := auth.NewMiddleware(cfg, userService, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	rt := router.NewRouter(cfg, log, db, authMiddleware, rateLimiter, m, router.Handlers{
		Me:          handler.NewMeHandler(userService, visibilityService, log),
		Opportunity: handler.NewOpportunityHandler(visibilityService, log),
		Activity:    handler.NewActivityHandler(activityService, log),
		Target:      handler.NewTargetHandler(targetService, log),
		Report:      handler.NewReportHandler(summaryService, targetService, log),
		Org:         handler.NewOrgHandler(orgService, log),
		User:        handler.NewUserHandler(userService, log),
		Events:      handler.NewEventHandler(bus, log),
	})
	if redisClient != nil {
		rt.AddReadinessCheck("redis", func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	// Background jobs
	var jobObserver jobs.Observer
	if m != nil {
		jobObserver = m
	}
	scheduler := jobs.NewScheduler(logger.Component(log, "jobs"), jobObserver, cfg.Jobs.TimeoutDuration())
	if err := registerJobs(scheduler, cfg, userService, targetService, m, log); err != nil {
		return err
	}
	scheduler.Start()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		<-scheduler.Stop().Done()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		<-scheduler.Stop().Done()
		log.Info("Scheduler stopped")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// open event streams end when the bus closes
		bus.Close()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}

// registerJobs wires the periodic jobs. Gauge updates are skipped when
// metrics are disabled, the pending warning is logged either way.
func registerJobs(
	scheduler *jobs.Scheduler,
	cfg *config.Config,
	users *service.UserService,
	targets *service.TargetService,
	m *metrics.Metrics,
	log *zap.Logger,
) error {
	var gauge jobs.PendingGauge
	if m != nil {
		gauge = m
	}
	pending := jobs.NewPendingAssignmentsJob(users, gauge, log)
	if err := scheduler.AddJob(jobs.PendingAssignmentsJobName, cfg.Jobs.PendingAssignmentsSchedule, pending.Run); err != nil {
		return err
	}

	if m == nil {
		return nil
	}
	snapshot := jobs.NewAchievementSnapshotJob(targets, m, log)
	return scheduler.AddJob(jobs.AchievementSnapshotJobName, cfg.Jobs.AchievementSnapshotSchedule, snapshot.Run)
}
