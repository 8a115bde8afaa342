package router

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/straye-as/sales-crm-api/internal/auth"
	"github.com/straye-as/sales-crm-api/internal/config"
	"github.com/straye-as/sales-crm-api/internal/database"
	"github.com/straye-as/sales-crm-api/internal/http/handler"
	"github.com/straye-as/sales-crm-api/internal/http/middleware"
	"github.com/straye-as/sales-crm-api/internal/metrics"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/straye-as/sales-crm-api/docs" // Import generated swagger docs
)

// ReadinessCheck reports whether an optional dependency is reachable
type ReadinessCheck func(ctx context.Context) error

// Handlers groups every resource handler mounted under /api/v1
type Handlers struct {
	Me          *handler.MeHandler
	Opportunity *handler.OpportunityHandler
	Activity    *handler.ActivityHandler
	Target      *handler.TargetHandler
	Report      *handler.ReportHandler
	Org         *handler.OrgHandler
	User        *handler.UserHandler
	Events      *handler.EventHandler
}

type Router struct {
	cfg            *config.Config
	logger         *zap.Logger
	db             *gorm.DB
	authMiddleware *auth.Middleware
	rateLimiter    *middleware.RateLimiter
	metrics        *metrics.Metrics
	checks         map[string]ReadinessCheck
	h              Handlers
}

// NewRouter wires the HTTP surface. metrics may be nil when disabled.
func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	m *metrics.Metrics,
	handlers Handlers,
) *Router {
	return &Router{
		cfg:            cfg,
		logger:         logger,
		db:             db,
		authMiddleware: authMiddleware,
		rateLimiter:    rateLimiter,
		metrics:        m,
		checks:         make(map[string]ReadinessCheck),
		h:              handlers,
	}
}

// AddReadinessCheck adds a named dependency to /health/ready
func (rt *Router) AddReadinessCheck(name string, check ReadinessCheck) {
	rt.checks[name] = check
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	if rt.metrics != nil {
		r.Use(middleware.Metrics(rt.metrics))
	}
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Get("/health/db", rt.databaseHealth)
	r.Get("/health/ready", rt.readiness)

	if rt.metrics != nil {
		path := rt.cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		r.Method(http.MethodGet, path, rt.metrics.Handler())
	}

	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.authMiddleware.Authenticate)
		r.Use(rt.rateLimiter.LimitByUser)

		// The event stream is long-lived and must not inherit the request timeout
		r.Get("/events", rt.h.Events.Stream)

		r.Group(func(r chi.Router) {
			r.Use(chimw.Timeout(rt.cfg.Server.RequestTimeoutDuration()))

			r.Route("/me", func(r chi.Router) {
				r.Get("/", rt.h.Me.Me)
				r.Get("/assignment", rt.h.Me.Assignment)
				r.Get("/scope", rt.h.Me.Scope)
			})

			r.Get("/opportunities", rt.h.Opportunity.List)
			r.Get("/pipeline/overview", rt.h.Opportunity.Pipeline)
			r.Get("/reps", rt.h.Opportunity.Reps)

			r.Route("/managers", func(r chi.Router) {
				r.Get("/", rt.h.Opportunity.Managers)
				r.Get("/{id}/members", rt.h.Org.ListMembers)
				r.Post("/{id}/members", rt.h.Org.AddMember)
				r.Delete("/{id}/members/{memberId}", rt.h.Org.RemoveMember)
			})

			r.Route("/activities", func(r chi.Router) {
				r.Get("/", rt.h.Activity.List)
				r.Post("/", rt.h.Activity.Create)
				r.Get("/{id}", rt.h.Activity.GetByID)
				r.Put("/{id}", rt.h.Activity.Update)
				r.Delete("/{id}", rt.h.Activity.Delete)
			})

			r.Route("/targets", func(r chi.Router) {
				r.Get("/", rt.h.Target.List)
				r.Post("/", rt.h.Target.Create)
				r.Get("/achievement", rt.h.Target.Achievement)
				r.Get("/prorate", rt.h.Target.ProRate)
				r.Put("/{id}", rt.h.Target.Update)
				r.Delete("/{id}", rt.h.Target.Delete)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/summary", rt.h.Report.Summary)
				r.Get("/manager-archived", rt.h.Report.ManagerArchived)
			})

			r.Route("/entities", func(r chi.Router) {
				r.Get("/", rt.h.Org.ListEntities)
				r.Post("/", rt.h.Org.CreateEntity)
				r.Put("/{id}", rt.h.Org.UpdateEntity)
				r.Delete("/{id}", rt.h.Org.DeleteEntity)
			})

			r.Route("/teams", func(r chi.Router) {
				r.Get("/", rt.h.Org.ListTeams)
				r.Post("/", rt.h.Org.CreateTeam)
				r.Put("/{id}", rt.h.Org.UpdateTeam)
				r.Delete("/{id}", rt.h.Org.DeleteTeam)
			})

			r.Route("/admin/users", func(r chi.Router) {
				r.Get("/", rt.h.User.List)
				r.Get("/pending", rt.h.User.Pending)
				r.Put("/{id}/profile", rt.h.User.UpdateProfile)
				r.Delete("/{id}", rt.h.User.Delete)
			})
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// databaseHealth is the readiness probe with connection pool stats
func (rt *Router) databaseHealth(w http.ResponseWriter, r *http.Request) {
	stats, err := database.HealthCheckWithStats(rt.db)
	if err != nil {
		rt.logger.Error("Database health check failed", zap.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":  "unhealthy",
			"error":   err.Error(),
			"service": "database",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "database",
		"stats": map[string]interface{}{
			"max_open_connections": stats.MaxOpenConnections,
			"open_connections":     stats.OpenConnections,
			"in_use":               stats.InUse,
			"idle":                 stats.Idle,
			"wait_count":           stats.WaitCount,
			"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
		},
	})
}

// readiness checks the database and every registered dependency
func (rt *Router) readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]interface{})
	allHealthy := true
	record := func(name string, err error) {
		if err != nil {
			rt.logger.Error("readiness check failed", zap.String("dependency", name), zap.Error(err))
			checks[name] = map[string]interface{}{"status": "unhealthy", "error": err.Error()}
			allHealthy = false
			return
		}
		checks[name] = map[string]interface{}{"status": "healthy"}
	}

	record("database", database.HealthCheck(rt.db))
	for name, check := range rt.checks {
		record(name, check(ctx))
	}

	status, code := "healthy", http.StatusOK
	if !allHealthy {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]interface{}{
		"status": status,
		"checks": checks,
	})
}
