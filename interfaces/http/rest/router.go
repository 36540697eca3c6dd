package rest

import (
	"net/http"

	"dreamvault/application/services"
	"dreamvault/infrastructure/config"
	"dreamvault/interfaces/http/rest/handlers"
	"dreamvault/interfaces/http/rest/middleware"
	"dreamvault/pkg/auth"
	pkgerrors "dreamvault/pkg/errors"
	"dreamvault/pkg/observability"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Router creates and configures the HTTP router
type Router struct {
	cfg       *config.Config
	dreams    *services.DreamService
	alarms    *services.AlarmService
	insights  *services.InsightService
	stats     *services.StatsService
	validator *auth.JWTValidator
	metrics   *observability.MetricsRecorder
	tracer    *observability.Tracer
	logger    *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(
	cfg *config.Config,
	dreams *services.DreamService,
	alarms *services.AlarmService,
	insights *services.InsightService,
	stats *services.StatsService,
	validator *auth.JWTValidator,
	metrics *observability.MetricsRecorder,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *Router {
	return &Router{
		cfg:       cfg,
		dreams:    dreams,
		alarms:    alarms,
		insights:  insights,
		stats:     stats,
		validator: validator,
		metrics:   metrics,
		tracer:    tracer,
		logger:    logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	router.Use(middleware.Metrics(rt.metrics))

	if rt.cfg.EnableTracing {
		router.Use(middleware.Trace(rt.tracer))
	}

	if rt.cfg.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"http://localhost:3000", "https://*.dreamvault.app"},
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	errorHandler := pkgerrors.NewErrorHandler(rt.logger, rt.cfg.IsDevelopment())

	// API v1 routes
	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(rt.validator, rt.logger))

		// Journal endpoints
		r.Route("/dreams", func(r chi.Router) {
			dreamHandler := handlers.NewDreamHandler(rt.dreams, errorHandler, rt.logger)
			r.Post("/", dreamHandler.CreateDream)
			r.Get("/", dreamHandler.ListDreams)
			r.Get("/{dreamID}", dreamHandler.GetDream)
			r.Put("/{dreamID}", dreamHandler.UpdateDream)
			r.Delete("/{dreamID}", dreamHandler.DeleteDream)

			// Interpretation endpoints
			insightHandler := handlers.NewInsightHandler(rt.insights, errorHandler, rt.metrics, rt.logger)
			r.Post("/{dreamID}/interpretation", insightHandler.InterpretDream)
			r.Put("/{dreamID}/interpretation", insightHandler.SaveInterpretation)
		})

		// Alarm endpoints
		r.Route("/alarms", func(r chi.Router) {
			alarmHandler := handlers.NewAlarmHandler(rt.alarms, errorHandler, rt.logger)
			r.Post("/", alarmHandler.CreateAlarm)
			r.Get("/", alarmHandler.ListAlarms)
			r.Get("/{alarmID}", alarmHandler.GetAlarm)
			r.Put("/{alarmID}", alarmHandler.UpdateAlarm)
			r.Patch("/{alarmID}/enabled", alarmHandler.ToggleAlarm)
			r.Delete("/{alarmID}", alarmHandler.DeleteAlarm)
		})

		// Horoscope endpoint
		insightHandler := handlers.NewInsightHandler(rt.insights, errorHandler, rt.metrics, rt.logger)
		r.Get("/horoscope", insightHandler.GenerateHoroscope)

		// Profile endpoints
		profileHandler := handlers.NewProfileHandler(rt.stats, errorHandler, rt.logger)
		r.Get("/profile/stats", profileHandler.GetStats)
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

// readinessCheck handles readiness check requests
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ready"}`))
}
