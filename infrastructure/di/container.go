package di

import (
	"dreamvault/application/ports"
	"dreamvault/application/services"
	"dreamvault/infrastructure/config"
	"dreamvault/interfaces/http/rest"
	"dreamvault/pkg/auth"
	"dreamvault/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	DreamRepository ports.DreamRepository
	AlarmRepository ports.AlarmRepository
	EventBus        ports.EventBus
	Scheduler       ports.ReminderScheduler

	DreamService   *services.DreamService
	AlarmService   *services.AlarmService
	InsightService *services.InsightService
	StatsService   *services.StatsService

	JWTValidator *auth.JWTValidator
	Metrics      *observability.MetricsRecorder
	Tracer       *observability.Tracer

	Router *rest.Router
}

// Shutdown flushes buffered resources. Safe to call multiple times.
func (c *Container) Shutdown() {
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
}
