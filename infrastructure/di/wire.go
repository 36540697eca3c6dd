//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"dreamvault/infrastructure/config"

	"github.com/google/wire"
)

// SuperSet is the complete provider set for the application
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideCloudWatchClient,
	ProvideDreamRepository,
	ProvideAlarmRepository,
	ProvideEventBus,
	ProvideReminderScheduler,
	ProvidePermissionGranted,
	ProvideThemeExtractor,
	ProvideSentimentScorer,
	ProvideTemplateGenerator,
	ProvideNarrativeGenerator,
	ProvideDreamService,
	ProvideAlarmService,
	ProvideInsightService,
	ProvideStatsService,
	ProvideJWTValidator,
	ProvideMetricsRecorder,
	ProvideTracer,
	ProvideRouter,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired dependency container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil
}
