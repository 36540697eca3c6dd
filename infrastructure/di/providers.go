package di

import (
	"context"
	"math/rand"
	"time"

	"dreamvault/application/ports"
	"dreamvault/application/services"
	domainservices "dreamvault/domain/services"
	"dreamvault/infrastructure/config"
	msgeventbridge "dreamvault/infrastructure/messaging/eventbridge"
	"dreamvault/infrastructure/persistence/dynamodb"
	"dreamvault/infrastructure/persistence/memory"
	schedeventbridge "dreamvault/infrastructure/scheduling/eventbridge"
	"dreamvault/interfaces/http/rest"
	"dreamvault/pkg/auth"
	"dreamvault/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
)

// PermissionGranted is the cached result of the startup scheduler probe
type PermissionGranted bool

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideDreamRepository creates a dream repository. Development mode
// runs on the in-memory store; everything else hits DynamoDB.
func ProvideDreamRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.DreamRepository {
	if cfg.IsDevelopment() {
		return memory.NewDreamRepository()
	}
	return dynamodb.NewDreamRepository(client, cfg.DynamoDBTable, cfg.IndexName, logger)
}

// ProvideAlarmRepository creates an alarm repository
func ProvideAlarmRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.AlarmRepository {
	if cfg.IsDevelopment() {
		return memory.NewAlarmRepository()
	}
	return dynamodb.NewAlarmRepository(client, cfg.DynamoDBTable, cfg.IndexName, logger)
}

// ProvideEventBus creates an event bus
func ProvideEventBus(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventBus {
	if cfg.IsDevelopment() {
		return memory.NewEventBus()
	}
	return msgeventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideReminderScheduler creates the reminder scheduler
func ProvideReminderScheduler(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.ReminderScheduler {
	if cfg.IsDevelopment() {
		return memory.NewScheduler()
	}
	return schedeventbridge.NewScheduler(client, cfg.ScheduleRulePrefix, cfg.DispatchFunctionARN, cfg.DispatchRoleARN, logger)
}

// ProvidePermissionGranted probes the scheduler once at startup. The
// result is cached for the process lifetime; denial degrades reminders
// without blocking alarm CRUD.
func ProvidePermissionGranted(ctx context.Context, scheduler ports.ReminderScheduler, logger *zap.Logger) PermissionGranted {
	granted := scheduler.Probe(ctx)
	if !granted {
		logger.Warn("Reminder scheduler unavailable; alarms will not deliver")
	}
	return PermissionGranted(granted)
}

// ProvideThemeExtractor creates the keyword theme extractor
func ProvideThemeExtractor() domainservices.ThemeExtractor {
	return domainservices.NewKeywordThemeExtractor()
}

// ProvideSentimentScorer creates the lexicon sentiment scorer
func ProvideSentimentScorer() domainservices.SentimentScorer {
	return domainservices.NewLexiconScorer()
}

// ProvideTemplateGenerator creates the template narrative strategy
func ProvideTemplateGenerator() *domainservices.TemplateGenerator {
	return domainservices.NewTemplateGenerator(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// ProvideNarrativeGenerator selects the generation strategy. Heuristic
// generation needs both analyzer capabilities; when disabled the
// template strategy serves as the degraded path.
func ProvideNarrativeGenerator(
	cfg *config.Config,
	themes domainservices.ThemeExtractor,
	scorer domainservices.SentimentScorer,
	templates *domainservices.TemplateGenerator,
) domainservices.NarrativeGenerator {
	if cfg.EnableHeuristicInsights && themes != nil && scorer != nil {
		return domainservices.NewHeuristicGenerator(themes, scorer, templates)
	}
	return templates
}

// ProvideDreamService creates the journal service
func ProvideDreamService(dreamRepo ports.DreamRepository, eventBus ports.EventBus, logger *zap.Logger) *services.DreamService {
	return services.NewDreamService(dreamRepo, eventBus, logger)
}

// ProvideAlarmService creates the alarm lifecycle service
func ProvideAlarmService(
	alarmRepo ports.AlarmRepository,
	scheduler ports.ReminderScheduler,
	eventBus ports.EventBus,
	granted PermissionGranted,
	logger *zap.Logger,
) *services.AlarmService {
	return services.NewAlarmService(alarmRepo, scheduler, eventBus, bool(granted), logger)
}

// ProvideInsightService creates the insight generation service
func ProvideInsightService(
	dreams *services.DreamService,
	generator domainservices.NarrativeGenerator,
	themes domainservices.ThemeExtractor,
	scorer domainservices.SentimentScorer,
	cfg *config.Config,
	logger *zap.Logger,
) *services.InsightService {
	return services.NewInsightService(dreams, generator, themes, scorer, cfg.GenerationDelay, logger)
}

// ProvideStatsService creates the profile statistics service
func ProvideStatsService(dreamRepo ports.DreamRepository, alarmRepo ports.AlarmRepository, logger *zap.Logger) *services.StatsService {
	return services.NewStatsService(dreamRepo, alarmRepo, logger)
}

// ProvideJWTValidator creates the token validator. Development falls
// back to a fixed secret so local clients can mint their own tokens.
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	secret := cfg.JWTSecret
	if secret == "" && cfg.IsDevelopment() {
		secret = "development-secret-change-in-production"
	}
	return auth.NewJWTValidator(auth.JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     secret,
		Issuer:        cfg.JWTIssuer,
	})
}

// ProvideMetricsRecorder creates the CloudWatch metrics recorder
func ProvideMetricsRecorder(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) *observability.MetricsRecorder {
	if cfg.IsDevelopment() {
		return observability.NewMetricsRecorder(nil, cfg.Environment, logger)
	}
	return observability.NewMetricsRecorder(client, cfg.Environment, logger)
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer() *observability.Tracer {
	return observability.NewTracer("dreamvault")
}

// ProvideRouter creates the HTTP router
func ProvideRouter(
	cfg *config.Config,
	dreams *services.DreamService,
	alarms *services.AlarmService,
	insights *services.InsightService,
	stats *services.StatsService,
	validator *auth.JWTValidator,
	metrics *observability.MetricsRecorder,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *rest.Router {
	return rest.NewRouter(cfg, dreams, alarms, insights, stats, validator, metrics, tracer, logger)
}
