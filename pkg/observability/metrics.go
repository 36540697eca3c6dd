package observability

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

// metricNamespace groups all custom metrics in CloudWatch
const metricNamespace = "DreamVault"

// MetricsAPI is the subset of the CloudWatch client the recorder uses
type MetricsAPI interface {
	PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error)
}

// MetricsRecorder ships counters and latencies to CloudWatch. A nil
// recorder is valid and drops everything, so call sites never need a
// feature-flag check.
type MetricsRecorder struct {
	api         MetricsAPI
	environment string
	logger      *zap.Logger
}

// NewMetricsRecorder creates a new CloudWatch-backed recorder
func NewMetricsRecorder(api MetricsAPI, environment string, logger *zap.Logger) *MetricsRecorder {
	return &MetricsRecorder{
		api:         api,
		environment: environment,
		logger:      logger,
	}
}

// Count records a unitless counter increment
func (m *MetricsRecorder) Count(ctx context.Context, name string, value float64) {
	m.put(ctx, name, value, cwtypes.StandardUnitCount)
}

// Latency records a duration in milliseconds
func (m *MetricsRecorder) Latency(ctx context.Context, name string, d time.Duration) {
	m.put(ctx, name, float64(d.Milliseconds()), cwtypes.StandardUnitMilliseconds)
}

func (m *MetricsRecorder) put(ctx context.Context, name string, value float64, unit cwtypes.StandardUnit) {
	if m == nil || m.api == nil {
		return
	}

	_, err := m.api.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(metricNamespace),
		MetricData: []cwtypes.MetricDatum{
			{
				MetricName: aws.String(name),
				Value:      aws.Float64(value),
				Unit:       unit,
				Timestamp:  aws.Time(time.Now()),
				Dimensions: []cwtypes.Dimension{
					{
						Name:  aws.String("Environment"),
						Value: aws.String(m.environment),
					},
				},
			},
		},
	})
	if err != nil {
		// Metrics must never take down a request path
		m.logger.Debug("Failed to put metric", zap.String("name", name), zap.Error(err))
	}
}
