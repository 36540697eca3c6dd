package eventbridge

import (
	"context"
	"encoding/json"
	"fmt"

	"dreamvault/application/ports"
	"dreamvault/domain/events"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"go.uber.org/zap"
)

// putEventsBatchLimit is the PutEvents API maximum
const putEventsBatchLimit = 10

// API is the subset of the EventBridge client the publisher uses
type API interface {
	PutEvents(ctx context.Context, params *eventbridge.PutEventsInput, optFns ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error)
}

// Publisher implements ports.EventBus on an EventBridge bus. Events are
// serialized as JSON detail with the domain event type as detail-type.
type Publisher struct {
	api     API
	busName string
	logger  *zap.Logger
}

// NewPublisher creates a new EventBridge-backed publisher
func NewPublisher(api API, busName string, logger *zap.Logger) *Publisher {
	return &Publisher{
		api:     api,
		busName: busName,
		logger:  logger,
	}
}

// Publish sends a single event
func (p *Publisher) Publish(ctx context.Context, event events.DomainEvent) error {
	return p.PublishBatch(ctx, []events.DomainEvent{event})
}

// PublishBatch sends multiple events, chunked to the PutEvents limit
func (p *Publisher) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	for start := 0; start < len(batch); start += putEventsBatchLimit {
		end := start + putEventsBatchLimit
		if end > len(batch) {
			end = len(batch)
		}
		if err := p.putChunk(ctx, batch[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (p *Publisher) putChunk(ctx context.Context, chunk []events.DomainEvent) error {
	entries := make([]types.PutEventsRequestEntry, 0, len(chunk))
	for _, event := range chunk {
		detail, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", event.GetEventType(), err)
		}
		entries = append(entries, types.PutEventsRequestEntry{
			EventBusName: aws.String(p.busName),
			Source:       aws.String(events.SourceBackend),
			DetailType:   aws.String(event.GetEventType()),
			Detail:       aws.String(string(detail)),
			Time:         aws.Time(event.GetTimestamp()),
		})
	}

	out, err := p.api.PutEvents(ctx, &eventbridge.PutEventsInput{Entries: entries})
	if err != nil {
		return fmt.Errorf("failed to put events: %w", err)
	}
	if out.FailedEntryCount > 0 {
		p.logger.Warn("Some events were rejected by the bus",
			zap.Int32("failed", out.FailedEntryCount),
			zap.Int("total", len(entries)),
		)
		return fmt.Errorf("event bus rejected %d of %d entries", out.FailedEntryCount, len(entries))
	}

	return nil
}

var _ ports.EventBus = (*Publisher)(nil)
