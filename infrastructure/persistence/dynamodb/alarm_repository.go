package dynamodb

import (
	"context"
	"fmt"
	"sort"

	"dreamvault/application/ports"
	"dreamvault/domain/core/entities"
	"dreamvault/domain/core/valueobjects"
	pkgerrors "dreamvault/pkg/errors"
	"dreamvault/pkg/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// AlarmRepository implements ports.AlarmRepository using DynamoDB. Same
// single-table layout as dreams, under the ALARM# sort key prefix.
type AlarmRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string
	logger    *zap.Logger
}

// NewAlarmRepository creates a new AlarmRepository
func NewAlarmRepository(client *dynamodb.Client, tableName, indexName string, logger *zap.Logger) ports.AlarmRepository {
	return &AlarmRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// alarmItem represents the DynamoDB item structure for an alarm rule
type alarmItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	GSI1PK     string `dynamodbav:"GSI1PK"`
	GSI1SK     string `dynamodbav:"GSI1SK"`
	EntityType string `dynamodbav:"EntityType"`
	AlarmID    string `dynamodbav:"AlarmID"`
	UserID     string `dynamodbav:"UserID"`
	Hour       int    `dynamodbav:"Hour"`
	Minute     int    `dynamodbav:"Minute"`
	Label      string `dynamodbav:"Label"`
	Enabled    bool   `dynamodbav:"Enabled"`
	CreatedAt  string `dynamodbav:"CreatedAt"`
	UpdatedAt  string `dynamodbav:"UpdatedAt"`
}

// Save persists an alarm rule (create or update)
func (r *AlarmRepository) Save(ctx context.Context, alarm *entities.Alarm) error {
	item := alarmItem{
		PK:         fmt.Sprintf("USER#%s", alarm.UserID()),
		SK:         fmt.Sprintf("ALARM#%s", alarm.ID().String()),
		GSI1PK:     fmt.Sprintf("ALARMID#%s", alarm.ID().String()),
		GSI1SK:     "METADATA",
		EntityType: "ALARM",
		AlarmID:    alarm.ID().String(),
		UserID:     alarm.UserID(),
		Hour:       alarm.Time().Hour(),
		Minute:     alarm.Time().Minute(),
		Label:      alarm.Label(),
		Enabled:    alarm.IsEnabled(),
		CreatedAt:  utils.FormatTimestamp(alarm.CreatedAt()),
		UpdatedAt:  utils.FormatTimestamp(alarm.UpdatedAt()),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal alarm: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		r.logger.Error("Failed to save alarm to DynamoDB",
			zap.Error(err),
			zap.String("alarmID", alarm.ID().String()),
		)
		return fmt.Errorf("failed to save alarm: %w", err)
	}

	return nil
}

// GetByID retrieves an alarm by its ID via GSI1
func (r *AlarmRepository) GetByID(ctx context.Context, id valueobjects.AlarmID) (*entities.Alarm, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(r.indexName),
		KeyConditionExpression: aws.String("GSI1PK = :pk AND GSI1SK = :sk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: fmt.Sprintf("ALARMID#%s", id.String())},
			":sk": &types.AttributeValueMemberS{Value: "METADATA"},
		},
		Limit: aws.Int32(1),
	}

	result, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query alarm: %w", err)
	}

	if len(result.Items) == 0 {
		return nil, pkgerrors.NewNotFoundError("alarm")
	}

	var item alarmItem
	if err := attributevalue.UnmarshalMap(result.Items[0], &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal alarm: %w", err)
	}

	return r.reconstruct(item)
}

// GetByUserID retrieves all alarms for a user, time-of-day ascending
func (r *AlarmRepository) GetByUserID(ctx context.Context, userID string) ([]*entities.Alarm, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(fmt.Sprintf("USER#%s", userID))).
		And(expression.Key("SK").BeginsWith("ALARM#"))

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build query expression: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}

	result, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query alarms: %w", err)
	}

	alarms := make([]*entities.Alarm, 0, len(result.Items))
	for _, raw := range result.Items {
		var item alarmItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			r.logger.Warn("Failed to unmarshal alarm item", zap.Error(err))
			continue
		}

		alarm, err := r.reconstruct(item)
		if err != nil {
			r.logger.Warn("Failed to reconstruct alarm from item",
				zap.String("alarmID", item.AlarmID),
				zap.Error(err),
			)
			continue
		}
		alarms = append(alarms, alarm)
	}

	sort.Slice(alarms, func(i, j int) bool {
		return alarms[i].Time().Before(alarms[j].Time())
	})

	return alarms, nil
}

// Delete removes an alarm rule
func (r *AlarmRepository) Delete(ctx context.Context, id valueobjects.AlarmID) error {
	alarm, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("USER#%s", alarm.UserID())},
			"SK": &types.AttributeValueMemberS{Value: fmt.Sprintf("ALARM#%s", id.String())},
		},
	}

	if _, err := r.client.DeleteItem(ctx, input); err != nil {
		return fmt.Errorf("failed to delete alarm: %w", err)
	}

	return nil
}

func (r *AlarmRepository) reconstruct(item alarmItem) (*entities.Alarm, error) {
	id, err := valueobjects.NewAlarmIDFromString(item.AlarmID)
	if err != nil {
		return nil, err
	}

	at, err := valueobjects.NewTimeOfDay(item.Hour, item.Minute)
	if err != nil {
		return nil, err
	}

	createdAt, err := utils.ParseTimestamp(item.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse CreatedAt: %w", err)
	}
	updatedAt, err := utils.ParseTimestamp(item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse UpdatedAt: %w", err)
	}

	return entities.ReconstructAlarm(id, item.UserID, at, item.Label, item.Enabled, createdAt, updatedAt)
}
