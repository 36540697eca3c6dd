// Package main implements the reminder dispatch Lambda. EventBridge
// invokes it once per alarm firing; it resolves the alarm's owner and
// pushes the reminder to the owner's connected WebSocket clients.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi"
	apigwTypes "github.com/aws/aws-sdk-go-v2/service/apigatewaymanagementapi/types"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Global AWS clients reused across warm invocations
var (
	dynamoClient *dynamodb.Client
	apiGwClient  *apigatewaymanagementapi.Client
)

// DispatchEvent is the constant input attached to each alarm rule
type DispatchEvent struct {
	AlarmID string `json:"alarm_id"`
	Label   string `json:"label"`
	Body    string `json:"body"`
}

// ReminderMessage is the payload pushed to connected clients
type ReminderMessage struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	AlarmID   string `json:"alarm_id"`
	Label     string `json:"label,omitempty"`
	Body      string `json:"body"`
}

func init() {
	cfg, err := config.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}

	dynamoClient = dynamodb.NewFromConfig(cfg)

	if endpoint := os.Getenv("WEBSOCKET_ENDPOINT"); endpoint != "" {
		apiGwClient = apigatewaymanagementapi.NewFromConfig(cfg, func(o *apigatewaymanagementapi.Options) {
			if !strings.HasPrefix(endpoint, "https://") {
				endpoint = "https://" + endpoint
			}
			o.BaseEndpoint = aws.String(endpoint)
		})
	}

	log.Println("Reminder dispatch handler initialized")
}

// resolveOwner looks the alarm up by ID and returns the owning user ID
func resolveOwner(ctx context.Context, alarmID string) (string, error) {
	tableName := os.Getenv("TABLE_NAME")
	if tableName == "" {
		tableName = "dreamvault"
	}
	indexName := os.Getenv("INDEX_NAME")
	if indexName == "" {
		indexName = "EntityIndex"
	}

	result, err := dynamoClient.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(tableName),
		IndexName:              aws.String(indexName),
		KeyConditionExpression: aws.String("GSI1PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: fmt.Sprintf("ALARMID#%s", alarmID)},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return "", fmt.Errorf("failed to query alarm %s: %w", alarmID, err)
	}
	if len(result.Items) == 0 {
		return "", fmt.Errorf("alarm %s not found", alarmID)
	}

	pk, ok := result.Items[0]["PK"].(*types.AttributeValueMemberS)
	if !ok || !strings.HasPrefix(pk.Value, "USER#") {
		return "", fmt.Errorf("alarm %s has malformed owner key", alarmID)
	}

	// Enabled may have been flipped since the rule was installed
	if enabled, ok := result.Items[0]["Enabled"].(*types.AttributeValueMemberBOOL); ok && !enabled.Value {
		return "", fmt.Errorf("alarm %s is disabled", alarmID)
	}

	return strings.TrimPrefix(pk.Value, "USER#"), nil
}

// connectionsForUser retrieves all active connection IDs for a user
func connectionsForUser(ctx context.Context, userID string) ([]string, error) {
	tableName := os.Getenv("CONNECTIONS_TABLE")
	if tableName == "" {
		tableName = "dreamvault-connections"
	}
	indexName := os.Getenv("CONNECTIONS_INDEX_NAME")
	if indexName == "" {
		indexName = "connection-id-index"
	}

	result, err := dynamoClient.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(tableName),
		IndexName:              aws.String(indexName),
		KeyConditionExpression: aws.String("GSI1PK = :userpk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":userpk": &types.AttributeValueMemberS{Value: fmt.Sprintf("USER#%s", userID)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query connections: %w", err)
	}

	var connectionIDs []string
	for _, item := range result.Items {
		if connID, ok := item["ConnectionID"].(*types.AttributeValueMemberS); ok {
			connectionIDs = append(connectionIDs, connID.Value)
		}
	}

	return connectionIDs, nil
}

// pushToConnection sends the reminder to one connection. Gone connections
// are pruned and not treated as failures.
func pushToConnection(ctx context.Context, connectionID string, message []byte) error {
	_, err := apiGwClient.PostToConnection(ctx, &apigatewaymanagementapi.PostToConnectionInput{
		ConnectionId: aws.String(connectionID),
		Data:         message,
	})
	if err != nil {
		var gone *apigwTypes.GoneException
		if errors.As(err, &gone) {
			log.Printf("Connection %s is gone, removing", connectionID)
			removeStaleConnection(ctx, connectionID)
			return nil
		}
		return fmt.Errorf("failed to push to connection %s: %w", connectionID, err)
	}
	return nil
}

// removeStaleConnection deletes a dead connection record
func removeStaleConnection(ctx context.Context, connectionID string) {
	tableName := os.Getenv("CONNECTIONS_TABLE")
	if tableName == "" {
		tableName = "dreamvault-connections"
	}

	_, err := dynamoClient.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("CONNECTION#%s", connectionID)},
			"SK": &types.AttributeValueMemberS{Value: "METADATA"},
		},
	})
	if err != nil {
		log.Printf("Failed to remove stale connection %s: %v", connectionID, err)
	}
}

// Handler processes one alarm firing
func Handler(ctx context.Context, event DispatchEvent) error {
	if event.AlarmID == "" {
		return fmt.Errorf("dispatch event missing alarm_id")
	}
	if apiGwClient == nil {
		log.Printf("WEBSOCKET_ENDPOINT not configured, dropping reminder for alarm %s", event.AlarmID)
		return nil
	}

	userID, err := resolveOwner(ctx, event.AlarmID)
	if err != nil {
		// A firing for a deleted or disabled alarm is a leftover rule,
		// not a delivery failure
		log.Printf("Skipping reminder for alarm %s: %v", event.AlarmID, err)
		return nil
	}

	connectionIDs, err := connectionsForUser(ctx, userID)
	if err != nil {
		return err
	}
	if len(connectionIDs) == 0 {
		log.Printf("No active connections for user %s, reminder dropped", userID)
		return nil
	}

	message, err := json.Marshal(ReminderMessage{
		Type:      "reminder",
		Timestamp: time.Now().Unix(),
		AlarmID:   event.AlarmID,
		Label:     event.Label,
		Body:      event.Body,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal reminder: %w", err)
	}

	delivered := 0
	for _, connectionID := range connectionIDs {
		if err := pushToConnection(ctx, connectionID, message); err != nil {
			log.Printf("Delivery failed: %v", err)
			continue
		}
		delivered++
	}

	log.Printf("Reminder for alarm %s delivered to %d/%d connections", event.AlarmID, delivered, len(connectionIDs))
	return nil
}

func main() {
	lambda.Start(Handler)
}
