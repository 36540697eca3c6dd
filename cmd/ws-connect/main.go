// Package main implements the WebSocket connection Lambda handler.
// Clients connect here to receive reminder pushes; connection records
// feed the dispatch handler's per-user lookup.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"dreamvault/pkg/auth"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Global clients reused across warm invocations
var (
	dynamoClient *dynamodb.Client
	jwtValidator *auth.JWTValidator
)

func init() {
	cfg, err := config.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Fatalf("Failed to load AWS config: %v", err)
	}
	dynamoClient = dynamodb.NewFromConfig(cfg)

	issuer := os.Getenv("JWT_ISSUER")
	if issuer == "" {
		issuer = "dreamvault"
	}
	jwtValidator, err = auth.NewJWTValidator(auth.JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     os.Getenv("JWT_SECRET"),
		Issuer:        issuer,
	})
	if err != nil {
		log.Fatalf("Failed to create JWT validator: %v", err)
	}

	log.Println("WebSocket connect handler initialized")
}

func connectionsTable() string {
	if name := os.Getenv("CONNECTIONS_TABLE"); name != "" {
		return name
	}
	return "dreamvault-connections"
}

// storeConnection records a connection keyed by connection ID with a
// user GSI entry for per-user fan-out
func storeConnection(ctx context.Context, connectionID, userID, endpoint string) error {
	now := time.Now()
	ttl := now.Add(24 * time.Hour).Unix()

	item := map[string]types.AttributeValue{
		"PK":           &types.AttributeValueMemberS{Value: fmt.Sprintf("CONNECTION#%s", connectionID)},
		"SK":           &types.AttributeValueMemberS{Value: "METADATA"},
		"ConnectionID": &types.AttributeValueMemberS{Value: connectionID},
		"UserID":       &types.AttributeValueMemberS{Value: userID},
		"GSI1PK":       &types.AttributeValueMemberS{Value: fmt.Sprintf("USER#%s", userID)},
		"GSI1SK":       &types.AttributeValueMemberS{Value: fmt.Sprintf("CONNECTION#%s", connectionID)},
		"ConnectedAt":  &types.AttributeValueMemberS{Value: now.Format(time.RFC3339)},
		"Endpoint":     &types.AttributeValueMemberS{Value: endpoint},
		"TTL":          &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", ttl)},
	}

	_, err := dynamoClient.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(connectionsTable()),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to store connection: %w", err)
	}

	log.Printf("Stored connection %s for user %s", connectionID, userID)
	return nil
}

// removeConnection deletes a connection record on disconnect
func removeConnection(ctx context.Context, connectionID string) error {
	_, err := dynamoClient.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(connectionsTable()),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("CONNECTION#%s", connectionID)},
			"SK": &types.AttributeValueMemberS{Value: "METADATA"},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to remove connection: %w", err)
	}
	return nil
}

// extractToken pulls the JWT from the query string or Authorization header
func extractToken(request events.APIGatewayWebsocketProxyRequest) string {
	if token := request.QueryStringParameters["token"]; token != "" {
		return token
	}
	for _, key := range []string{"Authorization", "authorization"} {
		if header := request.Headers[key]; header != "" {
			return strings.TrimPrefix(header, "Bearer ")
		}
	}
	return ""
}

// handler processes $connect and $disconnect route keys
func handler(ctx context.Context, request events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	connectionID := request.RequestContext.ConnectionID

	switch request.RequestContext.RouteKey {
	case "$disconnect":
		if err := removeConnection(ctx, connectionID); err != nil {
			log.Printf("Disconnect cleanup failed for %s: %v", connectionID, err)
		}
		return events.APIGatewayProxyResponse{StatusCode: http.StatusOK}, nil

	default:
		token := extractToken(request)
		if token == "" {
			return events.APIGatewayProxyResponse{StatusCode: http.StatusUnauthorized, Body: "missing token"}, nil
		}

		claims, err := jwtValidator.ValidateToken(token)
		if err != nil {
			log.Printf("Token validation failed for connection %s: %v", connectionID, err)
			return events.APIGatewayProxyResponse{StatusCode: http.StatusUnauthorized, Body: "invalid token"}, nil
		}

		endpoint := fmt.Sprintf("%s/%s", request.RequestContext.DomainName, request.RequestContext.Stage)
		if err := storeConnection(ctx, connectionID, claims.UserID, endpoint); err != nil {
			log.Printf("Failed to store connection %s: %v", connectionID, err)
			return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError, Body: "connection storage failed"}, nil
		}

		return events.APIGatewayProxyResponse{StatusCode: http.StatusOK}, nil
	}
}

func main() {
	lambda.Start(handler)
}
