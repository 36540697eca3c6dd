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

// DreamRepository implements ports.DreamRepository using DynamoDB.
//
// Single-table layout:
//
//	PK = USER#<userID>, SK = DREAM#<dreamID>
//	GSI1PK = DREAMID#<dreamID>, GSI1SK = METADATA (direct ID lookups)
type DreamRepository struct {
	client    *dynamodb.Client
	tableName string
	indexName string
	logger    *zap.Logger
}

// NewDreamRepository creates a new DreamRepository
func NewDreamRepository(client *dynamodb.Client, tableName, indexName string, logger *zap.Logger) ports.DreamRepository {
	return &DreamRepository{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// dreamItem represents the DynamoDB item structure for a dream entry
type dreamItem struct {
	PK             string   `dynamodbav:"PK"`
	SK             string   `dynamodbav:"SK"`
	GSI1PK         string   `dynamodbav:"GSI1PK"`
	GSI1SK         string   `dynamodbav:"GSI1SK"`
	EntityType     string   `dynamodbav:"EntityType"`
	DreamID        string   `dynamodbav:"DreamID"`
	UserID         string   `dynamodbav:"UserID"`
	Title          string   `dynamodbav:"Title"`
	Body           string   `dynamodbav:"Body"`
	Tags           []string `dynamodbav:"Tags"`
	Mood           string   `dynamodbav:"Mood,omitempty"`
	Interpreted    bool     `dynamodbav:"Interpreted"`
	Interpretation string   `dynamodbav:"Interpretation,omitempty"`
	CreatedAt      string   `dynamodbav:"CreatedAt"`
	UpdatedAt      string   `dynamodbav:"UpdatedAt"`
	Version        int      `dynamodbav:"Version"`
}

// Save persists a dream entry (create or update)
func (r *DreamRepository) Save(ctx context.Context, dream *entities.Dream) error {
	item := dreamItem{
		PK:             fmt.Sprintf("USER#%s", dream.UserID()),
		SK:             fmt.Sprintf("DREAM#%s", dream.ID().String()),
		GSI1PK:         fmt.Sprintf("DREAMID#%s", dream.ID().String()),
		GSI1SK:         "METADATA",
		EntityType:     "DREAM",
		DreamID:        dream.ID().String(),
		UserID:         dream.UserID(),
		Title:          dream.Content().Title(),
		Body:           dream.Content().Body(),
		Tags:           dream.GetTags(),
		Mood:           dream.Mood(),
		Interpreted:    dream.IsInterpreted(),
		Interpretation: dream.Interpretation(),
		CreatedAt:      utils.FormatTimestamp(dream.CreatedAt()),
		UpdatedAt:      utils.FormatTimestamp(dream.UpdatedAt()),
		Version:        dream.Version(),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal dream: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		r.logger.Error("Failed to save dream to DynamoDB",
			zap.Error(err),
			zap.String("dreamID", dream.ID().String()),
		)
		return fmt.Errorf("failed to save dream: %w", err)
	}

	r.logger.Debug("Dream saved",
		zap.String("dreamID", dream.ID().String()),
		zap.String("userID", dream.UserID()),
	)

	return nil
}

// GetByID retrieves a dream by its ID via GSI1
func (r *DreamRepository) GetByID(ctx context.Context, id valueobjects.DreamID) (*entities.Dream, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(r.indexName),
		KeyConditionExpression: aws.String("GSI1PK = :pk AND GSI1SK = :sk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: fmt.Sprintf("DREAMID#%s", id.String())},
			":sk": &types.AttributeValueMemberS{Value: "METADATA"},
		},
		Limit: aws.Int32(1),
	}

	result, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query dream: %w", err)
	}

	if len(result.Items) == 0 {
		return nil, pkgerrors.NewNotFoundError("dream")
	}

	var item dreamItem
	if err := attributevalue.UnmarshalMap(result.Items[0], &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dream: %w", err)
	}

	return r.reconstruct(item)
}

// GetByUserID retrieves all dreams for a user, newest first
func (r *DreamRepository) GetByUserID(ctx context.Context, userID string) ([]*entities.Dream, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(fmt.Sprintf("USER#%s", userID))).
		And(expression.Key("SK").BeginsWith("DREAM#"))

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
		return nil, fmt.Errorf("failed to query dreams: %w", err)
	}

	dreams := make([]*entities.Dream, 0, len(result.Items))
	for _, raw := range result.Items {
		var item dreamItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			r.logger.Warn("Failed to unmarshal dream item", zap.Error(err))
			continue
		}

		dream, err := r.reconstruct(item)
		if err != nil {
			r.logger.Warn("Failed to reconstruct dream from item",
				zap.String("dreamID", item.DreamID),
				zap.Error(err),
			)
			continue
		}
		dreams = append(dreams, dream)
	}

	sort.Slice(dreams, func(i, j int) bool {
		return dreams[i].CreatedAt().After(dreams[j].CreatedAt())
	})

	return dreams, nil
}

// Delete removes a dream entry
func (r *DreamRepository) Delete(ctx context.Context, id valueobjects.DreamID) error {
	// Resolve the owning user first; the primary key needs it
	dream, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("USER#%s", dream.UserID())},
			"SK": &types.AttributeValueMemberS{Value: fmt.Sprintf("DREAM#%s", id.String())},
		},
	}

	if _, err := r.client.DeleteItem(ctx, input); err != nil {
		return fmt.Errorf("failed to delete dream: %w", err)
	}

	r.logger.Debug("Dream deleted",
		zap.String("dreamID", id.String()),
		zap.String("userID", dream.UserID()),
	)

	return nil
}

func (r *DreamRepository) reconstruct(item dreamItem) (*entities.Dream, error) {
	id, err := valueobjects.NewDreamIDFromString(item.DreamID)
	if err != nil {
		return nil, err
	}

	content, err := valueobjects.NewDreamContent(item.Title, item.Body)
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

	return entities.ReconstructDream(
		id,
		item.UserID,
		content,
		item.Tags,
		item.Mood,
		item.Interpreted,
		item.Interpretation,
		createdAt,
		updatedAt,
	)
}
