package prefs

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/sirupsen/logrus"
)

// DynamoDBAPI is the subset of the DynamoDB client the store uses.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

type dynamoItem struct {
	UserID       string `dynamodbav:"userId"`
	FontStep     *int   `dynamodbav:"fontStep,omitempty"`
	ColourScheme *int   `dynamodbav:"colourScheme,omitempty"`
	UpdatedAt    string `dynamodbav:"updatedAt"`
}

// DynamoStore is a Repository keyed by userId in a single DynamoDB table.
type DynamoStore struct {
	logger    *logrus.Entry
	client    DynamoDBAPI
	tableName string
}

// NewDynamoStore creates a DynamoStore.
func NewDynamoStore(logger *logrus.Entry, client DynamoDBAPI, tableName string) *DynamoStore {
	return &DynamoStore{logger: logger, client: client, tableName: tableName}
}

func (s *DynamoStore) key(userID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
}

func (s *DynamoStore) Get(ctx context.Context, userID string) (*Preference, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &s.tableName,
		Key:            s.key(userID),
		ConsistentRead: boolPtr(true),
	})
	if err != nil {
		s.logger.WithError(err).Error("Failed to get preference from DynamoDB")
		return nil, fmt.Errorf("getting preference: %w", err)
	}
	if out.Item == nil {
		return nil, nil
	}

	var item dynamoItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		s.logger.WithError(err).Error("Failed to unmarshal preference")
		return nil, fmt.Errorf("unmarshalling preference: %w", err)
	}
	return &Preference{FontStep: item.FontStep, ColourScheme: item.ColourScheme}, nil
}

func (s *DynamoStore) Upsert(ctx context.Context, userID string, p Preference) error {
	item, err := attributevalue.MarshalMap(dynamoItem{
		UserID:       userID,
		FontStep:     p.FontStep,
		ColourScheme: p.ColourScheme,
		UpdatedAt:    time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("marshalling preference: %w", err)
	}

	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{TableName: &s.tableName, Item: item}); err != nil {
		s.logger.WithError(err).Error("Failed to save preference to DynamoDB")
		return fmt.Errorf("saving preference: %w", err)
	}
	s.logger.WithField("user_id", userID).Debug("Saved preference")
	return nil
}

func (s *DynamoStore) Delete(ctx context.Context, userID string) error {
	if _, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{TableName: &s.tableName, Key: s.key(userID)}); err != nil {
		s.logger.WithError(err).Error("Failed to delete preference from DynamoDB")
		return fmt.Errorf("deleting preference: %w", err)
	}
	return nil
}

func boolPtr(b bool) *bool { return &b }
