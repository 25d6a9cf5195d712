package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoAPI is the subset of the DynamoDB client the store depends on.
// *dynamodb.Client satisfies it.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Store provides CRUD over the customers, products and orders tables.
type Store struct {
	client DynamoAPI
	config Config
}

// New creates a new Store instance.
func New(client DynamoAPI, config Config) *Store {
	config.validate()
	return &Store{
		client: client,
		config: config,
	}
}

// itemKey builds the composite primary key attribute map.
func itemKey(partitionKey, rowKey string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"partition_key": &types.AttributeValueMemberS{Value: partitionKey},
		"row_key":       &types.AttributeValueMemberS{Value: rowKey},
	}
}

// getItem performs a point lookup and unmarshals the row into T.
// A missing item maps to ErrNotFound.
func getItem[T any](ctx context.Context, s *Store, table, partitionKey, rowKey string) (*T, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       itemKey(partitionKey, rowKey),
	})
	if err != nil {
		return nil, err
	}
	if result.Item == nil {
		return nil, ErrNotFound
	}

	var entity T
	if err := attributevalue.UnmarshalMap(result.Item, &entity); err != nil {
		return nil, fmt.Errorf("unmarshal %s row: %w", table, err)
	}
	return &entity, nil
}

// scanAll reads the whole table through the scan paginator.
func scanAll[T any](ctx context.Context, s *Store, table string) ([]T, error) {
	var entities []T

	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName: aws.String(table),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var entity T
			if err := attributevalue.UnmarshalMap(raw, &entity); err != nil {
				return nil, fmt.Errorf("unmarshal %s row: %w", table, err)
			}
			entities = append(entities, entity)
		}
	}

	return entities, nil
}

// insertItem writes a freshly keyed row, failing if the generated row key
// already exists.
func (s *Store) insertItem(ctx context.Context, table string, entity any) error {
	item, err := attributevalue.MarshalMap(entity)
	if err != nil {
		return fmt.Errorf("marshal %s row: %w", table, err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(row_key)"),
	})
	return err
}

// replaceItem overwrites a row unconditionally. Last writer wins; no
// version check is carried even though the storage layer supports one.
func (s *Store) replaceItem(ctx context.Context, table string, entity any) error {
	item, err := attributevalue.MarshalMap(entity)
	if err != nil {
		return fmt.Errorf("marshal %s row: %w", table, err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      item,
	})
	return err
}

// deleteItem removes a row by key.
func (s *Store) deleteItem(ctx context.Context, table, partitionKey, rowKey string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(table),
		Key:       itemKey(partitionKey, rowKey),
	})
	return err
}
