/*
 * Copyright © 2025 Modular Hub, All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/joho/godotenv"

	"github.com/modularhub/tenantdir/errors"
	"github.com/modularhub/tenantdir/registry"
	"github.com/modularhub/tenantdir/storagemodels"
)

// Client is the narrow slice of the DynamoDB API the datastore uses.
// Declared as an interface so tests can capture the built inputs.
type Client interface {
	GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error)
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error)
	UpdateItem(ctx context.Context, params *sdk.UpdateItemInput, optFns ...func(*sdk.Options)) (*sdk.UpdateItemOutput, error)
	Query(ctx context.Context, params *sdk.QueryInput, optFns ...func(*sdk.Options)) (*sdk.QueryOutput, error)
	Scan(ctx context.Context, params *sdk.ScanInput, optFns ...func(*sdk.Options)) (*sdk.ScanOutput, error)
}

// DynamodbDataStore implements datastore.DataStore[T] against a
// DynamoDB table described by the schema registered for T.
type DynamodbDataStore[T any] struct {
	client    Client
	tableName string
	schema    *registry.Schema
}

// NewDynamoDBClient initializes a DynamoDB client using static AWS credentials.
func NewDynamoDBClient(awsAccessKey, awsSecretKey, awsRegion string) (*sdk.Client, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return sdk.NewFromConfig(cfg), nil
}

// New constructs a datastore for type T. The table name is the
// registered schema's table name with tablePrefix prepended.
func New[T any](client Client, tablePrefix string) (*DynamodbDataStore[T], error) {
	schema, err := registry.SchemaFor[T]()
	if err != nil {
		return nil, err
	}

	return &DynamodbDataStore[T]{
		client:    client,
		tableName: tablePrefix + schema.TableName,
		schema:    schema,
	}, nil
}

// NewFromEnv constructs a datastore for type T from environment
// variables (AWS_ACCESS_KEY, AWS_SECRET_KEY, AWS_REGION,
// TABLES_PREFIX), loading a .env file first when one is present.
func NewFromEnv[T any]() (*DynamodbDataStore[T], error) {
	// A missing .env file is fine; plain environment variables win.
	_ = godotenv.Load()

	client, err := NewDynamoDBClient(
		os.Getenv("AWS_ACCESS_KEY"),
		os.Getenv("AWS_SECRET_KEY"),
		os.Getenv("AWS_REGION"),
	)
	if err != nil {
		return nil, err
	}

	return New[T](client, os.Getenv("TABLES_PREFIX"))
}

// TableName returns the resolved physical table name.
func (d *DynamodbDataStore[T]) TableName() string {
	return d.tableName
}

// keyMap converts a Key value into the DynamoDB key attribute map
// using the schema's primary descriptor.
func (d *DynamodbDataStore[T]) keyMap(key storagemodels.Key) (map[string]types.AttributeValue, error) {
	if key.Hash == "" {
		return nil, errors.NewValidationError(d.schema.Primary.HashAttribute, "hash key must not be empty")
	}

	m := map[string]types.AttributeValue{
		d.schema.Primary.HashAttribute: &types.AttributeValueMemberS{Value: key.Hash},
	}

	if d.schema.Primary.HasRange() {
		if key.Range == nil {
			return nil, errors.NewValidationError(d.schema.Primary.RangeAttribute, "range key is required")
		}
		m[d.schema.Primary.RangeAttribute] = &types.AttributeValueMemberS{Value: *key.Range}
	} else if key.Range != nil {
		return nil, errors.NewValidationError(d.schema.Primary.HashAttribute, "table has no range key")
	}

	return m, nil
}

// GetOne retrieves a single record by primary key. Returns nil, nil
// when no record exists.
func (d *DynamodbDataStore[T]) GetOne(ctx context.Context, key storagemodels.Key) (*T, error) {
	keyMap, err := d.keyMap(key)
	if err != nil {
		return nil, err
	}

	out, err := d.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: &d.tableName,
		Key:       keyMap,
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil {
		return nil, nil
	}

	result := new(T)
	if err := attributevalue.UnmarshalMap(out.Item, result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	return result, nil
}

// Put stores the given record.
func (d *DynamodbDataStore[T]) Put(ctx context.Context, entity T) error {
	av, err := attributevalue.MarshalMap(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	_, err = d.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &d.tableName,
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}
	return nil
}

// Delete physically removes a record by primary key.
func (d *DynamodbDataStore[T]) Delete(ctx context.Context, key storagemodels.Key) error {
	keyMap, err := d.keyMap(key)
	if err != nil {
		return err
	}

	_, err = d.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: &d.tableName,
		Key:       keyMap,
	})
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}
