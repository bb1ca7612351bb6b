/*
 * Copyright © 2025 Modular Hub, All rights reserved.
 */

package ddb

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/modularhub/tenantdir/errors"
	"github.com/modularhub/tenantdir/storagemodels"
)

// SetMapKey sets a single key of a map attribute to value, conditioned
// on that key being absent. The update addresses only the one nested
// path, so concurrent writers touching other keys of the same map do
// not clobber each other. A concurrent writer that claimed the same
// slot first surfaces as a ConflictError.
func (d *DynamodbDataStore[T]) SetMapKey(ctx context.Context, key storagemodels.Key, attribute, mapKey, value string) error {
	keyMap, err := d.keyMap(key)
	if err != nil {
		return err
	}

	_, err = d.client.UpdateItem(ctx, &sdk.UpdateItemInput{
		TableName:           &d.tableName,
		Key:                 keyMap,
		UpdateExpression:    aws.String("SET #m.#k = :v"),
		ConditionExpression: aws.String("attribute_not_exists(#m.#k)"),
		ExpressionAttributeNames: map[string]string{
			"#m": attribute,
			"#k": mapKey,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: value},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if stderrors.As(err, &cfe) {
			return &errors.ConflictError{
				Operation: "set",
				Key:       attribute + "." + mapKey,
			}
		}
		return fmt.Errorf("SetMapKey failed: %w", err)
	}

	return nil
}

// RemoveMapKey removes a single key of a map attribute. Removing an
// absent key is a no-op at the store level and does not error.
func (d *DynamodbDataStore[T]) RemoveMapKey(ctx context.Context, key storagemodels.Key, attribute, mapKey string) error {
	keyMap, err := d.keyMap(key)
	if err != nil {
		return err
	}

	_, err = d.client.UpdateItem(ctx, &sdk.UpdateItemInput{
		TableName:        &d.tableName,
		Key:              keyMap,
		UpdateExpression: aws.String("REMOVE #m.#k"),
		ExpressionAttributeNames: map[string]string{
			"#m": attribute,
			"#k": mapKey,
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		return fmt.Errorf("RemoveMapKey failed: %w", err)
	}

	return nil
}
