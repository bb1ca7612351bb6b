/*
 * Copyright © 2025 Modular Hub, All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/modularhub/tenantdir/errors"
	"github.com/modularhub/tenantdir/registry"
	"github.com/modularhub/tenantdir/storagemodels"
)

// Query executes one scan or query page. A non-empty HashValue queries
// the selected index; an empty one scans the table. The returned page
// carries an opaque cursor for the next page, empty on exhaustion.
func (d *DynamodbDataStore[T]) Query(ctx context.Context, params *storagemodels.QueryParams) (*storagemodels.Page[T], error) {
	if params == nil {
		params = &storagemodels.QueryParams{}
	}

	idx, ok := d.schema.Index(params.IndexName)
	if !ok {
		return nil, &errors.SchemaError{
			Type:    d.schema.TableName,
			Message: fmt.Sprintf("no index %q", params.IndexName),
		}
	}

	startKey, err := storagemodels.DecodeCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	if params.HashValue == "" {
		if params.Range != nil {
			return nil, &errors.UnsupportedQueryShapeError{
				Index:  idx.Name,
				Reason: "range condition requires a hash value",
			}
		}
		return d.scanPage(ctx, params, startKey)
	}

	return d.queryPage(ctx, params, idx, startKey)
}

func (d *DynamodbDataStore[T]) queryPage(
	ctx context.Context,
	params *storagemodels.QueryParams,
	idx registry.IndexDescriptor,
	startKey map[string]types.AttributeValue,
) (*storagemodels.Page[T], error) {
	keyCond := expression.Key(idx.HashAttribute).Equal(expression.Value(params.HashValue))

	if params.Range != nil {
		rangeCond, err := keyRangeCondition(idx, params.Range)
		if err != nil {
			return nil, err
		}
		keyCond = keyCond.And(rangeCond)
	}

	builder := expression.NewBuilder().WithKeyCondition(keyCond)

	filter, hasFilter := conditionFrom(params.Filter)
	if hasFilter {
		builder = builder.WithFilter(filter)
	}
	if len(params.AttributesToGet) > 0 {
		builder = builder.WithProjection(projectionFrom(params.AttributesToGet))
	}

	expr, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	input := &sdk.QueryInput{
		TableName:                 &d.tableName,
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ProjectionExpression:      expr.Projection(),
		Limit:                     params.Limit,
		ScanIndexForward:          params.ScanIndexForward,
	}
	if hasFilter {
		input.FilterExpression = expr.Filter()
	}
	if idx.Name != "" {
		input.IndexName = &idx.Name
	}
	if startKey != nil {
		input.ExclusiveStartKey = startKey
	}

	out, err := d.client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	return d.pageFrom(out.Items, out.LastEvaluatedKey)
}

func (d *DynamodbDataStore[T]) scanPage(
	ctx context.Context,
	params *storagemodels.QueryParams,
	startKey map[string]types.AttributeValue,
) (*storagemodels.Page[T], error) {
	input := &sdk.ScanInput{
		TableName: &d.tableName,
		Limit:     params.Limit,
	}
	if params.IndexName != "" {
		input.IndexName = &params.IndexName
	}
	if startKey != nil {
		input.ExclusiveStartKey = startKey
	}

	filter, hasFilter := conditionFrom(params.Filter)
	hasProjection := len(params.AttributesToGet) > 0

	// The expression builder rejects an empty build; a bare scan goes
	// out without expressions at all.
	if hasFilter || hasProjection {
		builder := expression.NewBuilder()
		if hasFilter {
			builder = builder.WithFilter(filter)
		}
		if hasProjection {
			builder = builder.WithProjection(projectionFrom(params.AttributesToGet))
		}
		expr, err := builder.Build()
		if err != nil {
			return nil, fmt.Errorf("failed to build expression: %w", err)
		}
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
		input.ProjectionExpression = expr.Projection()
		if hasFilter {
			input.FilterExpression = expr.Filter()
		}
	}

	out, err := d.client.Scan(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("scan error: %w", err)
	}

	return d.pageFrom(out.Items, out.LastEvaluatedKey)
}

func (d *DynamodbDataStore[T]) pageFrom(
	items []map[string]types.AttributeValue,
	lastKey map[string]types.AttributeValue,
) (*storagemodels.Page[T], error) {
	var records []T
	if err := attributevalue.UnmarshalListOfMaps(items, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal items: %w", err)
	}

	cursor, err := storagemodels.EncodeCursor(lastKey)
	if err != nil {
		return nil, err
	}

	return &storagemodels.Page[T]{Items: records, Cursor: cursor}, nil
}

// keyRangeCondition compiles a range condition against the descriptor's
// range attribute, rejecting shapes the index cannot serve.
func keyRangeCondition(idx registry.IndexDescriptor, rc *storagemodels.RangeCondition) (expression.KeyConditionBuilder, error) {
	var zero expression.KeyConditionBuilder

	if !idx.HasRange() {
		return zero, &errors.UnsupportedQueryShapeError{
			Index:  idx.Name,
			Reason: "index has no range attribute",
		}
	}
	if rc.Attribute != "" && rc.Attribute != idx.RangeAttribute {
		return zero, &errors.UnsupportedQueryShapeError{
			Index:  idx.Name,
			Reason: fmt.Sprintf("range attribute %q does not match index range attribute %q", rc.Attribute, idx.RangeAttribute),
		}
	}

	key := expression.Key(idx.RangeAttribute)
	switch rc.Comparator {
	case storagemodels.ComparatorEqual:
		return key.Equal(expression.Value(rc.Value)), nil
	case storagemodels.ComparatorLessThan:
		return key.LessThan(expression.Value(rc.Value)), nil
	case storagemodels.ComparatorLessEqual:
		return key.LessThanEqual(expression.Value(rc.Value)), nil
	case storagemodels.ComparatorGreaterThan:
		return key.GreaterThan(expression.Value(rc.Value)), nil
	case storagemodels.ComparatorGreaterEqual:
		return key.GreaterThanEqual(expression.Value(rc.Value)), nil
	case storagemodels.ComparatorBeginsWith:
		return key.BeginsWith(rc.Value), nil
	}

	return zero, &errors.UnsupportedQueryShapeError{
		Index:  idx.Name,
		Reason: fmt.Sprintf("comparator %q not supported", rc.Comparator),
	}
}

// conditionFrom compiles a predicate tree into a filter expression.
func conditionFrom(p *storagemodels.Predicate) (expression.ConditionBuilder, bool) {
	var cond expression.ConditionBuilder

	for i, c := range p.Conditions() {
		leaf := expression.Name(c.Attribute).Equal(expression.Value(c.Value))
		if i == 0 {
			cond = leaf
		} else {
			cond = cond.And(leaf)
		}
	}

	return cond, len(p.Conditions()) > 0
}

func projectionFrom(attributes []string) expression.ProjectionBuilder {
	names := make([]expression.NameBuilder, len(attributes))
	for i, a := range attributes {
		names[i] = expression.Name(a)
	}
	return expression.NamesList(names[0], names[1:]...)
}
