/*
 * Copyright © 2025 Modular Hub, All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/modularhub/tenantdir/storagemodels"
)

// Stream lazily yields every record matching params by looping the
// page cursor until exhaustion. It is a pure wrapper over Query: the
// pagination semantics live in one place.
func (d *DynamodbDataStore[T]) Stream(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	options := storagemodels.DefaultStreamOptions()
	for _, opt := range opts {
		opt(&options)
	}

	resultCh := make(chan storagemodels.StreamResult[T], options.BufferSize)
	go d.streamWorker(ctx, params, options, resultCh)
	return resultCh
}

func (d *DynamodbDataStore[T]) streamWorker(
	ctx context.Context,
	params *storagemodels.QueryParams,
	options storagemodels.StreamOptions,
	resultCh chan<- storagemodels.StreamResult[T],
) {
	defer close(resultCh)

	// Work on a copy so the caller's params are not mutated while the
	// cursor advances.
	p := storagemodels.QueryParams{}
	if params != nil {
		p = *params
	}
	p.Limit = &options.PageSize

	var itemIndex int64
	pageNumber := 0

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		page, err := d.queryWithRetry(ctx, &p, options)
		if err != nil {
			resultCh <- storagemodels.StreamResult[T]{
				Error: fmt.Errorf("query failed: %w", err),
				Meta: storagemodels.StreamMeta{
					Index:      itemIndex,
					PageNumber: pageNumber,
					Timestamp:  time.Now(),
				},
			}
			return
		}
		pageNumber++

		for _, item := range page.Items {
			result := storagemodels.StreamResult[T]{
				Item: item,
				Meta: storagemodels.StreamMeta{
					Index:      itemIndex,
					PageNumber: pageNumber,
					Timestamp:  time.Now(),
				},
			}
			itemIndex++

			select {
			case <-ctx.Done():
				return
			case resultCh <- result:
			}
		}

		if page.Exhausted() {
			return
		}
		p.Cursor = page.Cursor
	}
}

// queryWithRetry executes one page fetch, retrying transient DynamoDB
// faults with linear backoff.
func (d *DynamodbDataStore[T]) queryWithRetry(
	ctx context.Context,
	params *storagemodels.QueryParams,
	options storagemodels.StreamOptions,
) (*storagemodels.Page[T], error) {
	var lastErr error

	for attempt := 0; attempt <= options.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		page, err := d.Query(ctx, params)
		if err == nil {
			return page, nil
		}
		lastErr = err

		if !isRetryableError(err) {
			return nil, err
		}

		if attempt < options.MaxRetries {
			backoff := time.Duration(attempt+1) * options.RetryBackoff
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("query failed after %d retries: %w", options.MaxRetries, lastErr)
}

// isRetryableError determines if a DynamoDB error is transient.
func isRetryableError(err error) bool {
	switch err.(type) {
	case *types.ProvisionedThroughputExceededException:
		return true
	case *types.RequestLimitExceeded:
		return true
	case *types.InternalServerError:
		return true
	}

	if awsErr, ok := err.(interface{ IsRetryable() bool }); ok {
		return awsErr.IsRetryable()
	}

	return false
}
