/*
 * Copyright © 2025 Modular Hub, All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/modularhub/tenantdir/storagemodels"
)

// DataStore is the abstract storage capability the directory core
// consumes. Query covers the scan-or-query contract; SetMapKey and
// RemoveMapKey cover the conditional single-attribute update contract
// the linkage protocol depends on.
type DataStore[T any] interface {
	// GetOne retrieves a single record by primary key, or nil when absent.
	GetOne(ctx context.Context, key storagemodels.Key) (*T, error)

	// Put stores a record.
	Put(ctx context.Context, entity T) error

	// Query executes one scan or query page against the primary key or a
	// secondary index and returns the page plus an opaque resume cursor.
	Query(ctx context.Context, params *storagemodels.QueryParams) (*storagemodels.Page[T], error)

	// Stream lazily yields all records matching params by looping the
	// cursor internally until exhaustion.
	Stream(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T]

	// SetMapKey sets one key of a map attribute, conditioned on the slot
	// being absent. Loses to concurrent writers with a ConflictError; it
	// never downgrades to a whole-map overwrite.
	SetMapKey(ctx context.Context, key storagemodels.Key, attribute, mapKey, value string) error

	// RemoveMapKey removes one key of a map attribute. Removing an
	// absent key is a no-op.
	RemoveMapKey(ctx context.Context, key storagemodels.Key, attribute, mapKey string) error

	// Delete physically removes a record. The directory itself only
	// soft-deletes; this exists for operational cleanup.
	Delete(ctx context.Context, key storagemodels.Key) error
}
