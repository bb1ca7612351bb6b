/*
Package datastore defines the storage contract the tenant directory is
written against.

The main interface is DataStore[T], which provides keyed reads, paged
index queries and conditional single-map-key updates for any record
type T:

	type DataStore[T any] interface {
	    GetOne(ctx context.Context, key storagemodels.Key) (*T, error)
	    Put(ctx context.Context, entity T) error
	    Query(ctx context.Context, params *storagemodels.QueryParams) (*storagemodels.Page[T], error)
	    Stream(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T]
	    SetMapKey(ctx context.Context, key storagemodels.Key, attribute, mapKey, value string) error
	    RemoveMapKey(ctx context.Context, key storagemodels.Key, attribute, mapKey string) error
	    Delete(ctx context.Context, key storagemodels.Key) error
	}

Implementations:
  - ddb: DynamoDB implementation backed by the registered table schemas
  - mock: in-memory implementation with the same filter, limit and
    cursor semantics, for testing

Concurrency correctness of linkage mutations is delegated to the
atomicity of SetMapKey: implementations must address a single map key
and must fail loudly rather than fall back to replacing the whole map.
*/
package datastore
