/*
 * Copyright © 2025 Modular Hub, All rights reserved.
 */

// Package mock provides an in-memory implementation of the DataStore
// interface for testing. It reproduces the store's pagination
// semantics: the page limit applies before filtering, so a page can be
// empty while a non-empty cursor signals more data, and an empty
// cursor is the only exhaustion marker.
package mock

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/modularhub/tenantdir/errors"
	"github.com/modularhub/tenantdir/registry"
	"github.com/modularhub/tenantdir/storagemodels"
)

// DataStore is an in-memory datastore.DataStore[T]. Records are held
// as marshaled attribute maps so filters and projections evaluate
// against the same wire shape the real store sees.
type DataStore[T any] struct {
	mu     sync.RWMutex
	schema *registry.Schema
	items  map[string]map[string]types.AttributeValue

	putError   error
	queryError error
}

// New constructs an in-memory store for type T using its registered
// schema.
func New[T any]() (*DataStore[T], error) {
	schema, err := registry.SchemaFor[T]()
	if err != nil {
		return nil, err
	}
	return &DataStore[T]{
		schema: schema,
		items:  make(map[string]map[string]types.AttributeValue),
	}, nil
}

// MustNew is New, panicking on a missing schema. For test setup.
func MustNew[T any]() *DataStore[T] {
	ds, err := New[T]()
	if err != nil {
		panic(err)
	}
	return ds
}

// WithPutError makes subsequent Put calls fail with err.
func (m *DataStore[T]) WithPutError(err error) *DataStore[T] {
	m.putError = err
	return m
}

// WithQueryError makes subsequent Query calls fail with err.
func (m *DataStore[T]) WithQueryError(err error) *DataStore[T] {
	m.queryError = err
	return m
}

// Count returns the number of stored records.
func (m *DataStore[T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

func (m *DataStore[T]) keyString(item map[string]types.AttributeValue) string {
	hash := stringAttr(item, m.schema.Primary.HashAttribute)
	if m.schema.Primary.HasRange() {
		return hash + "|" + stringAttr(item, m.schema.Primary.RangeAttribute)
	}
	return hash
}

func (m *DataStore[T]) primaryKeyMap(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	key := map[string]types.AttributeValue{
		m.schema.Primary.HashAttribute: item[m.schema.Primary.HashAttribute],
	}
	if m.schema.Primary.HasRange() {
		key[m.schema.Primary.RangeAttribute] = item[m.schema.Primary.RangeAttribute]
	}
	return key
}

func (m *DataStore[T]) lookupKey(key storagemodels.Key) (string, error) {
	if key.Hash == "" {
		return "", errors.NewValidationError(m.schema.Primary.HashAttribute, "hash key must not be empty")
	}
	if m.schema.Primary.HasRange() {
		if key.Range == nil {
			return "", errors.NewValidationError(m.schema.Primary.RangeAttribute, "range key is required")
		}
		return key.Hash + "|" + *key.Range, nil
	}
	if key.Range != nil {
		return "", errors.NewValidationError(m.schema.Primary.HashAttribute, "table has no range key")
	}
	return key.Hash, nil
}

func stringAttr(item map[string]types.AttributeValue, name string) string {
	if s, ok := item[name].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

// GetOne retrieves a record by primary key. Returns nil, nil when no
// record exists.
func (m *DataStore[T]) GetOne(_ context.Context, key storagemodels.Key) (*T, error) {
	ks, err := m.lookupKey(key)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.items[ks]
	if !ok {
		return nil, nil
	}

	result := new(T)
	if err := attributevalue.UnmarshalMap(item, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Put stores a record, replacing any record with the same key.
func (m *DataStore[T]) Put(_ context.Context, entity T) error {
	if m.putError != nil {
		return m.putError
	}

	item, err := attributevalue.MarshalMap(entity)
	if err != nil {
		return err
	}

	ks := m.keyString(item)
	if ks == "" || (m.schema.Primary.HasRange() && stringAttr(item, m.schema.Primary.HashAttribute) == "") {
		return errors.NewValidationError(m.schema.Primary.HashAttribute, "hash key must not be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[ks] = item
	return nil
}

// Delete removes a record by primary key. Deleting an absent record is
// a no-op.
func (m *DataStore[T]) Delete(_ context.Context, key storagemodels.Key) error {
	ks, err := m.lookupKey(key)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, ks)
	return nil
}

// Query pages through records the way the real store does: key
// conditions narrow the candidate set, the limit cuts a window, then
// the filter runs inside the window. The returned cursor is empty only
// when the candidate set is exhausted.
func (m *DataStore[T]) Query(_ context.Context, params *storagemodels.QueryParams) (*storagemodels.Page[T], error) {
	if m.queryError != nil {
		return nil, m.queryError
	}
	if params == nil {
		params = &storagemodels.QueryParams{}
	}

	idx, ok := m.schema.Index(params.IndexName)
	if !ok {
		return nil, &errors.SchemaError{
			Type:    m.schema.TableName,
			Message: fmt.Sprintf("no index %q", params.IndexName),
		}
	}

	startKey, err := storagemodels.DecodeCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	if params.HashValue == "" && params.Range != nil {
		return nil, &errors.UnsupportedQueryShapeError{
			Index:  idx.Name,
			Reason: "range condition requires a hash value",
		}
	}

	m.mu.RLock()
	candidates := make([]map[string]types.AttributeValue, 0, len(m.items))
	for _, item := range m.items {
		candidates = append(candidates, item)
	}
	m.mu.RUnlock()

	if params.HashValue != "" {
		matched := candidates[:0]
		for _, item := range candidates {
			if stringAttr(item, idx.HashAttribute) != params.HashValue {
				continue
			}
			if params.Range != nil {
				if !idx.HasRange() {
					return nil, &errors.UnsupportedQueryShapeError{
						Index:  idx.Name,
						Reason: "index has no range attribute",
					}
				}
				if params.Range.Attribute != "" && params.Range.Attribute != idx.RangeAttribute {
					return nil, &errors.UnsupportedQueryShapeError{
						Index:  idx.Name,
						Reason: fmt.Sprintf("range attribute %q does not match index range attribute %q", params.Range.Attribute, idx.RangeAttribute),
					}
				}
				switch params.Range.Comparator {
				case storagemodels.ComparatorEqual, storagemodels.ComparatorLessThan,
					storagemodels.ComparatorLessEqual, storagemodels.ComparatorGreaterThan,
					storagemodels.ComparatorGreaterEqual, storagemodels.ComparatorBeginsWith:
				default:
					return nil, &errors.UnsupportedQueryShapeError{
						Index:  idx.Name,
						Reason: fmt.Sprintf("comparator %q not supported", params.Range.Comparator),
					}
				}
				if !params.Range.Matches(stringAttr(item, idx.RangeAttribute)) {
					continue
				}
			}
			matched = append(matched, item)
		}
		candidates = matched
	}

	// Deterministic order: range attribute within an index, primary key
	// otherwise.
	sortAttr := func(item map[string]types.AttributeValue) string {
		if params.HashValue != "" && idx.HasRange() {
			return stringAttr(item, idx.RangeAttribute) + "|" + m.keyString(item)
		}
		return m.keyString(item)
	}
	sort.Slice(candidates, func(i, j int) bool {
		return sortAttr(candidates[i]) < sortAttr(candidates[j])
	})
	if params.ScanIndexForward != nil && !*params.ScanIndexForward {
		for i, j := 0, len(candidates)-1; i < j; i, j = i+1, j-1 {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		}
	}

	// Resume after the cursor's primary key.
	if startKey != nil {
		resumeAt := 0
		startKS := m.keyString(startKey)
		for i, item := range candidates {
			if m.keyString(item) == startKS {
				resumeAt = i + 1
				break
			}
		}
		candidates = candidates[resumeAt:]
	}

	// The limit windows candidates before the filter runs.
	window := candidates
	more := false
	if params.Limit != nil && int(*params.Limit) < len(candidates) {
		window = candidates[:int(*params.Limit)]
		more = true
	}

	var raws []map[string]types.AttributeValue
	for _, item := range window {
		if !params.Filter.Matches(item) {
			continue
		}
		raws = append(raws, project(item, params.AttributesToGet))
	}

	var records []T
	if err := attributevalue.UnmarshalListOfMaps(raws, &records); err != nil {
		return nil, err
	}

	cursor := ""
	if more {
		cursor, err = storagemodels.EncodeCursor(m.primaryKeyMap(window[len(window)-1]))
		if err != nil {
			return nil, err
		}
	}

	return &storagemodels.Page[T]{Items: records, Cursor: cursor}, nil
}

func project(item map[string]types.AttributeValue, attributes []string) map[string]types.AttributeValue {
	if len(attributes) == 0 {
		return item
	}
	out := make(map[string]types.AttributeValue, len(attributes))
	for _, a := range attributes {
		if v, ok := item[a]; ok {
			out[a] = v
		}
	}
	return out
}

// Stream yields every matching record by looping the page cursor.
func (m *DataStore[T]) Stream(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult[T] {
	options := storagemodels.DefaultStreamOptions()
	for _, opt := range opts {
		opt(&options)
	}

	resultCh := make(chan storagemodels.StreamResult[T], options.BufferSize)

	go func() {
		defer close(resultCh)

		p := storagemodels.QueryParams{}
		if params != nil {
			p = *params
		}
		p.Limit = &options.PageSize

		var index int64
		pageNumber := 0
		for {
			page, err := m.Query(ctx, &p)
			if err != nil {
				resultCh <- storagemodels.StreamResult[T]{
					Error: err,
					Meta:  storagemodels.StreamMeta{Index: index, PageNumber: pageNumber, Timestamp: time.Now()},
				}
				return
			}
			pageNumber++

			for _, item := range page.Items {
				select {
				case <-ctx.Done():
					return
				case resultCh <- storagemodels.StreamResult[T]{
					Item: item,
					Meta: storagemodels.StreamMeta{Index: index, PageNumber: pageNumber, Timestamp: time.Now()},
				}:
					index++
				}
			}

			if page.Exhausted() {
				return
			}
			p.Cursor = page.Cursor
		}
	}()

	return resultCh
}

// SetMapKey sets a single key of a map attribute, failing with a
// ConflictError when the slot is already occupied.
func (m *DataStore[T]) SetMapKey(_ context.Context, key storagemodels.Key, attribute, mapKey, value string) error {
	ks, err := m.lookupKey(key)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[ks]
	if !ok {
		return errors.NewNotFoundError(m.schema.TableName, key.Hash)
	}

	mapAttr, ok := item[attribute].(*types.AttributeValueMemberM)
	if !ok {
		return fmt.Errorf("attribute %q is not a map", attribute)
	}
	if _, occupied := mapAttr.Value[mapKey]; occupied {
		return &errors.ConflictError{Operation: "set", Key: attribute + "." + mapKey}
	}
	mapAttr.Value[mapKey] = &types.AttributeValueMemberS{Value: value}
	return nil
}

// RemoveMapKey removes a single key of a map attribute. Absent keys
// are a no-op.
func (m *DataStore[T]) RemoveMapKey(_ context.Context, key storagemodels.Key, attribute, mapKey string) error {
	ks, err := m.lookupKey(key)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[ks]
	if !ok {
		return nil
	}
	if mapAttr, ok := item[attribute].(*types.AttributeValueMemberM); ok {
		delete(mapAttr.Value, mapKey)
	}
	return nil
}
