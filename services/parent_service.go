/*
 * Copyright © 2025 Modular Hub, All rights reserved.
 */

package services

import (
	"context"
	"log"

	"github.com/modularhub/tenantdir/datastore"
	"github.com/modularhub/tenantdir/models"
	"github.com/modularhub/tenantdir/storagemodels"
)

// ParentService resolves parent records, the referenced side of tenant
// linkages.
type ParentService struct {
	store datastore.DataStore[models.Parent]
	log   *log.Logger
}

// NewParentService constructs a ParentService.
func NewParentService(store datastore.DataStore[models.Parent], logger *log.Logger) *ParentService {
	return &ParentService{store: store, log: logger}
}

// Get retrieves a parent by id. Returns nil, nil when absent.
func (s *ParentService) Get(ctx context.Context, parentID string) (*models.Parent, error) {
	return s.store.GetOne(ctx, storagemodels.Key{Hash: parentID})
}

// Save persists a parent record.
func (s *ParentService) Save(ctx context.Context, parent models.Parent) error {
	return s.store.Put(ctx, parent)
}

// QueryByApplication pages through parents referencing an application,
// excluding soft-deleted ones.
func (s *ParentService) QueryByApplication(ctx context.Context, applicationID string, limit *int32, cursor string) (*storagemodels.Page[models.Parent], error) {
	return s.store.Query(ctx, &storagemodels.QueryParams{
		IndexName: models.ParentApplicationIndexName,
		HashValue: applicationID,
		Filter:    storagemodels.BoolEq(models.ParentIsDeleted, false),
		Limit:     limit,
		Cursor:    cursor,
	})
}

// HasApplicationParents reports whether any live parent still
// references the application.
func (s *ParentService) HasApplicationParents(ctx context.Context, applicationID string) (bool, error) {
	params := &storagemodels.QueryParams{
		IndexName: models.ParentApplicationIndexName,
		HashValue: applicationID,
		Filter:    storagemodels.BoolEq(models.ParentIsDeleted, false),
	}
	parents, err := datastore.QueryAll(ctx, s.store, params)
	if err != nil {
		return false, err
	}
	return len(parents) > 0, nil
}
