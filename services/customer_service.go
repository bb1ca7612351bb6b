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

// CustomerService resolves customer records by name.
type CustomerService struct {
	store datastore.DataStore[models.Customer]
	log   *log.Logger
}

// NewCustomerService constructs a CustomerService.
func NewCustomerService(store datastore.DataStore[models.Customer], logger *log.Logger) *CustomerService {
	return &CustomerService{store: store, log: logger}
}

// Get retrieves a customer by name. Returns nil, nil when the customer
// does not exist.
func (s *CustomerService) Get(ctx context.Context, name string) (*models.Customer, error) {
	return s.store.GetOne(ctx, storagemodels.Key{Hash: name})
}

// List pages through customers, optionally restricted to active ones.
func (s *CustomerService) List(ctx context.Context, onlyActive bool, limit *int32, cursor string) (*storagemodels.Page[models.Customer], error) {
	var filter *storagemodels.Predicate
	if onlyActive {
		filter = storagemodels.BoolEq(models.CustomerIsActive, true)
	}
	return s.store.Query(ctx, &storagemodels.QueryParams{
		Filter: filter,
		Limit:  limit,
		Cursor: cursor,
	})
}

// Save persists a customer record.
func (s *CustomerService) Save(ctx context.Context, customer models.Customer) error {
	return s.store.Put(ctx, customer)
}
