/*
 * Copyright © 2025 Modular Hub, All rights reserved.
 */

package tenantdir

import (
	"log"

	"github.com/modularhub/tenantdir/datastore"
	"github.com/modularhub/tenantdir/datastore/ddb"
	"github.com/modularhub/tenantdir/models"
	"github.com/modularhub/tenantdir/services"
)

// Stores bundles the per-entity datastores backing a Directory. Any
// DataStore implementation works; production wiring uses the DynamoDB
// adapter, tests typically use the in-memory mock.
type Stores struct {
	Customers    datastore.DataStore[models.Customer]
	Parents      datastore.DataStore[models.Parent]
	Applications datastore.DataStore[models.Application]
	Tenants      datastore.DataStore[models.Tenant]
}

// Directory is the assembled entity directory: one service per entity
// kind, sharing a logger and wired against the same storage backend.
type Directory struct {
	Customers    *services.CustomerService
	Parents      *services.ParentService
	Applications *services.ApplicationService
	Tenants      *services.TenantService
}

// New assembles a Directory from explicit stores. A nil logger falls
// back to the process default.
func New(stores Stores, logger *log.Logger) *Directory {
	if logger == nil {
		logger = log.Default()
	}

	customers := services.NewCustomerService(stores.Customers, logger)
	parents := services.NewParentService(stores.Parents, logger)
	return &Directory{
		Customers:    customers,
		Parents:      parents,
		Applications: services.NewApplicationService(stores.Applications, customers, parents, logger),
		Tenants:      services.NewTenantService(stores.Tenants, customers, logger),
	}
}

// NewDynamoDB assembles a Directory backed by DynamoDB tables sharing
// a common name prefix.
func NewDynamoDB(client ddb.Client, tablePrefix string, logger *log.Logger) (*Directory, error) {
	customers, err := ddb.New[models.Customer](client, tablePrefix)
	if err != nil {
		return nil, err
	}
	parents, err := ddb.New[models.Parent](client, tablePrefix)
	if err != nil {
		return nil, err
	}
	applications, err := ddb.New[models.Application](client, tablePrefix)
	if err != nil {
		return nil, err
	}
	tenants, err := ddb.New[models.Tenant](client, tablePrefix)
	if err != nil {
		return nil, err
	}

	return New(Stores{
		Customers:    customers,
		Parents:      parents,
		Applications: applications,
		Tenants:      tenants,
	}, logger), nil
}
