/*
 * Copyright © 2025 Modular Hub, All rights reserved.
 */

package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"

	"github.com/modularhub/tenantdir/datastore"
	"github.com/modularhub/tenantdir/errors"
	"github.com/modularhub/tenantdir/models"
	"github.com/modularhub/tenantdir/storagemodels"
)

// ApplicationService manages customer-scoped application records.
type ApplicationService struct {
	store     datastore.DataStore[models.Application]
	customers *CustomerService
	parents   *ParentService
	log       *log.Logger
}

// NewApplicationService constructs an ApplicationService.
func NewApplicationService(
	store datastore.DataStore[models.Application],
	customers *CustomerService,
	parents *ParentService,
	logger *log.Logger,
) *ApplicationService {
	return &ApplicationService{
		store:     store,
		customers: customers,
		parents:   parents,
		log:       logger,
	}
}

// CreateApplicationParams carries the inputs for Create. An empty
// ApplicationID gets a generated one.
type CreateApplicationParams struct {
	CustomerID    string
	Type          string
	Description   string
	ApplicationID string
	Meta          map[string]any
	Secret        string
}

// Create validates and builds a new application record. The record is
// not persisted; callers Save it once any surrounding bookkeeping
// succeeded.
func (s *ApplicationService) Create(ctx context.Context, params CreateApplicationParams) (*models.Application, error) {
	if !models.IsAvailableApplicationType(params.Type) {
		s.log.Printf("invalid application type %q, available options: %s",
			params.Type, strings.Join(models.AvailableApplicationTypes, ", "))
		return nil, errors.NewValidationError("type",
			fmt.Sprintf("invalid application type %q, available options: %s",
				params.Type, strings.Join(models.AvailableApplicationTypes, ", ")))
	}

	customer, err := s.customers.Get(ctx, params.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		s.log.Printf("customer %q does not exist", params.CustomerID)
		return nil, errors.NewNotFoundError("customer", params.CustomerID)
	}

	applicationID := params.ApplicationID
	if applicationID == "" {
		applicationID = uuid.NewString()
	}

	return &models.Application{
		ApplicationID: applicationID,
		CustomerID:    params.CustomerID,
		Type:          params.Type,
		Description:   params.Description,
		Meta:          params.Meta,
		Secret:        params.Secret,
	}, nil
}

// GetByID retrieves an application by id. Returns nil, nil when absent.
func (s *ApplicationService) GetByID(ctx context.Context, applicationID string) (*models.Application, error) {
	return s.store.GetOne(ctx, storagemodels.Key{Hash: applicationID})
}

// QueryByCustomer pages through a customer's applications, optionally
// narrowed by type and by deletion state. An empty applicationType
// contributes no filter.
func (s *ApplicationService) QueryByCustomer(
	ctx context.Context,
	customerID string,
	applicationType string,
	deleted *bool,
	limit *int32,
	cursor string,
) (*storagemodels.Page[models.Application], error) {
	var filter *storagemodels.Predicate
	if deleted != nil {
		filter = storagemodels.BoolEq(models.ApplicationIsDeleted, *deleted)
	}
	filter = filter.And(storagemodels.Eq(models.ApplicationType, applicationType))

	return s.store.Query(ctx, &storagemodels.QueryParams{
		IndexName: models.ApplicationCustomerIndexName,
		HashValue: customerID,
		Filter:    filter,
		Limit:     limit,
		Cursor:    cursor,
	})
}

// List pages through applications. With a customer it queries the
// customer index, otherwise it scans the table.
func (s *ApplicationService) List(
	ctx context.Context,
	customer string,
	applicationType string,
	deleted *bool,
	limit *int32,
	cursor string,
) (*storagemodels.Page[models.Application], error) {
	var filter *storagemodels.Predicate
	if deleted != nil {
		filter = storagemodels.BoolEq(models.ApplicationIsDeleted, *deleted)
	}
	filter = filter.And(storagemodels.Eq(models.ApplicationType, applicationType))

	params := &storagemodels.QueryParams{
		Filter: filter,
		Limit:  limit,
		Cursor: cursor,
	}
	if customer != "" {
		params.IndexName = models.ApplicationCustomerIndexName
		params.HashValue = customer
	}
	return s.store.Query(ctx, params)
}

// ListAll drains every page List would produce.
func (s *ApplicationService) ListAll(
	ctx context.Context,
	customer string,
	applicationType string,
	deleted *bool,
) ([]models.Application, error) {
	var filter *storagemodels.Predicate
	if deleted != nil {
		filter = storagemodels.BoolEq(models.ApplicationIsDeleted, *deleted)
	}
	filter = filter.And(storagemodels.Eq(models.ApplicationType, applicationType))

	params := &storagemodels.QueryParams{Filter: filter}
	if customer != "" {
		params.IndexName = models.ApplicationCustomerIndexName
		params.HashValue = customer
	}
	return datastore.QueryAll(ctx, s.store, params)
}

// Save persists an application record.
func (s *ApplicationService) Save(ctx context.Context, application models.Application) error {
	return s.store.Put(ctx, application)
}

// MarkDeleted soft-deletes the application in memory: the record keeps
// its item, flips the deleted flag and stamps the deletion date.
// Callers persist with Save. Fails when the application is already
// deleted or when live parents still reference it.
func (s *ApplicationService) MarkDeleted(ctx context.Context, application *models.Application) error {
	if application.IsDeleted {
		s.log.Printf("application %q has already been removed", application.ApplicationID)
		return errors.NewValidationError("application",
			fmt.Sprintf("application %q has already been removed", application.ApplicationID))
	}

	hasParents, err := s.parents.HasApplicationParents(ctx, application.ApplicationID)
	if err != nil {
		return err
	}
	if hasParents {
		s.log.Printf("there are parents associated with application %q", application.ApplicationID)
		return errors.NewValidationError("application",
			fmt.Sprintf("there are parents associated with application %q", application.ApplicationID))
	}

	now := strfmt.DateTime(time.Now().UTC())
	application.IsDeleted = true
	application.DeletionDate = &now
	return nil
}

// ApplicationDTO is the external representation of an application.
type ApplicationDTO struct {
	ApplicationID string           `json:"application_id"`
	CustomerID    string           `json:"customer_id"`
	Type          string           `json:"type"`
	Description   string           `json:"description"`
	IsDeleted     bool             `json:"is_deleted"`
	DeletionDate  *strfmt.DateTime `json:"deletion_date,omitempty"`
	Meta          map[string]any   `json:"meta,omitempty"`
}

// GetDTO projects an application to its external representation. The
// secret never leaves the service layer.
func (s *ApplicationService) GetDTO(application models.Application) ApplicationDTO {
	return ApplicationDTO{
		ApplicationID: application.ApplicationID,
		CustomerID:    application.CustomerID,
		Type:          application.Type,
		Description:   application.Description,
		IsDeleted:     application.IsDeleted,
		DeletionDate:  application.DeletionDate,
		Meta:          application.Meta,
	}
}
